package memory

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/sandevgo/protox/internal/core"
)

type State struct {
	Facts   map[string]string `json:"facts"`
	History []core.Message    `json:"history"`
}

func emptyState() State {
	return State{
		Facts:   map[string]string{},
		History: []core.Message{},
	}
}

// Store keeps user facts and chat history in a single JSON document.
// Every mutation is written to disk before it returns.
type Store struct {
	path  string
	mu    sync.Mutex
	state State
}

func NewStore(path string) *Store {
	return &Store{
		path:  path,
		state: emptyState(),
	}
}

// Open creates the directory holding the memory document and loads it.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create memory dir: %w", err)
	}
	s := NewStore(path)
	s.Load()
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory state with the document on disk. A missing or
// unreadable document results in empty state.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = emptyState()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return
	}
	if st.Facts == nil {
		st.Facts = map[string]string{}
	}
	if st.History == nil {
		st.History = []core.Message{}
	}
	s.state = st
}

func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes through a temp file in the target directory so readers never
// observe a partially written document.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create memory dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.state); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode memory: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync memory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace memory file: %w", err)
	}
	return nil
}

func (s *Store) AddHistory(role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.History = append(s.state.History, core.Message{Role: role, Content: content})
	return s.save()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = emptyState()
	return s.save()
}

func (s *Store) GetFact(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.state.Facts[key]
	return v, ok
}

// UpdateFromText stores any facts found in text and returns a copy of all
// facts. The document is saved even when nothing matched.
func (s *Store) UpdateFromText(text string) (map[string]string, error) {
	found := Extract(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	maps.Copy(s.state.Facts, found)
	facts := maps.Clone(s.state.Facts)
	if err := s.save(); err != nil {
		return facts, err
	}
	return facts, nil
}

func (s *Store) SummaryPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Facts) == 0 {
		return ""
	}

	keys := slices.Sorted(maps.Keys(s.state.Facts))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+s.state.Facts[k])
	}
	return "User facts → " + strings.Join(parts, ", ")
}

func (s *Store) History() []core.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.state.History)
}
