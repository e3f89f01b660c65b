package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/sandevgo/protox/internal/core"
	"github.com/sandevgo/protox/internal/metrics"
	"github.com/sandevgo/protox/internal/providers/rag"
	"github.com/sandevgo/protox/pkg/conv"
	"github.com/sandevgo/protox/pkg/log"
)

const (
	PlaceholderSource = "placeholder.txt"
	PlaceholderText   = "This is a placeholder note for the college knowledge base."

	MetaChunk = "chunk"
)

var extensions = []string{".txt", ".md"}

type Report struct {
	Files       int
	Added       int
	Count       int
	Path        string
	Placeholder bool
}

type Ingester struct {
	store   core.VectorStore
	dirs    []string
	chunker *rag.Chunker
}

// NewIngester builds an ingester over dirs. With a nil chunker each file is
// stored as a single entry.
func NewIngester(store core.VectorStore, dirs []string, chunker *rag.Chunker) *Ingester {
	return &Ingester{
		store:   store,
		dirs:    dirs,
		chunker: chunker,
	}
}

type file struct {
	path string
	text string
}

// Run replaces the whole collection with the current contents of the
// knowledge directories.
func (i *Ingester) Run(ctx context.Context) (Report, error) {
	ctx = log.WithComponent(ctx, "ingest")
	logger := log.FromCtx(ctx)

	files, err := i.readFiles(ctx)
	if err != nil {
		return Report{}, err
	}

	if err := i.store.Reset(ctx); err != nil {
		return Report{}, fmt.Errorf("failed to clear collection: %w", err)
	}

	report := Report{Files: len(files), Path: i.store.Path()}
	if len(files) == 0 {
		logger.Warn().Strs("dirs", i.dirs).Msg("no knowledge files found, ingesting placeholder")
		files = []file{{path: PlaceholderSource, text: PlaceholderText}}
		report.Placeholder = true
	}

	docs := i.documents(files)
	logger.Info().Int("entries", len(docs)).Msg("adding entries to collection")
	if err := i.store.Add(ctx, docs); err != nil {
		return report, fmt.Errorf("failed to add entries: %w", err)
	}

	report.Added = len(docs)
	report.Count = i.store.Count()
	metrics.IngestedDocuments.Set(float64(report.Count))

	logger.Info().
		Int("files", report.Files).
		Int("count", report.Count).
		Str("path", report.Path).
		Msg("ingestion complete")

	return report, nil
}

func (i *Ingester) readFiles(ctx context.Context) ([]file, error) {
	logger := log.FromCtx(ctx)

	var files []file
	for _, dir := range i.dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			logger.Debug().Str("dir", dir).Msg("skipping missing knowledge dir")
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(dir), "**/*", doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		slices.Sort(matches)

		for _, rel := range matches {
			if !hasKnowledgeExt(rel) {
				continue
			}
			path := filepath.Join(dir, filepath.FromSlash(rel))

			text, err := readText(path)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable file")
				continue
			}
			files = append(files, file{path: path, text: text})
		}
	}
	return files, nil
}

func hasKnowledgeExt(path string) bool {
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(path)))
}

// readText loads a file as UTF-8, dropping invalid bytes. Markdown is
// flattened to plain text.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := strings.ToValidUTF8(string(data), "")

	if strings.EqualFold(filepath.Ext(path), ".md") {
		if plain, err := conv.MarkdownToText([]byte(text)); err == nil {
			text = plain
		}
	}
	return text, nil
}

func (i *Ingester) documents(files []file) []core.Document {
	var docs []core.Document
	for _, f := range files {
		text := strings.TrimSpace(f.text)
		if text == "" {
			continue
		}

		if i.chunker == nil {
			docs = append(docs, newDocument(f.path, text, nil))
			continue
		}
		for _, c := range i.chunker.Split(text) {
			docs = append(docs, newDocument(f.path, c.Text, map[string]string{
				MetaChunk: strconv.Itoa(c.Index),
			}))
		}
	}
	return docs
}

func newDocument(source, content string, extra map[string]string) core.Document {
	meta := map[string]string{core.MetaSource: source}
	for k, v := range extra {
		meta[k] = v
	}
	return core.Document{
		ID:       uuid.NewString(),
		Content:  content,
		Metadata: meta,
	}
}
