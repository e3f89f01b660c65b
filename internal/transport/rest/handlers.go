package rest

import (
	"encoding/json"
	"net/http"

	"github.com/sandevgo/protox/internal/core"
	"github.com/sandevgo/protox/internal/service/chat"
	"github.com/sandevgo/protox/internal/service/prompt"
	"github.com/sandevgo/protox/pkg/log"
)

const maxBodyBytes = 1 << 20

type handlers struct {
	chatSvc ChatService
	memory  MemoryService
}

type chatRequest struct {
	Message        string `json:"message"`
	Memory         string `json:"memory"`
	Tone           string `json:"tone"`
	Lang           string `json:"lang"`
	PreferHinglish *bool  `json:"prefer_hinglish"`
}

// toChat fills in the defaults for missing fields.
func (c chatRequest) toChat() chat.Request {
	req := chat.Request{
		Message:        c.Message,
		Memory:         c.Memory,
		Tone:           c.Tone,
		Lang:           c.Lang,
		PreferHinglish: true,
	}
	if req.Tone == "" {
		req.Tone = prompt.ToneProfessional
	}
	if req.Lang == "" {
		req.Lang = prompt.LangAuto
	}
	if c.PreferHinglish != nil {
		req.PreferHinglish = *c.PreferHinglish
	}
	return req
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{
		"status":  "ok",
		"message": core.AssistantName + " backend is running",
	})
}

func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	var body chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		log.FromCtx(r.Context()).Debug().Err(err).Msg("unreadable chat body, using empty message")
		body = chatRequest{}
	}

	reply := h.chatSvc.Chat(r.Context(), body.toChat())
	writeJSON(w, r, map[string]string{"reply": reply.Text})
}

func (h *handlers) resetMemory(w http.ResponseWriter, r *http.Request) {
	if h.memory != nil {
		if err := h.memory.Clear(); err != nil {
			log.FromCtx(r.Context()).Error().Err(err).Msg("failed to clear memory")
		}
	}
	writeJSON(w, r, map[string]string{"status": "Memory cleared"})
}

func (h *handlers) getMemory(w http.ResponseWriter, r *http.Request) {
	memory := "Sample memory placeholder"
	if h.memory != nil {
		memory = h.memory.SummaryPrompt()
	}
	writeJSON(w, r, map[string]string{"memory": memory})
}

func (h *handlers) getHistory(w http.ResponseWriter, r *http.Request) {
	history := []core.Message{}
	if h.memory != nil {
		history = append(history, h.memory.History()...)
	}
	writeJSON(w, r, map[string][]core.Message{"history": history})
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}
