package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sandevgo/protox/internal/core"
	"github.com/sandevgo/protox/internal/metrics"
	"github.com/sandevgo/protox/internal/service/chat"
	"github.com/sandevgo/protox/pkg/log"
)

type ChatService interface {
	Chat(ctx context.Context, req chat.Request) chat.Reply
}

// MemoryService backs the memory endpoints when facts are kept server side.
type MemoryService interface {
	SummaryPrompt() string
	History() []core.Message
	Clear() error
}

type Server struct {
	addr    string
	handler http.Handler
	server  *http.Server
}

// NewServer builds the HTTP surface. A nil memory keeps /memory, /history and
// /reset_memory as placeholders for front-ends that manage memory themselves.
func NewServer(ctx context.Context, addr string, chatSvc ChatService, memory MemoryService) *Server {
	h := &handlers{chatSvc: chatSvc, memory: memory}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(requestLogger(ctx))
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/", h.home)
	router.Post("/chat", h.chat)
	router.Post("/reset_memory", h.resetMemory)
	router.Get("/memory", h.getMemory)
	router.Get("/history", h.getHistory)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	return &Server{
		addr:    addr,
		handler: router,
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.server.BaseContext = func(net.Listener) context.Context {
		return context.WithoutCancel(ctx)
	}

	log.FromCtx(ctx).Info().Str("addr", ln.Addr().String()).Msg("http server listening")

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("http server shutting down")
	return s.server.Shutdown(ctx)
}
