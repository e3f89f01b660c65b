package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/protox/internal/config"
	"github.com/sandevgo/protox/internal/core"
	"github.com/sandevgo/protox/internal/providers/llm"
	"github.com/sandevgo/protox/internal/providers/rag"
	"github.com/sandevgo/protox/internal/service/chat"
	"github.com/sandevgo/protox/internal/service/ingest"
	"github.com/sandevgo/protox/internal/service/memory"
	"github.com/sandevgo/protox/internal/service/retrieval"
	"github.com/sandevgo/protox/internal/storage/chromem"
	"github.com/sandevgo/protox/internal/transport/rest"
	"github.com/sandevgo/protox/pkg/log"
	"github.com/sandevgo/protox/pkg/srv"
)

type configs struct {
	app *config.AppConfig
	llm *config.LLMConfig
	rag *config.RAGConfig
}

type app struct {
	cfg      configs
	vectors  *chromem.Store
	memory   *memory.Store
	ingester *ingest.Ingester
	pipeline *chat.Pipeline
	server   *rest.Server
	closers  []func() error
}

func NewServices(ctx context.Context, ingestFirst bool) []srv.Service {
	logger := log.FromCtx(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize protox")
	}

	if ingestFirst {
		if _, err := a.ingester.Run(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to ingest knowledge")
		}
	}

	services := make([]srv.Service, 0, len(a.closers)+1)
	for _, c := range a.closers {
		services = append(services, srv.NewCleanup(c))
	}
	return append(services, a.server)
}

func loadConfig(ctx context.Context) (configs, error) {
	root := os.Getenv("PROTOX_DATA_DIR")
	if err := initEnv(ctx, config.GetEnvFilePath(root)); err != nil {
		return configs{}, fmt.Errorf("failed to init env: %w", err)
	}

	appCfg, err := config.ParseAppConfig()
	if err != nil {
		return configs{}, fmt.Errorf("app config: %w", err)
	}
	llmCfg, err := config.ParseLLMConfig()
	if err != nil {
		return configs{}, fmt.Errorf("llm config: %w", err)
	}
	ragCfg, err := config.ParseRAGConfig()
	if err != nil {
		return configs{}, fmt.Errorf("rag config: %w", err)
	}
	return configs{app: appCfg, llm: llmCfg, rag: ragCfg}, nil
}

func newApp(ctx context.Context, cfg configs) (*app, error) {
	a := &app{cfg: cfg}

	// 1. Vector store
	embed, closeEmbed, err := rag.NewEmbeddingFunc(ctx, cfg.rag)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeEmbed)

	a.vectors, err = chromem.Open(ctx, cfg.rag.GetStorePath(), cfg.rag.Collection, embed)
	if err != nil {
		return nil, err
	}

	// 2. Ingestion
	chunker, err := newChunker(cfg.rag)
	if err != nil {
		return nil, err
	}
	a.ingester = ingest.NewIngester(a.vectors, cfg.rag.GetIngestDirs(), chunker)

	// 3. Completion
	completer, err := llm.NewClient(ctx, cfg.llm)
	if err != nil {
		return nil, err
	}

	// 4. Fact memory, only when the backend owns it
	var (
		facts  core.FactMemory
		memSvc rest.MemoryService
	)
	if cfg.app.IsMemoryBound() {
		a.memory, err = memory.Open(cfg.app.GetMemoryPath())
		if err != nil {
			return nil, err
		}
		facts, memSvc = a.memory, a.memory
	}
	log.FromCtx(ctx).Info().
		Str("mode", cfg.app.MemoryMode).
		Str("path", cfg.app.GetMemoryPath()).
		Msg("fact memory configured")

	// 5. Chat and transport
	retriever := retrieval.NewRetriever(a.vectors, cfg.rag.TopK)
	a.pipeline = chat.NewPipeline(retriever, completer, facts)
	a.server = rest.NewServer(ctx, cfg.app.GetListenAddr(), a.pipeline, memSvc)

	return a, nil
}

func newChunker(cfg *config.RAGConfig) (*rag.Chunker, error) {
	if cfg.IngestChunkTokens <= 0 {
		return nil, nil
	}
	tok, err := rag.NewTiktokenTokenizer(rag.DefaultEncoding)
	if err != nil {
		return nil, err
	}
	return rag.NewChunker(tok, rag.DefaultChunkerConfig(cfg.IngestChunkTokens)), nil
}

func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("cleanup failed")
		}
	}
}

func initEnv(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
