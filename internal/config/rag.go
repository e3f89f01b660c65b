package config

import (

	"github.com/caarlos0/env/v11"
)

type RAGConfig struct {
	DataDir    string `env:"PROTOX_DATA_DIR" envDefault:"."`
	StoreDir   string `env:"CHROMA_DIR" envDefault:"chroma_store"`
	Collection string `env:"RAG_COLLECTION" envDefault:"college_docs"`
	TopK       int    `env:"RAG_TOP_K" envDefault:"3"`

	EmbeddingProvider string `env:"EMBEDDING_PROVIDER" envDefault:"hash"`
	EmbeddingModel    string `env:"EMBEDDING_MODEL"`
	EmbeddingBaseURL  string `env:"EMBEDDING_BASE_URL"`
	EmbeddingAPIKey   string `env:"EMBEDDING_API_KEY" secret:"true"`
	EmbeddingCache    int64  `env:"EMBEDDING_CACHE_ENTRIES" envDefault:"1024"`
	EmbeddingAttempts int    `env:"EMBEDDING_ATTEMPTS" envDefault:"1"`

	IngestDirs        []string `env:"INGEST_DIRS" envSeparator:"," envDefault:"knowledge,uploads"`
	IngestChunkTokens int      `env:"INGEST_CHUNK_TOKENS" envDefault:"0"`
}

func ParseRAGConfig() (*RAGConfig, error) {
	c := &RAGConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.TopK <= 0 {
		c.TopK = 3
	}
	return c, nil
}

func (c RAGConfig) GetStorePath() string {
	return ResolvePath(c.DataDir, c.StoreDir)
}

func (c RAGConfig) GetIngestDirs() []string {
	dirs := make([]string, 0, len(c.IngestDirs))
	for _, d := range c.IngestDirs {
		if d == "" {
			continue
		}
		dirs = append(dirs, ResolvePath(c.DataDir, d))
	}
	return dirs
}
