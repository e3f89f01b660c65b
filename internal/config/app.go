package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	MemoryModeServer = "server"
	MemoryModeClient = "client"
)

type AppConfig struct {
	DataDir string `env:"PROTOX_DATA_DIR" envDefault:"."`
	Port    int    `env:"PORT" envDefault:"5000"`

	MemoryPath string `env:"MEMORY_PATH" envDefault:"data/memory.json"`
	// MemoryMode decides whether the HTTP memory endpoints and the chat
	// pipeline are bound to the fact store ("server") or left to the
	// front-end ("client").
	MemoryMode string `env:"MEMORY_MODE" envDefault:"server"`
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	switch c.MemoryMode {
	case MemoryModeServer, MemoryModeClient:
	default:
		return nil, fmt.Errorf("unknown MEMORY_MODE %q", c.MemoryMode)
	}
	return c, nil
}

func (c AppConfig) GetListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func (c AppConfig) GetMemoryPath() string {
	return ResolvePath(c.DataDir, c.MemoryPath)
}

func (c AppConfig) IsMemoryBound() bool {
	return c.MemoryMode == MemoryModeServer
}
