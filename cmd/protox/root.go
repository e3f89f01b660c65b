package main

import (
	"context"
	"os"

	"github.com/sandevgo/protox/internal/config"
	"github.com/sandevgo/protox/internal/core"
	"github.com/sandevgo/protox/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "protox",
	Short: "Prototype-X, a retrieval-augmented chat backend",
	Long: `protox answers chat messages using a small knowledge base, remembered
user facts and a hosted chat-completion model.`,
	Version:      core.Version,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
