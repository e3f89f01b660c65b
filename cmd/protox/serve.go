package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/protox/pkg/log"
	"github.com/sandevgo/protox/pkg/srv"
	"github.com/spf13/cobra"
)

var serveIngest bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP backend",
	Long: `Starts the JSON API. The knowledge collection is loaded once at startup,
so run "protox ingest" before serving or pass --ingest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting protox")

		services := NewServices(ctx, serveIngest)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("protox has been shut down gracefully")

		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveIngest, "ingest", false, "rebuild the knowledge collection before serving")
	rootCmd.AddCommand(serveCmd)
}
