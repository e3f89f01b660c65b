package main

import (
	"fmt"

	"github.com/sandevgo/protox/pkg/log"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the knowledge collection",
	Long: `Clears the vector collection and stores every non-empty .txt and .md file
found under the knowledge directories (INGEST_DIRS).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		report, err := a.ingester.Run(ctx)
		if err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("ingestion failed")
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Ingestion complete! Count = %d docs in %q.\nStore path: %s\n",
			report.Count, cfg.rag.Collection, report.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
