package main

import (
	"fmt"

	"github.com/sandevgo/protox/pkg/env"
	"github.com/spf13/cobra"
)

var showSecrets bool

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the effective configuration",
	Long:  `Prints the configuration after .env and environment overrides, as dotenv lines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		out, err := env.MarshalEnv(env.Options{Redact: !showSecrets, KeepZero: true}, cfg.app, cfg.llm, cfg.rag)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	envCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print credentials in clear text")
	rootCmd.AddCommand(envCmd)
}
