package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/juridica-backend/internal/app"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "juridica",
	Short: "Legal case PDF extraction service",
	Long: `juridica downloads legal case PDFs, asks a model for a summary,
a timeline and flawed evidence, validates the answer and stores it.

Running without a subcommand starts the HTTP server.`,
	Version:       app.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(versionCmd)
}

func bootstrap() (*logger.Logger, app.Config, error) {
	cfg, err := app.LoadConfig(envFile)
	if err != nil {
		return nil, app.Config{}, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, app.Config{}, fmt.Errorf("init logger: %w", err)
	}
	return log, cfg, nil
}
