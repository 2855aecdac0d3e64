package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/juridica-backend/internal/app"
	"github.com/yungbote/juridica-backend/internal/platform/shutdown"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the job workers",
	Long: `Start the HTTP API.

Every route except /healthcheck and /readyz needs an X-API-Key header that
matches API_KEYS. On SIGINT or SIGTERM the server stops accepting requests
and waits for queued extraction jobs before exiting.

Examples:
  juridica serve
  juridica serve --port 9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default: PORT or 8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log, cfg, err := bootstrap()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	a, err := app.New(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return err
	}
	a.Start()

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run() }()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case runErr = <-errCh:
		if runErr != nil {
			log.Error("http server stopped", "error", runErr)
		}
	}

	graceCtx, cancel := shutdown.GraceContext(shutdown.DefaultGrace)
	defer cancel()
	if err := a.Shutdown(graceCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
