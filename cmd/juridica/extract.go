package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/juridica-backend/internal/app"
	"github.com/yungbote/juridica-backend/internal/platform/shutdown"
	"github.com/yungbote/juridica-backend/internal/services"
)

var (
	extractPDFURL string
	extractCaseID string
	extractDebug  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run one synchronous extraction and print the result as JSON",
	Example: `  juridica extract --pdf-url https://example.com/case.pdf --case-id CASE-0001
  juridica extract --pdf-url https://example.com/case.pdf --case-id CASE-0001 --debug`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, cfg, err := bootstrap()
		if err != nil {
			return err
		}
		a, err := app.New(cmd.Context(), log, cfg)
		if err != nil {
			log.Sync()
			return err
		}
		defer func() {
			ctx, cancel := shutdown.GraceContext(0)
			defer cancel()
			_ = a.Shutdown(ctx)
		}()

		out, err := a.Services.Extraction.Extract(cmd.Context(), services.ExtractRequest{
			PDFURL: extractPDFURL,
			CaseID: extractCaseID,
		})
		if err != nil {
			return err
		}

		doc := map[string]any{
			"case_id":      out.CaseID,
			"resume":       out.Extraction.Resume,
			"timeline":     out.Extraction.Timeline,
			"evidence":     out.Extraction.Evidence,
			"persisted_at": out.PersistedAt,
		}
		if out.ValidationError {
			doc["validation_error"] = true
		}
		if extractDebug || cfg.DebugPayload {
			doc["debug"] = out.Diagnostics
		}
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractPDFURL, "pdf-url", "", "http(s) URL of the case PDF")
	extractCmd.Flags().StringVar(&extractCaseID, "case-id", "", "case identifier (at least 5 characters)")
	extractCmd.Flags().BoolVar(&extractDebug, "debug", false, "include diagnostics in the output")
	_ = extractCmd.MarkFlagRequired("pdf-url")
	_ = extractCmd.MarkFlagRequired("case-id")
}
