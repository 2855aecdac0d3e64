package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by analyzers that have no backing model.
var ErrNotConfigured = errors.New("model client not configured")

// PDFAnalyzer sends a local PDF plus an instruction to a model and returns
// the raw text it answered with.
type PDFAnalyzer interface {
	Name() string
	AnalyzePDF(ctx context.Context, pdfPath, prompt string) (string, error)
}

// NotConfigured is selected at startup when no model credentials exist.
type NotConfigured struct {
	Model string
}

func (n NotConfigured) Name() string {
	if n.Model == "" {
		return "none"
	}
	return n.Model
}

func (NotConfigured) AnalyzePDF(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}

// Generator produces free text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Echo is the placeholder text generator.
type Echo struct{}

func (Echo) Generate(_ context.Context, prompt string) (string, error) {
	return "Echo: " + prompt, nil
}
