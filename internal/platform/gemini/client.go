package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"google.golang.org/genai"

	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

const (
	defaultModel        = "gemini-1.5-flash"
	defaultPollAttempts = 30
	defaultPollDelay    = time.Second
)

var errStillProcessing = errors.New("file still processing")

type Config struct {
	APIKey       string
	Model        string
	PollAttempts uint
	PollDelay    time.Duration
}

// Client implements llm.PDFAnalyzer on top of the Gemini Files and
// GenerateContent APIs.
type Client struct {
	log   *logger.Logger
	genai *genai.Client
	model string
	poll  uint
	delay time.Duration
}

func NewClient(ctx context.Context, log *logger.Logger, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	c := &Client{
		log:   log.With("client", "gemini"),
		genai: gc,
		model: strings.TrimSpace(cfg.Model),
		poll:  cfg.PollAttempts,
		delay: cfg.PollDelay,
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.poll == 0 {
		c.poll = defaultPollAttempts
	}
	if c.delay <= 0 {
		c.delay = defaultPollDelay
	}
	return c, nil
}

func (c *Client) Name() string { return c.model }

func (c *Client) AnalyzePDF(ctx context.Context, pdfPath, prompt string) (string, error) {
	file, err := c.genai.Files.UploadFromPath(ctx, pdfPath, &genai.UploadFileConfig{MIMEType: "application/pdf"})
	if err != nil {
		return "", fmt.Errorf("gemini: upload %s: %w", pdfPath, err)
	}
	defer c.deleteFile(file.Name)

	file, err = c.waitActive(ctx, file)
	if err != nil {
		return "", err
	}

	mime := file.MIMEType
	if mime == "" {
		mime = "application/pdf"
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(file.URI, mime),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return responseText(resp), nil
}

// waitActive polls the uploaded file while it is PROCESSING. When the poll
// budget runs out the last known file is returned and generation is
// attempted anyway.
func (c *Client) waitActive(ctx context.Context, file *genai.File) (*genai.File, error) {
	if file.State != genai.FileStateProcessing {
		return file, nil
	}
	current := file
	err := retry.Do(
		func() error {
			f, err := c.genai.Files.Get(ctx, current.Name, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("gemini: get file %s: %w", current.Name, err))
			}
			current = f
			if f.State == genai.FileStateProcessing {
				return errStillProcessing
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.poll),
		retry.Delay(c.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	switch {
	case err == nil:
	case errors.Is(err, errStillProcessing):
		c.log.Warn("file still processing after poll budget", "file", current.Name, "attempts", c.poll)
	default:
		return nil, err
	}
	if current.State == genai.FileStateFailed {
		return nil, fmt.Errorf("gemini: file %s failed processing", current.Name)
	}
	return current, nil
}

func (c *Client) deleteFile(name string) {
	if name == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := c.genai.Files.Delete(ctx, name, nil); err != nil {
		c.log.Debug("delete uploaded file failed", "file", name, "error", err)
	}
}

// responseText prefers the SDK accessor and falls back to joining every
// candidate text part.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if t := resp.Text(); t != "" {
		return t
	}
	var parts []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if p != nil && p.Text != "" {
				parts = append(parts, p.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}
