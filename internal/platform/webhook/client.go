package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yungbote/juridica-backend/internal/pkg/httpx"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

// Client POSTs JSON payloads to callback URLs. It never retries.
type Client struct {
	log  *logger.Logger
	http *http.Client
}

func NewClient(log *logger.Logger, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		log:  log.With("client", "webhook"),
		http: httpx.NewClient(timeout),
	}
}

func (c *Client) Post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	c.log.Debug("webhook response", "url", url, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	return httpx.CheckStatus(resp)
}
