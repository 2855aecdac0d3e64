package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/yungbote/juridica-backend/internal/pkg/httpx"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

// ErrDownload wraps every failure to fetch or store a PDF.
var ErrDownload = errors.New("failed to download PDF")

// Document is a downloaded PDF on local disk.
type Document struct {
	Path        string
	ContentType string
	Size        int64
	// PageCount is 0 when the bytes could not be parsed as a PDF.
	PageCount int
}

// Remove deletes the temp file. Safe on nil.
func (d *Document) Remove() error {
	if d == nil || d.Path == "" {
		return nil
	}
	if err := os.Remove(d.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

type Downloader struct {
	log    *logger.Logger
	client *http.Client
	dir    string
}

// NewDownloader writes into os.TempDir(). timeout <= 0 means 15s.
func NewDownloader(log *logger.Logger, timeout time.Duration) *Downloader {
	return &Downloader{
		log:    log.With("component", "PDFDownloader"),
		client: httpx.NewClient(timeout),
		dir:    os.TempDir(),
	}
}

func (d *Downloader) Download(ctx context.Context, url, caseID string) (*Document, error) {
	doc, err := d.download(ctx, url, caseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	return doc, nil
}

func (d *Downloader) download(ctx context.Context, url, caseID string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := httpx.CheckStatus(resp); err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "pdf") {
		d.log.Debug("downloaded document is not labelled as pdf", "case_id", caseID, "content_type", contentType)
	}

	path := filepath.Join(d.dir, fmt.Sprintf("%s_%s.pdf", safeName(caseID), strings.ReplaceAll(uuid.NewString(), "-", "")))
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	size, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	doc := &Document{Path: path, ContentType: contentType, Size: size}
	doc.PageCount = d.pageCount(path, caseID)
	return doc, nil
}

func (d *Downloader) pageCount(path, caseID string) (n int) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("pdf page count panicked", "case_id", caseID, "panic", r)
			n = 0
		}
	}()
	f, err := os.Open(path)
	if err != nil {
		d.log.Warn("open pdf for page count failed", "case_id", caseID, "error", err)
		return 0
	}
	defer f.Close()
	n, err = api.PageCount(f, nil)
	if err != nil {
		d.log.Warn("pdf page count failed", "case_id", caseID, "error", err)
		return 0
	}
	return n
}

func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}
