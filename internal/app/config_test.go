package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/juridica-backend/internal/data/db"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "inteligencia_juridica", cfg.AppName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, db.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 15*time.Second, cfg.PDFDownloadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, 2, cfg.WorkerConcurrency)
	assert.Equal(t, 64, cfg.JobQueueSize)
	assert.Empty(t, cfg.APIKeys())
	assert.Equal(t, "none", cfg.LLMConfig().Provider)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("API_KEYS", " k1, ,k2 ")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("PDF_DOWNLOAD_TIMEOUT", "30")
	t.Setenv("WEBHOOK_TIMEOUT", "2s")
	t.Setenv("DEBUG_PAYLOAD", "true")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, []string{"k1", "k2"}, cfg.APIKeys())
	assert.Equal(t, "gemini", cfg.LLMConfig().Provider)
	assert.Equal(t, "/tmp/x.db", cfg.DatabaseURL())
	assert.Equal(t, 30*time.Second, cfg.PDFDownloadTimeout)
	assert.Equal(t, 2*time.Second, cfg.WebhookTimeout)
	assert.True(t, cfg.DebugPayload)
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STAGE=test-from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("STAGE") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "test-from-file", cfg.Stage)
	assert.Equal(t, "test-from-file", cfg.Meta()["stage"])
}

func TestAPIKeysIsACopy(t *testing.T) {
	t.Setenv("API_KEYS", "k1")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	keys := cfg.APIKeys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"k1"}, cfg.APIKeys())
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, duration("", 5*time.Second))
	assert.Equal(t, 5*time.Second, duration("bogus", 5*time.Second))
	assert.Equal(t, 5*time.Second, duration("-3", 5*time.Second))
	assert.Equal(t, 1500*time.Millisecond, duration("1.5s", 5*time.Second))
}
