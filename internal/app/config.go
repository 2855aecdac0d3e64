package app

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/yungbote/juridica-backend/internal/data/db"
	"github.com/yungbote/juridica-backend/internal/observability"
)

// Version is overridden at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

type LLMConfig struct {
	Provider     string
	Model        string
	GeminiAPIKey string
	GeminiModel  string
}

// Config is built once by LoadConfig and passed by value.
type Config struct {
	AppName string
	Stage   string
	Port    string
	LogMode string

	LLMModel     string
	GeminiAPIKey string
	GeminiModel  string

	DB db.Config

	CORSOrigins []string

	PDFDownloadTimeout time.Duration
	WebhookTimeout     time.Duration
	WorkerConcurrency  int
	JobQueueSize       int
	DebugPayload       bool

	Otel observability.OtelConfig

	apiKeys []string
}

func defaults(v *viper.Viper) {
	v.SetDefault("app_name", "inteligencia_juridica")
	v.SetDefault("stage", "dev")
	v.SetDefault("port", "8080")
	v.SetDefault("log_mode", "development")
	v.SetDefault("llm_model", "dummy-model")
	v.SetDefault("gemini_model", "gemini-1.5-flash")
	v.SetDefault("db_driver", db.DriverPostgres)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "juridica")
	v.SetDefault("db_sqlite_path", "juridica.db")
	v.SetDefault("pdf_download_timeout", "15s")
	v.SetDefault("webhook_timeout", "10s")
	v.SetDefault("worker_concurrency", 2)
	v.SetDefault("job_queue_size", 64)
	v.SetDefault("debug_payload", false)
	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_sampler_ratio", 0.1)
}

// LoadConfig reads the environment, after loading envFile when it exists.
// An empty envFile means ".env".
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	v := viper.New()
	v.AutomaticEnv()
	defaults(v)
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		AppName: v.GetString("app_name"),
		Stage:   v.GetString("stage"),
		Port:    v.GetString("port"),
		LogMode: v.GetString("log_mode"),

		LLMModel:     v.GetString("llm_model"),
		GeminiAPIKey: strings.TrimSpace(v.GetString("gemini_api_key")),
		GeminiModel:  v.GetString("gemini_model"),

		DB: db.Config{
			Driver:     v.GetString("db_driver"),
			Host:       v.GetString("db_host"),
			Port:       v.GetString("db_port"),
			User:       v.GetString("db_user"),
			Password:   v.GetString("db_password"),
			Name:       v.GetString("db_name"),
			SQLitePath: v.GetString("db_sqlite_path"),
		},

		CORSOrigins: splitList(v.GetString("cors_origins")),

		PDFDownloadTimeout: duration(v.GetString("pdf_download_timeout"), 15*time.Second),
		WebhookTimeout:     duration(v.GetString("webhook_timeout"), 10*time.Second),
		WorkerConcurrency:  v.GetInt("worker_concurrency"),
		JobQueueSize:       v.GetInt("job_queue_size"),
		DebugPayload:       v.GetBool("debug_payload"),

		Otel: observability.OtelConfig{
			Enabled:     v.GetBool("otel_enabled"),
			ServiceName: v.GetString("app_name"),
			Environment: v.GetString("stage"),
			Version:     Version,
			Endpoint:    v.GetString("otel_exporter_otlp_endpoint"),
			Headers:     v.GetString("otel_exporter_otlp_headers"),
			Insecure:    v.GetBool("otel_exporter_otlp_insecure"),
			SampleRatio: v.GetFloat64("otel_sampler_ratio"),
		},

		apiKeys: splitList(v.GetString("api_keys")),
	}
}

// LLMConfig reports which model backs extraction. Provider is "gemini" when
// an API key is present and "none" otherwise.
func (c Config) LLMConfig() LLMConfig {
	provider := "none"
	if c.GeminiAPIKey != "" {
		provider = "gemini"
	}
	return LLMConfig{
		Provider:     provider,
		Model:        c.LLMModel,
		GeminiAPIKey: c.GeminiAPIKey,
		GeminiModel:  c.GeminiModel,
	}
}

func (c Config) Meta() map[string]string {
	return map[string]string{
		"app_name": c.AppName,
		"stage":    c.Stage,
		"version":  Version,
	}
}

func (c Config) DatabaseURL() string { return c.DB.DSN() }

// APIKeys returns a copy of the allow-list.
func (c Config) APIKeys() []string {
	return append([]string(nil), c.apiKeys...)
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// duration accepts Go durations ("15s") or a bare number of seconds.
func duration(raw string, def time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return def
		}
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
