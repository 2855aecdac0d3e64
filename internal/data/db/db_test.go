package db

import (
	"testing"

	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

func TestConfigDSN(t *testing.T) {
	pg := Config{Driver: "postgres", Host: "db", Port: "5432", User: "app", Password: "p@ss", Name: "juridica"}
	if got, want := pg.DSN(), "postgresql://app:p%40ss@db:5432/juridica?sslmode=disable"; got != want {
		t.Fatalf("postgres dsn: got %q want %q", got, want)
	}

	if got := (Config{Driver: "sqlite"}).DSN(); got != "juridica.db" {
		t.Fatalf("default sqlite path: %q", got)
	}
	if got := (Config{Driver: "SQLITE3", SQLitePath: ":memory:"}).DSN(); got != ":memory:" {
		t.Fatalf("sqlite path: %q", got)
	}
	if (Config{}).driver() != DriverPostgres {
		t.Fatalf("empty driver should default to postgres")
	}
}

func TestQuoteIdent(t *testing.T) {
	if got := quoteIdent(`we"ird`); got != `"we""ird"` {
		t.Fatalf("got %s", got)
	}
}

func TestNewServiceSQLiteMigrates(t *testing.T) {
	log, _ := logger.New("test")
	svc, err := NewService(log, Config{Driver: "sqlite", SQLitePath: "file:db_service_test?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer svc.Close()
	if err := AutoMigrateAll(svc.DB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range []string{"cases", "timeline_events", "evidences", "extraction_jobs"} {
		if !svc.DB().Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestNewServiceUnknownDriver(t *testing.T) {
	log, _ := logger.New("test")
	if _, err := NewService(log, Config{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
