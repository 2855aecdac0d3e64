package db

import (
	"database/sql"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

// EnsureDatabaseExists connects to the "postgres" maintenance database and
// creates cfg.Name when it is missing. Every failure is logged and ignored;
// the real connection attempt reports anything that matters.
func EnsureDatabaseExists(log *logger.Logger, cfg Config) {
	if cfg.Name == "" || cfg.Name == "postgres" {
		return
	}
	admin, err := gorm.Open(postgres.Open(cfg.postgresDSN("postgres")), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		log.Debug("maintenance database unavailable", "error", err)
		return
	}
	if sqlDB, err := admin.DB(); err == nil {
		sqlDB.SetConnMaxLifetime(10 * time.Second)
		defer sqlDB.Close()
	}

	var exists int
	err = admin.Raw("SELECT 1 FROM pg_database WHERE datname = ?", cfg.Name).Row().Scan(&exists)
	if err == nil {
		return
	}
	if err != sql.ErrNoRows {
		log.Debug("database existence check failed", "database", cfg.Name, "error", err)
		return
	}
	if err := admin.Exec("CREATE DATABASE " + quoteIdent(cfg.Name)).Error; err != nil {
		log.Warn("create database failed", "database", cfg.Name, "error", err)
		return
	}
	log.Info("database created", "database", cfg.Name)
}

func quoteIdent(name string) string {
	out := make([]byte, 0, len(name)+2)
	out = append(out, '"')
	for i := 0; i < len(name); i++ {
		if name[i] == '"' {
			out = append(out, '"')
		}
		out = append(out, name[i])
	}
	return string(append(out, '"'))
}
