package app

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/juridica-backend/internal/data/db"
	httpx "github.com/yungbote/juridica-backend/internal/http"
	"github.com/yungbote/juridica-backend/internal/observability"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Server   *httpx.Server

	dbService    *db.Service
	otelShutdown func(context.Context) error
}

var initOTel = observability.InitOTel

// New opens the database, migrates it and wires every component. The
// returned App owns log and must be closed with Shutdown. On error
// everything opened so far is released.
func New(ctx context.Context, log *logger.Logger, cfg Config) (a *App, err error) {
	otelShutdown := initOTel(ctx, log, cfg.Otel)
	var dbService *db.Service
	defer func() {
		if err == nil {
			return
		}
		if dbService != nil {
			_ = dbService.Close()
		}
		if otelShutdown != nil {
			_ = otelShutdown(context.Background())
		}
	}()

	dbService, err = db.NewService(log, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := dbService.DB()
	if err = db.AutoMigrateAll(theDB); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		return nil, err
	}
	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(log, cfg, reposet, clients)
	if err != nil {
		return nil, err
	}

	sqlDB, err := theDB.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	handlerset := wireHandlers(log, cfg, sqlDB, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, handlerset, middleware)

	log.Info("app wired", "meta", cfg.Meta(), "llm_provider", cfg.LLMConfig().Provider)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches the background job workers.
func (a *App) Start() {
	if a == nil || a.Services.Queue == nil {
		return
	}
	a.Services.Queue.Start()
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("http server listening", "addr", addr)
	return a.Server.Run(addr)
}

// Shutdown stops accepting requests, drains queued jobs and closes the
// database. Errors from each step are joined.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if a.Services.Queue != nil {
		if err := a.Services.Queue.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("queue shutdown: %w", err))
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("otel shutdown: %w", err))
		}
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db close: %w", err))
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return errors.Join(errs...)
}
