// Package server initializes and runs the admin API server. It opens the
// database and object storage, applies migrations, bootstraps the admin
// account, and serves the HTTP API until SIGINT or SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/adminconsole/internal/logging"
	"github.com/dmitrijs2005/adminconsole/internal/server/config"
	"github.com/dmitrijs2005/adminconsole/internal/server/httpapi"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/adminconsole/internal/server/services"
	"github.com/dmitrijs2005/adminconsole/internal/server/storage"
	"github.com/gin-gonic/gin"
)

type App struct {
	config      *config.Config
	logger      *logging.ZapLogger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	auth        *services.AuthService
	handler     *httpapi.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewProductionZapLogger(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := storage.NewS3Storage(ctx, storage.Options{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	audit := services.NewAuditService(db, m, store, c.ExportURLValidity)
	auth := services.NewAuthService(db, m, audit, c)

	gin.SetMode(gin.ReleaseMode)
	h := httpapi.NewHandler(httpapi.Services{
		Auth:      auth,
		Users:     services.NewUserService(db, m, audit),
		Posts:     services.NewPostService(db, m, audit),
		Audit:     audit,
		Emails:    services.NewEmailService(db, m, audit),
		Agent:     services.NewAgentService(db, m, audit),
		Analytics: services.NewAnalyticsService(db, m),
	}, c, logger)

	return &App{config: c, logger: logger, db: db, repomanager: m, auth: auth, handler: h}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// prepare migrates the schema and creates the bootstrap admin, if configured.
func (app *App) prepare(ctx context.Context) error {
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	if app.config.AdminEmail != "" && app.config.AdminPassword != "" {
		if err := app.auth.EnsureAdmin(ctx, app.config.AdminEmail, app.config.AdminPassword); err != nil {
			return fmt.Errorf("admin bootstrap error: %w", err)
		}
		app.logger.Info(ctx, "Admin account ready", "email", app.config.AdminEmail)
	}
	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.handler.Router(), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "failed to close database", "error", err)
		}
		_ = app.logger.Sync()
	}()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.prepare(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
