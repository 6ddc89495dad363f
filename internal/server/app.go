// Package server initializes and runs the backend application: it opens the
// database, bootstraps the admin user, and starts the HTTP endpoint and the
// CDC ingestor, handling graceful shutdown for both.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis/v8"

	"github.com/DorLamesh/devops-web-app/internal/logging"
	"github.com/DorLamesh/devops-web-app/internal/server/audit"
	"github.com/DorLamesh/devops-web-app/internal/server/auth"
	"github.com/DorLamesh/devops-web-app/internal/server/cdc"
	"github.com/DorLamesh/devops-web-app/internal/server/config"
	"github.com/DorLamesh/devops-web-app/internal/server/httpapi"
	"github.com/DorLamesh/devops-web-app/internal/server/shared/db"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     *db.PostgresManager
	emitter     *audit.Emitter
	authService *auth.Service
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	m, err := db.NewPostgresManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	emitter := audit.NewEmitter(logger, c.AuditQueueSize)
	as := auth.NewService(m.Users(), m.Tokens(), emitter, c)

	return &App{
		config:      c,
		logger:      logger,
		manager:     m,
		emitter:     emitter,
		authService: as,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startCDCConsumer runs the stream ingestor. A stream that cannot be reached
// is logged and the server keeps serving requests without it.
func (app *App) startCDCConsumer(ctx context.Context) {

	client := redis.NewClient(&redis.Options{Addr: app.config.RedisAddr})
	defer client.Close()

	consumer := cdc.NewConsumer(client, app.config.CDCStream, app.config.CDCGroup, app.emitter, app.logger)

	if err := consumer.Run(ctx); err != nil {
		app.logger.Error(ctx, "CDC consumer stopped", "error", err.Error())
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.authService.EnsureAdmin(ctx); err != nil {
		// The server still starts; requests needing the admin user will fail
		// until the database recovers.
		app.logger.Error(ctx, "admin bootstrap error", "error", err.Error())
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startCDCConsumer(ctx)
	}()

	wg.Wait()

	app.emitter.Close()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
