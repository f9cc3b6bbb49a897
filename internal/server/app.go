// Package server initializes and runs the Vacay API server. It opens the
// database, applies migrations, wires the services and HTTP router, and
// handles graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vacayhq/vacay/internal/logging"
	"github.com/vacayhq/vacay/internal/server/config"
	"github.com/vacayhq/vacay/internal/server/httpapi"
	"github.com/vacayhq/vacay/internal/server/repositories/repomanager"
	"github.com/vacayhq/vacay/internal/server/services"
	"github.com/vacayhq/vacay/internal/server/storage"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store := storage.NewS3Client(cfg)

	userService := services.NewUserService(db, rm, cfg)
	albumService := services.NewAlbumService(db, rm)
	mediaService := services.NewMediaService(db, rm, albumService, store, logger)

	router := httpapi.NewRouter(
		httpapi.NewAuthHandler(userService),
		httpapi.NewAlbumHandler(albumService),
		httpapi.NewMediaHandler(mediaService),
		httpapi.NewShareHandler(albumService, mediaService),
		[]byte(cfg.SecretKey),
	)

	return &App{config: cfg, logger: logger, db: db, handler: router}, nil
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return app.db.Close()
}
