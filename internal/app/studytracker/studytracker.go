package studytracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/ekomissarova/study-tracker/internal/cache"
	"github.com/ekomissarova/study-tracker/internal/config"
	"github.com/ekomissarova/study-tracker/internal/lib/jwt"
	"github.com/ekomissarova/study-tracker/internal/migrations"
	authservice "github.com/ekomissarova/study-tracker/internal/services/auth"
	goalservice "github.com/ekomissarova/study-tracker/internal/services/goal"
	sessionservice "github.com/ekomissarova/study-tracker/internal/services/session"
	statsservice "github.com/ekomissarova/study-tracker/internal/services/stats"
	"github.com/ekomissarova/study-tracker/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	sessionService := sessionservice.NewSessionService(db, cacheRedis, logger)
	goalService := goalservice.NewGoalService(db, db, logger)
	statsService := statsservice.NewStatsService(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, sessionService, goalService, statsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
