// Package studytracker предоставляет маршруты для основного приложения.
package studytracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ekomissarova/study-tracker/internal/http/handlers/auth/login"
	"github.com/ekomissarova/study-tracker/internal/http/handlers/auth/register"
	"github.com/ekomissarova/study-tracker/internal/http/handlers/auth/verify"
	goalcreate "github.com/ekomissarova/study-tracker/internal/http/handlers/goal/create"
	goallist "github.com/ekomissarova/study-tracker/internal/http/handlers/goal/list"
	goalremove "github.com/ekomissarova/study-tracker/internal/http/handlers/goal/remove"
	goalupdate "github.com/ekomissarova/study-tracker/internal/http/handlers/goal/update"
	sessioncreate "github.com/ekomissarova/study-tracker/internal/http/handlers/session/create"
	sessionlist "github.com/ekomissarova/study-tracker/internal/http/handlers/session/list"
	sessionremove "github.com/ekomissarova/study-tracker/internal/http/handlers/session/remove"
	"github.com/ekomissarova/study-tracker/internal/http/handlers/stats/streak"
	"github.com/ekomissarova/study-tracker/internal/http/handlers/stats/summary"
	"github.com/ekomissarova/study-tracker/internal/http/middlewarectx"
	authservice "github.com/ekomissarova/study-tracker/internal/services/auth"
	goalservice "github.com/ekomissarova/study-tracker/internal/services/goal"
	sessionservice "github.com/ekomissarova/study-tracker/internal/services/session"
	statsservice "github.com/ekomissarova/study-tracker/internal/services/stats"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	sessionService *sessionservice.SessionService,
	goalService *goalservice.GoalService,
	statsService *statsservice.StatsService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.CORSMiddleware(),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/verify", verify.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/sessions", sessionlist.New(logger, sessionService).ServeHTTP)
			r.Post("/sessions", sessioncreate.New(logger, sessionService).ServeHTTP)
			r.Delete("/sessions/{id}", sessionremove.New(logger, sessionService).ServeHTTP)

			r.Post("/goals", goalcreate.New(logger, goalService).ServeHTTP)
			r.Get("/goals", goallist.New(logger, goalService).ServeHTTP)
			r.Put("/goals/{id}", goalupdate.New(logger, goalService).ServeHTTP)
			r.Delete("/goals/{id}", goalremove.New(logger, goalService).ServeHTTP)

			r.Get("/stats/summary", summary.New(logger, statsService).ServeHTTP)
			r.Get("/stats/streak", streak.New(logger, statsService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
