package summary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ekomissarova/study-tracker/internal/http/middlewarectx"
	"github.com/ekomissarova/study-tracker/internal/http/response"
	"github.com/ekomissarova/study-tracker/internal/lib/sl"
	"github.com/ekomissarova/study-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики агрегированной статистики.
type Service interface {
	Summary(ctx context.Context, userUID, rng, subject string) (*models.Summary, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводная статистика
// @Description Возвращает суммарные часы, число сессий и разбивку по предметам за период.
// @Tags Stats
// @Produce  json
// @Security BearerAuth
// @Param range query string false "Период: all, daily, weekly, monthly" default(all)
// @Param subject query string false "Фильтр по предмету"
// @Success 200 {object} response.Response "Статистика"
// @Failure 400 {object} response.ErrorResponse "Некорректный период"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /stats/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = "all"
	}
	switch rng {
	case "all", "daily", "weekly", "monthly":
	default:
		log.Error("invalid range", slog.String("range", rng))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("range must be one of: all, daily, weekly, monthly"))
		return
	}
	subject := r.URL.Query().Get("subject")

	summary, err := h.service.Summary(r.Context(), userUID, rng, subject)
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build summary"))
		return
	}

	log.Info("summary built", slog.String("range", rng))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"range":   rng,
		"summary": summary,
	}))
}
