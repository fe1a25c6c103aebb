package streak

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ekomissarova/study-tracker/internal/http/middlewarectx"
	"github.com/ekomissarova/study-tracker/internal/http/response"
	"github.com/ekomissarova/study-tracker/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики подсчёта серии дней.
type Service interface {
	Streak(ctx context.Context, userUID string) (int, error)
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
// @Summary Серия дней занятий
// @Description Возвращает число подряд идущих дней с хотя бы одной сессией.
// @Tags Stats
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Длина серии"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /stats/streak [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.streak"

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

	streak, err := h.service.Streak(r.Context(), userUID)
	if err != nil {
		log.Error("failed to count streak", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to count streak"))
		return
	}

	log.Info("streak counted", slog.Int("streak", streak))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"streak": streak,
	}))
}
