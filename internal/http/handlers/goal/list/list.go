package list

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

// Service описывает интерфейс бизнес-логики чтения целей с прогрессом.
type Service interface {
	List(ctx context.Context, userUID string) ([]models.GoalProgress, error)
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
// @Summary Список учебных целей
// @Description Возвращает цели текущего пользователя вместе с прогрессом за период.
// @Tags Goals
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список целей"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /goals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.list"

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

	goals, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list goals", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list goals"))
		return
	}

	log.Info("goals listed", slog.Int("count", len(goals)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count": len(goals),
		"goals": goals,
	}))
}
