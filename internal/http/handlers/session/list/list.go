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

// Service описывает интерфейс бизнес-логики чтения списка сессий.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Session, error)
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
// @Summary Список учебных сессий
// @Description Возвращает все сессии текущего пользователя, новые первыми.
// @Tags Sessions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список сессий"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /sessions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.list"

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

	sessions, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list sessions", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list sessions"))
		return
	}

	log.Info("sessions listed", slog.Int("count", len(sessions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":    len(sessions),
		"sessions": sessions,
	}))
}
