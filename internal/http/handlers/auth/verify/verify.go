package verify

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ekomissarova/study-tracker/internal/http/response"
	"github.com/ekomissarova/study-tracker/internal/lib/sl"
	"github.com/ekomissarova/study-tracker/internal/models"
)

// Service описывает интерфейс проверки токена.
type Service interface {
	Verify(ctx context.Context, token string) (*models.UserInfo, error)
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
// @Summary Проверка токена
// @Description Проверяет JWT из заголовка Authorization и возвращает пользователя.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Токен валиден"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или невалиден"
// @Router /verify [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Error("missing or invalid authorization header")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	user, err := h.service.Verify(r.Context(), tokenStr)
	if err != nil {
		log.Error("invalid or expired token", sl.Err(err))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid or expired token"))
		return
	}

	log.Info("token verified", slog.String("uid", user.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
