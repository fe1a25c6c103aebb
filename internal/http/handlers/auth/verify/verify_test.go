package verify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ekomissarova/study-tracker/internal/models"
)

// Мок сервиса с методом Verify
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Verify(ctx context.Context, token string) (*models.UserInfo, error) {
	args := m.Called(ctx, token)
	var user *models.UserInfo
	if args.Get(0) != nil {
		user = args.Get(0).(*models.UserInfo)
	}
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestVerifyHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	user := &models.UserInfo{UID: "uid-1", Name: "Alice", Email: "alice@example.com"}

	tests := []struct {
		name           string
		authHeader     string
		mockUser       *models.UserInfo
		mockErr        error
		callService    bool
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer good-token",
			mockUser:       user,
			callService:    true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "missing or invalid authorization header",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic abc",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "missing or invalid authorization header",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer good-token",
			mockErr:        errors.New("token is invalid"),
			callService:    true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.callService {
				serviceMock.On("Verify", mock.Anything, "good-token").
					Return(tt.mockUser, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/verify", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				gotUser, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, user.UID, gotUser["uid"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
