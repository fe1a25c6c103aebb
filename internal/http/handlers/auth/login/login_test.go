package login

import (
	"bytes"
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
	authservice "github.com/ekomissarova/study-tracker/internal/services/auth"
)

// Мок сервиса с методом Login
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (*models.UserInfo, string, error) {
	args := m.Called(ctx, email, password)
	var user *models.UserInfo
	if args.Get(0) != nil {
		user = args.Get(0).(*models.UserInfo)
	}
	return user, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	user := &models.UserInfo{UID: "uid-1", Name: "Alice", Email: "alice@example.com"}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockUser       *models.UserInfo
		mockToken      string
		mockErr        error
		callService    bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name: "valid login",
			requestBody: Request{
				Email:    "alice@example.com",
				Password: "password123",
			},
			mockUser:       user,
			mockToken:      "jwt-token",
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "validation error - missing email",
			requestBody: Request{
				Password: "password123",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Email is a required field",
			wantStatus:     "Error",
		},
		{
			name: "wrong credentials",
			requestBody: Request{
				Email:    "alice@example.com",
				Password: "password123",
			},
			mockErr:        authservice.ErrInvalidCredentials,
			callService:    true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid credentials",
			wantStatus:     "Error",
		},
		{
			name: "storage error",
			requestBody: Request{
				Email:    "alice@example.com",
				Password: "password123",
			},
			mockErr:        errors.New("storage error"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal server error",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.callService {
				serviceMock.On("Login", mock.Anything,
					"alice@example.com",
					"password123",
				).Return(tt.mockUser, tt.mockToken, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "jwt-token", data["token"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
