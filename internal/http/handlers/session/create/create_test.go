package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ekomissarova/study-tracker/internal/http/middlewarectx"
	"github.com/ekomissarova/study-tracker/internal/models"
)

// Мок сервиса с методом Create
type SessionServiceMock struct {
	mock.Mock
}

func (m *SessionServiceMock) Create(ctx context.Context, userUID string, req models.DummySession) (*models.Session, error) {
	args := m.Called(ctx, userUID, req)
	var session *models.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*models.Session)
	}
	return session, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(SessionServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	session := &models.Session{
		ID:       7,
		UserUID:  "uid-1",
		Subject:  "math",
		Duration: 1.5,
		Date:     time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		userUID        string
		requestBody    interface{}
		mockSession    *models.Session
		mockErr        error
		callService    bool
		wantStatusCode int
		wantError      string
	}{
		{
			name:    "valid session",
			userUID: "uid-1",
			requestBody: models.DummySession{
				Subject:  "math",
				Duration: 1.5,
				Date:     "2026-08-30",
			},
			mockSession:    session,
			callService:    true,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "no user in context",
			userUID:        "",
			requestBody:    models.DummySession{Subject: "math", Duration: 1.5, Date: "2026-08-30"},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:           "invalid json body",
			userUID:        "uid-1",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:    "validation error - zero duration",
			userUID: "uid-1",
			requestBody: models.DummySession{
				Subject: "math",
				Date:    "2026-08-30",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Duration is a required field",
		},
		{
			name:    "bad date format",
			userUID: "uid-1",
			requestBody: models.DummySession{
				Subject:  "math",
				Duration: 1.5,
				Date:     "30.08.2026",
			},
			mockErr:        fmt.Errorf("invalid date: %w", errors.New("parsing time")),
			callService:    true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field date must be in format 2006-01-02",
		},
		{
			name:    "storage error",
			userUID: "uid-1",
			requestBody: models.DummySession{
				Subject:  "math",
				Duration: 1.5,
				Date:     "2026-08-30",
			},
			mockErr:        errors.New("storage error"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to create session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.callService {
				serviceMock.On("Create", mock.Anything, tt.userUID, mock.Anything).
					Return(tt.mockSession, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				gotSession, ok := data["session"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(session.ID), gotSession["id"])
				assert.Equal(t, session.Subject, gotSession["subject"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
