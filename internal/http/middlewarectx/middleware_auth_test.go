package middlewarectx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ekomissarova/study-tracker/internal/models"
)

type AuthServiceMock struct{ mock.Mock }

func (m *AuthServiceMock) Verify(ctx context.Context, token string) (*models.UserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserInfo), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	svc := new(AuthServiceMock)
	svc.On("Verify", mock.Anything, "good-token").Return(&models.UserInfo{
		UID:   "uid-1",
		Email: "ana@x.com",
	}, nil)

	var gotUID, gotEmail string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotUID, _ = r.Context().Value(UserUID).(string)
		gotEmail, _ = r.Context().Value(UserEmail).(string)
	})

	handler := JWTMiddleware(svc, discardLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-1", gotUID)
	assert.Equal(t, "ana@x.com", gotEmail)
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	svc := new(AuthServiceMock)
	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("next handler must not be called")
	})

	handler := JWTMiddleware(svc, discardLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing or invalid authorization header")
	svc.AssertNotCalled(t, "Verify")
}

func TestJWTMiddleware_WrongScheme(t *testing.T) {
	svc := new(AuthServiceMock)
	handler := JWTMiddleware(svc, discardLogger())(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("next handler must not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_InvalidToken(t *testing.T) {
	svc := new(AuthServiceMock)
	svc.On("Verify", mock.Anything, "bad-token").
		Return(nil, errors.New("token is expired"))

	handler := JWTMiddleware(svc, discardLogger())(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("next handler must not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestJWTMiddleware_LogAttrsNotSharedBetweenRequests(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	svc := new(AuthServiceMock)
	handler := middleware.RequestID(JWTMiddleware(svc, log)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("next handler must not be called")
	})))

	for range [2]struct{}{} {
		req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	// Атрибуты логгера не должны накапливаться от запроса к запросу:
	// у каждой записи ровно один request_id, и он свой.
	reqID := regexp.MustCompile(`request_id=(\S+)`)
	first := reqID.FindAllStringSubmatch(lines[0], -1)
	second := reqID.FindAllStringSubmatch(lines[1], -1)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0][1], second[0][1])
}

func TestCORSMiddleware_SetsHeadersAndHandlesPreflight(t *testing.T) {
	handler := CORSMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, preflight)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
