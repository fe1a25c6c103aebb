// Package services содержит бизнес-логику для управления учебными сессиями и их кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ekomissarova/study-tracker/internal/models"
)

// SessionRepository определяет методы для работы с сессиями в хранилище.
type SessionRepository interface {
	// CreateSession добавляет новую сессию и возвращает сохранённую запись.
	CreateSession(ctx context.Context, session models.Session) (*models.Session, error)
	// ListSessions возвращает все сессии пользователя, новые первыми.
	ListSessions(ctx context.Context, userUID string) ([]*models.Session, error)
	// RemoveSession удаляет сессию при совпадении id и владельца.
	RemoveSession(ctx context.Context, userUID string, id int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// SessionService реализует бизнес-логику работы с учебными сессиями, включая кеширование.
type SessionService struct {
	repo  SessionRepository
	cache Cache
	log   *slog.Logger
}

// NewSessionService создает новый экземпляр SessionService.
func NewSessionService(repo SessionRepository, cache Cache, log *slog.Logger) *SessionService {
	return &SessionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func listCacheKey(userUID string) string {
	return fmt.Sprintf("sessions:%s", userUID)
}

// Create сохраняет новую сессию пользователя и сбрасывает кеш его списка.
// Дата принимается строго как календарный день без часового пояса.
func (s *SessionService) Create(ctx context.Context, userUID string, req models.DummySession) (*models.Session, error) {
	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	session := models.Session{
		UserUID:  userUID,
		Subject:  req.Subject,
		Duration: req.Duration,
		Date:     date,
		Notes:    req.Notes,
	}

	created, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new session", slog.Int("id", created.ID))

	cacheKey := listCacheKey(userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate sessions cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return created, nil
}

// List возвращает все сессии пользователя, используя кеш или репозиторий.
func (s *SessionService) List(ctx context.Context, userUID string) ([]*models.Session, error) {
	var result []*models.Session
	cacheKey := listCacheKey(userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read sessions cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListSessions(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache sessions", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return result, nil
}

// Remove удаляет сессию пользователя и сбрасывает кеш его списка.
// Чужая или несуществующая сессия дают одну и ту же ошибку ErrNotFound.
func (s *SessionService) Remove(ctx context.Context, userUID string, id int) error {
	cacheKey := listCacheKey(userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate sessions cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return s.repo.RemoveSession(ctx, userUID, id)
}
