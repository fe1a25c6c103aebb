// Package services содержит бизнес-логику для управления целями по учебным часам.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ekomissarova/study-tracker/internal/models"
)

// GoalRepository определяет методы для работы с целями в хранилище.
type GoalRepository interface {
	// CreateGoal добавляет новую цель и возвращает сохранённую запись.
	CreateGoal(ctx context.Context, goal models.Goal) (*models.Goal, error)
	// ListGoals возвращает все цели пользователя, новые первыми.
	ListGoals(ctx context.Context, userUID string) ([]*models.Goal, error)
	// UpdateGoal обновляет цель при совпадении id и владельца.
	UpdateGoal(ctx context.Context, goal models.Goal) error
	// RemoveGoal удаляет цель при совпадении id и владельца.
	RemoveGoal(ctx context.Context, userUID string, id int) error
}

// HoursCounter считает достигнутые часы по фильтру. Реализуется хранилищем сессий.
type HoursCounter interface {
	SumHours(ctx context.Context, filter models.StatsFilter) (float64, int, error)
}

// GoalService реализует бизнес-логику работы с целями и подсчётом их прогресса.
type GoalService struct {
	repo  GoalRepository
	hours HoursCounter
	log   *slog.Logger
}

// NewGoalService создает новый экземпляр GoalService.
func NewGoalService(repo GoalRepository, hours HoursCounter, log *slog.Logger) *GoalService {
	return &GoalService{
		repo:  repo,
		hours: hours,
		log:   log,
	}
}

// Create сохраняет новую цель пользователя. Пустой предмет означает цель по всем предметам.
func (s *GoalService) Create(ctx context.Context, userUID string, req models.DummyGoal) (*models.Goal, error) {
	goal := models.Goal{
		UserUID:     userUID,
		GoalType:    req.GoalType,
		TargetHours: req.TargetHours,
	}
	if req.Subject != "" {
		subject := req.Subject
		goal.Subject = &subject
	}

	created, err := s.repo.CreateGoal(ctx, goal)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new goal", slog.Int("id", created.ID), slog.String("type", created.GoalType))
	return created, nil
}

// List возвращает цели пользователя вместе с прогрессом за их текущий период.
func (s *GoalService) List(ctx context.Context, userUID string) ([]models.GoalProgress, error) {
	goals, err := s.repo.ListGoals(ctx, userUID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := make([]models.GoalProgress, 0, len(goals))
	for _, goal := range goals {
		start := periodStart(goal.GoalType, now).Format(models.DateLayout)
		filter := models.StatsFilter{
			UserUID:   userUID,
			StartDate: &start,
			Subject:   goal.Subject,
		}
		// Дневная цель считается строго по сегодняшнему дню,
		// сессии с будущей датой в прогресс не входят.
		if goal.GoalType == "daily" {
			today := now.Format(models.DateLayout)
			filter.EndDate = &today
		}
		achieved, _, err := s.hours.SumHours(ctx, filter)
		if err != nil {
			return nil, err
		}

		percent := achieved / goal.TargetHours * 100
		if percent > 100 {
			percent = 100
		}
		result = append(result, models.GoalProgress{
			Goal:          *goal,
			AchievedHours: achieved,
			Percent:       percent,
		})
	}
	return result, nil
}

// Update обновляет цель пользователя по id.
func (s *GoalService) Update(ctx context.Context, userUID string, id int, req models.DummyGoal) error {
	goal := models.Goal{
		ID:          id,
		UserUID:     userUID,
		GoalType:    req.GoalType,
		TargetHours: req.TargetHours,
	}
	if req.Subject != "" {
		subject := req.Subject
		goal.Subject = &subject
	}
	return s.repo.UpdateGoal(ctx, goal)
}

// Remove удаляет цель пользователя по id.
func (s *GoalService) Remove(ctx context.Context, userUID string, id int) error {
	return s.repo.RemoveGoal(ctx, userUID, id)
}

// periodStart возвращает первый день текущего периода цели:
// сегодняшний день, семь дней назад или первое число месяца.
func periodStart(goalType string, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch goalType {
	case "daily":
		return today
	case "weekly":
		return today.AddDate(0, 0, -7)
	case "monthly":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return today
	}
}
