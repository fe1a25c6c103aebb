// Package services содержит бизнес-логику подсчёта статистики по учебным сессиям:
// суммарные часы за период, разбивку по предметам и серию дней без пропусков.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ekomissarova/study-tracker/internal/models"
)

// StatsRepository определяет методы агрегирования сессий в хранилище.
type StatsRepository interface {
	// SumHours возвращает суммарные часы и количество сессий по фильтру.
	SumHours(ctx context.Context, filter models.StatsFilter) (float64, int, error)
	// ListSubjectHours возвращает часы по каждому предмету, по убыванию.
	ListSubjectHours(ctx context.Context, filter models.StatsFilter) ([]models.SubjectHours, error)
	// ListStudyDates возвращает уникальные даты занятий, новые первыми.
	ListStudyDates(ctx context.Context, userUID string) ([]time.Time, error)
}

// StatsService реализует подсчёт агрегированной статистики пользователя.
type StatsService struct {
	repo StatsRepository
	log  *slog.Logger
}

// NewStatsService создает новый экземпляр StatsService.
func NewStatsService(repo StatsRepository, log *slog.Logger) *StatsService {
	return &StatsService{
		repo: repo,
		log:  log,
	}
}

// Summary возвращает статистику пользователя за период rng:
// all — за всё время, daily — строго за сегодня, weekly — за последние семь дней,
// monthly — за текущий календарный месяц. Пустой subject — по всем предметам.
func (s *StatsService) Summary(ctx context.Context, userUID, rng, subject string) (*models.Summary, error) {
	now := time.Now().UTC()
	filter := models.StatsFilter{UserUID: userUID}
	if start := rangeStart(rng, now); start != nil {
		formatted := start.Format(models.DateLayout)
		filter.StartDate = &formatted
	}
	if rng == "daily" {
		today := now.Format(models.DateLayout)
		filter.EndDate = &today
	}
	if subject != "" {
		filter.Subject = &subject
	}

	total, count, err := s.repo.SumHours(ctx, filter)
	if err != nil {
		return nil, err
	}
	bySubject, err := s.repo.ListSubjectHours(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.Summary{
		TotalHours:   total,
		SessionCount: count,
		BySubject:    bySubject,
	}, nil
}

// Streak возвращает количество подряд идущих дней с хотя бы одной сессией.
// Серия считается живой, если занятие было сегодня или вчера.
func (s *StatsService) Streak(ctx context.Context, userUID string) (int, error) {
	dates, err := s.repo.ListStudyDates(ctx, userUID)
	if err != nil {
		return 0, err
	}
	return countStreak(dates, time.Now().UTC()), nil
}

// countStreak считает длину серии по списку уникальных дат занятий, новые первыми.
// Даты позже сегодняшнего дня пропускаются: сессия, записанная наперёд,
// не обнуляет серию и не входит в неё.
func countStreak(dates []time.Time, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for len(dates) > 0 && normalizeDate(dates[0]).After(today) {
		dates = dates[1:]
	}
	if len(dates) == 0 {
		return 0
	}

	expected := today

	first := normalizeDate(dates[0])
	if !first.Equal(today) {
		expected = today.AddDate(0, 0, -1)
		if !first.Equal(expected) {
			return 0
		}
	}

	streak := 0
	for _, d := range dates {
		if !normalizeDate(d).Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func normalizeDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// rangeStart возвращает первый день периода либо nil для выборки за всё время.
func rangeStart(rng string, now time.Time) *time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch rng {
	case "daily":
		return &today
	case "weekly":
		start := today.AddDate(0, 0, -7)
		return &start
	case "monthly":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &start
	default:
		return nil
	}
}
