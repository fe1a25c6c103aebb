package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ekomissarova/study-tracker/internal/models"
)

// CreateSession вставляет новую учебную сессию и возвращает сохранённую запись
// с присвоенным идентификатором и временем создания.
func (s *Storage) CreateSession(ctx context.Context, session models.Session) (*models.Session, error) {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO study_sessions (user_uid, subject, duration, date, notes)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	result := session
	err := s.DB.QueryRowContext(ctx, query,
		session.UserUID, session.Subject, session.Duration, session.Date,
		session.Notes).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListSessions возвращает все сессии пользователя,
// отсортированные по дате занятия, затем по времени создания (новые первыми).
func (s *Storage) ListSessions(ctx context.Context, userUID string) ([]*models.Session, error) {
	const op = "storage.ListSessions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, subject, duration, date, notes, created_at
			  FROM study_sessions
			  WHERE user_uid = $1
			  ORDER BY date DESC, created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Session
	for rows.Next() {
		var item models.Session
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Subject, &item.Duration,
			&item.Date, &item.Notes, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveSession удаляет сессию только при совпадении id и владельца.
// Возвращает ErrNotFound, если ни одна строка не удалена: несуществующая
// и чужая сессия дают одинаковый результат.
func (s *Storage) RemoveSession(ctx context.Context, userUID string, id int) error {
	const op = "storage.RemoveSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM study_sessions WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// SumHours возвращает суммарные часы и количество сессий пользователя по фильтру.
func (s *Storage) SumHours(ctx context.Context, filter models.StatsFilter) (float64, int, error) {
	const op = "storage.SumHours"
	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(duration), 0), COUNT(*)
			  FROM study_sessions
			  WHERE user_uid = $1
			    AND ($2::date IS NULL OR date >= $2)
			    AND ($3::date IS NULL OR date <= $3)
			    AND ($4::text IS NULL OR subject = $4)`
	var total float64
	var count int
	err := s.DB.QueryRowContext(ctx, query,
		filter.UserUID, filter.StartDate, filter.EndDate, filter.Subject).Scan(&total, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, count, nil
}

// ListSubjectHours возвращает суммарные часы по каждому предмету пользователя,
// отсортированные по убыванию часов.
func (s *Storage) ListSubjectHours(ctx context.Context, filter models.StatsFilter) ([]models.SubjectHours, error) {
	const op = "storage.ListSubjectHours"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT subject, SUM(duration)
			  FROM study_sessions
			  WHERE user_uid = $1
			    AND ($2::date IS NULL OR date >= $2)
			    AND ($3::date IS NULL OR date <= $3)
			    AND ($4::text IS NULL OR subject = $4)
			  GROUP BY subject
			  ORDER BY SUM(duration) DESC`
	rows, err := s.DB.QueryContext(ctx, query,
		filter.UserUID, filter.StartDate, filter.EndDate, filter.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.SubjectHours
	for rows.Next() {
		var item models.SubjectHours
		if err := rows.Scan(&item.Subject, &item.Hours); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListStudyDates возвращает уникальные даты занятий пользователя, новые первыми.
// Используется для подсчёта серии дней без пропусков.
func (s *Storage) ListStudyDates(ctx context.Context, userUID string) ([]time.Time, error) {
	const op = "storage.ListStudyDates"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT date
			  FROM study_sessions
			  WHERE user_uid = $1
			  ORDER BY date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
