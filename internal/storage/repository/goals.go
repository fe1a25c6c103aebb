package repository

import (
	"context"
	"fmt"

	"github.com/ekomissarova/study-tracker/internal/models"
)

// CreateGoal вставляет новую цель и возвращает сохранённую запись.
func (s *Storage) CreateGoal(ctx context.Context, goal models.Goal) (*models.Goal, error) {
	const op = "storage.CreateGoal"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO goals (user_uid, goal_type, subject, target_hours)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`
	result := goal
	err := s.DB.QueryRowContext(ctx, query,
		goal.UserUID, goal.GoalType, goal.Subject, goal.TargetHours).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListGoals возвращает все цели пользователя, новые первыми.
func (s *Storage) ListGoals(ctx context.Context, userUID string) ([]*models.Goal, error) {
	const op = "storage.ListGoals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, goal_type, subject, target_hours, created_at
			  FROM goals
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Goal
	for rows.Next() {
		var item models.Goal
		if err := rows.Scan(&item.ID, &item.UserUID, &item.GoalType, &item.Subject,
			&item.TargetHours, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateGoal обновляет цель при совпадении id и владельца.
// Возвращает ErrNotFound, если ни одна строка не изменена.
func (s *Storage) UpdateGoal(ctx context.Context, goal models.Goal) error {
	const op = "storage.UpdateGoal"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE goals
			  SET goal_type = $1, subject = $2, target_hours = $3
			  WHERE id = $4 AND user_uid = $5`
	result, err := s.DB.ExecContext(ctx, query,
		goal.GoalType, goal.Subject, goal.TargetHours, goal.ID, goal.UserUID)
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

// RemoveGoal удаляет цель при совпадении id и владельца.
// Возвращает ErrNotFound, если ни одна строка не удалена.
func (s *Storage) RemoveGoal(ctx context.Context, userUID string, id int) error {
	const op = "storage.RemoveGoal"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM goals WHERE id = $1 AND user_uid = $2`
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
