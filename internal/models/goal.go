package models

import "time"

// Goal представляет цель по учебным часам: дневную, недельную или месячную,
// общую либо по конкретному предмету.
type Goal struct {
	ID          int       `json:"id"`                // Идентификатор цели
	UserUID     string    `json:"user_uid"`          // Владелец цели
	GoalType    string    `json:"goal_type"`         // daily, weekly или monthly
	Subject     *string   `json:"subject,omitempty"` // nil — цель по всем предметам
	TargetHours float64   `json:"target_hours"`      // Целевое количество часов, > 0
	CreatedAt   time.Time `json:"created_at"`        // Время создания цели
}

// DummyGoal используется для приёма данных цели из JSON-запроса до валидации.
type DummyGoal struct {
	GoalType    string  `json:"goal_type" validate:"required,oneof=daily weekly monthly"` // Тип цели
	Subject     string  `json:"subject,omitempty" validate:"omitempty"`                   // Предмет (опционально)
	TargetHours float64 `json:"target_hours" validate:"required,gt=0"`                    // Целевые часы (>0)
}

// GoalProgress — цель вместе с прогрессом за её текущий период.
// AchievedHours считается по сессиям пользователя, Percent — доля от цели.
type GoalProgress struct {
	Goal
	AchievedHours float64 `json:"achieved_hours"`
	Percent       float64 `json:"percent"`
}
