// Package models содержит доменные структуры, описывающие учебную сессию,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// DateLayout — формат календарной даты, принятый во всем сервисе.
// Даты хранятся и сравниваются как календарные дни без часового пояса.
const DateLayout = "2006-01-02"

// Session представляет собой основную модель учебной сессии,
// используемую в бизнес-логике и хранилище.
// Поле Date — календарная дата занятия (полночь UTC), Duration — длительность в часах.
type Session struct {
	ID        int       `json:"id"`         // Идентификатор сессии
	UserUID   string    `json:"user_uid"`   // Владелец сессии
	Subject   string    `json:"subject"`    // Предмет (свободный текст)
	Duration  float64   `json:"duration"`   // Длительность в часах, > 0
	Date      time.Time `json:"date"`       // Дата занятия
	Notes     string    `json:"notes"`      // Заметки (опционально)
	CreatedAt time.Time `json:"created_at"` // Время создания записи
}

// DummySession используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Session.
// Дата приходит в виде строки, чтобы её можно было валидировать и парсить вручную.
type DummySession struct {
	Subject  string  `json:"subject" validate:"required"`          // Предмет
	Duration float64 `json:"duration" validate:"required,gt=0"`    // Длительность в часах (>0)
	Date     string  `json:"date" validate:"required"`             // Дата в формате 2006-01-02
	Notes    string  `json:"notes,omitempty" validate:"omitempty"` // Заметки
}
