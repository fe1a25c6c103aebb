package models

// SubjectHours — суммарные часы по одному предмету.
type SubjectHours struct {
	Subject string  `json:"subject"`
	Hours   float64 `json:"hours"`
}

// Summary — агрегированная статистика по сессиям пользователя за период.
type Summary struct {
	TotalHours   float64        `json:"total_hours"`
	SessionCount int            `json:"session_count"`
	BySubject    []SubjectHours `json:"by_subject"`
}

// StatsFilter — параметры выборки статистики, передаваемые в слой доступа к данным.
// StartDate и EndDate nil означают отсутствие соответствующей границы,
// Subject nil — по всем предметам. Обе границы включительные.
type StatsFilter struct {
	UserUID   string
	StartDate *string // календарная дата в формате DateLayout
	EndDate   *string // календарная дата в формате DateLayout
	Subject   *string
}
