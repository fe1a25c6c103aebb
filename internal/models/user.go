// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата создания учётной записи
}

// UserInfo — проекция пользователя для ответов API.
// Хэш пароля наружу не отдается никогда.
type UserInfo struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Info возвращает проекцию пользователя без чувствительных полей.
func (u *User) Info() UserInfo {
	return UserInfo{
		UID:   u.UID,
		Name:  u.Name,
		Email: u.Email,
	}
}
