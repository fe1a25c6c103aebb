// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями, учебными сессиями и целями. Предоставляет
// методы создания, чтения, удаления и агрегирования записей.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища, по которым HTTP-слой выбирает статус ответа.
var (
	// ErrEmailTaken возвращается при попытке зарегистрировать уже занятый email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound возвращается, когда запись не существует либо принадлежит
	// другому пользователю. Эти два случая намеренно неразличимы.
	ErrNotFound = errors.New("entry not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, сессиями и целями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'study_sessions'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table study_sessions missing or query error: %w", err)
	}
	return nil
}
