// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekomissarova/study-tracker/internal/lib/jwt"
	"github.com/ekomissarova/study-tracker/internal/lib/password"
	"github.com/ekomissarova/study-tracker/internal/models"
	"github.com/ekomissarova/study-tracker/internal/storage/repository"
)

// ErrInvalidCredentials возвращается и для неизвестного email, и для неверного
// пароля — ответы обязаны быть неразличимы, чтобы не раскрывать наличие учётной записи.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID или ошибку, если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и проверку JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и возвращает его проекцию вместе со свежим JWT.
// Занятый email транслируется как repository.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (*models.UserInfo, string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtMaker.GenerateToken(uid, email)
	if err != nil {
		return nil, "", err
	}

	info := models.UserInfo{UID: uid, Name: name, Email: email}
	return &info, token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.UserInfo, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return nil, "", err
	}

	info := user.Info()
	return &info, token, nil
}

// Verify проверяет JWT и возвращает проекцию пользователя.
// Токен с валидной подписью, но с несуществующим пользователем, отклоняется.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.UserInfo, error) {
	const op = "services.auth.Verify"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info := user.Info()
	return &info, nil
}
