package service

import (
	"context"
	"time"

	"github.com/bagdasarian/task-groups/internal/domain"
)

// TokenIssuer выпускает и проверяет bearer-токены
type TokenIssuer interface {
	Issue(userID int64) (string, time.Time, error)
	Validate(token string) (int64, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*AccessToken, error)
	// Authenticate возвращает пользователя, которому выдан токен
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
