package service

import (
	"context"

	"github.com/bagdasarian/task-groups/internal/domain"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}
