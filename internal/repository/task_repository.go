package repository

import (
	"context"

	"github.com/bagdasarian/task-groups/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByGroup(ctx context.Context, groupID int64) ([]*domain.Task, error)
	Update(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}
