package service

import (
	"context"

	"github.com/bagdasarian/task-groups/internal/domain"
)

type TaskService interface {
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListGroupTasks(ctx context.Context, groupID int64) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, taskID, actingUserID int64, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID, actingUserID int64) error
}
