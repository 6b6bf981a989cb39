package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bagdasarian/task-groups/internal/domain"
	"github.com/bagdasarian/task-groups/internal/repository"
	"github.com/rs/zerolog"
)

type taskService struct {
	taskRepo       repository.TaskRepository
	groupRepo      repository.GroupRepository
	membershipRepo repository.MembershipRepository
	logger         zerolog.Logger
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	groupRepo repository.GroupRepository,
	membershipRepo repository.MembershipRepository,
	logger zerolog.Logger,
) TaskService {
	return &taskService{
		taskRepo:       taskRepo,
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

func groupNotFound(groupID int64) error {
	return domain.NewNotFoundError(fmt.Sprintf("group with id %d", groupID))
}

func taskNotFound(taskID int64) error {
	return domain.NewNotFoundError(fmt.Sprintf("task with id %d", taskID))
}

// CreateTask сохраняет задачу. Пустой статус заменяется на todo.
func (s *taskService) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if task.Status == "" {
		task.Status = domain.StatusTodo
	}
	if !task.Status.Valid() {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown status %q", task.Status))
	}

	if task.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *task.GroupID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, groupNotFound(*task.GroupID)
			}
			return nil, err
		}
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) && task.GroupID != nil {
			return nil, groupNotFound(*task.GroupID)
		}
		return nil, err
	}
	return task, nil
}

// ListGroupTasks возвращает задачи группы; для неизвестной группы список пуст
func (s *taskService) ListGroupTasks(ctx context.Context, groupID int64) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

func (s *taskService) getTask(ctx context.Context, taskID int64) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, taskNotFound(taskID)
		}
		return nil, err
	}
	return task, nil
}

// authorize пропускает автора задачи, а также владельца и admin группы задачи
func (s *taskService) authorize(ctx context.Context, task *domain.Task, userID int64) error {
	if task.CreatorID == userID {
		return nil
	}
	if task.GroupID == nil {
		return domain.NewForbiddenError("only the task creator can modify a personal task")
	}

	group, err := s.groupRepo.GetByID(ctx, *task.GroupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if group.OwnerID == userID {
		return nil
	}

	membership, err := s.membershipRepo.Get(ctx, group.ID, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if !domain.CanManage(group, userID, membership) {
		return domain.NewForbiddenError("only the task creator or a group owner/admin can modify this task")
	}
	return nil
}

func validateTaskUpdate(update *domain.TaskUpdate) error {
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return domain.NewValidationError("title must not be empty")
		}
		update.Title = &title
	}
	if update.Status != nil && !update.Status.Valid() {
		return domain.NewValidationError(fmt.Sprintf("unknown status %q", *update.Status))
	}
	return nil
}

// UpdateTask меняет только переданные поля
func (s *taskService) UpdateTask(ctx context.Context, taskID, actingUserID int64, update domain.TaskUpdate) (*domain.Task, error) {
	if err := validateTaskUpdate(&update); err != nil {
		return nil, err
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, task, actingUserID); err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.Update(ctx, taskID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, taskNotFound(taskID)
		}
		return nil, err
	}
	return updated, nil
}

func (s *taskService) DeleteTask(ctx context.Context, taskID, actingUserID int64) error {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, task, actingUserID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return taskNotFound(taskID)
		}
		return err
	}

	s.logger.Info().Int64("task_id", taskID).Int64("deleted_by", actingUserID).Msg("task deleted")
	return nil
}
