package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/bagdasarian/task-groups/internal/domain"
	"github.com/bagdasarian/task-groups/internal/repository"
	"github.com/jmoiron/sqlx"
)

const taskColumns = `id, title, description, status, deadline, creator_id, group_id, created_at, updated_at`

type taskRepository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

func NewTaskRepository(db *sqlx.DB) *taskRepository {
	return &taskRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *taskRepository) executor(ctx context.Context) DBExecutor {
	return executorFromContext(ctx, r.db)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (title, description, status, deadline, creator_id, group_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at
	`

	var deadline sql.NullTime
	if task.Deadline != nil {
		deadline = sql.NullTime{Time: *task.Deadline, Valid: true}
	}
	var groupID sql.NullInt64
	if task.GroupID != nil {
		groupID = sql.NullInt64{Int64: *task.GroupID, Valid: true}
	}

	err := r.executor(ctx).QueryRowxContext(
		ctx,
		query,
		task.Title,
		task.Description,
		string(task.Status),
		deadline,
		task.CreatorID,
		groupID,
		time.Now().UTC(),
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("insert task: %w", err)
	}

	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var row taskRow
	if err := r.executor(ctx).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}

	return row.toDomain(), nil
}

func (r *taskRepository) ListByGroup(ctx context.Context, groupID int64) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE group_id = $1 ORDER BY created_at, id`

	var rows []taskRow
	if err := r.executor(ctx).SelectContext(ctx, &rows, query, groupID); err != nil {
		return nil, fmt.Errorf("list tasks of group %d: %w", groupID, err)
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}
	return tasks, nil
}

// Update меняет только переданные поля. updated_at обновляется всегда.
func (r *taskRepository) Update(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error) {
	stmt := r.builder.Update("tasks")

	if update.Title != nil {
		stmt = stmt.Set("title", *update.Title)
	}
	if update.Description != nil {
		stmt = stmt.Set("description", *update.Description)
	}
	if update.Status != nil {
		stmt = stmt.Set("status", string(*update.Status))
	}
	switch {
	case update.Deadline != nil:
		stmt = stmt.Set("deadline", *update.Deadline)
	case update.ClearDeadline:
		stmt = stmt.Set("deadline", nil)
	}

	query, args, err := stmt.
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + taskColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build task update: %w", err)
	}

	var row taskRow
	if err := r.executor(ctx).GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}

	return row.toDomain(), nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.executor(ctx).ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
