package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bagdasarian/task-groups/internal/domain"
	"github.com/bagdasarian/task-groups/internal/repository"
	"github.com/jmoiron/sqlx"
)

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *groupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) executor(ctx context.Context) DBExecutor {
	return executorFromContext(ctx, r.db)
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (name, owner_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.executor(ctx).QueryRowxContext(ctx, query, group.Name, group.OwnerID, time.Now().UTC()).
		Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("insert group: %w", err)
	}

	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	query := `SELECT id, name, owner_id, created_at FROM groups WHERE id = $1`

	var row groupRow
	if err := r.executor(ctx).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get group %d: %w", id, err)
	}

	return row.toDomain(), nil
}

// ListByMember возвращает группы, в которых состоит пользователь.
func (r *groupRepository) ListByMember(ctx context.Context, userID int64) ([]*domain.Group, error) {
	query := `
		SELECT g.id, g.name, g.owner_id, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY g.id
	`

	var rows []groupRow
	if err := r.executor(ctx).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list groups of user %d: %w", userID, err)
	}

	groups := make([]*domain.Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, row.toDomain())
	}
	return groups, nil
}
