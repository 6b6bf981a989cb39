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

type membershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *membershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) executor(ctx context.Context) DBExecutor {
	return executorFromContext(ctx, r.db)
}

// Add создаёт членство. Пара (group_id, user_id) уникальна, повторная
// вставка возвращает repository.ErrAlreadyMember.
func (r *membershipRepository) Add(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO group_members (group_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.executor(ctx).QueryRowxContext(ctx, query, m.GroupID, m.UserID, string(m.Role), time.Now().UTC()).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return repository.ErrAlreadyMember
		case isForeignKeyViolation(err):
			return repository.ErrNotFound
		}
		return fmt.Errorf("insert membership: %w", err)
	}

	return nil
}

func (r *membershipRepository) Get(ctx context.Context, groupID, userID int64) (*domain.Membership, error) {
	query := `
		SELECT id, group_id, user_id, role, created_at
		FROM group_members
		WHERE group_id = $1 AND user_id = $2
	`

	var row membershipRow
	if err := r.executor(ctx).GetContext(ctx, &row, query, groupID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}

	return row.toDomain(), nil
}

func (r *membershipRepository) Remove(ctx context.Context, groupID, userID int64) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`

	result, err := r.executor(ctx).ExecContext(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
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

func (r *membershipRepository) ListMembers(ctx context.Context, groupID int64) ([]domain.Member, error) {
	query := `
		SELECT gm.id AS membership_id, gm.user_id, u.username, u.email, gm.role
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.id
	`

	var rows []memberRow
	if err := r.executor(ctx).SelectContext(ctx, &rows, query, groupID); err != nil {
		return nil, fmt.Errorf("list members of group %d: %w", groupID, err)
	}

	members := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, domain.Member{
			MembershipID: row.MembershipID,
			UserID:       row.UserID,
			Username:     row.Username,
			Email:        row.Email,
			Role:         domain.Role(row.Role),
		})
	}
	return members, nil
}
