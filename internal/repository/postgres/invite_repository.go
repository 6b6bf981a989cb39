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

const inviteColumns = `id, token, group_id, invited_email, expires_at, used, used_by, used_at, created_by, created_at`

type inviteRepository struct {
	db *sqlx.DB
}

func NewInviteRepository(db *sqlx.DB) *inviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) executor(ctx context.Context) DBExecutor {
	return executorFromContext(ctx, r.db)
}

func (r *inviteRepository) Create(ctx context.Context, invite *domain.Invite) error {
	query := `
		INSERT INTO invites (token, group_id, invited_email, expires_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	var expiresAt sql.NullTime
	if invite.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *invite.ExpiresAt, Valid: true}
	}
	var invitedEmail sql.NullString
	if invite.InvitedEmail != nil {
		invitedEmail = sql.NullString{String: *invite.InvitedEmail, Valid: true}
	}

	err := r.executor(ctx).QueryRowxContext(
		ctx,
		query,
		invite.Token,
		invite.GroupID,
		invitedEmail,
		expiresAt,
		invite.CreatedBy,
		time.Now().UTC(),
	).Scan(&invite.ID, &invite.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return repository.ErrDuplicate
		case isForeignKeyViolation(err):
			return repository.ErrNotFound
		}
		return fmt.Errorf("insert invite: %w", err)
	}

	return nil
}

// GetByTokenForUpdate блокирует строку приглашения до конца транзакции,
// поэтому вызывать его нужно внутри WithinTransaction.
func (r *inviteRepository) GetByTokenForUpdate(ctx context.Context, token string) (*domain.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invites WHERE token = $1 FOR UPDATE`

	var row inviteRow
	if err := r.executor(ctx).GetContext(ctx, &row, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}

	return row.toDomain(), nil
}

func (r *inviteRepository) MarkUsed(ctx context.Context, id, userID int64) error {
	query := `
		UPDATE invites
		SET used = TRUE, used_by = $2, used_at = $3
		WHERE id = $1 AND used = FALSE
	`

	result, err := r.executor(ctx).ExecContext(ctx, query, id, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark invite used: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrInviteUsed
	}

	return nil
}
