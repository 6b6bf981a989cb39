package postgres

import (
	"database/sql"
	"time"

	"github.com/bagdasarian/task-groups/internal/domain"
)

type userRow struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

type groupRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	OwnerID   int64     `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (r groupRow) toDomain() *domain.Group {
	return &domain.Group{
		ID:        r.ID,
		Name:      r.Name,
		OwnerID:   r.OwnerID,
		CreatedAt: r.CreatedAt,
	}
}

type membershipRow struct {
	ID        int64     `db:"id"`
	GroupID   int64     `db:"group_id"`
	UserID    int64     `db:"user_id"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

func (r membershipRow) toDomain() *domain.Membership {
	return &domain.Membership{
		ID:        r.ID,
		GroupID:   r.GroupID,
		UserID:    r.UserID,
		Role:      domain.Role(r.Role),
		CreatedAt: r.CreatedAt,
	}
}

type memberRow struct {
	MembershipID int64  `db:"membership_id"`
	UserID       int64  `db:"user_id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	Role         string `db:"role"`
}

type inviteRow struct {
	ID           int64          `db:"id"`
	Token        string         `db:"token"`
	GroupID      int64          `db:"group_id"`
	InvitedEmail sql.NullString `db:"invited_email"`
	ExpiresAt    sql.NullTime   `db:"expires_at"`
	Used         bool           `db:"used"`
	UsedBy       sql.NullInt64  `db:"used_by"`
	UsedAt       sql.NullTime   `db:"used_at"`
	CreatedBy    int64          `db:"created_by"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (r inviteRow) toDomain() *domain.Invite {
	invite := &domain.Invite{
		ID:        r.ID,
		Token:     r.Token,
		GroupID:   r.GroupID,
		Used:      r.Used,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
	if r.InvitedEmail.Valid {
		invite.InvitedEmail = &r.InvitedEmail.String
	}
	if r.ExpiresAt.Valid {
		invite.ExpiresAt = &r.ExpiresAt.Time
	}
	if r.UsedBy.Valid {
		invite.UsedBy = &r.UsedBy.Int64
	}
	if r.UsedAt.Valid {
		invite.UsedAt = &r.UsedAt.Time
	}
	return invite
}

type taskRow struct {
	ID          int64         `db:"id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	Status      string        `db:"status"`
	Deadline    sql.NullTime  `db:"deadline"`
	CreatorID   int64         `db:"creator_id"`
	GroupID     sql.NullInt64 `db:"group_id"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

func (r taskRow) toDomain() *domain.Task {
	task := &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		CreatorID:   r.CreatorID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Deadline.Valid {
		task.Deadline = &r.Deadline.Time
	}
	if r.GroupID.Valid {
		task.GroupID = &r.GroupID.Int64
	}
	return task
}
