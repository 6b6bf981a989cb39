package repository

import (
	"context"

	"github.com/bagdasarian/task-groups/internal/domain"
)

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	ListByMember(ctx context.Context, userID int64) ([]*domain.Group, error)
}

type MembershipRepository interface {
	Add(ctx context.Context, membership *domain.Membership) error
	Get(ctx context.Context, groupID, userID int64) (*domain.Membership, error)
	Remove(ctx context.Context, groupID, userID int64) error
	ListMembers(ctx context.Context, groupID int64) ([]domain.Member, error)
}

type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) error
	// GetByTokenForUpdate блокирует строку приглашения до конца транзакции
	GetByTokenForUpdate(ctx context.Context, token string) (*domain.Invite, error)
	MarkUsed(ctx context.Context, id, userID int64) error
}
