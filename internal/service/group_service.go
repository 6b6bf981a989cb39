package service

import (
	"context"

	"github.com/bagdasarian/task-groups/internal/domain"
)

type GroupService interface {
	CreateGroup(ctx context.Context, ownerID int64, name string) (*domain.Group, error)
	ListGroupsForUser(ctx context.Context, userID int64) ([]*domain.Group, error)
	GetGroupDetail(ctx context.Context, groupID int64) (*domain.GroupDetail, error)
	ListMembers(ctx context.Context, groupID int64) ([]domain.Member, error)
	RemoveMember(ctx context.Context, groupID, targetUserID, actingUserID int64) error
	// CreateInvite выпускает одноразовое приглашение. email ограничивает,
	// кто может им воспользоваться; nil - кто угодно.
	CreateInvite(ctx context.Context, groupID, actingUserID int64, email *string) (*domain.Invite, error)
	RedeemInvite(ctx context.Context, token string, user *domain.User) (*domain.RedeemResult, error)
}
