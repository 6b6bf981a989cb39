package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bagdasarian/task-groups/internal/domain"
	"github.com/bagdasarian/task-groups/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var errRedeemAlreadyMember = errors.New("already a member")

type groupService struct {
	tx             repository.Transactor
	groupRepo      repository.GroupRepository
	membershipRepo repository.MembershipRepository
	inviteRepo     repository.InviteRepository
	inviteTTL      time.Duration
	logger         zerolog.Logger

	now      func() time.Time
	newToken func() string
}

// NewGroupService создает новый экземпляр GroupService. inviteTTL = 0
// означает бессрочные приглашения.
func NewGroupService(
	tx repository.Transactor,
	groupRepo repository.GroupRepository,
	membershipRepo repository.MembershipRepository,
	inviteRepo repository.InviteRepository,
	inviteTTL time.Duration,
	logger zerolog.Logger,
) GroupService {
	return &groupService{
		tx:             tx,
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		inviteRepo:     inviteRepo,
		inviteTTL:      inviteTTL,
		logger:         logger,
		now:            time.Now,
		newToken:       newInviteToken,
	}
}

// newInviteToken возвращает 128 случайных бит в hex
func newInviteToken() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// CreateGroup создает группу и членство владельца с ролью admin в одной транзакции
func (s *groupService) CreateGroup(ctx context.Context, ownerID int64, name string) (*domain.Group, error) {
	group := &domain.Group{
		Name:    strings.TrimSpace(name),
		OwnerID: ownerID,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.groupRepo.Create(ctx, group); err != nil {
			return err
		}
		return s.membershipRepo.Add(ctx, &domain.Membership{
			GroupID: group.ID,
			UserID:  ownerID,
			Role:    domain.RoleAdmin,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	s.logger.Info().Int64("group_id", group.ID).Int64("owner_id", ownerID).Msg("group created")
	return group, nil
}

func (s *groupService) ListGroupsForUser(ctx context.Context, userID int64) ([]*domain.Group, error) {
	return s.groupRepo.ListByMember(ctx, userID)
}

func (s *groupService) getGroup(ctx context.Context, groupID int64) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError(fmt.Sprintf("group with id %d", groupID))
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) GetGroupDetail(ctx context.Context, groupID int64) (*domain.GroupDetail, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &domain.GroupDetail{Group: *group, Members: members}, nil
}

func (s *groupService) ListMembers(ctx context.Context, groupID int64) ([]domain.Member, error) {
	if _, err := s.getGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.membershipRepo.ListMembers(ctx, groupID)
}

// requireManager возвращает группу, если userID ее владелец или admin
func (s *groupService) requireManager(ctx context.Context, groupID, userID int64) (*domain.Group, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID == userID {
		return group, nil
	}

	membership, err := s.membershipRepo.Get(ctx, groupID, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if !domain.CanManage(group, userID, membership) {
		return nil, domain.ErrForbidden
	}
	return group, nil
}

func (s *groupService) RemoveMember(ctx context.Context, groupID, targetUserID, actingUserID int64) error {
	group, err := s.requireManager(ctx, groupID, actingUserID)
	if err != nil {
		return err
	}

	if targetUserID == group.OwnerID {
		return domain.NewForbiddenError("group owner cannot be removed")
	}

	if err := s.membershipRepo.Remove(ctx, groupID, targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError(fmt.Sprintf("member %d in group %d", targetUserID, groupID))
		}
		return err
	}

	s.logger.Info().
		Int64("group_id", groupID).
		Int64("user_id", targetUserID).
		Int64("removed_by", actingUserID).
		Msg("member removed")
	return nil
}

func (s *groupService) CreateInvite(ctx context.Context, groupID, actingUserID int64, email *string) (*domain.Invite, error) {
	if _, err := s.requireManager(ctx, groupID, actingUserID); err != nil {
		return nil, err
	}

	invite := &domain.Invite{
		Token:     s.newToken(),
		GroupID:   groupID,
		CreatedBy: actingUserID,
	}
	if email != nil {
		if normalized := normalizeEmail(*email); normalized != "" {
			invite.InvitedEmail = &normalized
		}
	}
	if s.inviteTTL > 0 {
		expiresAt := s.now().Add(s.inviteTTL)
		invite.ExpiresAt = &expiresAt
	}

	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}

	s.logger.Info().
		Int64("group_id", groupID).
		Int64("invite_id", invite.ID).
		Int64("created_by", actingUserID).
		Bool("targeted", invite.InvitedEmail != nil).
		Msg("invite created")
	return invite, nil
}

// RedeemInvite добавляет пользователя в группу по приглашению. Строка
// приглашения блокируется на время транзакции, а погашение условное
// (used = FALSE), поэтому одно приглашение дает ровно одно членство.
// Если пользователь уже в группе, приглашение не расходуется.
func (s *groupService) RedeemInvite(ctx context.Context, token string, user *domain.User) (*domain.RedeemResult, error) {
	result := &domain.RedeemResult{}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		invite, err := s.inviteRepo.GetByTokenForUpdate(ctx, token)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrInvalidInvite
			}
			return err
		}
		result.GroupID = invite.GroupID

		if !invite.Redeemable(s.now()) {
			return domain.ErrInvalidInvite
		}
		if invite.InvitedEmail != nil && !strings.EqualFold(*invite.InvitedEmail, user.Email) {
			return domain.ErrInvalidInvite
		}

		_, err = s.membershipRepo.Get(ctx, invite.GroupID, user.ID)
		switch {
		case err == nil:
			return errRedeemAlreadyMember
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		err = s.membershipRepo.Add(ctx, &domain.Membership{
			GroupID: invite.GroupID,
			UserID:  user.ID,
			Role:    domain.RoleMember,
		})
		if err != nil {
			if errors.Is(err, repository.ErrAlreadyMember) {
				return errRedeemAlreadyMember
			}
			return err
		}

		if err := s.inviteRepo.MarkUsed(ctx, invite.ID, user.ID); err != nil {
			if errors.Is(err, repository.ErrInviteUsed) {
				return domain.ErrInvalidInvite
			}
			return err
		}
		return nil
	})
	switch {
	case errors.Is(err, errRedeemAlreadyMember):
		result.AlreadyMember = true
		return result, nil
	case err != nil:
		return nil, err
	}

	s.logger.Info().Int64("group_id", result.GroupID).Int64("user_id", user.ID).Msg("invite redeemed")
	return result, nil
}
