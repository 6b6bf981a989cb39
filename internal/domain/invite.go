package domain

import "time"

type Invite struct {
	ID           int64
	Token        string
	GroupID      int64
	InvitedEmail *string
	ExpiresAt    *time.Time
	Used         bool
	UsedBy       *int64
	UsedAt       *time.Time
	CreatedBy    int64
	CreatedAt    time.Time
}

// Redeemable проверяет, что приглашение ещё можно использовать в момент now
func (i *Invite) Redeemable(now time.Time) bool {
	if i.Used {
		return false
	}
	return i.ExpiresAt == nil || now.Before(*i.ExpiresAt)
}

// RedeemResult - итог обработки приглашения
type RedeemResult struct {
	GroupID       int64
	AlreadyMember bool
}
