package domain

import "time"

type Group struct {
	ID        int64
	Name      string
	OwnerID   int64
	CreatedAt time.Time
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type Membership struct {
	ID        int64
	GroupID   int64
	UserID    int64
	Role      Role
	CreatedAt time.Time
}

// Member - участник группы вместе с данными пользователя
type Member struct {
	MembershipID int64
	UserID       int64
	Username     string
	Email        string
	Role         Role
}

type GroupDetail struct {
	Group   Group
	Members []Member
}

// CanManage реализует единое правило прав: владелец группы или admin
// могут управлять участниками и приглашениями, обычный member - нет.
func CanManage(group *Group, userID int64, membership *Membership) bool {
	if group.OwnerID == userID {
		return true
	}
	return membership != nil && membership.GroupID == group.ID && membership.Role == RoleAdmin
}
