//go:build integration
// +build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/bagdasarian/task-groups/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, a *app, email, username string) *domain.User {
	t.Helper()
	user, err := a.auth.Register(context.Background(), email, username, "secret123")
	require.NoError(t, err)
	return user
}

func TestRegisterLoginAndCreateGroup(t *testing.T) {
	a := setupApp(t)
	ctx := context.Background()

	alice := register(t, a, "Alice@Example.com", "alice")
	assert.Equal(t, "alice@example.com", alice.Email, "email хранится в нижнем регистре")

	token, err := a.auth.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	current, err := a.auth.Authenticate(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, current.ID)

	_, err = a.auth.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	group, err := a.groups.CreateGroup(ctx, alice.ID, "Team")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, group.OwnerID)

	detail, err := a.groups.GetGroupDetail(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, detail.Members, 1)
	assert.Equal(t, alice.ID, detail.Members[0].UserID)
	assert.Equal(t, domain.RoleAdmin, detail.Members[0].Role, "владелец получает роль admin")

	groups, err := a.groups.ListGroupsForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, group.ID, groups[0].ID)
}

func TestInviteFlow(t *testing.T) {
	a := setupApp(t)
	ctx := context.Background()

	alice := register(t, a, "alice@example.com", "alice")
	bob := register(t, a, "bob@example.com", "bob")
	carol := register(t, a, "carol@example.com", "carol")

	group, err := a.groups.CreateGroup(ctx, alice.ID, "Team")
	require.NoError(t, err)

	invite, err := a.groups.CreateInvite(ctx, group.ID, alice.ID, nil)
	require.NoError(t, err)
	assert.Len(t, invite.Token, 32)

	t.Run("первое использование добавляет участника", func(t *testing.T) {
		result, err := a.groups.RedeemInvite(ctx, invite.Token, bob)
		require.NoError(t, err)
		assert.Equal(t, group.ID, result.GroupID)
		assert.False(t, result.AlreadyMember)

		members, err := a.groups.ListMembers(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, bob.ID, members[1].UserID)
		assert.Equal(t, domain.RoleMember, members[1].Role)
	})

	t.Run("повторное использование отклоняется", func(t *testing.T) {
		_, err := a.groups.RedeemInvite(ctx, invite.Token, carol)
		assert.ErrorIs(t, err, domain.ErrInvalidInvite)
	})

	t.Run("неизвестный токен", func(t *testing.T) {
		_, err := a.groups.RedeemInvite(ctx, "nope", carol)
		assert.ErrorIs(t, err, domain.ErrInvalidInvite)
	})

	t.Run("member не может приглашать", func(t *testing.T) {
		_, err := a.groups.CreateInvite(ctx, group.ID, bob.ID, nil)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestRedeemByExistingMemberKeepsInvite(t *testing.T) {
	a := setupApp(t)
	ctx := context.Background()

	alice := register(t, a, "alice@example.com", "alice")
	bob := register(t, a, "bob@example.com", "bob")

	group, err := a.groups.CreateGroup(ctx, alice.ID, "Team")
	require.NoError(t, err)
	invite, err := a.groups.CreateInvite(ctx, group.ID, alice.ID, nil)
	require.NoError(t, err)

	result, err := a.groups.RedeemInvite(ctx, invite.Token, alice)
	require.NoError(t, err)
	assert.True(t, result.AlreadyMember)

	// Приглашение не израсходовано
	result, err = a.groups.RedeemInvite(ctx, invite.Token, bob)
	require.NoError(t, err)
	assert.False(t, result.AlreadyMember)
}

func TestInviteBoundToEmail(t *testing.T) {
	a := setupApp(t)
	ctx := context.Background()

	alice := register(t, a, "alice@example.com", "alice")
	bob := register(t, a, "bob@example.com", "bob")
	carol := register(t, a, "carol@example.com", "carol")

	group, err := a.groups.CreateGroup(ctx, alice.ID, "Team")
	require.NoError(t, err)
	email := "Bob@Example.com"
	invite, err := a.groups.CreateInvite(ctx, group.ID, alice.ID, &email)
	require.NoError(t, err)

	_, err = a.groups.RedeemInvite(ctx, invite.Token, carol)
	assert.ErrorIs(t, err, domain.ErrInvalidInvite)

	result, err := a.groups.RedeemInvite(ctx, invite.Token, bob)
	require.NoError(t, err)
	assert.False(t, result.AlreadyMember)
}

func TestConcurrentRegistrationSameEmail(t *testing.T) {
	a := setupApp(t)
	ctx := context.Background()

	const workers = 5
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = a.auth.Register(ctx, "same@example.com", fmt.Sprintf("user%d", i), "secret123")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	}
	assert.Equal(t, 1, succeeded, "ровно одна регистрация должна пройти")

	users, err := a.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestConcurrentRedeemSingleMembership(t *testing.T) {
	a := setupApp(t)
	ctx := context.Background()

	alice := register(t, a, "alice@example.com", "alice")
	bob := register(t, a, "bob@example.com", "bob")
	carol := register(t, a, "carol@example.com", "carol")

	group, err := a.groups.CreateGroup(ctx, alice.ID, "Team")
	require.NoError(t, err)
	invite, err := a.groups.CreateInvite(ctx, group.ID, alice.ID, nil)
	require.NoError(t, err)

	users := []*domain.User{bob, carol}
	errs := make([]error, len(users))
	var wg sync.WaitGroup
	for i, u := range users {
		wg.Add(1)
		go func(i int, u *domain.User) {
			defer wg.Done()
			_, errs[i] = a.groups.RedeemInvite(ctx, invite.Token, u)
		}(i, u)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidInvite)
	}
	assert.Equal(t, 1, succeeded)

	members, err := a.groups.ListMembers(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2, "владелец и ровно один новый участник")
}

func TestRemoveMemberPermissions(t *testing.T) {
	a := setupApp(t)
	ctx := context.Background()

	alice := register(t, a, "alice@example.com", "alice")
	bob := register(t, a, "bob@example.com", "bob")
	carol := register(t, a, "carol@example.com", "carol")

	group, err := a.groups.CreateGroup(ctx, alice.ID, "Team")
	require.NoError(t, err)
	for _, u := range []*domain.User{bob, carol} {
		invite, err := a.groups.CreateInvite(ctx, group.ID, alice.ID, nil)
		require.NoError(t, err)
		_, err = a.groups.RedeemInvite(ctx, invite.Token, u)
		require.NoError(t, err)
	}

	t.Run("member не может удалять", func(t *testing.T) {
		err := a.groups.RemoveMember(ctx, group.ID, carol.ID, bob.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("владельца удалить нельзя", func(t *testing.T) {
		err := a.groups.RemoveMember(ctx, group.ID, alice.ID, alice.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("владелец удаляет участника", func(t *testing.T) {
		require.NoError(t, a.groups.RemoveMember(ctx, group.ID, carol.ID, alice.ID))

		members, err := a.groups.ListMembers(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})

	t.Run("повторное удаление", func(t *testing.T) {
		err := a.groups.RemoveMember(ctx, group.ID, carol.ID, alice.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
