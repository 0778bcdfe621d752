package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustvault/internal/models"
)

func TestCreateGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", 0)

	t.Run("creator becomes owner and first member", func(t *testing.T) {
		g, err := f.groups.CreateGroup(ctx, alice.ID, "  Sunrise Ranch  ")
		require.NoError(t, err)
		assert.Equal(t, "Sunrise Ranch", g.Name)
		assert.Equal(t, alice.ID, g.CreatedBy)
		assert.Equal(t, []string{alice.ID}, g.Members)
		assert.True(t, g.Balance.IsZero())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := f.groups.CreateGroup(ctx, alice.ID, "   ")
		assert.ErrorIs(t, err, models.ErrInvalidGroupName)
	})
}

func TestMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "alice", 0)
	bob := f.user(t, "bob", 0)
	carol := f.user(t, "carol", 0)
	outsider := f.user(t, "mallory", 0)
	group := f.group(t, alice, bob)

	t.Run("non-member cannot view the group", func(t *testing.T) {
		_, _, err := f.groups.GetGroup(ctx, outsider.ID, group.ID)
		assert.ErrorIs(t, err, models.ErrNotAMember)
	})

	t.Run("member details are returned", func(t *testing.T) {
		_, members, err := f.groups.GetGroup(ctx, alice.ID, group.ID)
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})

	t.Run("only members may add", func(t *testing.T) {
		err := f.groups.AddMember(ctx, outsider.ID, group.ID, carol.ID)
		assert.ErrorIs(t, err, models.ErrNotAMember)
	})

	t.Run("adding an existing member conflicts", func(t *testing.T) {
		err := f.groups.AddMember(ctx, alice.ID, group.ID, bob.ID)
		assert.ErrorIs(t, err, models.ErrAlreadyMember)
	})

	t.Run("adding an unknown user fails", func(t *testing.T) {
		err := f.groups.AddMember(ctx, alice.ID, group.ID, "ghost")
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})

	t.Run("member cannot remove another member", func(t *testing.T) {
		err := f.groups.RemoveMember(ctx, bob.ID, group.ID, alice.ID)
		assert.ErrorIs(t, err, models.ErrNotOwner)
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		err := f.groups.RemoveMember(ctx, alice.ID, group.ID, alice.ID)
		assert.ErrorIs(t, err, models.ErrOwnerRemoval)
	})

	t.Run("member may leave", func(t *testing.T) {
		require.NoError(t, f.groups.RemoveMember(ctx, bob.ID, group.ID, bob.ID))
		g, _, err := f.groups.GetGroup(ctx, alice.ID, group.ID)
		require.NoError(t, err)
		assert.False(t, g.IsMember(bob.ID))
	})
}

func TestDeposit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "alice", 500)
	outsider := f.user(t, "mallory", 500)
	group := f.group(t, alice)

	t.Run("moves funds from member to group", func(t *testing.T) {
		g, err := f.groups.Deposit(ctx, alice.ID, group.ID, decimal.NewFromInt(200))
		require.NoError(t, err)
		assert.True(t, g.Balance.Equal(decimal.NewFromInt(200)))

		user, err := f.store.GetUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.True(t, user.Balance.Equal(decimal.NewFromInt(300)))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := f.groups.Deposit(ctx, alice.ID, group.ID, decimal.Zero)
		assert.ErrorIs(t, err, models.ErrInvalidAmount)
	})

	t.Run("rejects non-members", func(t *testing.T) {
		_, err := f.groups.Deposit(ctx, outsider.ID, group.ID, decimal.NewFromInt(10))
		assert.ErrorIs(t, err, models.ErrNotAMember)
	})

	t.Run("rejects deposits beyond personal balance", func(t *testing.T) {
		_, err := f.groups.Deposit(ctx, alice.ID, group.ID, decimal.NewFromInt(10_000))
		assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	})
}
