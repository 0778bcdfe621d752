package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"trustvault/internal/models"
	"trustvault/internal/storage"
)

// GroupService manages groups, their membership and direct deposits.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group with the caller as owner and first member.
func (s *GroupService) CreateGroup(ctx context.Context, userID, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrInvalidGroupName
	}

	group := &models.Group{
		Name:      name,
		CreatedBy: userID,
		Balance:   decimal.Zero,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "owner", userID)
	return group, nil
}

// GetGroup retrieves a group with its member details. Callers must be
// members to view a group.
func (s *GroupService) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, []*models.User, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if !group.IsMember(userID) {
		return nil, nil, models.ErrNotAMember
	}

	members, err := s.store.GetUsersByIDs(ctx, group.Members)
	if err != nil {
		slog.Error("GetGroup member lookup failed", "group_id", groupID, "error", err)
		return nil, nil, err
	}
	return group, members, nil
}

// ListMyGroups returns all groups the caller belongs to.
func (s *GroupService) ListMyGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, userID)
}

// AddMember adds a registered user to a group. Any member may add;
// the added user must exist and not already belong.
func (s *GroupService) AddMember(ctx context.Context, userID, groupID, newMemberID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsMember(userID) {
		return models.ErrNotAMember
	}
	if _, err := s.store.GetUser(ctx, newMemberID); err != nil {
		return err
	}
	if group.IsMember(newMemberID) {
		return models.ErrAlreadyMember
	}

	if err := s.store.AddGroupMember(ctx, groupID, newMemberID); err != nil {
		slog.Error("AddMember failed", "group_id", groupID, "new_member", newMemberID, "error", err)
		return err
	}
	slog.Info("Member added", "group_id", groupID, "new_member", newMemberID, "added_by", userID)
	return nil
}

// RemoveMember removes a member from a group. The owner can remove
// anyone but themselves; members can only remove themselves.
func (s *GroupService) RemoveMember(ctx context.Context, userID, groupID, removeID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsOwner(userID) && userID != removeID {
		return models.ErrNotOwner
	}
	if removeID == group.CreatedBy {
		return models.ErrOwnerRemoval
	}
	if !group.IsMember(removeID) {
		return models.ErrNotAMember
	}

	if err := s.store.RemoveGroupMember(ctx, groupID, removeID); err != nil {
		slog.Error("RemoveMember failed", "group_id", groupID, "remove", removeID, "error", err)
		return err
	}
	slog.Info("Member removed", "group_id", groupID, "removed", removeID, "removed_by", userID)
	return nil
}

// Deposit moves funds from the caller's personal balance into the group
// balance. Only members may deposit.
func (s *GroupService) Deposit(ctx context.Context, userID, groupID string, amount decimal.Decimal) (*models.Group, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidAmount
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, models.ErrNotAMember
	}

	updated, err := s.store.Deposit(ctx, groupID, userID, amount)
	if err != nil {
		slog.Warn("Deposit failed", "group_id", groupID, "user_id", userID, "amount", amount.String(), "error", err)
		return nil, err
	}

	slog.Info("Deposit completed",
		"group_id", groupID,
		"user_id", userID,
		"amount", amount.String(),
		"new_balance", updated.Balance.String(),
	)
	return updated, nil
}
