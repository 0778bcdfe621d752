package service

import (
	"context"
	"log/slog"

	"trustvault/internal/models"
	"trustvault/internal/storage"
)

// InviteService manages group invitations. Only owners send invites;
// invitees are addressed by email so unregistered users can be invited.
type InviteService struct {
	store storage.Store
}

// NewInviteService creates a new InviteService with the given storage backend.
func NewInviteService(store storage.Store) *InviteService {
	return &InviteService{store: store}
}

// Create sends an invite for a group. Only the group owner may invite.
func (s *InviteService) Create(ctx context.Context, userID, groupID, inviteeEmail string) (*models.Invite, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsOwner(userID) {
		return nil, models.ErrNotOwner
	}

	invite := &models.Invite{
		GroupID:      groupID,
		InviterID:    userID,
		InviteeEmail: inviteeEmail,
	}
	if err := s.store.CreateInvite(ctx, invite); err != nil {
		slog.Error("Create invite failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Invite created", "invite_id", invite.ID, "group_id", groupID, "invitee", inviteeEmail)
	return invite, nil
}

// ListMine returns the pending invites addressed to the caller's email.
func (s *InviteService) ListMine(ctx context.Context, email string) ([]*models.Invite, error) {
	return s.store.ListInvitesByEmail(ctx, email)
}

// ListGroup returns all invites for a group. Owner only.
func (s *InviteService) ListGroup(ctx context.Context, userID, groupID string) ([]*models.Invite, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsOwner(userID) {
		return nil, models.ErrNotOwner
	}
	return s.store.ListInvitesByGroup(ctx, groupID)
}

// Accept joins the caller to the invited group and resolves the invite.
// The invite must be pending and addressed to the caller's email.
func (s *InviteService) Accept(ctx context.Context, userID, email, inviteID string) (*models.Invite, error) {
	invite, err := s.store.GetInvite(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if invite.InviteeEmail != email {
		return nil, models.ErrInviteNotForUser
	}
	if invite.Status != models.InvitePending {
		return nil, models.ErrInviteNotPending
	}

	if err := s.store.AcceptInvite(ctx, inviteID, userID); err != nil {
		slog.Warn("Accept invite failed", "invite_id", inviteID, "user_id", userID, "error", err)
		return nil, err
	}

	invite.Status = models.InviteAccepted
	slog.Info("Invite accepted", "invite_id", inviteID, "group_id", invite.GroupID, "user_id", userID)
	return invite, nil
}

// Decline resolves the invite without joining. The invite must be pending
// and addressed to the caller's email.
func (s *InviteService) Decline(ctx context.Context, email, inviteID string) (*models.Invite, error) {
	invite, err := s.store.GetInvite(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if invite.InviteeEmail != email {
		return nil, models.ErrInviteNotForUser
	}

	if err := s.store.UpdateInviteStatus(ctx, inviteID, models.InviteDeclined); err != nil {
		return nil, err
	}

	invite.Status = models.InviteDeclined
	slog.Info("Invite declined", "invite_id", inviteID, "group_id", invite.GroupID)
	return invite, nil
}
