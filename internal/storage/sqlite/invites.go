package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trustvault/internal/models"
)

// CreateInvite persists a new pending invite.
func (s *SQLiteStore) CreateInvite(ctx context.Context, invite *models.Invite) error {
	if invite.ID == "" {
		invite.ID = uuid.New().String()
	}
	if invite.CreatedAt == 0 {
		invite.CreatedAt = time.Now().Unix()
	}
	invite.Status = models.InvitePending

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO invites (id, group_id, inviter_id, invitee_email, status, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		invite.ID, invite.GroupID, invite.InviterID, invite.InviteeEmail, string(invite.Status), invite.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invite: %w", err)
	}
	return nil
}

// GetInvite retrieves an invite by ID.
func (s *SQLiteStore) GetInvite(ctx context.Context, inviteID string) (*models.Invite, error) {
	invite := &models.Invite{}
	var status string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, inviter_id, invitee_email, status, created_at FROM invites WHERE id = ?",
		inviteID,
	).Scan(&invite.ID, &invite.GroupID, &invite.InviterID, &invite.InviteeEmail, &status, &invite.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}
	invite.Status = models.InviteStatus(status)
	return invite, nil
}

// ListInvitesByEmail returns pending invites addressed to the email.
func (s *SQLiteStore) ListInvitesByEmail(ctx context.Context, email string) ([]*models.Invite, error) {
	return s.listInvitesWhere(ctx, "invitee_email = ? AND status = 'pending'", email)
}

// ListInvitesByGroup returns all invites for the group.
func (s *SQLiteStore) ListInvitesByGroup(ctx context.Context, groupID string) ([]*models.Invite, error) {
	return s.listInvitesWhere(ctx, "group_id = ?", groupID)
}

func (s *SQLiteStore) listInvitesWhere(ctx context.Context, where string, arg any) ([]*models.Invite, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, inviter_id, invitee_email, status, created_at FROM invites WHERE "+where+" ORDER BY created_at DESC",
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var invites []*models.Invite
	for rows.Next() {
		invite := &models.Invite{}
		var status string
		if err := rows.Scan(&invite.ID, &invite.GroupID, &invite.InviterID, &invite.InviteeEmail, &status, &invite.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invite.Status = models.InviteStatus(status)
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}
	return invites, nil
}

// AcceptInvite atomically marks the invite accepted and adds the user to
// the group. A user who somehow already joined still resolves the invite.
func (s *SQLiteStore) AcceptInvite(ctx context.Context, inviteID, userID string) error {
	invite, err := s.GetInvite(ctx, inviteID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE invites SET status = ? WHERE id = ? AND status = ?",
		string(models.InviteAccepted), inviteID, string(models.InvitePending),
	)
	if err != nil {
		return fmt.Errorf("failed to update invite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrInviteNotPending
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO group_members (group_id, user_id) VALUES (?, ?)",
		invite.GroupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateInviteStatus transitions a pending invite to the given status.
func (s *SQLiteStore) UpdateInviteStatus(ctx context.Context, inviteID string, status models.InviteStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE invites SET status = ? WHERE id = ? AND status = ?",
		string(status), inviteID, string(models.InvitePending),
	)
	if err != nil {
		return fmt.Errorf("failed to update invite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrInviteNotPending
	}
	return nil
}
