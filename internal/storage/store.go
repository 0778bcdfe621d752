// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"trustvault/internal/models"
)

// Store defines the interface for TrustVault storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// All read-modify-write sequences (vote recording, execution, deposits,
// invite acceptance) are atomic: an implementation must guarantee that
// concurrent calls on the same proposal or group serialize, and that a
// balance mutation and its status transition commit together or not at
// all.
type Store interface {
	// CreateUser persists a new user. The ID, CreatedAt and Role fields
	// are populated by the store if unset. Returns models.ErrEmailExists
	// if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID. Returns models.ErrUserNotFound if
	// absent.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns
	// models.ErrUserNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs retrieves the users with the given IDs; unknown IDs
	// are skipped.
	GetUsersByIDs(ctx context.Context, userIDs []string) ([]*models.User, error)

	// CreateGroup persists a new group with its initial member set.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group including its member set. Returns
	// models.ErrGroupNotFound if absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember returns all groups the user belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMember adds a user to the group's member set. Returns
	// models.ErrAlreadyMember if already present.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// RemoveGroupMember removes a user from the group's member set.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// Deposit atomically moves amount from the user's personal balance
	// into the group balance. Returns models.ErrInsufficientFunds if the
	// user's balance does not cover the amount.
	Deposit(ctx context.Context, groupID, userID string, amount decimal.Decimal) (*models.Group, error)

	// CreateProposal persists a new proposal in pending status with an
	// empty vote set. ID and CreatedAt are populated if unset.
	CreateProposal(ctx context.Context, proposal *models.Proposal) error

	// GetProposal retrieves a proposal including its votes. Returns
	// models.ErrProposalNotFound if absent.
	GetProposal(ctx context.Context, proposalID string) (*models.Proposal, error)

	// ListProposalsByGroup returns the group's proposals, newest first.
	ListProposalsByGroup(ctx context.Context, groupID string) ([]*models.Proposal, error)

	// ListProposalsByGroups returns all proposals across the given
	// groups, newest first.
	ListProposalsByGroups(ctx context.Context, groupIDs []string) ([]*models.Proposal, error)

	// RecordVote atomically records an immutable vote and recomputes the
	// proposal status from the new tally and memberCount. Returns
	// models.ErrProposalNotPending if voting has closed and
	// models.ErrAlreadyVoted on a repeat vote.
	RecordVote(ctx context.Context, proposalID, voterID string, choice models.VoteChoice, memberCount int) (*models.Proposal, error)

	// ExecuteProposal atomically applies an approved proposal's effect to
	// the group balance and transitions it to executed. Exactly one of
	// any number of concurrent calls succeeds; the rest observe
	// models.ErrAlreadyExecuted. Withdrawals exceeding the group balance
	// fail with models.ErrInsufficientFunds, leaving balance and status
	// untouched.
	ExecuteProposal(ctx context.Context, proposalID string) (*models.Proposal, error)

	// CreateInvite persists a new pending invite.
	CreateInvite(ctx context.Context, invite *models.Invite) error

	// GetInvite retrieves an invite by ID. Returns
	// models.ErrInviteNotFound if absent.
	GetInvite(ctx context.Context, inviteID string) (*models.Invite, error)

	// ListInvitesByEmail returns pending invites addressed to the email.
	ListInvitesByEmail(ctx context.Context, email string) ([]*models.Invite, error)

	// ListInvitesByGroup returns all invites for the group.
	ListInvitesByGroup(ctx context.Context, groupID string) ([]*models.Invite, error)

	// AcceptInvite atomically marks the invite accepted and adds the user
	// to the group. Returns models.ErrInviteNotPending if the invite was
	// already resolved.
	AcceptInvite(ctx context.Context, inviteID, userID string) error

	// UpdateInviteStatus transitions a pending invite to the given
	// status. Returns models.ErrInviteNotPending if already resolved.
	UpdateInviteStatus(ctx context.Context, inviteID string, status models.InviteStatus) error

	// Close releases any resources held by the store.
	Close() error
}
