package models

import "errors"

// Sentinel errors for the domain. Services return these (possibly wrapped
// with fmt.Errorf and %w) and the API layer maps them to HTTP status codes.
var (
	// Validation
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidChoice = errors.New("vote must be approve or reject")
	ErrInvalidKind   = errors.New("kind must be deposit or withdrawal")

	ErrInvalidGroupName = errors.New("group name must not be empty")

	// Not found
	ErrUserNotFound     = errors.New("user not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrProposalNotFound = errors.New("transaction not found")
	ErrInviteNotFound   = errors.New("invite not found")

	// State conflicts
	ErrProposalNotPending  = errors.New("transaction is no longer pending")
	ErrProposalNotApproved = errors.New("transaction must be approved to execute")
	ErrAlreadyExecuted     = errors.New("transaction has already been executed")
	ErrAlreadyVoted        = errors.New("you have already voted on this transaction")
	ErrAlreadyMember       = errors.New("user is already a member")
	ErrInviteNotPending    = errors.New("invite is no longer pending")
	ErrEmailExists         = errors.New("email already registered")

	// Authorization
	ErrNotAMember       = errors.New("you are not a member of this group")
	ErrNotOwner         = errors.New("only the group owner may do this")
	ErrOwnerRemoval     = errors.New("cannot remove the group owner")
	ErrInviteNotForUser = errors.New("this invite is not for you")

	// Funds
	ErrInsufficientFunds = errors.New("insufficient funds")
)
