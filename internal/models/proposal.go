package models

import "github.com/shopspring/decimal"

// Status is the lifecycle state of a proposal. The state machine is
//
//	pending -> approved -> executed
//	pending -> rejected
//
// with rejected and executed terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExecuted Status = "executed"
)

// IsValid reports whether s is one of the four known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusExecuted:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusExecuted
}

// CanTransition reports whether the state machine permits moving to next.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusExecuted
	}
	return false
}

// Kind determines the sign of a proposal's effect on the group balance.
type Kind string

const (
	// KindDeposit credits the group balance on execution.
	KindDeposit Kind = "deposit"
	// KindWithdrawal debits the group balance on execution and requires
	// sufficient funds at execution time.
	KindWithdrawal Kind = "withdrawal"
)

// IsValid reports whether k is a known proposal kind.
func (k Kind) IsValid() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// VoteChoice is a member's position on a proposal.
type VoteChoice string

const (
	VoteApprove VoteChoice = "approve"
	VoteReject  VoteChoice = "reject"
)

// IsValid reports whether c is a known vote choice.
func (c VoteChoice) IsValid() bool {
	return c == VoteApprove || c == VoteReject
}

// Proposal represents a transaction proposal against a group balance.
// It is created pending with an empty vote set and moves through the
// Status state machine as members vote.
type Proposal struct {
	// ID is the unique identifier for the proposal (UUID format).
	// Never reused.
	ID string

	// GroupID is the owning group. Immutable after creation.
	GroupID string

	// ProposerID is the user who proposed the transaction.
	ProposerID string

	// Kind is deposit or withdrawal.
	Kind Kind

	// Amount is the positive amount to move. The sign of the balance
	// effect comes from Kind, not from Amount.
	Amount decimal.Decimal

	// Description is a free-text annotation.
	Description string

	// Status is the current lifecycle state.
	Status Status

	// Votes maps voter user ID to choice. A member votes at most once;
	// votes are immutable once cast.
	Votes map[string]VoteChoice

	// CreatedAt is the Unix timestamp when the proposal was created.
	CreatedAt int64

	// ExecutedAt is the Unix timestamp of execution, 0 until then.
	ExecutedAt int64
}
