package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"trustvault/internal/models"
	"trustvault/internal/storage"
	"trustvault/internal/voting"
)

// ProposalService implements the transaction proposal workflow: propose,
// vote, execute. It validates membership and input; all state transitions
// happen atomically inside the store.
type ProposalService struct {
	store storage.Store
}

// NewProposalService creates a new ProposalService with the given storage
// backend.
func NewProposalService(store storage.Store) *ProposalService {
	return &ProposalService{store: store}
}

// VoteResult is the outcome of a recorded vote: the updated proposal plus
// the authoritative tally the new status was computed from.
type VoteResult struct {
	Proposal     *models.Proposal
	Tally        voting.Tally
	TotalMembers int
}

// Propose creates a new pending proposal. The proposer must be a member
// of the group, the amount positive and the kind valid. An empty kind
// defaults to withdrawal.
func (s *ProposalService) Propose(ctx context.Context, userID, groupID string, kind models.Kind, amount decimal.Decimal, description string) (*models.Proposal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidAmount
	}
	if kind == "" {
		kind = models.KindWithdrawal
	}
	if !kind.IsValid() {
		return nil, models.ErrInvalidKind
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, models.ErrNotAMember
	}

	proposal := &models.Proposal{
		GroupID:     groupID,
		ProposerID:  userID,
		Kind:        kind,
		Amount:      amount,
		Description: description,
	}
	if err := s.store.CreateProposal(ctx, proposal); err != nil {
		slog.Error("Propose failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Transaction proposed",
		"transaction_id", proposal.ID,
		"group_id", groupID,
		"proposer", userID,
		"kind", string(kind),
		"amount", amount.String(),
	)
	return proposal, nil
}

// Get retrieves a proposal. Only members of the owning group may view it.
func (s *ProposalService) Get(ctx context.Context, userID, proposalID string) (*models.Proposal, error) {
	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, userID, proposal.GroupID); err != nil {
		return nil, err
	}
	return proposal, nil
}

// ListByGroup returns a group's proposals, newest first. Members only.
func (s *ProposalService) ListByGroup(ctx context.Context, userID, groupID string) ([]*models.Proposal, error) {
	if err := s.requireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}
	return s.store.ListProposalsByGroup(ctx, groupID)
}

// Vote records the caller's vote on a pending proposal and returns the
// updated proposal with the authoritative tally. Votes are immutable:
// voting twice fails with models.ErrAlreadyVoted.
func (s *ProposalService) Vote(ctx context.Context, userID, proposalID string, choice models.VoteChoice) (*VoteResult, error) {
	if !choice.IsValid() {
		return nil, models.ErrInvalidChoice
	}

	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	group, err := s.store.GetGroup(ctx, proposal.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, models.ErrNotAMember
	}

	updated, err := s.store.RecordVote(ctx, proposalID, userID, choice, len(group.Members))
	if err != nil {
		slog.Warn("Vote rejected", "transaction_id", proposalID, "voter", userID, "error", err)
		return nil, err
	}

	tally := voting.Count(updated.Votes)
	slog.Info("Vote recorded",
		"transaction_id", proposalID,
		"voter", userID,
		"choice", string(choice),
		"approve", tally.Approve,
		"reject", tally.Reject,
		"status", string(updated.Status),
	)
	return &VoteResult{
		Proposal:     updated,
		Tally:        tally,
		TotalMembers: len(group.Members),
	}, nil
}

// Execute applies an approved proposal's effect to the group balance and
// marks it executed. Any member may trigger execution; retries and
// concurrent calls are safe, only the first mutates the balance.
func (s *ProposalService) Execute(ctx context.Context, userID, proposalID string) (*models.Proposal, error) {
	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, userID, proposal.GroupID); err != nil {
		return nil, err
	}

	executed, err := s.store.ExecuteProposal(ctx, proposalID)
	if err != nil {
		slog.Warn("Execute failed", "transaction_id", proposalID, "caller", userID, "error", err)
		return nil, err
	}

	slog.Info("Transaction executed",
		"transaction_id", proposalID,
		"group_id", executed.GroupID,
		"kind", string(executed.Kind),
		"amount", executed.Amount.String(),
		"caller", userID,
	)
	return executed, nil
}

// History returns all proposals across the caller's groups, newest first.
func (s *ProposalService) History(ctx context.Context, userID string) ([]*models.Proposal, error) {
	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}

	groupIDs := make([]string, len(groups))
	for i, g := range groups {
		groupIDs[i] = g.ID
	}
	return s.store.ListProposalsByGroups(ctx, groupIDs)
}

func (s *ProposalService) requireMember(ctx context.Context, userID, groupID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsMember(userID) {
		return models.ErrNotAMember
	}
	return nil
}
