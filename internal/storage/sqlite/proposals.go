package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"trustvault/internal/models"
	"trustvault/internal/voting"
)

// CreateProposal persists a new proposal in pending status with an empty
// vote set. ID and CreatedAt are populated if unset.
func (s *SQLiteStore) CreateProposal(ctx context.Context, proposal *models.Proposal) error {
	if proposal.ID == "" {
		proposal.ID = uuid.New().String()
	}
	if proposal.CreatedAt == 0 {
		proposal.CreatedAt = time.Now().Unix()
	}
	proposal.Status = models.StatusPending
	proposal.Votes = map[string]models.VoteChoice{}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO proposals (id, group_id, proposer_id, kind, amount, description, status, created_at, executed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)",
		proposal.ID, proposal.GroupID, proposal.ProposerID, string(proposal.Kind),
		proposal.Amount.String(), proposal.Description, string(proposal.Status), proposal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert proposal: %w", err)
	}
	return nil
}

// GetProposal retrieves a proposal including its votes.
func (s *SQLiteStore) GetProposal(ctx context.Context, proposalID string) (*models.Proposal, error) {
	proposal, err := s.scanProposal(ctx, s.db.QueryRowContext(ctx,
		"SELECT id, group_id, proposer_id, kind, amount, description, status, created_at, executed_at FROM proposals WHERE id = ?",
		proposalID,
	))
	if err != nil {
		return nil, err
	}
	if err := s.loadVotes(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanProposal(ctx context.Context, row rowScanner) (*models.Proposal, error) {
	proposal := &models.Proposal{}
	var kind, amount, status string
	err := row.Scan(&proposal.ID, &proposal.GroupID, &proposal.ProposerID, &kind,
		&amount, &proposal.Description, &status, &proposal.CreatedAt, &proposal.ExecutedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProposalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan proposal: %w", err)
	}
	proposal.Kind = models.Kind(kind)
	proposal.Status = models.Status(status)
	if proposal.Amount, err = parseAmount(amount); err != nil {
		return nil, err
	}
	return proposal, nil
}

func (s *SQLiteStore) loadVotes(ctx context.Context, proposal *models.Proposal) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT voter_id, choice FROM votes WHERE proposal_id = ?",
		proposal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get votes: %w", err)
	}
	defer rows.Close()

	proposal.Votes = map[string]models.VoteChoice{}
	for rows.Next() {
		var voter, choice string
		if err := rows.Scan(&voter, &choice); err != nil {
			return fmt.Errorf("failed to scan vote: %w", err)
		}
		proposal.Votes[voter] = models.VoteChoice(choice)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate votes: %w", err)
	}
	return nil
}

// ListProposalsByGroup returns the group's proposals, newest first.
func (s *SQLiteStore) ListProposalsByGroup(ctx context.Context, groupID string) ([]*models.Proposal, error) {
	return s.ListProposalsByGroups(ctx, []string{groupID})
}

// ListProposalsByGroups returns all proposals across the given groups,
// newest first.
func (s *SQLiteStore) ListProposalsByGroups(ctx context.Context, groupIDs []string) ([]*models.Proposal, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(groupIDs)-1) + "?"
	args := make([]any, len(groupIDs))
	for i, id := range groupIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, proposer_id, kind, amount, description, status, created_at, executed_at FROM proposals WHERE group_id IN ("+placeholders+") ORDER BY created_at DESC, id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []*models.Proposal
	for rows.Next() {
		proposal, err := s.scanProposal(ctx, rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, proposal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate proposals: %w", err)
	}

	for _, proposal := range proposals {
		if err := s.loadVotes(ctx, proposal); err != nil {
			return nil, err
		}
	}
	return proposals, nil
}

// RecordVote atomically records an immutable vote and recomputes the
// proposal status from the new tally. The vote insert, the tally read and
// the conditional status transition share one transaction, so two
// concurrent votes cannot both observe a stale tally and skip the
// transition.
func (s *SQLiteStore) RecordVote(ctx context.Context, proposalID, voterID string, choice models.VoteChoice, memberCount int) (*models.Proposal, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, "SELECT status FROM proposals WHERE id = ?", proposalID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProposalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal status: %w", err)
	}
	if models.Status(status) != models.StatusPending {
		return nil, models.ErrProposalNotPending
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO votes (proposal_id, voter_id, choice, created_at) VALUES (?, ?, ?, ?)",
		proposalID, voterID, string(choice), time.Now().Unix(),
	)
	if err != nil {
		// Votes are immutable: the (proposal, voter) primary key rejects
		// a second vote from the same member.
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, models.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}

	var tally voting.Tally
	err = tx.QueryRowContext(ctx,
		`SELECT
		   COUNT(CASE WHEN choice = 'approve' THEN 1 END),
		   COUNT(CASE WHEN choice = 'reject' THEN 1 END)
		 FROM votes WHERE proposal_id = ?`,
		proposalID,
	).Scan(&tally.Approve, &tally.Reject)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}

	if next := voting.Outcome(tally, memberCount); next != models.StatusPending {
		res, err := tx.ExecContext(ctx,
			"UPDATE proposals SET status = ? WHERE id = ? AND status = ?",
			string(next), proposalID, string(models.StatusPending),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update proposal status: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, models.ErrProposalNotPending
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetProposal(ctx, proposalID)
}

// ExecuteProposal atomically applies an approved proposal's effect to the
// group balance and transitions it to executed. The conditional UPDATE on
// status acts as a compare-and-swap: of any number of concurrent calls,
// exactly one commits the balance mutation, and the rest roll back with
// models.ErrAlreadyExecuted.
func (s *SQLiteStore) ExecuteProposal(ctx context.Context, proposalID string) (*models.Proposal, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID, kind, rawAmount, status string
	err = tx.QueryRowContext(ctx,
		"SELECT group_id, kind, amount, status FROM proposals WHERE id = ?",
		proposalID,
	).Scan(&groupID, &kind, &rawAmount, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProposalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	switch models.Status(status) {
	case models.StatusApproved:
		// proceed
	case models.StatusExecuted:
		return nil, models.ErrAlreadyExecuted
	default:
		return nil, models.ErrProposalNotApproved
	}

	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	var rawBalance string
	err = tx.QueryRowContext(ctx, "SELECT balance FROM groups WHERE id = ?", groupID).Scan(&rawBalance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group balance: %w", err)
	}
	balance, err := parseAmount(rawBalance)
	if err != nil {
		return nil, err
	}

	var newBalance string
	switch models.Kind(kind) {
	case models.KindDeposit:
		newBalance = balance.Add(amount).String()
	case models.KindWithdrawal:
		if balance.LessThan(amount) {
			return nil, fmt.Errorf("%w: balance is $%s, required $%s",
				models.ErrInsufficientFunds, balance.StringFixed(2), amount.StringFixed(2))
		}
		newBalance = balance.Sub(amount).String()
	default:
		return nil, models.ErrInvalidKind
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE proposals SET status = ?, executed_at = ? WHERE id = ? AND status = ?",
		string(models.StatusExecuted), time.Now().Unix(), proposalID, string(models.StatusApproved),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark proposal executed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, models.ErrAlreadyExecuted
	}

	_, err = tx.ExecContext(ctx, "UPDATE groups SET balance = ? WHERE id = ?", newBalance, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to update group balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetProposal(ctx, proposalID)
}
