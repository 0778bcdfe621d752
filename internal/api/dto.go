package api

import (
	"trustvault/internal/models"
)

// Response shapes mirror the field names the mobile/web clients already
// consume (transactionId, groupId, votes, ...). Amounts are decimal
// strings, never floats.

type userResponse struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Balance   string `json:"balance"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Balance:   u.Balance.String(),
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type memberResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsOwner  bool   `json:"isOwner"`
}

type groupResponse struct {
	GroupID       string           `json:"groupId"`
	Name          string           `json:"name"`
	CreatedBy     string           `json:"createdBy"`
	Members       []string         `json:"members"`
	MemberCount   int              `json:"memberCount"`
	Balance       string           `json:"balance"`
	Status        string           `json:"status"`
	CreatedAt     int64            `json:"createdAt"`
	MemberDetails []memberResponse `json:"memberDetails,omitempty"`
}

func toGroupResponse(g *models.Group, members []*models.User) groupResponse {
	resp := groupResponse{
		GroupID:     g.ID,
		Name:        g.Name,
		CreatedBy:   g.CreatedBy,
		Members:     g.Members,
		MemberCount: len(g.Members),
		Balance:     g.Balance.String(),
		Status:      g.Status,
		CreatedAt:   g.CreatedAt,
	}
	for _, m := range members {
		resp.MemberDetails = append(resp.MemberDetails, memberResponse{
			UserID:   m.ID,
			Username: m.Username,
			Email:    m.Email,
			Role:     m.Role,
			IsOwner:  m.ID == g.CreatedBy,
		})
	}
	return resp
}

type transactionResponse struct {
	TransactionID string            `json:"transactionId"`
	GroupID       string            `json:"groupId"`
	ProposedBy    string            `json:"proposedBy"`
	Kind          string            `json:"kind"`
	Amount        string            `json:"amount"`
	Description   string            `json:"description"`
	Status        string            `json:"status"`
	Votes         map[string]string `json:"votes"`
	CreatedAt     int64             `json:"createdAt"`
	ExecutedAt    int64             `json:"executedAt,omitempty"`
}

func toTransactionResponse(p *models.Proposal) transactionResponse {
	votes := make(map[string]string, len(p.Votes))
	for voter, choice := range p.Votes {
		votes[voter] = string(choice)
	}
	return transactionResponse{
		TransactionID: p.ID,
		GroupID:       p.GroupID,
		ProposedBy:    p.ProposerID,
		Kind:          string(p.Kind),
		Amount:        p.Amount.String(),
		Description:   p.Description,
		Status:        string(p.Status),
		Votes:         votes,
		CreatedAt:     p.CreatedAt,
		ExecutedAt:    p.ExecutedAt,
	}
}

type inviteResponse struct {
	InviteID     string `json:"inviteId"`
	GroupID      string `json:"groupId"`
	InviterID    string `json:"inviterId"`
	InviteeEmail string `json:"inviteeEmail"`
	Status       string `json:"status"`
	CreatedAt    int64  `json:"createdAt"`
}

func toInviteResponse(i *models.Invite) inviteResponse {
	return inviteResponse{
		InviteID:     i.ID,
		GroupID:      i.GroupID,
		InviterID:    i.InviterID,
		InviteeEmail: i.InviteeEmail,
		Status:       string(i.Status),
		CreatedAt:    i.CreatedAt,
	}
}
