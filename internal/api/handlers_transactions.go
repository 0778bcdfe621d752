package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"trustvault/internal/middleware"
	"trustvault/internal/models"
)

type createTransactionRequest struct {
	GroupID     string `json:"groupId"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, models.ErrInvalidAmount)
		return
	}

	proposal, err := s.proposalService.Propose(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.GroupID,
		models.Kind(req.Kind),
		amount,
		req.Description,
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"message":     "Transaction proposed successfully",
		"transaction": toTransactionResponse(proposal),
	})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("groupId")
	if groupID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "groupId query parameter required"})
		return
	}

	proposals, err := s.proposalService.ListByGroup(r.Context(), middleware.GetUserID(r.Context()), groupID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(proposals))
	for _, p := range proposals {
		resp = append(resp, toTransactionResponse(p))
	}
	respondJSON(w, http.StatusOK, map[string]any{"transactions": resp})
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	proposal, err := s.proposalService.Get(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"transaction": toTransactionResponse(proposal)})
}

type voteRequest struct {
	Vote string `json:"vote"`
}

func (s *Server) voteOnTransaction(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.proposalService.Vote(
		r.Context(),
		middleware.GetUserID(r.Context()),
		mux.Vars(r)["id"],
		models.VoteChoice(req.Vote),
	)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := toTransactionResponse(result.Proposal)
	respondJSON(w, http.StatusOK, map[string]any{
		"message":      "Vote recorded",
		"status":       resp.Status,
		"votes":        resp.Votes,
		"approveCount": result.Tally.Approve,
		"rejectCount":  result.Tally.Reject,
		"totalMembers": result.TotalMembers,
	})
}

func (s *Server) executeTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	proposal, err := s.proposalService.Execute(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	resp := map[string]any{
		"message":     "Transaction executed successfully",
		"transaction": toTransactionResponse(proposal),
	}
	// Best effort: include the resulting group balance.
	if group, _, err := s.groupService.GetGroup(r.Context(), userID, proposal.GroupID); err == nil {
		resp["newBalance"] = group.Balance.String()
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) transactionHistory(w http.ResponseWriter, r *http.Request) {
	proposals, err := s.proposalService.History(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(proposals))
	for _, p := range proposals {
		resp = append(resp, toTransactionResponse(p))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"transactions": resp,
		"count":        len(resp),
	})
}
