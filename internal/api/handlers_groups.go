package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"trustvault/internal/middleware"
	"trustvault/internal/models"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := s.groupService.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"group": toGroupResponse(group, nil)})
}

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groupService.ListMyGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, toGroupResponse(g, nil))
	}
	respondJSON(w, http.StatusOK, map[string]any{"groups": resp})
}

func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	group, members, err := s.groupService.GetGroup(r.Context(), middleware.GetUserID(r.Context()), groupID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"group": toGroupResponse(group, members)})
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	group, members, err := s.groupService.GetGroup(r.Context(), middleware.GetUserID(r.Context()), groupID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := toGroupResponse(group, members)
	respondJSON(w, http.StatusOK, map[string]any{
		"groupId":   group.ID,
		"groupName": group.Name,
		"members":   resp.MemberDetails,
		"count":     len(resp.MemberDetails),
	})
}

type addMemberRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	var req addMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := s.groupService.AddMember(r.Context(), middleware.GetUserID(r.Context()), groupID, req.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Member added successfully"})
}

func (s *Server) removeMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := s.groupService.RemoveMember(r.Context(), middleware.GetUserID(r.Context()), vars["id"], vars["userId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}

type depositRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	var req depositRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, models.ErrInvalidAmount)
		return
	}

	group, err := s.groupService.Deposit(r.Context(), middleware.GetUserID(r.Context()), groupID, amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "Deposit successful",
		"groupId":    group.ID,
		"amount":     amount.String(),
		"newBalance": group.Balance.String(),
	})
}
