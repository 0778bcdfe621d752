package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"trustvault/internal/middleware"
)

type createInviteRequest struct {
	GroupID      string `json:"groupId"`
	InviteeEmail string `json:"inviteeEmail"`
}

func (s *Server) createInvite(w http.ResponseWriter, r *http.Request) {
	var req createInviteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	invite, err := s.inviteService.Create(r.Context(), middleware.GetUserID(r.Context()), req.GroupID, req.InviteeEmail)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"invite": toInviteResponse(invite)})
}

func (s *Server) listMyInvites(w http.ResponseWriter, r *http.Request) {
	invites, err := s.inviteService.ListMine(r.Context(), middleware.GetEmail(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]inviteResponse, 0, len(invites))
	for _, inv := range invites {
		resp = append(resp, toInviteResponse(inv))
	}
	respondJSON(w, http.StatusOK, map[string]any{"invites": resp})
}

func (s *Server) listGroupInvites(w http.ResponseWriter, r *http.Request) {
	invites, err := s.inviteService.ListGroup(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]inviteResponse, 0, len(invites))
	for _, inv := range invites {
		resp = append(resp, toInviteResponse(inv))
	}
	respondJSON(w, http.StatusOK, map[string]any{"invites": resp})
}

func (s *Server) acceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	invite, err := s.inviteService.Accept(ctx, middleware.GetUserID(ctx), middleware.GetEmail(ctx), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Invite accepted successfully",
		"groupId": invite.GroupID,
	})
}

func (s *Server) declineInvite(w http.ResponseWriter, r *http.Request) {
	invite, err := s.inviteService.Decline(r.Context(), middleware.GetEmail(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Invite declined",
		"invite":  toInviteResponse(invite),
	})
}
