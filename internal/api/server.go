// Package api exposes the TrustVault core over a JSON REST surface.
// Handlers validate transport concerns only; all business rules live in
// the service layer.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"trustvault/internal/auth"
	"trustvault/internal/middleware"
	"trustvault/internal/service"
)

// Server wires the services to the HTTP router.
type Server struct {
	authService     *service.AuthService
	groupService    *service.GroupService
	proposalService *service.ProposalService
	inviteService   *service.InviteService
	jwt             *auth.JWTManager

	httpServer *http.Server
	addr       string
	origins    []string
}

// New creates a Server listening on addr.
func New(
	addr string,
	origins []string,
	authService *service.AuthService,
	groupService *service.GroupService,
	proposalService *service.ProposalService,
	inviteService *service.InviteService,
	jwt *auth.JWTManager,
) *Server {
	return &Server{
		authService:     authService,
		groupService:    groupService,
		proposalService: proposalService,
		inviteService:   inviteService,
		jwt:             jwt,
		addr:            addr,
		origins:         origins,
	}
}

// Handler builds the full middleware/router stack. Exposed separately
// from Run so tests can mount it on httptest servers.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Metrics)

	router.HandleFunc("/health", healthcheck).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/signup", s.signup).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", s.login).Methods(http.MethodPost)

	authed := router.PathPrefix("/api").Subrouter()
	authed.Use(middleware.RequireAuth(s.jwt, func(w http.ResponseWriter, err error) {
		respondError(w, err)
	}))

	authed.HandleFunc("/users/me", s.getMe).Methods(http.MethodGet)

	authed.HandleFunc("/groups", s.createGroup).Methods(http.MethodPost)
	authed.HandleFunc("/groups", s.listGroups).Methods(http.MethodGet)
	authed.HandleFunc("/groups/{id}", s.getGroup).Methods(http.MethodGet)
	authed.HandleFunc("/groups/{id}/members", s.listMembers).Methods(http.MethodGet)
	authed.HandleFunc("/groups/{id}/members", s.addMember).Methods(http.MethodPost)
	authed.HandleFunc("/groups/{id}/members/{userId}", s.removeMember).Methods(http.MethodDelete)
	authed.HandleFunc("/groups/{id}/deposit", s.deposit).Methods(http.MethodPost)

	authed.HandleFunc("/transactions", s.createTransaction).Methods(http.MethodPost)
	authed.HandleFunc("/transactions", s.listTransactions).Methods(http.MethodGet)
	authed.HandleFunc("/transactions/history/me", s.transactionHistory).Methods(http.MethodGet)
	authed.HandleFunc("/transactions/{id}", s.getTransaction).Methods(http.MethodGet)
	authed.HandleFunc("/transactions/{id}/vote", s.voteOnTransaction).Methods(http.MethodPost)
	authed.HandleFunc("/transactions/{id}/execute", s.executeTransaction).Methods(http.MethodPost)

	authed.HandleFunc("/invites", s.createInvite).Methods(http.MethodPost)
	authed.HandleFunc("/invites", s.listMyInvites).Methods(http.MethodGet)
	authed.HandleFunc("/invites/group/{id}", s.listGroupInvites).Methods(http.MethodGet)
	authed.HandleFunc("/invites/{id}/accept", s.acceptInvite).Methods(http.MethodPost)
	authed.HandleFunc("/invites/{id}/decline", s.declineInvite).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return middleware.Logging(c.Handler(router))
}

// Run starts serving and blocks until the server stops.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func healthcheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
