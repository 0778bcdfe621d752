package service

import (
	"context"
	"log/slog"

	"trustvault/internal/auth"
	"trustvault/internal/models"
	"trustvault/internal/storage"
)

// AuthService handles signup and login, issuing JWTs on success.
type AuthService struct {
	authenticator auth.Authenticator
	jwt           *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates a new AuthService.
func NewAuthService(authenticator auth.Authenticator, jwt *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{authenticator: authenticator, jwt: jwt, store: store}
}

// CurrentUser returns the account behind an authenticated user ID.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// Signup registers a new account and returns the user with a session token.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, username, password)
	if err != nil {
		slog.Warn("Signup failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		slog.Error("Signup token generation failed", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login authenticates an existing account and returns the user with a
// session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		slog.Error("Login token generation failed", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}
