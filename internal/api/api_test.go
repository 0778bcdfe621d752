package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustvault/internal/auth"
	"trustvault/internal/service"
	"trustvault/internal/storage/sqlite"
)

// setupTestServer starts the full handler stack against a temp database.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store, decimal.NewFromInt(1000))

	server := New(
		":0",
		[]string{"*"},
		service.NewAuthService(authenticator, jwtManager, store),
		service.NewGroupService(store),
		service.NewProposalService(store),
		service.NewInviteService(store),
		jwtManager,
	)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func signup(t *testing.T, ts *httptest.Server, username string) (userID, token string) {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup body: %v", body)
	user := body["user"].(map[string]any)
	return user["userId"].(string), body["token"].(string)
}

func TestAuthEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	userID, token := signup(t, ts, "alice")
	require.NotEmpty(t, userID)
	require.NotEmpty(t, token)

	t.Run("duplicate signup conflicts", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signup", "", map[string]string{
			"username": "alice2",
			"email":    "alice@example.com",
			"password": "correct-horse",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("short password rejected", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signup", "", map[string]string{
			"username": "bob",
			"email":    "bob@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("login returns a fresh token", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "correct-horse",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("bad password rejected", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("protected route requires a token", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/groups", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("me returns the seeded balance", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/users/me", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		user := body["user"].(map[string]any)
		assert.Equal(t, "1000", user["balance"])
	})
}

// End-to-end proposal workflow over HTTP: create group, add member,
// deposit, propose withdrawal, vote to quorum, execute, verify
// idempotent re-execute.
func TestTransactionWorkflow(t *testing.T) {
	ts := setupTestServer(t)

	_, aliceToken := signup(t, ts, "alice")
	bobID, bobToken := signup(t, ts, "bob")
	_, malloryToken := signup(t, ts, "mallory")

	// Group with two members.
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/groups", aliceToken, map[string]string{"name": "Sunrise Ranch"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	groupID := body["group"].(map[string]any)["groupId"].(string)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/groups/"+groupID+"/members", aliceToken, map[string]string{"userId": bobID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Fund the group.
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/groups/"+groupID+"/deposit", aliceToken, map[string]string{"amount": "400"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "400", body["newBalance"])

	// Non-member cannot see the group.
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/groups/"+groupID, malloryToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Propose a withdrawal.
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/transactions", aliceToken, map[string]string{
		"groupId":     groupID,
		"kind":        "withdrawal",
		"amount":      "150",
		"description": "fence repairs",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	txID := body["transaction"].(map[string]any)["transactionId"].(string)

	// First approve reaches quorum (2 members, quorum 1).
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/transactions/"+txID+"/vote", bobToken, map[string]string{"vote": "approve"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, float64(1), body["approveCount"])
	assert.Equal(t, float64(2), body["totalMembers"])

	// Voting again conflicts.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/transactions/"+txID+"/vote", bobToken, map[string]string{"vote": "approve"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Voting on a closed proposal conflicts.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/transactions/"+txID+"/vote", aliceToken, map[string]string{"vote": "reject"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Execute applies the withdrawal.
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/transactions/"+txID+"/execute", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "250", body["newBalance"])

	// Re-execute is a distinct, benign conflict.
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/transactions/"+txID+"/execute", aliceToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["error"], "already been executed")

	// History includes the executed transaction.
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/transactions/history/me", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
}

func TestTransactionValidationOverHTTP(t *testing.T) {
	ts := setupTestServer(t)

	_, token := signup(t, ts, "alice")
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/groups", token, map[string]string{"name": "Solo Ranch"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	groupID := body["group"].(map[string]any)["groupId"].(string)

	tests := []struct {
		name       string
		payload    map[string]string
		wantStatus int
	}{
		{"zero amount", map[string]string{"groupId": groupID, "amount": "0"}, http.StatusBadRequest},
		{"negative amount", map[string]string{"groupId": groupID, "amount": "-10"}, http.StatusBadRequest},
		{"garbage amount", map[string]string{"groupId": groupID, "amount": "ten"}, http.StatusBadRequest},
		{"bad kind", map[string]string{"groupId": groupID, "amount": "10", "kind": "transfer"}, http.StatusBadRequest},
		{"unknown group", map[string]string{"groupId": "missing", "amount": "10"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", token, tt.payload)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	t.Run("missing groupId on list", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/transactions", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("insufficient funds message names both amounts", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", token, map[string]string{
			"groupId": groupID, "kind": "withdrawal", "amount": "75",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		txID := body["transaction"].(map[string]any)["transactionId"].(string)

		resp, _ = doJSON(t, http.MethodPost, ts.URL+fmt.Sprintf("/api/transactions/%s/vote", txID), token, map[string]string{"vote": "approve"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body = doJSON(t, http.MethodPost, ts.URL+fmt.Sprintf("/api/transactions/%s/execute", txID), token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "$0.00")
		assert.Contains(t, body["error"], "$75.00")
	})
}

func TestInviteEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	_, ownerToken := signup(t, ts, "owner")
	_, joinerToken := signup(t, ts, "joiner")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/groups", ownerToken, map[string]string{"name": "Invite Ranch"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	groupID := body["group"].(map[string]any)["groupId"].(string)

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/invites", ownerToken, map[string]string{
		"groupId":      groupID,
		"inviteeEmail": "joiner@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	inviteID := body["invite"].(map[string]any)["inviteId"].(string)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/invites", joinerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["invites"], 1)

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/invites/"+inviteID+"/accept", joinerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, groupID, body["groupId"])

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/groups/"+groupID, joinerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthcheck(t *testing.T) {
	ts := setupTestServer(t)
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
