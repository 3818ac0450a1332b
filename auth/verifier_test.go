package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, "anon-key")
	require.NoError(t, err)
	return client
}

func TestVerifyToken_Success(t *testing.T) {
	var gotAuth, gotAPIKey string
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		json.NewEncoder(w).Encode(map[string]string{"id": "user-123"})
	})

	userID, err := client.VerifyToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "anon-key", gotAPIKey)
}

func TestVerifyToken_EmptyToken(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend should not be called for an empty token")
	})

	_, err := client.VerifyToken(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyToken_Rejected(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.VerifyToken(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyToken_MissingID(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})

	_, err := client.VerifyToken(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyToken_BackendError(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.VerifyToken(context.Background(), "tok")
	require.Error(t, err)
	// A backend outage is not an authorization decision.
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestBearerFromHeader(t *testing.T) {
	assert.Equal(t, "abc", BearerFromHeader("Bearer abc"))
	assert.Equal(t, "abc", BearerFromHeader("bearer abc"))
	assert.Equal(t, "", BearerFromHeader("Basic abc"))
	assert.Equal(t, "", BearerFromHeader(""))
	assert.Equal(t, "", BearerFromHeader("Bearer "))
}
