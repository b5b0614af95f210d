package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testAuthenticator(t *testing.T, handler http.HandlerFunc) *IntrospectionAuthenticator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &IntrospectionAuthenticator{
		introspectionURL: server.URL,
		client:           server.Client(),
	}
}

func TestIntrospectionAuthenticator(t *testing.T) {
	t.Run("active token yields the identity", func(t *testing.T) {
		// given
		var receivedToken string
		authenticator := testAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, r.ParseForm())
			receivedToken = r.PostForm.Get("token")
			err := json.NewEncoder(w).Encode(introspectionResult{
				Active:  true,
				Subject: "alice",
				Roles:   []string{RoleMember, RoleAdmin},
			})
			assert.NoError(t, err)
		})

		// when
		identity, err := authenticator.Authenticate(context.Background(), "opaque-token")

		// then
		assert.NoError(t, err)
		assert.Equal(t, "opaque-token", receivedToken)
		assert.Equal(t, "alice", identity.Subject)
		assert.True(t, identity.HasRole(RoleAdmin))
	})

	t.Run("inactive token is rejected", func(t *testing.T) {
		authenticator := testAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
			err := json.NewEncoder(w).Encode(introspectionResult{Active: false})
			assert.NoError(t, err)
		})

		_, err := authenticator.Authenticate(context.Background(), "revoked-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("provider error is not treated as an invalid token", func(t *testing.T) {
		authenticator := testAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		})

		_, err := authenticator.Authenticate(context.Background(), "any-token")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})
}
