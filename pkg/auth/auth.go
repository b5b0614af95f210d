package auth

import (
	"context"
	"errors"
)

// Roles recognized by the API. The identity provider assigns them; this
// service only checks for their presence.
const (
	RoleMember = "Member"
	RoleAdmin  = "Admin"
)

var (
	// ErrInvalidToken means the bearer token was rejected by the identity provider.
	ErrInvalidToken = errors.New("invalid bearer token")
	// ErrNoIdentity means no authenticated identity is present in the context.
	ErrNoIdentity = errors.New("no identity in context")
)

// Identity describes an authenticated caller as reported by the identity
// provider: an opaque subject plus the role claims embedded in the token.
type Identity struct {
	Subject string
	Roles   []string
}

// HasRole reports whether the identity carries the given role claim.
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Authenticator validates a bearer token with the external identity provider.
// Token issuance is out of scope; implementations only verify.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Identity, error)
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity stores the authenticated identity in the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// CurrentIdentity retrieves the authenticated identity from the context.
// Returns ErrNoIdentity when the request was not authenticated.
func CurrentIdentity(ctx context.Context) (Identity, error) {
	identity, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	return identity, nil
}
