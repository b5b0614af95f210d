package auth

import "context"

// StubAuthenticator maps fixed tokens to identities. Test use only.
type StubAuthenticator struct {
	Identities map[string]Identity
}

func NewStubAuthenticator() *StubAuthenticator {
	return &StubAuthenticator{Identities: map[string]Identity{}}
}

func (s *StubAuthenticator) WithToken(token string, identity Identity) *StubAuthenticator {
	s.Identities[token] = identity
	return s
}

func (s *StubAuthenticator) Authenticate(ctx context.Context, token string) (Identity, error) {
	identity, ok := s.Identities[token]
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return identity, nil
}
