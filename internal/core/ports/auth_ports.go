package ports

import (
	"context"
)

type TokenPayload struct {
	Subject string
	Email   string
	Name    string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*TokenPayload, error)
}

// Credentials carries what a request presents to identify its caller.
type Credentials struct {
	Host          string // hostname the request was addressed to, without port
	AuthDisabled  bool   // caller asked to skip verification (auth=false)
	Authorization string // raw Authorization header value
}

type AuthService interface {
	// ResolveIdentity returns the email the vote is recorded under.
	ResolveIdentity(ctx context.Context, creds Credentials) (string, error)
}
