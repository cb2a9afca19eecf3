package auth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// ErrUnauthenticated is returned when an operation requires a signed-in
// identity and none is present.
var ErrUnauthenticated = errors.New("no authenticated identity")

// Identity describes the signed-in user as reported by the identity provider.
type Identity struct {
	Subject     string
	DisplayName string
	Email       string
}

// Provider is the identity capability consumed by the scheduling core. The
// concrete implementation wraps whatever identity service the deployment
// uses; the core only needs the current identity and a bearer token source.
type Provider interface {
	CurrentIdentity(ctx context.Context) (Identity, error)
	IsAuthenticated(ctx context.Context) bool
	TokenSource() oauth2.TokenSource
}
