package auth

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const IdentityKey contextKey = "identity"

// CurrentIdentity retrieves the identity from the context. Returns
// ErrUnauthenticated if no identity is present.
func CurrentIdentity(ctx context.Context) (Identity, error) {
	identity, ok := ctx.Value(IdentityKey).(Identity)
	if !ok {
		log.Trace("identity not found in context")
		return Identity{}, ErrUnauthenticated
	}
	return identity, nil
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}
