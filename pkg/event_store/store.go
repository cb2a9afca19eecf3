package event_store

import (
	"context"
	"errors"

	"github.com/calevents/calevents/pkg/event"
)

var (
	// ErrNotFound is returned when the store has no event with the given id,
	// including events a concurrent refresh has already removed.
	ErrNotFound = errors.New("event not found in store")
	// ErrUnauthenticated is returned when the store rejects the bearer token.
	ErrUnauthenticated = errors.New("event store rejected credentials")
)

// Store is the remote event store capability. The REST client is the primary
// implementation; a Google Calendar-backed one can be selected by
// configuration.
type Store interface {
	ListEvents(ctx context.Context) ([]event.Event, error)
	CreateEvent(ctx context.Context, e event.Event) (*event.Event, error)
	UpdateEvent(ctx context.Context, e event.Event) (*event.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
