package event_sync

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/calevents/calevents/internal/event_bus"
	"github.com/calevents/calevents/pkg/auth"
	"github.com/calevents/calevents/pkg/event"
	"github.com/calevents/calevents/pkg/event_store"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrStaleLoad is returned when a load finishes after the identity changed
// mid-flight; its result has been discarded.
var ErrStaleLoad = errors.New("event load superseded by identity change")

// ErrNotFound is returned when an update targets an id that is not in the
// local collection.
var ErrNotFound = errors.New("event not found in collection")

// Service owns the in-memory event collection and keeps it in sync with the
// remote store. Mutations are optimistic: the local collection reflects user
// intent immediately and is rolled back when the store rejects the change.
// All other components read snapshots and never mutate the collection.
type Service struct {
	store event_store.Store
	bus   *event_bus.EventBus

	mu         sync.Mutex
	events     []event.Event
	identity   *auth.Identity
	loadGen    uint64
	cancelLoad context.CancelFunc
	ops        []*Operation
}

func NewService(store event_store.Store, bus *event_bus.EventBus) *Service {
	return &Service{
		store: store,
		bus:   bus,
	}
}

// SetIdentity switches the collection to a new identity (nil signs out).
// Any in-flight load is cancelled so a late response cannot overwrite the
// new identity's data, the collection is cleared, and a fresh load is
// started for the new identity.
func (s *Service) SetIdentity(ctx context.Context, identity *auth.Identity) {
	s.mu.Lock()
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	s.loadGen++
	s.identity = identity
	s.events = nil
	s.mu.Unlock()

	if identity == nil {
		log.Debug("identity cleared, event collection reset")
		return
	}

	// The load outlives the triggering request but keeps its values.
	loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	s.cancelLoad = cancel
	s.mu.Unlock()

	go func() {
		if _, err := s.Load(loadCtx); err != nil &&
			!errors.Is(err, ErrStaleLoad) && !errors.Is(err, context.Canceled) {
			log.Errorf("failed to load events for %s: %v", identity.Subject, err)
		}
	}()
}

// Load fetches the full event list from the store and replaces the local
// collection. On failure the collection is reset to empty rather than left
// partially stale. A load that completes after the identity changed is
// discarded and reported as ErrStaleLoad.
func (s *Service) Load(ctx context.Context) ([]event.Event, error) {
	s.mu.Lock()
	gen := s.loadGen
	s.mu.Unlock()

	events, err := s.store.ListEvents(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen {
		log.Debugf("discarding stale event load (generation %d)", gen)
		return nil, ErrStaleLoad
	}
	if err != nil {
		s.events = nil
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	s.events = slices.Clone(events)
	return slices.Clone(s.events), nil
}

// Snapshot returns a copy of the current collection.
func (s *Service) Snapshot() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

// Create appends e to the collection optimistically, persists it, and on
// success swaps in the server-confirmed record (which carries the
// authoritative id). On failure the local entry is removed again.
func (s *Service) Create(ctx context.Context, e event.Event) (*event.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if e.ID == "" {
		// Temporary client id until the server confirms.
		e.ID = uuid.NewString()
	}

	op := &Operation{ID: uuid.NewString(), Kind: OpCreate, EventID: e.ID, State: StatePending}
	s.mu.Lock()
	s.events = append(s.events, e)
	s.ops = append(s.ops, op)
	s.mu.Unlock()

	stored, err := s.store.CreateEvent(ctx, e)

	s.mu.Lock()
	if err != nil {
		s.removeLocked(e.ID)
		op.State = StateRolledBack
		op.Error = err.Error()
		s.mu.Unlock()
		s.publishRollback(ctx, op)
		return nil, fmt.Errorf("failed to persist event: %w", err)
	}
	s.replaceLocked(e.ID, *stored)
	op.State = StateConfirmed
	op.EventID = stored.ID
	s.mu.Unlock()

	s.publish(ctx, event_bus.TopicEventCreated, event_bus.EventCreated{
		ID:      stored.ID,
		Title:   stored.Title,
		StartAt: stored.StartAt,
		EndAt:   stored.EndAt,
	})
	return stored, nil
}

// Update replaces the matching collection entry optimistically and persists
// the change. On failure the previous record is restored.
func (s *Service) Update(ctx context.Context, e event.Event) (*event.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	idx := s.indexOfLocked(e.ID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	previous := s.events[idx]
	s.events[idx] = e
	op := &Operation{ID: uuid.NewString(), Kind: OpUpdate, EventID: e.ID, State: StatePending}
	s.ops = append(s.ops, op)
	s.mu.Unlock()

	stored, err := s.store.UpdateEvent(ctx, e)

	s.mu.Lock()
	if err != nil {
		s.replaceLocked(e.ID, previous)
		op.State = StateRolledBack
		op.Error = err.Error()
		s.mu.Unlock()
		s.publishRollback(ctx, op)
		return nil, fmt.Errorf("failed to persist event update: %w", err)
	}
	s.replaceLocked(e.ID, *stored)
	op.State = StateConfirmed
	s.mu.Unlock()

	s.publish(ctx, event_bus.TopicEventUpdated, event_bus.EventUpdated{
		ID:      stored.ID,
		Title:   stored.Title,
		StartAt: stored.StartAt,
		EndAt:   stored.EndAt,
	})
	return stored, nil
}

// Remove deletes the event from the store and, once confirmed, from the
// local collection. An id the store no longer has is a no-op, not an error:
// a concurrent refresh may already have removed it. On any other failure the
// local collection is left untouched.
func (s *Service) Remove(ctx context.Context, id string) error {
	err := s.store.DeleteEvent(ctx, id)
	if err != nil && !errors.Is(err, event_store.ErrNotFound) {
		log.Errorf("failed to delete event %s: %v", id, err)
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.mu.Lock()
	removed := s.removeLocked(id)
	op := &Operation{ID: uuid.NewString(), Kind: OpDelete, EventID: id, State: StateConfirmed}
	if errors.Is(err, event_store.ErrNotFound) && !removed {
		// Nothing to do on either side.
		s.mu.Unlock()
		return nil
	}
	s.ops = append(s.ops, op)
	s.mu.Unlock()

	s.publish(ctx, event_bus.TopicEventDeleted, event_bus.EventDeleted{ID: id})
	return nil
}

// Operations returns a copy of the recorded operations, oldest first.
func (s *Service) Operations() []Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := make([]Operation, 0, len(s.ops))
	for _, op := range s.ops {
		ops = append(ops, *op)
	}
	return ops
}

func (s *Service) indexOfLocked(id string) int {
	for i, e := range s.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) removeLocked(id string) bool {
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return false
	}
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	return true
}

func (s *Service) replaceLocked(id string, e event.Event) {
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.events = append(s.events, e)
		return
	}
	s.events[idx] = e
}

func (s *Service) publish(ctx context.Context, topic event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, topic, data)); err != nil {
		log.Errorf("failed to publish %s: %v", topic, err)
	}
}

func (s *Service) publishRollback(ctx context.Context, op *Operation) {
	s.publish(ctx, event_bus.TopicSyncRollback, event_bus.SyncRollback{
		OperationID: op.ID,
		EventID:     op.EventID,
		Reason:      op.Error,
	})
}
