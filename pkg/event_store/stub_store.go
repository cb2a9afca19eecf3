package event_store

import (
	"context"
	"sort"
	"sync"

	"github.com/calevents/calevents/pkg/event"
	"github.com/google/uuid"
)

// StubStore is an in-memory Store for tests. Failures can be injected per
// operation to exercise rollback paths.
type StubStore struct {
	mu    sync.Mutex
	items map[string]event.Event
	errs  map[string]error // operation name -> injected error
}

func NewStubStore() *StubStore {
	return &StubStore{
		items: make(map[string]event.Event),
		errs:  make(map[string]error),
	}
}

// FailWith makes the named operation ("list", "create", "update", "delete")
// return err until cleared with FailWith(op, nil).
func (s *StubStore) FailWith(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.errs, op)
		return
	}
	s.errs[op] = err
}

func (s *StubStore) ListEvents(ctx context.Context) ([]event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs["list"]; err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(s.items))
	for _, e := range s.items {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartAt.Before(events[j].StartAt)
	})
	return events, nil
}

func (s *StubStore) CreateEvent(ctx context.Context, e event.Event) (*event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs["create"]; err != nil {
		return nil, err
	}

	// The server assigns the authoritative id regardless of any temporary
	// client-side one.
	e.ID = uuid.NewString()
	s.items[e.ID] = e
	return &e, nil
}

func (s *StubStore) UpdateEvent(ctx context.Context, e event.Event) (*event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs["update"]; err != nil {
		return nil, err
	}

	if _, ok := s.items[e.ID]; !ok {
		return nil, ErrNotFound
	}
	s.items[e.ID] = e
	return &e, nil
}

func (s *StubStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs["delete"]; err != nil {
		return err
	}

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Seed inserts events directly, bypassing failure injection.
func (s *StubStore) Seed(events ...event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		s.items[e.ID] = e
	}
}

// Len reports the number of stored events.
func (s *StubStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
