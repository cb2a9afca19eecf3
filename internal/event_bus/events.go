package event_bus

import "time"

const (
	TopicIdentityChanged EventType = "identity.changed"
	TopicEventCreated    EventType = "event.created"
	TopicEventUpdated    EventType = "event.updated"
	TopicEventDeleted    EventType = "event.deleted"
	TopicSyncRollback    EventType = "sync.rollback"
)

// IdentityChanged is published when the authenticated identity appears,
// changes, or is cleared (Subject empty means signed out).
type IdentityChanged struct {
	Subject     string
	DisplayName string
}

type EventCreated struct {
	ID      string
	Title   string
	StartAt time.Time
	EndAt   time.Time
}

type EventUpdated struct {
	ID      string
	Title   string
	StartAt time.Time
	EndAt   time.Time
}

type EventDeleted struct {
	ID string
}

// SyncRollback is published when an optimistic local change had to be undone
// because the remote store rejected it.
type SyncRollback struct {
	OperationID string
	EventID     string
	Reason      string
}
