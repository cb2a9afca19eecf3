package event_sync

// OperationKind identifies the mutation a pending operation tracks.
type OperationKind string

const (
	OpCreate OperationKind = "create"
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
)

// OperationState is the lifecycle of an optimistic mutation. Every operation
// starts pending and ends either confirmed by the store or rolled back.
type OperationState string

const (
	StatePending    OperationState = "pending"
	StateConfirmed  OperationState = "confirmed"
	StateRolledBack OperationState = "rolled_back"
)

// Operation records one mutation issued against the store and the fate of
// its optimistic local effect.
type Operation struct {
	ID      string
	Kind    OperationKind
	EventID string
	State   OperationState
	Error   string
}
