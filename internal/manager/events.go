package manager

// Notification names published by the manager.
const (
	NoteEventConstructed  = "event_constructed"
	NoteEventDestructed   = "event_destructed"
	NoteConstructFailed   = "construct_failed"
	NoteImplDataReleased  = "impl_data_released"
	NoteEventsReleased    = "events_released"
	NoteImplChanged       = "impl_changed"
	NoteImplDetached      = "impl_detached"
	NoteContractViolation = "contract_violation"
)

// Notification is a manager lifecycle notification.
// Minimal and stable: name, optional event id/trigger/backend and extra fields.
type Notification struct {
	Name    string
	EventID string
	Trigger string
	Backend string
	Fields  map[string]any
}

// EventPublisher receives notifications from the manager. Publish is called
// with the manager lock held: implementations must be non-blocking, must not
// panic and must not call back into the manager.
type EventPublisher interface {
	Publish(Notification)
}

// noopPublisher is the default; it drops notifications.
type noopPublisher struct{}

func (noopPublisher) Publish(Notification) {}
