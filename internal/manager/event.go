package manager

import "github.com/google/uuid"

// Event is one in-flight or pending trigger instance. Its lifetime belongs to
// the EventManager that constructed it; callers hold the pointer as a handle
// and hand it back to DestructEvent.
type Event struct {
	id      uuid.UUID
	trigger string
	owner   Object
	state   State
	payload Payload

	// Bookkeeping owned by the manager. slot is the index in the tracked set.
	mgr  *EventManager
	slot int
	dead bool
}

func (e *Event) ID() uuid.UUID       { return e.id }
func (e *Event) TriggerName() string { return e.trigger }

// Owner returns the object that fired the trigger, nil once the event is destroyed.
func (e *Event) Owner() Object { return e.owner }

func (e *Event) State() State { return e.state }

// Payload returns the backend data, nil after the backend data was released.
func (e *Event) Payload() Payload { return e.payload }

func (e *Event) HasPayload() bool { return e.payload != nil }

// Alive reports whether the event is still tracked by its manager.
func (e *Event) Alive() bool { return !e.dead }

// setState is for backends inside Impl.ConstructEvent, which runs under the
// manager lock. Everyone else goes through EventManager.SetEventState.
func (e *Event) setState(s State) { e.state = s }

// release drops the middleware-adjacent data. The event stays tracked.
func (e *Event) release() {
	e.payload = nil
	e.state = StateNone
}

// destroy ends the event's life. Requires release to have run.
func (e *Event) destroy() {
	e.owner = nil
	e.mgr = nil
	e.slot = -1
	e.dead = true
}
