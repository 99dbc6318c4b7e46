package manager

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventManager exclusively owns every constructed Event and pairs each one
// with the payload of the active Impl.
type EventManager struct {
	mu     sync.Mutex
	impl   Impl
	phase  Phase
	events []*Event // tracked set; events[i].slot == i

	log         zerolog.Logger
	publisher   EventPublisher
	onViolation func(*ContractViolation)

	startTime        time.Time
	constructedTotal uint64
	destructedTotal  uint64
	releasedTotal    uint64
	switchesTotal    uint64
	failuresTotal    uint64
	violationsTotal  uint64
}

// New returns an EventManager using impl as the active backend and package defaults.
func New(impl Impl) *EventManager {
	return NewWithConfig(ManagerConfig{Impl: impl})
}

// Initialize reserves room for expectedCount events. It has no other effect.
func (m *EventManager) Initialize(expectedCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if expectedCount > len(m.events) {
		m.events = slices.Grow(m.events, expectedCount-len(m.events))
	}
}

// ConstructEvent creates an event for trigger fired by owner, obtains its
// payload from the active backend and starts tracking it. The returned Event
// is owned by the manager and must be handed back to DestructEvent.
//
// Calling it without an active backend or in the middle of a backend swap is
// a contract violation. A backend construct error is returned wrapped (see
// IsConstructFailed) and the event is never tracked.
func (m *EventManager) ConstructEvent(trigger string, owner Object) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.impl == nil {
		return nil, m.violate("ConstructEvent", "no active implementation")
	}
	if m.phase != PhaseSteady {
		return nil, m.violate("ConstructEvent", "cannot construct while phase is %s", m.phase)
	}

	ev := &Event{
		id:      uuid.New(),
		trigger: trigger,
		owner:   owner,
		state:   StateLoading,
		mgr:     m,
		slot:    -1,
	}
	backend := m.impl.Name()
	p, err := m.impl.ConstructEvent(ev)
	if err != nil {
		ev.destroy()
		m.failuresTotal++
		m.log.Warn().Err(err).Str("trigger", trigger).Str("backend", backend).Msg("construct event failed")
		m.publisher.Publish(Notification{Name: NoteConstructFailed, Trigger: trigger, Backend: backend, Fields: map[string]any{"error": err.Error()}})
		return nil, constructFailedError{trigger: trigger, backend: backend, err: err}
	}
	if p == nil {
		ev.destroy()
		return nil, m.violate("ConstructEvent", "backend %s returned no payload for %q", backend, trigger)
	}

	ev.payload = p
	ev.slot = len(m.events)
	m.events = append(m.events, ev)
	m.constructedTotal++
	m.publisher.Publish(Notification{Name: NoteEventConstructed, EventID: ev.id.String(), Trigger: trigger, Backend: backend})
	return ev, nil
}

// DestructEvent stops tracking ev, hands its payload back to the backend and
// destroys it. Removal swaps the last tracked event into ev's slot, so the
// iteration order of the tracked set is not stable.
//
// ev must be non-nil, tracked by this manager and still hold its payload.
func (m *EventManager) DestructEvent(ev *Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev == nil {
		m.violate("DestructEvent", "nil event")
		return
	}
	if !m.tracks(ev) {
		m.violate("DestructEvent", "event %s is not tracked", ev.id)
		return
	}
	if ev.payload == nil {
		m.violate("DestructEvent", "event %s has no backend data", ev.id)
		return
	}

	m.remove(ev)
	m.impl.DestructEvent(ev.payload)
	ev.release()
	id := ev.id.String()
	trigger := ev.trigger
	ev.destroy()
	m.destructedTotal++
	m.publisher.Publish(Notification{Name: NoteEventDestructed, EventID: id, Trigger: trigger, Backend: m.impl.Name()})
}

// ReleaseImplData hands every tracked payload back to the backend and clears
// it, keeping the events themselves tracked. It is the first step of a backend
// swap; afterwards no tracked event holds backend data.
func (m *EventManager) ReleaseImplData() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseImplDataLocked()
}

func (m *EventManager) releaseImplDataLocked() {
	if m.phase != PhaseSteady {
		m.violate("ReleaseImplData", "cannot release backend data while phase is %s", m.phase)
		return
	}
	for _, ev := range m.events {
		m.impl.DestructEvent(ev.payload)
		ev.release()
	}
	m.phase = PhasePayloadsReleased
	m.publisher.Publish(Notification{Name: NoteImplDataReleased, Backend: m.backendName(), Fields: map[string]any{"events": len(m.events)}})
}

// Release destroys every tracked event and empties the tracked set. Every
// event must already have released its backend data.
func (m *EventManager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
}

func (m *EventManager) releaseLocked() {
	if m.phase != PhasePayloadsReleased {
		m.violate("Release", "backend data must be released first (phase is %s)", m.phase)
		return
	}
	for _, ev := range m.events {
		if ev.payload != nil {
			m.violate("Release", "event %s still holds backend data", ev.id)
			return
		}
	}

	// Events cannot survive a middleware switch: the new backend may not
	// support the same event types, so all of them are destroyed here and
	// new ones are created on demand after the switch.
	n := len(m.events)
	for i, ev := range m.events {
		ev.destroy()
		m.events[i] = nil
	}
	m.events = m.events[:0]
	m.releasedTotal += uint64(n)
	m.phase = PhaseEmpty
	m.publisher.Publish(Notification{Name: NoteEventsReleased, Fields: map[string]any{"events": n}})
}

// SetImpl replaces the active backend. Only allowed while no tracked event
// holds backend data: mid-swap, or with an empty tracked set.
func (m *EventManager) SetImpl(next Impl) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseSteady && len(m.events) > 0 {
		m.violate("SetImpl", "%d events still hold backend data", len(m.events))
		return
	}
	m.impl = next
}

// OnAfterImplChanged checks that the swap sequence left the tracked set empty
// and allows construction again.
func (m *EventManager) OnAfterImplChanged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onAfterImplChangedLocked()
}

func (m *EventManager) onAfterImplChangedLocked() {
	if n := len(m.events); n != 0 {
		m.violate("OnAfterImplChanged", "%d events survived the backend switch", n)
		return
	}
	m.phase = PhaseSteady
}

// GetNumConstructed returns the number of tracked events.
func (m *EventManager) GetNumConstructed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// SetEventState updates the state of a tracked event.
func (m *EventManager) SetEventState(ev *Event, s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ev == nil || !m.tracks(ev) {
		m.violate("SetEventState", "event is not tracked")
		return
	}
	ev.state = s
}

// Impl returns the active backend, nil when none is set.
func (m *EventManager) Impl() Impl {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.impl
}

// Close verifies the manager is empty at teardown. Leftover events are a
// leak and reported as a contract violation.
func (m *EventManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := len(m.events); n != 0 {
		return m.violate("Close", "%d events still tracked at shutdown", n)
	}
	return nil
}

func (m *EventManager) tracks(ev *Event) bool {
	return ev.mgr == m && !ev.dead &&
		ev.slot >= 0 && ev.slot < len(m.events) && m.events[ev.slot] == ev
}

// remove drops ev from the tracked set in O(1) by moving the last event into its slot.
func (m *EventManager) remove(ev *Event) {
	last := len(m.events) - 1
	if ev.slot != last {
		moved := m.events[last]
		m.events[ev.slot] = moved
		moved.slot = ev.slot
	}
	m.events[last] = nil
	m.events = m.events[:last]
}

func (m *EventManager) backendName() string {
	if m.impl == nil {
		return ""
	}
	return m.impl.Name()
}

// violate reports a contract violation to the handler. It only returns when
// the handler does not panic; the caller then skips the operation.
func (m *EventManager) violate(op, format string, args ...any) *ContractViolation {
	v := &ContractViolation{Op: op, Msg: fmt.Sprintf(format, args...)}
	m.violationsTotal++
	m.log.Error().Str("op", op).Msg(v.Msg)
	m.publisher.Publish(Notification{Name: NoteContractViolation, Backend: m.backendName(), Fields: map[string]any{"op": op, "msg": v.Msg}})
	m.onViolation(v)
	return v
}
