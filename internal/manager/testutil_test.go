package manager

import (
	"fmt"
	"sync"
	"testing"

	"audiod/pkg/types"
)

// fakeImpl is a lightweight in-memory backend used for tests.
type fakeImpl struct {
	name         string
	constructErr error
	nilPayload   bool

	mu          sync.Mutex
	next        int
	live        map[int]bool
	constructs  int
	destructs   int
	destructLog []int
}

type fakePayload struct{ id int }

func newFakeImpl(name string) *fakeImpl {
	return &fakeImpl{name: name, live: make(map[int]bool)}
}

func (f *fakeImpl) Name() string { return f.name }

func (f *fakeImpl) ConstructEvent(ev *Event) (Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.constructErr != nil {
		return nil, f.constructErr
	}
	if f.nilPayload {
		return nil, nil
	}
	f.next++
	f.live[f.next] = true
	f.constructs++
	ev.setState(StatePlaying)
	return &fakePayload{id: f.next}, nil
}

func (f *fakeImpl) DestructEvent(p Payload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fp := p.(*fakePayload)
	if !f.live[fp.id] {
		panic(fmt.Sprintf("fake backend: payload %d destructed twice", fp.id))
	}
	delete(f.live, fp.id)
	f.destructs++
	f.destructLog = append(f.destructLog, fp.id)
}

func (f *fakeImpl) liveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// fakeObject is a static game object.
type fakeObject struct {
	name string
	pos  types.Vec3
}

func (o fakeObject) Name() string         { return o.name }
func (o fakeObject) Position() types.Vec3 { return o.pos }

// violationRecorder collects violations instead of panicking.
type violationRecorder struct {
	mu   sync.Mutex
	seen []*ContractViolation
}

func (r *violationRecorder) handle(v *ContractViolation) {
	r.mu.Lock()
	r.seen = append(r.seen, v)
	r.mu.Unlock()
}

func (r *violationRecorder) ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.seen))
	for _, v := range r.seen {
		out = append(out, v.Op)
	}
	return out
}

// newTestManager returns a manager on a fresh fake backend.
func newTestManager(t *testing.T) (*EventManager, *fakeImpl) {
	t.Helper()
	impl := newFakeImpl("fake")
	return NewWithConfig(ManagerConfig{Impl: impl}), impl
}

// newLenientManager returns a manager whose violations are recorded, not raised.
func newLenientManager(t *testing.T, impl Impl) (*EventManager, *violationRecorder) {
	t.Helper()
	rec := &violationRecorder{}
	return NewWithConfig(ManagerConfig{Impl: impl, OnViolation: rec.handle}), rec
}

// mustConstruct constructs an event or fails the test.
func mustConstruct(t *testing.T, m *EventManager, trigger string) *Event {
	t.Helper()
	ev, err := m.ConstructEvent(trigger, fakeObject{name: "obj-" + trigger})
	if err != nil {
		t.Fatalf("ConstructEvent(%q): %v", trigger, err)
	}
	return ev
}

// trackedIDs returns the ids of all tracked events.
func trackedIDs(m *EventManager) map[string]bool {
	ids := make(map[string]bool)
	for _, info := range m.Events(types.Vec3{}) {
		ids[info.ID] = true
	}
	return ids
}

// mustPanic fails the test unless fn panics, and returns the recovered value.
func mustPanic(t *testing.T, fn func()) (rec any) {
	t.Helper()
	defer func() {
		rec = recover()
		if rec == nil {
			t.Fatalf("expected panic")
		}
	}()
	fn()
	return nil
}
