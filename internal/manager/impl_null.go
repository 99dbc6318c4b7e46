package manager

import (
	"fmt"
	"sync"
)

// NullImpl is an in-process backend that produces no sound. Every event gets a
// voice record so leaks and double frees are caught.
type NullImpl struct {
	mu          sync.Mutex
	nextID      uint64
	live        map[uint64]*nullVoice
	constructed uint64
	destructed  uint64
}

type nullVoice struct {
	id      uint64
	trigger string
}

func NewNullImpl() *NullImpl {
	return &NullImpl{live: make(map[uint64]*nullVoice)}
}

func (n *NullImpl) Name() string { return "null" }

func (n *NullImpl) ConstructEvent(ev *Event) (Payload, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	v := &nullVoice{id: n.nextID, trigger: ev.TriggerName()}
	n.live[v.id] = v
	n.constructed++
	ev.setState(StatePlaying)
	return v, nil
}

func (n *NullImpl) DestructEvent(p Payload) {
	v, ok := p.(*nullVoice)
	if !ok {
		panic(fmt.Sprintf("null backend: foreign payload %T", p))
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.live[v.id]; !ok {
		panic(fmt.Sprintf("null backend: voice %d destructed twice", v.id))
	}
	delete(n.live, v.id)
	n.destructed++
}

// Live returns the number of voices not yet destructed.
func (n *NullImpl) Live() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.live)
}

// Totals returns how many voices were constructed and destructed.
func (n *NullImpl) Totals() (constructed, destructed uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.constructed, n.destructed
}
