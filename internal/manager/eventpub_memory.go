package manager

import "sync"

// MemoryPublisher stores notifications in-memory for tests.
type MemoryPublisher struct {
	mu    sync.Mutex
	notes []Notification
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(n Notification) {
	p.mu.Lock()
	p.notes = append(p.notes, n)
	p.mu.Unlock()
}

func (p *MemoryPublisher) Notifications() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Notification, len(p.notes))
	copy(out, p.notes)
	return out
}

// Count returns how many notifications named name were published.
func (p *MemoryPublisher) Count(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.notes {
		if e.Name == name {
			n++
		}
	}
	return n
}
