// Package registry holds the trigger definitions game objects can fire.
package registry

import (
	"fmt"
	"strings"

	"audiod/pkg/types"
)

// Registry is an immutable set of triggers keyed by name.
type Registry struct {
	byName map[string]types.Trigger
	order  []string
}

// New builds a registry from defs. Names must be non-empty and unique;
// surrounding whitespace is trimmed.
func New(defs []types.Trigger) (*Registry, error) {
	r := &Registry{byName: make(map[string]types.Trigger, len(defs))}
	for i, d := range defs {
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" {
			return nil, fmt.Errorf("triggers[%d]: empty name", i)
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("triggers[%d]: duplicate name %q", i, d.Name)
		}
		if d.FrequencyHz < 0 || d.DurationMS < 0 {
			return nil, fmt.Errorf("trigger %q: frequency and duration must be >= 0", d.Name)
		}
		r.byName[d.Name] = d
		r.order = append(r.order, d.Name)
	}
	return r, nil
}

// Lookup returns the trigger named name.
func (r *Registry) Lookup(name string) (types.Trigger, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// List returns the triggers in definition order.
func (r *Registry) List() []types.Trigger {
	out := make([]types.Trigger, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.byName[n])
	}
	return out
}

// Len returns the number of triggers.
func (r *Registry) Len() int { return len(r.order) }
