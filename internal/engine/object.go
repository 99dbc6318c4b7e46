package engine

import (
	"time"

	"audiod/pkg/types"
)

// object is a configured game object. It implements manager.Object.
type object struct {
	def      types.GameObject
	interval time.Duration
	nextEmit time.Duration
	emitted  bool
}

func newObject(def types.GameObject) *object {
	return &object{def: def, interval: time.Duration(def.EmitIntervalMS) * time.Millisecond}
}

func (o *object) Name() string         { return o.def.Name }
func (o *object) Position() types.Vec3 { return o.def.Position }

// due reports whether the object should emit at clock and advances its schedule.
func (o *object) due(clock time.Duration) bool {
	if len(o.def.Emit) == 0 {
		return false
	}
	if !o.emitted {
		o.emitted = true
		o.nextEmit = clock + o.interval
		return true
	}
	if o.interval <= 0 || clock < o.nextEmit {
		return false
	}
	// Skip missed periods instead of bursting after a long frame.
	for o.nextEmit <= clock {
		o.nextEmit += o.interval
	}
	return true
}
