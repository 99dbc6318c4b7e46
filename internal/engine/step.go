package engine

import (
	"time"

	"audiod/internal/manager"
)

// Step advances the engine by dt. Live events age first, so events created
// during this step (queued commands, re-fires after a switch, emitters) start
// with a full lifetime. Virtualization runs last.
func (e *Engine) Step(dt time.Duration) {
	e.clock += dt
	e.advance(dt)

	e.drain()
	e.firePending()
	e.emit()
	for _, a := range e.live {
		e.virtualize(a)
	}
	e.frames.Add(1)
}

func (e *Engine) drain() {
	for {
		select {
		case fn := <-e.cmds:
			fn()
		default:
			return
		}
	}
}

func (e *Engine) firePending() {
	if len(e.pending) == 0 || !e.Ready() {
		return
	}
	pending := e.pending
	e.pending = nil
	for _, r := range pending {
		if _, err := e.fire(r.trig, r.obj); err != nil {
			e.log.Warn().Err(err).Str("trigger", r.trig.Name).Msg("re-fire after switch failed")
		}
	}
}

func (e *Engine) emit() {
	if !e.Ready() {
		return
	}
	for _, o := range e.objectOrder {
		if !o.due(e.clock) {
			continue
		}
		for _, name := range o.def.Emit {
			trig, ok := e.triggers.Lookup(name)
			if !ok {
				e.log.Warn().Str("object", o.Name()).Str("trigger", name).Msg("object emits unknown trigger")
				continue
			}
			if trig.Loop && e.looping(o, name) {
				continue
			}
			if _, err := e.fire(trig, o); err != nil {
				e.log.Warn().Err(err).Str("object", o.Name()).Str("trigger", name).Msg("emit failed")
			}
		}
	}
}

// looping reports whether o already has a live loop of trigger.
func (e *Engine) looping(o *object, trigger string) bool {
	for _, a := range e.live {
		if a.obj == o && a.trig.Name == trigger {
			return true
		}
	}
	return false
}

// advance completes non-looping events that played their full length.
func (e *Engine) advance(dt time.Duration) {
	for id, a := range e.live {
		if a.length == 0 {
			continue
		}
		a.elapsed += dt
		if a.elapsed >= a.length {
			e.stop(id, a)
		}
	}
}

func (e *Engine) virtualize(a *active) {
	if e.audibleRange <= 0 || a.obj == nil {
		return
	}
	st := a.ev.State()
	if st != manager.StatePlaying && st != manager.StateVirtual {
		return
	}
	want := manager.StatePlaying
	if a.obj.Position().Distance(e.listener) >= e.audibleRange {
		want = manager.StateVirtual
	}
	if st != want {
		e.mgr.SetEventState(a.ev, want)
	}
}
