// Package engine runs the audio update pass: it fires triggers for game
// objects, completes finished events, virtualizes distant ones and performs
// backend switches through the event manager.
//
// Fire, Stop, SwitchBackend and Step must be called from the update
// goroutine (the one running Run, or the caller when stepping manually).
// Other goroutines use Play, StopEvent and Switch, which marshal the call
// onto the update goroutine. Read-only methods are safe from any goroutine.
package engine

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"audiod/internal/manager"
	"audiod/internal/registry"
	"audiod/pkg/types"
)

const (
	defaultFrameInterval = 16 * time.Millisecond
	commandQueueSize     = 64
)

// Config configures an Engine.
type Config struct {
	// Backend is the name of the initial backend (see manager.BackendNames).
	Backend       string
	PoolSize      int
	FrameInterval time.Duration
	// AudibleRange virtualizes events whose owner is at least this far from
	// the listener. Zero disables virtualization.
	AudibleRange float64
	Listener     types.Vec3
	Objects      []types.GameObject
	Triggers     *registry.Registry
	// Output carries the audio format for rendering backends. Its Triggers
	// and Logger fields are set by the engine.
	Output      manager.ImplOptions
	Logger      *zerolog.Logger
	Publisher   manager.EventPublisher
	OnViolation func(*manager.ContractViolation)
}

// active is the engine-side bookkeeping for a live event.
type active struct {
	ev      *manager.Event
	trig    types.Trigger
	obj     *object
	length  time.Duration // 0 for looping events
	elapsed time.Duration
}

type refire struct {
	trig types.Trigger
	obj  *object
}

// Engine drives an EventManager.
type Engine struct {
	mgr      *manager.EventManager
	triggers *registry.Registry
	implOpts manager.ImplOptions
	log      zerolog.Logger

	interval     time.Duration
	audibleRange float64
	listener     types.Vec3
	objects      map[string]*object
	objectOrder  []*object

	// update goroutine state
	clock   time.Duration
	live    map[string]*active
	pending []refire

	frames  atomic.Uint64
	cmds    chan func()
	stopped chan struct{}
}

// New opens the configured backend and builds an engine around it.
func New(cfg Config) (*Engine, error) {
	e := &Engine{
		triggers:     cfg.Triggers,
		interval:     cfg.FrameInterval,
		audibleRange: cfg.AudibleRange,
		listener:     cfg.Listener,
		objects:      make(map[string]*object, len(cfg.Objects)),
		live:         make(map[string]*active),
		cmds:         make(chan func(), commandQueueSize),
		stopped:      make(chan struct{}),
	}
	if e.triggers == nil {
		e.triggers, _ = registry.New(nil)
	}
	if e.interval <= 0 {
		e.interval = defaultFrameInterval
	}
	if cfg.Logger != nil {
		e.log = cfg.Logger.With().Str("component", "engine").Logger()
	} else {
		e.log = zerolog.Nop()
	}
	for _, def := range cfg.Objects {
		o := newObject(def)
		e.objects[def.Name] = o
		e.objectOrder = append(e.objectOrder, o)
	}

	e.implOpts = cfg.Output
	e.implOpts.Triggers = e.triggers.Lookup
	e.implOpts.Logger = cfg.Logger

	var impl manager.Impl
	if cfg.Backend != "" {
		var err error
		if impl, err = manager.OpenImpl(cfg.Backend, e.implOpts); err != nil {
			return nil, err
		}
	}
	e.mgr = manager.NewWithConfig(manager.ManagerConfig{
		Impl:        impl,
		PoolSize:    cfg.PoolSize,
		Logger:      cfg.Logger,
		Publisher:   cfg.Publisher,
		OnViolation: cfg.OnViolation,
	})
	return e, nil
}

// Manager exposes the underlying event manager.
func (e *Engine) Manager() *manager.EventManager { return e.mgr }

// Ready reports whether a backend is active.
func (e *Engine) Ready() bool { return e.mgr.Impl() != nil }

// Fire constructs an event for trigger owned by the named object. An empty
// object name fires an ownerless event.
func (e *Engine) Fire(trigger, objectName string) (*manager.Event, error) {
	trig, ok := e.triggers.Lookup(trigger)
	if !ok {
		return nil, ErrTriggerNotFound(trigger)
	}
	var obj *object
	if objectName != "" {
		if obj, ok = e.objects[objectName]; !ok {
			return nil, ErrObjectNotFound(objectName)
		}
	}
	return e.fire(trig, obj)
}

func (e *Engine) fire(trig types.Trigger, obj *object) (*manager.Event, error) {
	if !e.Ready() {
		return nil, ErrNoBackend
	}
	var owner manager.Object
	if obj != nil {
		owner = obj
	}
	ev, err := e.mgr.ConstructEvent(trig.Name, owner)
	if err != nil {
		return nil, err
	}
	a := &active{ev: ev, trig: trig, obj: obj}
	if !trig.Loop {
		a.length = time.Duration(e.implOpts.Resolve(trig.Name).DurationMS) * time.Millisecond
	}
	e.live[ev.ID().String()] = a
	e.virtualize(a)
	e.log.Debug().Str("trigger", trig.Name).Str("event", ev.ID().String()).Msg("event fired")
	return ev, nil
}

// Stop destructs the live event with the given id.
func (e *Engine) Stop(id string) error {
	a, ok := e.live[id]
	if !ok {
		return ErrEventNotFound(id)
	}
	e.stop(id, a)
	return nil
}

func (e *Engine) stop(id string, a *active) {
	delete(e.live, id)
	e.mgr.DestructEvent(a.ev)
}

// SwitchBackend opens the named backend and swaps it in. Every live event is
// torn down; looping events are fired again on the new backend during the
// next Step.
func (e *Engine) SwitchBackend(name string) (types.SwitchResponse, error) {
	next, err := manager.OpenImpl(name, e.implOpts)
	if err != nil {
		return types.SwitchResponse{}, err
	}

	var loops []refire
	for _, a := range e.live {
		if a.trig.Loop {
			loops = append(loops, refire{trig: a.trig, obj: a.obj})
		}
	}

	res := e.mgr.SwitchImpl(next)
	if e.mgr.Impl() != next {
		// Rejected by a non-panicking violation handler; the live events are
		// still tracked on the old backend.
		e.closeImpl(next)
		return types.SwitchResponse{}, fmt.Errorf("switch to %s rejected", name)
	}
	clear(e.live)
	prev := ""
	if res.Previous != nil {
		prev = res.Previous.Name()
	}
	e.closeImpl(res.Previous)
	e.pending = append(e.pending, loops...)

	return types.SwitchResponse{
		Previous: prev,
		Current:  e.mgr.Snapshot().Backend,
		Released: res.Released,
		Refired:  len(loops),
	}, nil
}

func (e *Engine) closeImpl(impl manager.Impl) {
	c, ok := impl.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		e.log.Warn().Err(err).Str("backend", impl.Name()).Msg("close backend failed")
	}
}

// Shutdown tears down every event and detaches the backend. Run calls it on
// exit; callers stepping the engine manually call it themselves. A non-nil error
// means events leaked past the teardown.
func (e *Engine) Shutdown() error {
	clear(e.live)
	e.pending = nil
	res := e.mgr.SwitchImpl(nil)
	e.closeImpl(res.Previous)
	return e.mgr.Close()
}

// Status reports manager counters and the number of processed frames.
func (e *Engine) Status() types.StatusResponse {
	st := e.mgr.Status()
	st.Frames = e.frames.Load()
	return st
}

// Query lists live events whose trigger contains search and whose owner is
// closer than maxDistance to the listener (0 disables the distance check).
// Results are sorted by trigger, then id.
func (e *Engine) Query(search string, maxDistance float64) []types.EventInfo {
	out := e.mgr.Query(manager.DebugFilter{Search: search, MaxDistance: maxDistance, Listener: e.listener})
	slices.SortFunc(out, func(a, b types.EventInfo) int {
		return cmp.Or(cmp.Compare(a.Trigger, b.Trigger), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// ListTriggers returns the registered triggers.
func (e *Engine) ListTriggers() []types.Trigger { return e.triggers.List() }

// Backends lists registered backends and the active one.
func (e *Engine) Backends() types.BackendsResponse {
	return types.BackendsResponse{Backends: manager.BackendNames(), Active: e.mgr.Snapshot().Backend}
}
