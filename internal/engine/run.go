package engine

import (
	"context"
	"sync/atomic"
	"time"

	"audiod/pkg/types"
)

// Run steps the engine every frame interval and executes queued commands
// until ctx is done. On exit every event is torn down and the backend is
// detached; the returned error reports events that leaked past teardown.
// Run must be called at most once.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.stopped)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.log.Info().Dur("interval", e.interval).Str("backend", e.mgr.Snapshot().Backend).Msg("engine started")
	for {
		select {
		case <-ctx.Done():
			err := e.Shutdown()
			e.log.Info().Uint64("frames", e.frames.Load()).Msg("engine stopped")
			return err
		case fn := <-e.cmds:
			fn()
		case <-ticker.C:
			e.Step(e.interval)
		}
	}
}

// Command claim states. A queued command runs only if it moves from
// pending to running before its caller gives up.
const (
	cmdPending int32 = iota
	cmdRunning
	cmdAbandoned
)

// do runs fn on the update goroutine and waits for it to finish. When ctx ends
// or the loop stops before fn started, fn never runs and the error is returned;
// once fn started, do waits for it and reports success.
func (e *Engine) do(ctx context.Context, fn func()) error {
	var state atomic.Int32
	done := make(chan struct{})
	cmd := func() {
		defer close(done)
		if !state.CompareAndSwap(cmdPending, cmdRunning) {
			return
		}
		fn()
	}
	select {
	case e.cmds <- cmd:
	case <-e.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	var abortErr error
	select {
	case <-done:
		return nil
	case <-e.stopped:
		abortErr = ErrStopped
	case <-ctx.Done():
		abortErr = ctx.Err()
	}
	if state.CompareAndSwap(cmdPending, cmdAbandoned) {
		return abortErr
	}
	// fn is running or finished; its effects are visible, so report them.
	<-done
	return nil
}

// Play fires trigger for the named object and returns the new event id.
func (e *Engine) Play(ctx context.Context, trigger, object string) (string, error) {
	var (
		id  string
		err error
	)
	if derr := e.do(ctx, func() {
		ev, ferr := e.Fire(trigger, object)
		if ferr != nil {
			err = ferr
			return
		}
		id = ev.ID().String()
	}); derr != nil {
		return "", derr
	}
	return id, err
}

// StopEvent destructs the live event with the given id.
func (e *Engine) StopEvent(ctx context.Context, id string) error {
	var err error
	if derr := e.do(ctx, func() { err = e.Stop(id) }); derr != nil {
		return derr
	}
	return err
}

// Switch swaps the active backend for the named one.
func (e *Engine) Switch(ctx context.Context, backend string) (types.SwitchResponse, error) {
	var (
		res types.SwitchResponse
		err error
	)
	if derr := e.do(ctx, func() { res, err = e.SwitchBackend(backend) }); derr != nil {
		return types.SwitchResponse{}, derr
	}
	return res, err
}
