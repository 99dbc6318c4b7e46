package httpapi

import "context"

// serverBaseCtx is canceled on shutdown so pending commands stop waiting.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// commandContext derives the context a handler passes to the service: it is
// canceled with the request, on server shutdown, or after commandTimeout.
func commandContext(req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(req)
	stop := context.AfterFunc(serverBaseCtx, func() { cancel(context.Cause(serverBaseCtx)) })
	release := func() {
		stop()
		cancel(context.Canceled)
	}
	if commandTimeout <= 0 {
		return ctx, release
	}
	tctx, tcancel := context.WithTimeout(ctx, commandTimeout)
	return tctx, func() {
		tcancel()
		release()
	}
}
