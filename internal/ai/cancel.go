package ai

import (
	"context"
	"sync/atomic"
)

// CancelToken is the shared, one-shot cancellation signal spec.md §4.3
// describes: a clone-cheap handle whose Cancel flips a flag and cancels a
// context any provider stream is already selecting on.
//
// Go's select has no native bias, so providers implement the "check
// cancellation first" rule from §4.3's provider abstraction with a
// two-phase poll-then-select: a non-blocking check of ctx.Done() before
// the blocking select that also includes it. This is new code grounded
// in stdlib context idioms — no pack provider client needs a biased
// select, since none of them race a cancel signal against a streaming
// chunk the way this pipeline does.
type CancelToken struct {
	ctx       context.Context
	cancel    context.CancelFunc
	cancelled atomic.Bool
}

// NewCancelToken derives a cancellable context from parent.
func NewCancelToken(parent context.Context) *CancelToken {
	ctx, cancel := context.WithCancel(parent)
	return &CancelToken{ctx: ctx, cancel: cancel}
}

// Cancel trips the signal. Safe to call more than once or concurrently.
func (t *CancelToken) Cancel() {
	t.cancelled.Store(true)
	t.cancel()
}

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	return t.cancelled.Load()
}

// Context returns the derived context, for passing to HTTP requests or
// SDK calls so the underlying I/O aborts promptly on cancellation.
func (t *CancelToken) Context() context.Context {
	return t.ctx
}

// PollCancelledFirst implements the "biased select" rule: check
// cancellation with a non-blocking poll before falling into the real
// select, so a cancellation that raced in just before a chunk arrived is
// never starved by always picking whichever case happens to be ready.
func (t *CancelToken) PollCancelledFirst() bool {
	select {
	case <-t.ctx.Done():
		return true
	default:
		return false
	}
}
