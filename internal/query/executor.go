// Package query drives the external query-engine subprocess (a jq-compatible
// binary resolved from PATH) that evaluates the user's filter against the
// loaded JSON document.
//
// Built directly on the stdlib os/exec.CommandContext idiom: no other package
// in this module spawns subprocesses, so there is no shared helper to reuse,
// and only the apperr category wrapping comes from the rest of the tree.
// See DESIGN.md.
package query

import (
	"bytes"
	"context"
	"os/exec"
	"sync"

	"github.com/jiqtui/jiq/internal/apperr"
)

// Executor runs one query-engine invocation at a time, cancelling any
// in-flight run before starting the next (spec.md §4.2, §5).
type Executor struct {
	binary string

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewExecutor resolves the query-engine binary name (typically "jq").
func NewExecutor(binary string) *Executor {
	return &Executor{binary: binary}
}

// Cancel aborts the currently in-flight run, if any. Safe to call when
// nothing is running.
func (e *Executor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Run cancels any prior invocation, then spawns a fresh one with the given
// token, filter expression, and raw JSON input. It returns immediately; the
// result arrives on the returned channel exactly once, unless ctx is
// cancelled or a later Run or Cancel supersedes this run first, in which
// case nothing is sent and the channel is closed.
//
// Callers (the event loop) must compare the delivered token against
// TokenSource.Current before applying it to State — Run does not filter
// staleness itself, matching State.Apply's contract.
func (e *Executor) Run(ctx context.Context, tok Token, filter string, input []byte) <-chan Result {
	e.Cancel()

	runCtx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()

	out := make(chan Result, 1)
	go e.run(runCtx, tok, filter, input, out)
	return out
}

func (e *Executor) run(ctx context.Context, tok Token, filter string, input []byte, out chan<- Result) {
	defer close(out)

	cmd := exec.CommandContext(ctx, e.binary, filter)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		// Cancelled by a newer run or shutdown; the event loop never
		// asked for this result, so don't bother delivering it.
		return
	}

	if err != nil {
		msg := stderr.String()
		if msg == "" {
			msg = err.Error()
		}
		out <- Result{Token: tok, Err: msg}
		return
	}

	out <- Result{Token: tok, Output: stdout.String()}
}

// BinaryAvailable reports whether the configured query-engine binary can be
// resolved on PATH, used at startup per spec.md §6.
func BinaryAvailable(binary string) error {
	if _, err := exec.LookPath(binary); err != nil {
		return apperr.New(apperr.Configuration, err).WithHint("query engine \"" + binary + "\" not found on PATH")
	}
	return nil
}
