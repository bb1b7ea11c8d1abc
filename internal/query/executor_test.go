package query

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeEngine writes a tiny shell script that stands in for the real
// query-engine binary, so these tests never depend on jq being installed.
func fakeEngine(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine script is POSIX-shell only")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-jq")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o750))
	return path
}

func TestExecutorRunSuccess(t *testing.T) {
	bin := fakeEngine(t, `cat; echo '{"ok":true}'`)
	e := NewExecutor(bin)

	ch := e.Run(context.Background(), 1, ".", []byte(`{"a":1}`))
	select {
	case r := <-ch:
		require.True(t, r.Ok())
		require.Equal(t, Token(1), r.Token)
		require.Contains(t, r.Output, `"ok":true`)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
}

func TestExecutorRunFailureCarriesStderr(t *testing.T) {
	bin := fakeEngine(t, `echo "jq: error: bad filter" 1>&2; exit 5`)
	e := NewExecutor(bin)

	ch := e.Run(context.Background(), 2, ".bad[", []byte(`{}`))
	select {
	case r := <-ch:
		require.False(t, r.Ok())
		require.Contains(t, r.Err, "bad filter")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
}

// TestExecutorRunCancelsPrior exercises Testable Property 1 / scenario S1:
// starting a new run cancels the previous in-flight one rather than letting
// both complete.
func TestExecutorRunCancelsPrior(t *testing.T) {
	bin := fakeEngine(t, `sleep 5; echo stale`)
	e := NewExecutor(bin)

	stale := e.Run(context.Background(), 1, ".", []byte(`{}`))

	fast := fakeEngine(t, `echo '{"fresh":true}'`)
	e.binary = fast
	fresh := e.Run(context.Background(), 2, ".", []byte(`{}`))

	select {
	case r := <-fresh:
		require.True(t, r.Ok())
		require.Equal(t, Token(2), r.Token)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fresh result")
	}

	select {
	case r, ok := <-stale:
		require.False(t, ok || r.Token != 0, "cancelled run must not deliver a result")
	case <-time.After(500 * time.Millisecond):
		t.Fatal("stale channel was never closed")
	}
}

func TestExecutorCancelWithNothingRunning(t *testing.T) {
	e := NewExecutor("irrelevant")
	require.NotPanics(t, func() { e.Cancel() })
}

func TestBinaryAvailableMissing(t *testing.T) {
	err := BinaryAvailable("definitely-not-a-real-binary-xyz")
	require.Error(t, err)
}

func TestBinaryAvailablePresent(t *testing.T) {
	bin := fakeEngine(t, `true`)
	require.NoError(t, BinaryAvailable(bin))
}
