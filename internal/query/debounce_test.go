package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebouncerNotReadyBeforeWindow(t *testing.T) {
	d := NewDebouncer(150 * time.Millisecond)
	now := time.Now()

	d.Bump(now)
	require.False(t, d.Ready(now.Add(50*time.Millisecond), ".foo"))
}

func TestDebouncerReadyAfterWindow(t *testing.T) {
	d := NewDebouncer(150 * time.Millisecond)
	now := time.Now()

	d.Bump(now)
	require.True(t, d.Ready(now.Add(151*time.Millisecond), ".foo"))
}

func TestDebouncerNotReadyWhenUnchanged(t *testing.T) {
	d := NewDebouncer(150 * time.Millisecond)
	now := time.Now()

	d.Bump(now)
	d.MarkSubmitted(".foo")
	require.False(t, d.Ready(now.Add(time.Second), ".foo"), "same text should not re-dispatch")
}

func TestDebouncerRepeatedKeystrokesExtendWindow(t *testing.T) {
	d := NewDebouncer(150 * time.Millisecond)
	now := time.Now()

	d.Bump(now)
	d.Bump(now.Add(100 * time.Millisecond)) // keystroke before window elapses
	require.False(t, d.Ready(now.Add(200*time.Millisecond), ".foo"), "bump should push the window out")
	require.True(t, d.Ready(now.Add(251*time.Millisecond), ".foo"))
}

func TestDebouncerZeroValueNeverReady(t *testing.T) {
	d := NewDebouncer(150 * time.Millisecond)
	require.False(t, d.Ready(time.Now(), ".foo"), "nothing scheduled yet")
}
