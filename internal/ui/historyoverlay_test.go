package ui

import (
	"os"
	"testing"
	"time"

	"github.com/jiqtui/jiq/internal/history"
	"github.com/stretchr/testify/require"
)

func newHistoryStore(t *testing.T, queries ...string) *history.Store {
	t.Helper()
	dir, err := os.MkdirTemp("", "jiq-history-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	store, err := history.Open(dir)
	require.NoError(t, err)
	for _, q := range queries {
		store.Record(q, time.Now())
	}
	return store
}

func TestHistoryOverlayOpenLoadsAllMatches(t *testing.T) {
	store := newHistoryStore(t, ".foo", ".bar")
	var h HistoryOverlay
	h.Open(store)
	require.True(t, h.Visible)
	require.Len(t, h.Matches(), 2)
}

func TestHistoryOverlayTypeRuneNarrowsMatches(t *testing.T) {
	store := newHistoryStore(t, ".foo.bar", ".baz")
	var h HistoryOverlay
	h.Open(store)
	h.TypeRune(store, 'f')
	h.TypeRune(store, 'o')
	require.Len(t, h.Matches(), 1)
	require.Equal(t, ".foo.bar", h.Matches()[0].Query)
}

func TestHistoryOverlayBackspaceWidensMatches(t *testing.T) {
	store := newHistoryStore(t, ".foo", ".baz")
	var h HistoryOverlay
	h.Open(store)
	h.TypeRune(store, 'z')
	require.Len(t, h.Matches(), 1)
	h.Backspace(store)
	require.Len(t, h.Matches(), 2)
}

func TestHistoryOverlaySelectSaturates(t *testing.T) {
	store := newHistoryStore(t, ".a", ".b")
	var h HistoryOverlay
	h.Open(store)
	h.SelectPrev()
	require.Equal(t, 0, h.Selected)
	h.SelectNext()
	h.SelectNext()
	require.Equal(t, 1, h.Selected)
}

func TestHistoryOverlaySelectedEntryBounds(t *testing.T) {
	var h HistoryOverlay
	_, ok := h.SelectedEntry()
	require.False(t, ok)
}
