package ui

import (
	"os"
	"testing"

	"github.com/jiqtui/jiq/internal/snippets"
	"github.com/stretchr/testify/require"
)

func newSnippetsStore(t *testing.T) *snippets.Store {
	t.Helper()
	dir, err := os.MkdirTemp("", "jiq-snippets-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	store, err := snippets.Open(dir)
	require.NoError(t, err)
	return store
}

func TestSnippetsOverlayCreateFlow(t *testing.T) {
	store := newSnippetsStore(t)
	var s SnippetsOverlay
	s.Open(store)
	s.BeginCreate()
	require.Equal(t, SnippetCreate, s.Mode)

	for _, r := range "my-query" {
		s.TypeRune(r)
	}
	ok := s.Confirm(store, ".foo.bar")
	require.True(t, ok)
	require.Equal(t, SnippetBrowse, s.Mode)
	require.Len(t, s.List(), 1)
	require.Equal(t, "my-query", s.List()[0].Name)
	require.Equal(t, ".foo.bar", s.List()[0].Query)
}

func TestSnippetsOverlayConfirmRejectsEmptyName(t *testing.T) {
	store := newSnippetsStore(t)
	var s SnippetsOverlay
	s.Open(store)
	s.BeginCreate()
	ok := s.Confirm(store, ".foo")
	require.False(t, ok)
	require.Empty(t, s.List())
}

func TestSnippetsOverlayEditRenamesAndUpdatesQuery(t *testing.T) {
	store := newSnippetsStore(t)
	sn := store.Create("old-name", ".a", "")
	require.NoError(t, store.Save())

	var s SnippetsOverlay
	s.Open(store)
	s.BeginEdit(sn)
	require.Equal(t, "old-name", s.NameInput)
	for range []rune(s.NameInput) {
		s.Backspace()
	}
	for _, r := range "new-name" {
		s.TypeRune(r)
	}
	ok := s.Confirm(store, ".b")
	require.True(t, ok)
	require.Len(t, s.List(), 1)
	require.Equal(t, "new-name", s.List()[0].Name)
	require.Equal(t, ".b", s.List()[0].Query)
}

func TestSnippetsOverlayDeleteSelected(t *testing.T) {
	store := newSnippetsStore(t)
	store.Create("a", ".a", "")
	require.NoError(t, store.Save())

	var s SnippetsOverlay
	s.Open(store)
	require.Len(t, s.List(), 1)
	ok := s.DeleteSelected(store)
	require.True(t, ok)
	require.Empty(t, s.List())
}

func TestSnippetsOverlaySelectSaturates(t *testing.T) {
	store := newSnippetsStore(t)
	store.Create("a", ".a", "")
	store.Create("b", ".b", "")
	require.NoError(t, store.Save())

	var s SnippetsOverlay
	s.Open(store)
	s.SelectPrev()
	require.Equal(t, 0, s.Selected)
	s.SelectNext()
	s.SelectNext()
	require.Equal(t, 1, s.Selected)
}
