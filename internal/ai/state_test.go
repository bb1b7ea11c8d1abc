package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateToggleInvolution(t *testing.T) {
	s := NewState()
	require.Equal(t, Hidden, s.Visibility)

	s.Toggle()
	require.Equal(t, Idle, s.Visibility)

	s.Toggle()
	require.Equal(t, Hidden, s.Visibility, "toggle twice must restore the prior visibility (Testable Property 7)")
}

func TestStateToggleFromAnyNonHiddenClosesToHidden(t *testing.T) {
	s := NewState()
	s.Visibility = Showing
	s.Toggle()
	require.Equal(t, Hidden, s.Visibility)
}

// TestStateBeginRequestCancelsPriorAndAssignsFreshID exercises scenario S3:
// beginning a new request cancels whatever was in flight and issues a
// strictly greater request id.
func TestStateBeginRequestCancelsPriorAndAssignsFreshID(t *testing.T) {
	s := NewState()
	tok1 := NewCancelToken(context.Background())
	id1 := s.BeginRequest(tok1)
	require.Equal(t, RequestID(1), id1)
	require.False(t, tok1.Cancelled())

	tok2 := NewCancelToken(context.Background())
	id2 := s.BeginRequest(tok2)
	require.Equal(t, RequestID(2), id2)
	require.Greater(t, uint64(id2), uint64(id1))
	require.True(t, tok1.Cancelled(), "beginning a new request must cancel the prior one")
}

func TestStateBeginRequestPreservesPreviousResponseWhileClearingCurrent(t *testing.T) {
	s := NewState()
	s.Response = "old answer"

	s.BeginRequest(NewCancelToken(context.Background()))
	require.Empty(t, s.Response)
	require.Equal(t, "old answer", s.PreviousResponse, "previous_response must survive so the popup doesn't flash empty while loading")
}

// TestStateApplyChunkFiltersStaleRequests exercises Testable Properties 1
// and 8: only chunks for the current request id accumulate into Response.
func TestStateApplyChunkFiltersStaleRequests(t *testing.T) {
	s := NewState()
	id1 := s.BeginRequest(NewCancelToken(context.Background()))
	s.ApplyChunk(id1, "hello ")
	s.ApplyChunk(id1, "world")
	require.Equal(t, "hello world", s.Response)

	id2 := s.BeginRequest(NewCancelToken(context.Background()))
	s.ApplyChunk(id1, "late stale chunk")
	require.Empty(t, s.Response, "a chunk for a superseded request id must not be applied")

	s.ApplyChunk(id2, "fresh")
	require.Equal(t, "fresh", s.Response)
}

func TestStateApplyCompleteParsesSuggestionsOnlyForCurrentRequest(t *testing.T) {
	s := NewState()
	id := s.BeginRequest(NewCancelToken(context.Background()))
	s.Response = "1. [Fix] .foo\n   fixes the thing"
	s.ApplyComplete(id)

	require.Equal(t, Showing, s.Visibility)
	require.Len(t, s.Suggestions, 1)
	require.Equal(t, ".foo", s.Suggestions[0].Query)
}

func TestStateApplyCompleteIgnoresStaleRequest(t *testing.T) {
	s := NewState()
	id1 := s.BeginRequest(NewCancelToken(context.Background()))
	s.BeginRequest(NewCancelToken(context.Background()))

	s.Response = "should not be parsed"
	s.ApplyComplete(id1)
	require.Empty(t, s.Suggestions)
	require.NotEqual(t, Showing, s.Visibility)
}

func TestStateApplyCancelledClearsLoadingWithoutTouchingResponse(t *testing.T) {
	s := NewState()
	id := s.BeginRequest(NewCancelToken(context.Background()))
	s.ApplyChunk(id, "partial")
	s.ApplyCancelled(id)

	require.Equal(t, Idle, s.Visibility)
	require.Equal(t, "partial", s.Response)
}

func TestStateApplyErrorAlwaysAppliesEvenForStaleRequest(t *testing.T) {
	s := NewState()
	s.BeginRequest(NewCancelToken(context.Background()))
	s.BeginRequest(NewCancelToken(context.Background()))

	s.ApplyError("boom")
	require.Equal(t, ErrorShown, s.Visibility)
	require.Equal(t, "boom", s.ErrMessage)
}

func TestStateSelectNextPrevSaturateWithoutWrap(t *testing.T) {
	s := NewState()
	s.Suggestions = []Suggestion{{Query: ".a"}, {Query: ".b"}, {Query: ".c"}}

	s.SelectPrev()
	require.Equal(t, 0, s.SelectionIndex, "must not go below zero")

	s.SelectNext()
	s.SelectNext()
	s.SelectNext()
	require.Equal(t, 2, s.SelectionIndex, "must saturate at len-1, not wrap to 0")
	require.True(t, s.Navigating)
}

func TestStateSelectDirectAppliesOnlyInRange(t *testing.T) {
	s := NewState()
	s.Suggestions = []Suggestion{{Query: ".a"}, {Query: ".b"}}

	sug, ok := s.SelectDirect(0)
	require.True(t, ok)
	require.Equal(t, ".a", sug.Query)

	_, ok = s.SelectDirect(5)
	require.False(t, ok)
}

// TestStateSelectedForEnterOnlyWhenNavigating exercises scenario S4's
// "Enter applies the navigated selection only when navigation mode is
// active" rule.
func TestStateSelectedForEnterOnlyWhenNavigating(t *testing.T) {
	s := NewState()
	s.Suggestions = []Suggestion{{Query: ".a"}, {Query: ".b"}}

	_, ok := s.SelectedForEnter()
	require.False(t, ok, "Enter must not apply a selection before Alt+Up/Down activated navigation")

	s.SelectNext()
	sug, ok := s.SelectedForEnter()
	require.True(t, ok)
	require.Equal(t, ".b", sug.Query)
}

func TestStateApplySuggestionResetsSelectionAndNavigation(t *testing.T) {
	s := NewState()
	s.Suggestions = []Suggestion{{Query: ".a"}, {Query: ".b"}}
	s.SelectNext()

	s.ApplySuggestion()
	require.Equal(t, 0, s.SelectionIndex)
	require.False(t, s.Navigating)
}
