package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateApplySuccessUpdatesLastGood(t *testing.T) {
	var s State
	s.Apply(Result{Token: 1, Output: `{"a":1}`})

	require.True(t, s.ResultOK)
	require.Equal(t, `{"a":1}`, s.ResultOutput)
	require.True(t, s.HasSuccessfulResult)

	text, ok := s.DisplayResult()
	require.True(t, ok)
	require.Equal(t, `{"a":1}`, text)
}

// TestStateApplyErrorPreservesLastGood exercises Testable Property 3: a
// syntax error must not blank out the last successful result.
func TestStateApplyErrorPreservesLastGood(t *testing.T) {
	var s State
	s.Apply(Result{Token: 1, Output: `{"a":1}`})
	s.Apply(Result{Token: 2, Err: "jq: error: syntax error"})

	require.False(t, s.ResultOK)
	require.Equal(t, "jq: error: syntax error", s.ResultErr)

	text, ok := s.DisplayResult()
	require.True(t, ok)
	require.Equal(t, `{"a":1}`, text, "last-good result must survive a failed run")
}

func TestStateApplyClearsPending(t *testing.T) {
	s := State{Pending: true}
	s.Apply(Result{Token: 1, Output: "1"})
	require.False(t, s.Pending)
}

func TestStateDisplayResultBeforeAnySuccess(t *testing.T) {
	var s State
	_, ok := s.DisplayResult()
	require.False(t, ok)
}
