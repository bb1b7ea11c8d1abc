package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCancelTokenCancelIsIdempotent(t *testing.T) {
	tok := NewCancelToken(context.Background())
	require.False(t, tok.Cancelled())

	tok.Cancel()
	tok.Cancel()
	require.True(t, tok.Cancelled())
	require.Error(t, tok.Context().Err())
}

func TestCancelTokenPollCancelledFirst(t *testing.T) {
	tok := NewCancelToken(context.Background())
	require.False(t, tok.PollCancelledFirst())

	tok.Cancel()
	require.True(t, tok.PollCancelledFirst())
}

func TestCancelTokenCancelWithNoOperationOutstandingIsNoOp(t *testing.T) {
	tok := NewCancelToken(context.Background())
	require.NotPanics(t, tok.Cancel)
}
