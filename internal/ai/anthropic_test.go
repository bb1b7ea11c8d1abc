package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func drainEvents(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var got []Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("timed out draining events")
		}
	}
}

func TestAnthropicProviderStreamsTextDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: content_block_delta\ndata: {\"delta\":{\"type\":\"text_delta\",\"text\":\"1. \"}}\n\n")
		fmt.Fprint(w, "event: content_block_delta\ndata: {\"delta\":{\"type\":\"text_delta\",\"text\":\"[Fix] .a\"}}\n\n")
		fmt.Fprint(w, "event: message_stop\ndata: {}\n\n")
	}))
	defer srv.Close()

	p := &AnthropicProvider{APIKey: "test-key", Model: "claude-3-5-sonnet", BaseURL: srv.URL}
	out := make(chan Event, 8)
	tok := NewCancelToken(context.Background())

	err := p.Stream("explain this query", tok, out)
	require.NoError(t, err)

	events := drainEvents(t, out)
	require.Len(t, events, 3)
	require.Equal(t, EventChunk, events[0].Kind)
	require.Equal(t, "1. ", events[0].Text)
	require.Equal(t, EventChunk, events[1].Kind)
	require.Equal(t, EventComplete, events[2].Kind)
}

func TestAnthropicProviderMissingAPIKeyIsNotConfigured(t *testing.T) {
	p := &AnthropicProvider{Model: "claude-3-5-sonnet"}
	out := make(chan Event, 4)
	tok := NewCancelToken(context.Background())

	require.NoError(t, p.Stream("x", tok, out))
	events := drainEvents(t, out)
	require.Len(t, events, 1)
	require.Equal(t, EventError, events[0].Kind)
	require.Equal(t, ErrNotConfigured, events[0].ErrKind)
}

func TestAnthropicProviderNonOKStatusIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := &AnthropicProvider{APIKey: "bad-key", Model: "m", BaseURL: srv.URL}
	out := make(chan Event, 4)
	tok := NewCancelToken(context.Background())

	require.Error(t, p.Stream("x", tok, out))
	events := drainEvents(t, out)
	require.Len(t, events, 1)
	require.Equal(t, ErrAPI, events[0].ErrKind)
}

// TestAnthropicProviderCancellationAbortsPromptly exercises scenario S3's
// cancellation contract at the provider layer: a cancelled context during
// a slow response must surface as EventCancelled, not an error.
func TestAnthropicProviderCancellationAbortsPromptly(t *testing.T) {
	blockUntilCancelled := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blockUntilCancelled
	}))
	defer srv.Close()

	p := &AnthropicProvider{APIKey: "k", Model: "m", BaseURL: srv.URL}
	out := make(chan Event, 4)
	tok := NewCancelToken(context.Background())

	go func() {
		time.Sleep(20 * time.Millisecond)
		tok.Cancel()
		close(blockUntilCancelled)
	}()

	_ = p.Stream("x", tok, out)
	events := drainEvents(t, out)
	require.Len(t, events, 1)
	require.Equal(t, EventCancelled, events[0].Kind)
}
