package ai

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const anthropicAPIVersion = "2023-06-01"
const anthropicMessagesURL = "https://api.anthropic.com/v1/messages"

// AnthropicProvider streams suggestions from Anthropic's Messages API.
// Grounded directly on services/llm/anthropic_llm.go's ChatStream/
// processSSEStream/handleSSEEvent trio: same headers, same SSE
// event-type/data-buffer scanning loop, same content_block_delta
// extraction — adapted from a multi-turn chat transcript to this
// package's single-prompt-in, Event-out contract.
type AnthropicProvider struct {
	APIKey    string
	Model     string
	MaxTokens int // <= 0 means 1024
	Client    *http.Client

	// BaseURL overrides anthropicMessagesURL; empty means the real API.
	// Tests point this at an httptest.Server.
	BaseURL string
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
	Stream    bool               `json:"stream"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicDelta struct {
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
}

type anthropicStreamError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Stream implements Provider.
func (a *AnthropicProvider) Stream(prompt string, tok *CancelToken, out chan<- Event) error {
	defer close(out)

	if a.APIKey == "" {
		out <- Event{Kind: EventError, ErrKind: ErrNotConfigured, Err: "Anthropic API key not configured"}
		return nil
	}

	maxTokens := a.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	reqBody, err := json.Marshal(anthropicRequest{
		Model:     a.Model,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
		Stream:    true,
	})
	if err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrParse, Err: err.Error()}
		return err
	}

	url := a.BaseURL
	if url == "" {
		url = anthropicMessagesURL
	}
	req, err := http.NewRequestWithContext(tok.Context(), http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrNetwork, Err: err.Error()}
		return err
	}
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "text/event-stream")

	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}

	resp, err := client.Do(req)
	if err != nil {
		if tok.Cancelled() {
			out <- Event{Kind: EventCancelled}
			return nil
		}
		out <- Event{Kind: EventError, ErrKind: ErrNetwork, Err: err.Error()}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out <- Event{Kind: EventError, ErrKind: ErrAPI, Err: fmt.Sprintf("Anthropic API returned status %d", resp.StatusCode)}
		return fmt.Errorf("anthropic: status %d", resp.StatusCode)
	}

	return scanAnthropicSSE(tok, resp.Body, out)
}

func scanAnthropicSSE(tok *CancelToken, body io.Reader, out chan<- Event) error {
	scanner := bufio.NewScanner(body)
	var eventType string
	var dataBuffer strings.Builder

	for scanner.Scan() {
		if tok.PollCancelledFirst() {
			out <- Event{Kind: EventCancelled}
			return nil
		}

		line := scanner.Text()
		if line == "" {
			if dataBuffer.Len() > 0 && eventType != "" {
				if done := handleAnthropicEvent(eventType, dataBuffer.String(), out); done {
					return nil
				}
				dataBuffer.Reset()
				eventType = ""
			}
			continue
		}
		switch {
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataBuffer.WriteString(strings.TrimPrefix(line, "data: "))
		}
	}

	if err := scanner.Err(); err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrNetwork, Err: err.Error()}
		return err
	}

	out <- Event{Kind: EventComplete}
	return nil
}

// handleAnthropicEvent returns true when the stream should stop (a
// terminal event was emitted).
func handleAnthropicEvent(eventType, data string, out chan<- Event) bool {
	switch eventType {
	case "content_block_delta":
		var delta anthropicDelta
		if err := json.Unmarshal([]byte(data), &delta); err != nil {
			return false
		}
		if delta.Delta.Type == "text_delta" && delta.Delta.Text != "" {
			out <- Event{Kind: EventChunk, Text: delta.Delta.Text}
		}
		return false
	case "error":
		var streamErr anthropicStreamError
		msg := "stream error"
		if err := json.Unmarshal([]byte(data), &streamErr); err == nil {
			msg = fmt.Sprintf("%s: %s", streamErr.Error.Type, streamErr.Error.Message)
		}
		out <- Event{Kind: EventError, ErrKind: ErrAPI, Err: msg}
		return true
	default:
		return false
	}
}
