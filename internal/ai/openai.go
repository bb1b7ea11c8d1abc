package ai

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const openaiChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider streams suggestions from OpenAI's chat completions API.
// The teacher's own services/llm/openai_llm.go wraps sashabaranov/go-openai
// for a single non-streaming call; this package needs SSE streaming
// instead (spec.md §4.3/§6), so rather than bolt streaming onto the SDK
// client alongside this package's own hand-rolled Anthropic SSE scanner,
// this provider reuses the same net/http + bufio.Scanner shape
// AnthropicProvider already established, adapted for OpenAI's wire
// format (`choices[0].delta.content`, a bare `data: [DONE]` terminator
// instead of a typed "error" SSE event).
type OpenAIProvider struct {
	APIKey string
	Model  string
	Client *http.Client

	// BaseURL overrides openaiChatCompletionsURL; empty means the real
	// API. Tests point this at an httptest.Server.
	BaseURL string
}

type openAIChatRequest struct {
	Model    string              `json:"model"`
	Messages []anthropicMessage  `json:"messages"`
	Stream   bool                `json:"stream"`
}

type openAIChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Stream implements Provider.
func (o *OpenAIProvider) Stream(prompt string, tok *CancelToken, out chan<- Event) error {
	defer close(out)

	if o.APIKey == "" {
		out <- Event{Kind: EventError, ErrKind: ErrNotConfigured, Err: "OpenAI API key not configured"}
		return nil
	}

	reqBody, err := json.Marshal(openAIChatRequest{
		Model:    o.Model,
		Messages: []anthropicMessage{{Role: "user", Content: prompt}},
		Stream:   true,
	})
	if err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrParse, Err: err.Error()}
		return err
	}

	url := o.BaseURL
	if url == "" {
		url = openaiChatCompletionsURL
	}
	req, err := http.NewRequestWithContext(tok.Context(), http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrNetwork, Err: err.Error()}
		return err
	}
	req.Header.Set("Authorization", "Bearer "+o.APIKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "text/event-stream")

	client := o.Client
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
		out <- Event{Kind: EventError, ErrKind: ErrAPI, Err: fmt.Sprintf("OpenAI API returned status %d", resp.StatusCode)}
		return fmt.Errorf("openai: status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if tok.PollCancelledFirst() {
			out <- Event{Kind: EventCancelled}
			return nil
		}
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			out <- Event{Kind: EventComplete}
			return nil
		}
		var chunk openAIChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			out <- Event{Kind: EventChunk, Text: chunk.Choices[0].Delta.Content}
		}
	}

	if err := scanner.Err(); err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrNetwork, Err: err.Error()}
		return err
	}
	out <- Event{Kind: EventComplete}
	return nil
}
