package ai

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const geminiStreamURLTemplate = "https://generativelanguage.googleapis.com/v1beta/models/%s:streamGenerateContent?alt=sse&key=%s"

// GeminiProvider streams suggestions from Google's Gemini API. Follows
// the same net/http + bufio.Scanner SSE idiom AnthropicProvider and
// OpenAIProvider already establish, adapted to Gemini's
// contents/parts request shape and its key-in-URL auth (spec.md §6).
type GeminiProvider struct {
	APIKey string
	Model  string
	Client *http.Client

	// BaseURLTemplate overrides geminiStreamURLTemplate (still expects
	// %s, %s for model and key); empty means the real API. Tests point
	// this at an httptest.Server.
	BaseURLTemplate string
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiStreamChunk struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Stream implements Provider.
func (g *GeminiProvider) Stream(prompt string, tok *CancelToken, out chan<- Event) error {
	defer close(out)

	if g.APIKey == "" || g.Model == "" {
		out <- Event{Kind: EventError, ErrKind: ErrNotConfigured, Err: "Gemini API key or model not configured"}
		return nil
	}

	reqBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrParse, Err: err.Error()}
		return err
	}

	tmpl := g.BaseURLTemplate
	if tmpl == "" {
		tmpl = geminiStreamURLTemplate
	}
	reqURL := fmt.Sprintf(tmpl, url.PathEscape(g.Model), url.QueryEscape(g.APIKey))
	req, err := http.NewRequestWithContext(tok.Context(), http.MethodPost, reqURL, bytes.NewReader(reqBody))
	if err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrNetwork, Err: err.Error()}
		return err
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "text/event-stream")

	client := g.Client
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
		out <- Event{Kind: EventError, ErrKind: ErrAPI, Err: fmt.Sprintf("Gemini API returned status %d", resp.StatusCode)}
		return fmt.Errorf("gemini: status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	// Gemini streams can emit large candidate payloads on a single SSE
	// data line; grow the scanner buffer well past bufio's 64KiB default.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

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
		var chunk geminiStreamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		if chunk.Error != nil {
			out <- Event{Kind: EventError, ErrKind: ErrAPI, Err: chunk.Error.Message}
			return nil
		}
		for _, cand := range chunk.Candidates {
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					out <- Event{Kind: EventChunk, Text: part.Text}
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrNetwork, Err: err.Error()}
		return err
	}
	out <- Event{Kind: EventComplete}
	return nil
}
