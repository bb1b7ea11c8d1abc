// Package ui implements jiq's event loop and overlay widgets (spec.md
// §4.1, §4.7, §4.8): a bubbletea Model that owns every piece of mutable
// UI state and arbitrates keyboard/mouse/tick/channel events across the
// query and AI pipelines. The input document is loaded before the Model
// is built, so no file-loader events reach the loop.
//
// Grounded in services/code_buddy/tui/diff_model.go's bubbletea shape
// (Model/Init/Update/View, a lipgloss style-variable block, a
// WindowSizeMsg-driven viewport), generalized from a one-shot diff-review
// session to jiq's long-running query/AI/autocomplete loop.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jiqtui/jiq/internal/ai"
	"github.com/jiqtui/jiq/internal/jsonio"
	"github.com/jiqtui/jiq/internal/query"
)

// tickInterval is how often the event loop wakes up on its own to check
// the debounce deadline and expire notifications (spec.md §4.1).
const tickInterval = 50 * time.Millisecond

// tickMsg drives the debounce check and notification expiry, per
// spec.md §4.1 step 2's "block with timeout on the next input event ...
// or a tick".
type tickMsg time.Time

// queryResultMsg carries one query-engine invocation's outcome from
// internal/query's Executor.
type queryResultMsg query.Result

// aiResponseMsg carries one demultiplexed AI event from internal/ai's
// Worker.
type aiResponseMsg ai.Response

// loadProgressMsg carries one file-loader progress update. Model.Update
// has no case for it, and nothing calls waitForLoadProgress.
type loadProgressMsg jsonio.Progress

// tickCmd schedules the next tick, driving the debounce/notification poll
// loop without busy-waiting.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitForQueryResult and waitForAIResponse adapt a channel receive into a
// bubbletea command, following the standard "one goroutine blocks on the
// channel, converts the value to a tea.Msg" bridge pattern every
// bubbletea program with a background worker uses.
func waitForQueryResult(ch <-chan query.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return queryResultMsg(r)
	}
}

func waitForAIResponse(ch <-chan ai.Response) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return aiResponseMsg(r)
	}
}

func waitForLoadProgress(ch <-chan jsonio.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return loadProgressMsg(p)
	}
}
