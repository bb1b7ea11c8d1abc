package ui

import "github.com/jiqtui/jiq/internal/history"

// HistoryOverlay is the popup's view state over an internal/history.Store
// (spec.md §4.7): a fuzzy-filtered, incrementally-narrowed list the user
// types into directly, distinct from the main query input.
type HistoryOverlay struct {
	Visible  bool
	Filter   string
	Selected int
	matches  []history.Entry
}

// Open shows the popup and recomputes the full (unfiltered) match list.
func (h *HistoryOverlay) Open(store *history.Store) {
	h.Visible = true
	h.Filter = ""
	h.Selected = 0
	h.matches = store.FuzzyFilter("")
}

// Close hides the popup.
func (h *HistoryOverlay) Close() {
	h.Visible = false
}

// TypeRune appends to the filter text and recomputes matches, resetting
// the selection to the top match like any incremental-search popup.
func (h *HistoryOverlay) TypeRune(store *history.Store, r rune) {
	h.Filter += string(r)
	h.refilter(store)
}

// Backspace removes the last filter rune.
func (h *HistoryOverlay) Backspace(store *history.Store) {
	runes := []rune(h.Filter)
	if len(runes) == 0 {
		return
	}
	h.Filter = string(runes[:len(runes)-1])
	h.refilter(store)
}

func (h *HistoryOverlay) refilter(store *history.Store) {
	h.matches = store.FuzzyFilter(h.Filter)
	h.Selected = 0
}

// Matches returns the current filtered entries.
func (h *HistoryOverlay) Matches() []history.Entry {
	return h.matches
}

// SelectNext/SelectPrev move the highlight with saturating bounds — a
// history list can be long, and clamping (rather than wrapping) matches
// the teacher's list-navigation convention elsewhere in this popup family.
func (h *HistoryOverlay) SelectNext() {
	if h.Selected < len(h.matches)-1 {
		h.Selected++
	}
}

func (h *HistoryOverlay) SelectPrev() {
	if h.Selected > 0 {
		h.Selected--
	}
}

// Selected entry for Enter, if any.
func (h *HistoryOverlay) SelectedEntry() (history.Entry, bool) {
	if h.Selected < 0 || h.Selected >= len(h.matches) {
		return history.Entry{}, false
	}
	return h.matches[h.Selected], true
}
