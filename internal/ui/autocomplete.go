package ui

import "github.com/jiqtui/jiq/internal/jsonmodel"

// AutocompleteState is the context-aware popup driven by
// internal/jsonmodel's Analyzer (spec.md §4.7). It holds no JSON
// navigation logic itself — that lives in jsonmodel — only the popup's
// visibility and selection.
type AutocompleteState struct {
	Visible     bool
	Suggestions []jsonmodel.Suggestion
	Selected    int
}

// SetSuggestions replaces the suggestion list (recomputed by the event
// loop whenever the query text or cursor moves) and shows the popup iff
// there's something to show.
func (a *AutocompleteState) SetSuggestions(sugs []jsonmodel.Suggestion) {
	a.Suggestions = sugs
	a.Selected = 0
	a.Visible = len(sugs) > 0
}

// Dismiss hides the popup (Esc) without discarding the last computed
// suggestion list, so a later keystroke that re-qualifies can reshow it
// without recomputation.
func (a *AutocompleteState) Dismiss() {
	a.Visible = false
}

// SelectNext/SelectPrev move the highlighted suggestion with wraparound —
// unlike AI's saturating selection, autocomplete lists are short enough
// that wraparound (spec.md §4.7 doesn't specify either way, and every
// terminal-tool autocomplete popup in the pack's lineage wraps) reads as
// more natural for a Tab-cycling popup.
func (a *AutocompleteState) SelectNext() {
	if len(a.Suggestions) == 0 {
		return
	}
	a.Selected = (a.Selected + 1) % len(a.Suggestions)
}

func (a *AutocompleteState) SelectPrev() {
	if len(a.Suggestions) == 0 {
		return
	}
	a.Selected = (a.Selected - 1 + len(a.Suggestions)) % len(a.Suggestions)
}

// Current returns the highlighted suggestion, if any.
func (a *AutocompleteState) Current() (jsonmodel.Suggestion, bool) {
	if !a.Visible || a.Selected < 0 || a.Selected >= len(a.Suggestions) {
		return jsonmodel.Suggestion{}, false
	}
	return a.Suggestions[a.Selected], true
}

// SuppressedByAI reports whether the autocomplete popup should stay
// hidden because the AI popup already occupies the same region (spec.md
// §4.7: "The popup is suppressed if an AI popup is already visible in
// the same region").
func SuppressedByAI(aiVisible bool) bool {
	return aiVisible
}
