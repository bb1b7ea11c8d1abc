// Package search implements the results-pane search bar (spec.md §4.8's
// search-bar state machine and Testable Properties 4-5): live substring
// matching across the rendered query output, confirmed-state match
// navigation with wraparound, and the editing/confirmed visibility phases.
package search

import "strings"

// Match is a single substring hit, in character (rune) coordinates per
// Testable Property 10 — Unicode text must not be sliced mid-codepoint.
type Match struct {
	Line int
	Col  int
	Len  int
}

// Phase is the search bar's visibility state (spec.md §4.8's search-bar
// diagram: hidden -> editing -> confirmed -> editing, with Esc closing
// from either active phase).
type Phase int

const (
	Hidden Phase = iota
	Editing
	Confirmed
)

// State owns the search query, its live matches, and the current phase.
type State struct {
	Query        string
	Matches      []Match
	CurrentIndex int
	Phase        Phase
}

// New returns a hidden search bar with no query.
func New() *State {
	return &State{Phase: Hidden}
}

// Open transitions to Editing, matching Ctrl+F / "/" from Hidden or
// Confirmed.
func (s *State) Open() {
	s.Phase = Editing
}

// Close fully clears the search (Esc from either active phase).
func (s *State) Close() {
	s.Phase = Hidden
	s.Query = ""
	s.Matches = nil
	s.CurrentIndex = 0
}

// Confirm transitions Editing -> Confirmed (Enter).
func (s *State) Confirm() {
	if s.Phase == Editing {
		s.Phase = Confirmed
	}
}

// SetQuery updates the query text and recomputes matches against text,
// resetting CurrentIndex to 0 per SearchState's invariant ("index resets
// to 0 on query change").
func (s *State) SetQuery(query string, text string) {
	s.Query = query
	s.UpdateMatches(text)
}

// UpdateMatches recomputes Matches for the current Query against text
// (lines split on '\n'), case-insensitive, and resets CurrentIndex to 0
// (Testable Property 4).
func (s *State) UpdateMatches(text string) {
	s.Matches = FindMatches(text, s.Query)
	s.CurrentIndex = 0
}

// FindMatches performs a case-insensitive substring search over every line
// of text, returning character-based Match positions in line order.
func FindMatches(text, query string) []Match {
	if query == "" {
		return nil
	}
	lowerQuery := []rune(strings.ToLower(query))
	qlen := len(lowerQuery)

	var matches []Match
	for lineNo, line := range strings.Split(text, "\n") {
		lowerLine := []rune(strings.ToLower(line))
		for col := 0; col+qlen <= len(lowerLine); col++ {
			if runeSliceEqual(lowerLine[col:col+qlen], lowerQuery) {
				matches = append(matches, Match{Line: lineNo, Col: col, Len: qlen})
			}
		}
	}
	return matches
}

func runeSliceEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NextMatch advances to the next match with wraparound (Testable Property
// 4), returning the new CurrentIndex. A no-op (returns 0) when there are
// no matches.
func (s *State) NextMatch() int {
	if len(s.Matches) == 0 {
		s.CurrentIndex = 0
		return 0
	}
	s.CurrentIndex = (s.CurrentIndex + 1) % len(s.Matches)
	return s.CurrentIndex
}

// PrevMatch moves to the previous match with wraparound.
func (s *State) PrevMatch() int {
	if len(s.Matches) == 0 {
		s.CurrentIndex = 0
		return 0
	}
	s.CurrentIndex = (s.CurrentIndex - 1 + len(s.Matches)) % len(s.Matches)
	return s.CurrentIndex
}

// CountDisplay renders the "(c/m)" match-count indicator (Testable
// Property 5): "(0/0)" with no matches, otherwise 1-based current
// position over total.
func (s *State) CountDisplay() string {
	m := len(s.Matches)
	if m == 0 {
		return "(0/0)"
	}
	return "(" + itoa(s.CurrentIndex+1) + "/" + itoa(m) + ")"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

// Current returns the currently selected match and true, or the zero
// Match and false when there are no matches.
func (s *State) Current() (Match, bool) {
	if len(s.Matches) == 0 || s.CurrentIndex >= len(s.Matches) {
		return Match{}, false
	}
	return s.Matches[s.CurrentIndex], true
}
