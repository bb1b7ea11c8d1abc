// Package ai implements the AI side-channel (spec.md §4.3): a single
// worker goroutine that dispatches one provider stream at a time,
// demultiplexes its chunk/complete/error/cancelled events against a
// monotonic request id, and maintains the popup's visible state.
package ai

// Visibility is the AI popup's top-level phase.
type Visibility int

const (
	Hidden Visibility = iota
	Idle
	Loading
	Showing
	ErrorShown
)

// RequestID identifies one AI request; comparisons use plain integer
// ordering, mirroring internal/query's Token.
type RequestID uint64

// State mirrors spec.md §3's AiState.
type State struct {
	Visibility Visibility

	Response         string
	PreviousResponse string
	Suggestions      []Suggestion

	InFlightRequestID RequestID
	nextID            RequestID

	SelectionIndex int
	Navigating     bool
	ScrollOffset   int

	ErrMessage string
	Cancel     *CancelToken
}

// NewState returns a hidden, idle AiState.
func NewState() *State {
	return &State{Visibility: Hidden}
}

// Toggle flips popup visibility (Ctrl+A): Hidden opens to Idle; any other
// phase (Idle/Loading/Showing/ErrorShown) closes to Hidden, matching
// every "└─(Ctrl+A)──►" edge in spec.md §4.8's AI popup diagram
// (Testable Property 7: toggle is its own inverse).
func (s *State) Toggle() {
	if s.Visibility == Hidden {
		s.Visibility = Idle
	} else {
		s.Visibility = Hidden
	}
}

// BeginRequest starts a new AI request per spec.md §4.3's trigger steps
// 1-4: cancel any prior request, clear the response (not PreviousResponse
// — the renderer falls back to it while loading), mint a fresh request id,
// and install tok as the active cancellation handle.
func (s *State) BeginRequest(tok *CancelToken) RequestID {
	if s.Cancel != nil {
		s.Cancel.Cancel()
	}
	if s.Response != "" {
		s.PreviousResponse = s.Response
	}
	s.Response = ""
	s.Suggestions = nil
	s.SelectionIndex = 0
	s.Navigating = false
	s.ScrollOffset = 0
	s.ErrMessage = ""

	s.nextID++
	s.InFlightRequestID = s.nextID
	s.Cancel = tok
	s.Visibility = Loading
	return s.InFlightRequestID
}

// ApplyChunk appends text to Response if reqID matches the in-flight
// request (Testable Properties 1 and 8); stale chunks are dropped
// silently.
func (s *State) ApplyChunk(reqID RequestID, text string) {
	if reqID != s.InFlightRequestID {
		return
	}
	s.Response += text
}

// ApplyComplete clears loading and parses Response into suggestions, only
// if reqID matches the in-flight request.
func (s *State) ApplyComplete(reqID RequestID) {
	if reqID != s.InFlightRequestID {
		return
	}
	s.Suggestions = ParseSuggestions(s.Response)
	s.Visibility = Showing
}

// ApplyCancelled clears loading without touching Response, only if reqID
// matches the in-flight request. Cancellation is not an error and must
// not surface a notification (spec.md §5).
func (s *State) ApplyCancelled(reqID RequestID) {
	if reqID != s.InFlightRequestID {
		return
	}
	s.Visibility = Idle
}

// ApplyError always applies — the freshest failure wins even if it
// belongs to a request that is no longer the in-flight one (spec.md
// §4.3: "Errors are not filtered").
func (s *State) ApplyError(message string) {
	s.ErrMessage = message
	s.Visibility = ErrorShown
}

// SelectNext/SelectPrev move the suggestion selection with saturating
// (no-wrap) bounds, entering navigation mode (spec.md §4.3).
func (s *State) SelectNext() {
	s.Navigating = true
	if s.SelectionIndex < len(s.Suggestions)-1 {
		s.SelectionIndex++
	}
}

func (s *State) SelectPrev() {
	s.Navigating = true
	if s.SelectionIndex > 0 {
		s.SelectionIndex--
	}
}

// SelectDirect returns the suggestion at 0-based index i if in range (the
// Alt+1..Alt+5 direct-apply keys map to i = key-1).
func (s *State) SelectDirect(i int) (Suggestion, bool) {
	if i < 0 || i >= len(s.Suggestions) {
		return Suggestion{}, false
	}
	return s.Suggestions[i], true
}

// SelectedForEnter returns the navigated selection only while Navigating
// is true, matching spec.md §4.3's "Enter applies the navigated selection
// only when navigation mode is active" rule.
func (s *State) SelectedForEnter() (Suggestion, bool) {
	if !s.Navigating {
		return Suggestion{}, false
	}
	return s.SelectDirect(s.SelectionIndex)
}

// ApplySuggestion resets selection and navigation state the way
// spec.md §4.3's "Applying a suggestion" describes, short of mutating the
// query editor itself (the caller owns that). Visibility is left as is.
func (s *State) ApplySuggestion() {
	s.SelectionIndex = 0
	s.Navigating = false
}
