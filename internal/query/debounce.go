package query

import "time"

// Debouncer tracks a virtual "scheduled time" (the Window field) per
// spec.md §4.2: each keystroke sets it to now plus the quiet window; the
// event loop dispatches a
// new execution once the scheduled time has passed and the query text
// has actually changed since the last dispatch.
type Debouncer struct {
	Window time.Time // the zero value means "nothing scheduled yet"
	window time.Duration
	last   string // last query text actually submitted
}

// NewDebouncer creates a Debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Bump records that the query changed at `now`; the next dispatch eligibility
// check will not fire until now+window.
func (d *Debouncer) Bump(now time.Time) {
	d.Window = now.Add(d.window)
}

// Ready reports whether enough quiet time has elapsed and the candidate
// query text differs from the last one actually submitted.
func (d *Debouncer) Ready(now time.Time, queryText string) bool {
	if d.Window.IsZero() || now.Before(d.Window) {
		return false
	}
	return queryText != d.last
}

// MarkSubmitted records that queryText was just dispatched, so a later
// Ready check with the same text returns false until it changes again.
func (d *Debouncer) MarkSubmitted(queryText string) {
	d.last = queryText
}
