package ui

import "time"

// NotifyStyle classifies a notification's urgency and expiry behavior
// (spec.md §4.7).
type NotifyStyle int

const (
	NotifyInfo NotifyStyle = iota
	NotifyWarning
	NotifyError
)

const (
	infoDuration    = 1500 * time.Millisecond
	warningDuration = 10 * time.Second
)

// Notification is the small top-right box spec.md §4.7 describes.
type Notification struct {
	Message   string
	Style     NotifyStyle
	CreatedAt time.Time
	Duration  time.Duration // zero means permanent (Error)
}

// NotificationState holds at most one active notification at a time; a
// newer call to Show replaces whatever was showing, matching every
// terminal tool's "only the latest toast matters" convention.
type NotificationState struct {
	current *Notification
}

// Show posts a new notification, replacing any currently visible one.
func (n *NotificationState) Show(message string, style NotifyStyle, now time.Time) {
	dur := time.Duration(0)
	switch style {
	case NotifyInfo:
		dur = infoDuration
	case NotifyWarning:
		dur = warningDuration
	case NotifyError:
		dur = 0 // permanent until dismissed
	}
	n.current = &Notification{Message: message, Style: style, CreatedAt: now, Duration: dur}
}

// Dismiss clears the current notification unconditionally (used by an
// explicit dismiss key on an Error notification).
func (n *NotificationState) Dismiss() {
	n.current = nil
}

// Expire clears the current notification if its duration has elapsed.
// Permanent (zero-duration) notifications are never auto-expired.
func (n *NotificationState) Expire(now time.Time) {
	if n.current == nil || n.current.Duration == 0 {
		return
	}
	if now.Sub(n.current.CreatedAt) >= n.current.Duration {
		n.current = nil
	}
}

// Current returns the active notification, if any.
func (n *NotificationState) Current() (Notification, bool) {
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}
