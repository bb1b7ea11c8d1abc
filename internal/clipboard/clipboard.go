// Package clipboard adapts atotto/clipboard behind a tiny interface so
// the event loop's "copy result" command (spec.md §6) can be tested
// without touching the real system clipboard.
package clipboard

import "github.com/atotto/clipboard"

// Writer copies text to the system clipboard.
type Writer interface {
	Write(text string) error
}

// System is the real clipboard, backed by atotto/clipboard.
type System struct{}

// Write copies text to the system clipboard.
func (System) Write(text string) error {
	return clipboard.WriteAll(text)
}

// Fake records the last write without touching any OS clipboard, used in
// tests for components that copy query results.
type Fake struct {
	Last string
	Err  error
}

// Write records text as the last write, or returns Err if set.
func (f *Fake) Write(text string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Last = text
	return nil
}
