package editor

// CalculateScrollOffset recomputes the horizontal scroll offset so the
// cursor stays visible within a viewport of the given width, per spec.md
// §4.6.2. The two invariants it must uphold (Testable Property 6):
//
//	(a) scroll <= cursor < scroll+width
//	(b) scroll <= max(0, textLen-width)  (no trailing empty space)
//
// With the cursor at the append position (cursor == textLen) the two
// cannot both hold, so (b) is relaxed there to scroll <= textLen+1-width.
func CalculateScrollOffset(scroll, cursor, textLen, width int) int {
	if width <= 0 {
		return 0
	}
	if cursor < scroll {
		scroll = cursor
	} else if cursor >= scroll+width {
		scroll = cursor + 1 - width
	}

	maxScroll := textLen - width
	if cursor >= textLen {
		// The cursor may sit one position past the last rune (append
		// position); let the viewport track it without violating the
		// "no trailing empty space" rule for any existing character.
		maxScroll = textLen + 1 - width
	}
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}
