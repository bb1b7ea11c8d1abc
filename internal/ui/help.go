package ui

// HelpTab is one of spec.md §4.7's seven help categories.
type HelpTab int

const (
	HelpGlobal HelpTab = iota
	HelpInput
	HelpResult
	HelpHistory
	HelpAI
	HelpSearch
	HelpSnippet
	helpTabCount
)

// Focus identifies which pane currently has input focus, used to
// context-aware-select a help tab on open.
type Focus int

const (
	FocusInput Focus = iota
	FocusResults
	FocusAutocomplete
	FocusHistory
	FocusSnippets
	FocusSearch
	FocusAI
)

// HelpState is the multi-tab help popup (spec.md §4.7).
type HelpState struct {
	Visible bool
	Active  HelpTab
	// Scroll holds each tab's independent scroll offset.
	Scroll [helpTabCount]int
}

// focusToTab maps a focused pane to the help tab that should auto-select
// when help opens from it. History and AI deliberately never auto-focus
// (spec.md §4.7: "History/AI tabs never auto-focus"), so they're absent
// here and Open falls back to HelpGlobal for them.
var focusToTab = map[Focus]HelpTab{
	FocusInput:        HelpInput,
	FocusResults:      HelpResult,
	FocusSearch:       HelpSearch,
	FocusSnippets:     HelpSnippet,
	FocusAutocomplete: HelpInput,
}

// Open shows help, auto-selecting the tab matching focus unless focus is
// History or AI (or unmapped), in which case it opens on Global.
func (h *HelpState) Open(focus Focus) {
	h.Visible = true
	if tab, ok := focusToTab[focus]; ok {
		h.Active = tab
	} else {
		h.Active = HelpGlobal
	}
}

// Close hides the help popup without resetting scroll positions, so
// reopening on the same tab resumes where the user left off.
func (h *HelpState) Close() {
	h.Visible = false
}

// Toggle flips visibility; opening via Toggle selects the tab for focus
// exactly as Open does.
func (h *HelpState) Toggle(focus Focus) {
	if h.Visible {
		h.Close()
	} else {
		h.Open(focus)
	}
}

// NextTab/PrevTab switch tabs with wraparound (Tab key, h/l, arrows).
func (h *HelpState) NextTab() {
	h.Active = (h.Active + 1) % helpTabCount
}

func (h *HelpState) PrevTab() {
	h.Active = (h.Active - 1 + helpTabCount) % helpTabCount
}

// JumpTab selects a tab directly by its 1-7 index (1-based, matching the
// number keys); out-of-range indices are ignored.
func (h *HelpState) JumpTab(n int) {
	if n < 1 || n > int(helpTabCount) {
		return
	}
	h.Active = HelpTab(n - 1)
}

// ScrollDown/ScrollUp adjust the active tab's independent scroll offset.
func (h *HelpState) ScrollDown() {
	h.Scroll[h.Active]++
}

func (h *HelpState) ScrollUp() {
	if h.Scroll[h.Active] > 0 {
		h.Scroll[h.Active]--
	}
}

func (t HelpTab) String() string {
	switch t {
	case HelpGlobal:
		return "Global"
	case HelpInput:
		return "Input"
	case HelpResult:
		return "Result"
	case HelpHistory:
		return "History"
	case HelpAI:
		return "AI"
	case HelpSearch:
		return "Search"
	case HelpSnippet:
		return "Snippet"
	default:
		return "Unknown"
	}
}
