package ui

// Rect is an axis-aligned screen region in terminal cells, used for mouse
// hit-testing against the rendered panes (spec.md §3's LayoutRegions).
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the 0-indexed cell (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// LayoutRegions tracks where each pane is laid out, recomputed from the
// terminal's size on every WindowSizeMsg. Mouse events are resolved
// against these rectangles rather than carried alongside lipgloss render
// calls, since bubbletea delivers input and render as separate passes.
type LayoutRegions struct {
	Input   Rect
	Results Rect
	Stats   Rect
	AI      Rect
}

// Recompute lays out the three fixed bands (single-line input, stats
// footer, and results filling everything between) for a width x height
// terminal. The AI popup is an overlay sized independently by the caller
// once a response exists, so it's zeroed here.
func (l *LayoutRegions) Recompute(width, height int) {
	const inputHeight = 1
	const statsHeight = 1

	l.Input = Rect{X: 0, Y: 0, Width: width, Height: inputHeight}

	resultsHeight := height - inputHeight - statsHeight
	if resultsHeight < 0 {
		resultsHeight = 0
	}
	l.Results = Rect{X: 0, Y: inputHeight, Width: width, Height: resultsHeight}

	l.Stats = Rect{X: 0, Y: inputHeight + resultsHeight, Width: width, Height: statsHeight}
	l.AI = Rect{}
}

// PaneAt reports which region, if any, contains (x, y). Returns "" if the
// point falls outside every known region.
func (l *LayoutRegions) PaneAt(x, y int) string {
	switch {
	case l.Input.Contains(x, y):
		return "input"
	case l.Stats.Contains(x, y):
		return "stats"
	case l.AI.Width > 0 && l.AI.Contains(x, y):
		return "ai"
	case l.Results.Contains(x, y):
		return "results"
	default:
		return ""
	}
}
