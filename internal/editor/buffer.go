package editor

import "unicode"

// charSearch remembers the last f/F/t/T invocation so ';' and ',' can repeat
// or reverse it.
type charSearch struct {
	forward bool
	till    bool
	target  rune
	active  bool
}

// change captures enough of a buffer mutation to replay it for dot-repeat:
// the full text before and after, plus the cursor position to restore.
type change struct {
	before, after string
	cursorBefore  int
	cursorAfter   int
}

// Buffer is the single-line modal text buffer behind the query input box
// (spec.md §4.6). It owns a plain []rune buffer and a cursor index rather
// than a rope or gap buffer — a single query line never grows large enough
// to need one.
type Buffer struct {
	text   []rune
	cursor int
	mode   Mode

	pendingOp  rune // 'd' or 'c' while Mode == Operator
	lastSearch charSearch

	undoStack []change
	redoStack []change

	lastChange *change
}

// NewBuffer creates an empty buffer in Insert mode, ready to type into.
func NewBuffer() *Buffer {
	return &Buffer{mode: Insert}
}

// Text returns the current buffer contents.
func (b *Buffer) Text() string { return string(b.text) }

// Cursor returns the current cursor rune index.
func (b *Buffer) Cursor() int { return b.cursor }

// Mode returns the current editor mode.
func (b *Buffer) Mode() Mode { return b.mode }

// SetText replaces the buffer contents and moves the cursor to the end,
// used when applying an autocomplete or AI suggestion (§4.3's "Applying a
// suggestion" — the editor mode is deliberately left untouched).
func (b *Buffer) SetText(s string) {
	b.pushUndo()
	b.text = []rune(s)
	b.cursor = len(b.text)
	b.commitUndo()
}

func (b *Buffer) pushUndo() {
	b.undoStack = append(b.undoStack, change{
		before:       string(b.text),
		cursorBefore: b.cursor,
	})
	b.redoStack = nil
}

func (b *Buffer) commitUndo() {
	if len(b.undoStack) == 0 {
		return
	}
	top := &b.undoStack[len(b.undoStack)-1]
	top.after = string(b.text)
	top.cursorAfter = b.cursor
	c := *top
	b.lastChange = &c
}

// Undo reverts the most recent committed change.
func (b *Buffer) Undo() {
	if len(b.undoStack) == 0 {
		return
	}
	c := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.redoStack = append(b.redoStack, c)
	b.text = []rune(c.before)
	b.cursor = c.cursorBefore
}

// Redo reapplies the most recently undone change.
func (b *Buffer) Redo() {
	if len(b.redoStack) == 0 {
		return
	}
	c := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.undoStack = append(b.undoStack, c)
	b.text = []rune(c.after)
	b.cursor = c.cursorAfter
}

// InsertRune inserts r at the cursor in Insert mode and advances the
// cursor past it.
func (b *Buffer) InsertRune(r rune) {
	b.pushUndo()
	b.text = append(b.text[:b.cursor], append([]rune{r}, b.text[b.cursor:]...)...)
	b.cursor++
	b.commitUndo()
}

// Backspace deletes the rune before the cursor.
func (b *Buffer) Backspace() {
	if b.cursor == 0 {
		return
	}
	b.pushUndo()
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	b.commitUndo()
}

// Delete deletes the rune under the cursor (forward delete).
func (b *Buffer) Delete() {
	if b.cursor >= len(b.text) {
		return
	}
	b.pushUndo()
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
	b.commitUndo()
}

// EnterInsert switches to Insert mode.
func (b *Buffer) EnterInsert() { b.mode = Insert }

// EnterNormal switches to Normal mode, clamping the cursor onto the last
// character (vim never leaves the cursor past end-of-line in Normal mode).
func (b *Buffer) EnterNormal() {
	b.mode = Normal
	if b.cursor > 0 && b.cursor >= len(b.text) {
		b.cursor = len(b.text) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

// MoveLeft/MoveRight/MoveStart/MoveFirstNonBlank/MoveEnd are Normal-mode
// motions (h/l/0/^/$).
func (b *Buffer) MoveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *Buffer) MoveRight() {
	limit := len(b.text) - 1
	if b.mode == Insert {
		limit = len(b.text)
	}
	if b.cursor < limit {
		b.cursor++
	}
}

func (b *Buffer) MoveStart() { b.cursor = 0 }

func (b *Buffer) MoveFirstNonBlank() {
	for i, r := range b.text {
		if !unicode.IsSpace(r) {
			b.cursor = i
			return
		}
	}
	b.cursor = 0
}

// SetCursor moves the cursor directly to pos, clamping into [0, len(text)].
// Used by the UI layer to implement operator+motion deletes ("dw", "d$")
// that need to land the cursor at a computed boundary Buffer itself has
// no single method for.
func (b *Buffer) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.text) {
		pos = len(b.text)
	}
	b.cursor = pos
}

// SetCursorToEnd moves the cursor past the last character, for `A` to
// begin appending after existing text in Insert mode.
func (b *Buffer) SetCursorToEnd() {
	b.cursor = len(b.text)
}

func (b *Buffer) MoveEnd() {
	if len(b.text) == 0 {
		b.cursor = 0
		return
	}
	b.cursor = len(b.text) - 1
}

// MoveWordForward advances to the start of the next word (vim's `w`).
func (b *Buffer) MoveWordForward() {
	b.cursor = nextWordStart(b.text, b.cursor)
}

func nextWordStart(text []rune, pos int) int {
	n := len(text)
	if pos >= n {
		return n
	}
	i := pos
	startClass := charClass(text[i])
	for i < n && charClass(text[i]) == startClass && startClass != classSpace {
		i++
	}
	for i < n && unicode.IsSpace(text[i]) {
		i++
	}
	if i >= n {
		return n - 1
	}
	return i
}

type class int

const (
	classSpace class = iota
	classWord
	classPunct
)

func charClass(r rune) class {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case isWordChar(r):
		return classWord
	default:
		return classPunct
	}
}

// MoveWordBackward moves to the start of the previous word (vim's `b`).
func (b *Buffer) MoveWordBackward() {
	n := len(b.text)
	i := b.cursor
	if i > n {
		i = n
	}
	if i > 0 {
		i--
	}
	for i > 0 && unicode.IsSpace(b.text[i]) {
		i--
	}
	if i <= 0 {
		b.cursor = 0
		return
	}
	cls := charClass(b.text[i])
	for i > 0 && charClass(b.text[i-1]) == cls {
		i--
	}
	b.cursor = i
}

// MoveWordEnd moves to the end of the current or next word (vim's `e`).
func (b *Buffer) MoveWordEnd() {
	n := len(b.text)
	i := b.cursor + 1
	for i < n && unicode.IsSpace(b.text[i]) {
		i++
	}
	if i >= n {
		b.cursor = n - 1
		if b.cursor < 0 {
			b.cursor = 0
		}
		return
	}
	cls := charClass(b.text[i])
	for i+1 < n && charClass(b.text[i+1]) == cls {
		i++
	}
	b.cursor = i
}

// DeleteCharUnderCursor implements `x`.
func (b *Buffer) DeleteCharUnderCursor() {
	if b.cursor >= len(b.text) {
		return
	}
	b.pushUndo()
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
	if b.cursor >= len(b.text) && b.cursor > 0 {
		b.cursor--
	}
	b.commitUndo()
}

// DeleteCharBeforeCursor implements `X`.
func (b *Buffer) DeleteCharBeforeCursor() {
	if b.cursor == 0 {
		return
	}
	b.pushUndo()
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	b.commitUndo()
}

// DeleteToEnd implements `D`: delete from the cursor to end of line.
func (b *Buffer) DeleteToEnd() {
	if b.cursor >= len(b.text) {
		return
	}
	b.pushUndo()
	b.text = b.text[:b.cursor]
	b.commitUndo()
}

// DeleteLine implements `dd` on a single-line buffer: clear it entirely.
func (b *Buffer) DeleteLine() {
	b.pushUndo()
	b.text = nil
	b.cursor = 0
	b.commitUndo()
}

// CharSearch starts an f/F/t/T operation: forward/backward,
// up-to/onto.
func (b *Buffer) CharSearch(forward, till bool, target rune) {
	b.lastSearch = charSearch{forward: forward, till: till, target: target, active: true}
	b.applyCharSearch(forward, till, target)
}

// RepeatCharSearch implements `;`.
func (b *Buffer) RepeatCharSearch() {
	if !b.lastSearch.active {
		return
	}
	s := b.lastSearch
	b.applyCharSearch(s.forward, s.till, s.target)
}

// ReverseCharSearch implements `,`.
func (b *Buffer) ReverseCharSearch() {
	if !b.lastSearch.active {
		return
	}
	s := b.lastSearch
	b.applyCharSearch(!s.forward, s.till, s.target)
}

func (b *Buffer) applyCharSearch(forward, till bool, target rune) {
	if forward {
		for i := b.cursor + 1; i < len(b.text); i++ {
			if b.text[i] == target {
				if till {
					b.cursor = i - 1
				} else {
					b.cursor = i
				}
				return
			}
		}
		return
	}
	for i := b.cursor - 1; i >= 0; i-- {
		if b.text[i] == target {
			if till {
				b.cursor = i + 1
			} else {
				b.cursor = i
			}
			return
		}
	}
}

// DeleteTextObject deletes the range found by FindTextObjectBounds (the
// `d` operator followed by a text-object command, e.g. `di"` or `daP`).
func (b *Buffer) DeleteTextObject(target Target, scope Scope) bool {
	r, ok := FindTextObjectBounds(b.text, b.cursor, target, scope)
	if !ok {
		return false
	}
	b.pushUndo()
	b.text = append(b.text[:r.Start], b.text[r.End:]...)
	b.cursor = r.Start
	if b.cursor >= len(b.text) && b.cursor > 0 {
		b.cursor--
	}
	b.commitUndo()
	return true
}

// ChangeTextObject deletes the range and enters Insert mode at its start
// (the `c` operator), e.g. `ci"`.
func (b *Buffer) ChangeTextObject(target Target, scope Scope) bool {
	r, ok := FindTextObjectBounds(b.text, b.cursor, target, scope)
	if !ok {
		return false
	}
	b.pushUndo()
	b.text = append(b.text[:r.Start], b.text[r.End:]...)
	b.cursor = r.Start
	b.commitUndo()
	b.mode = Insert
	return true
}

// RepeatLastChange implements `.`: replays the most recently committed
// mutation verbatim. Supplemented feature: not named in spec.md's prose,
// but universal in vim-family editors.
func (b *Buffer) RepeatLastChange() {
	if b.lastChange == nil {
		return
	}
	if string(b.text) != b.lastChange.before {
		return
	}
	b.pushUndo()
	b.text = []rune(b.lastChange.after)
	b.cursor = b.lastChange.cursorAfter
	b.commitUndo()
}
