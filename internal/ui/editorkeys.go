package ui

import "github.com/jiqtui/jiq/internal/editor"

// normalPending accumulates the second (and third) key of a multi-key
// Normal-mode command — an operator ("d"/"c") waiting for its motion or
// text object, or a char-search ("f"/"F"/"t"/"T") waiting for its target
// rune — since internal/editor.Buffer exposes only single-shot operations
// (DeleteTextObject, CharSearch, ...) and leaves sequencing to the caller,
// matching spec.md §4.6's own Operator/CharSearch/TextObject mode split.
type normalPending struct {
	op     rune // 'd' or 'c', or 0 if nothing pending
	search rune // 'f', 'F', 't', 'T', or 0 if nothing pending
	scope  rune // 'i' or 'a' seen after an operator, while choosing a text object
}

func (p *normalPending) clear() { *p = normalPending{} }

func (p *normalPending) active() bool { return p.op != 0 || p.search != 0 }

// feedNormalKey dispatches one Normal-mode keystroke against buf,
// resolving any in-progress multi-key sequence first. Returns true if the
// key was consumed.
func feedNormalKey(buf *editor.Buffer, pending *normalPending, key rune) bool {
	if pending.search != 0 {
		forward := pending.search == 'f' || pending.search == 't'
		till := pending.search == 't' || pending.search == 'T'
		buf.CharSearch(forward, till, key)
		pending.clear()
		return true
	}

	if pending.op != 0 {
		return feedOperatorKey(buf, pending, key)
	}

	switch key {
	case 'h':
		buf.MoveLeft()
	case 'l':
		buf.MoveRight()
	case '0':
		buf.MoveStart()
	case '^':
		buf.MoveFirstNonBlank()
	case '$':
		buf.MoveEnd()
	case 'w':
		buf.MoveWordForward()
	case 'b':
		buf.MoveWordBackward()
	case 'e':
		buf.MoveWordEnd()
	case 'x':
		buf.DeleteCharUnderCursor()
	case 'X':
		buf.DeleteCharBeforeCursor()
	case 'D':
		buf.DeleteToEnd()
	case 'u':
		buf.Undo()
	case 'i':
		buf.EnterInsert()
	case 'a':
		buf.MoveRight()
		buf.EnterInsert()
	case 'I':
		buf.MoveFirstNonBlank()
		buf.EnterInsert()
	case 'A':
		buf.SetCursorToEnd()
		buf.EnterInsert()
	case ';':
		buf.RepeatCharSearch()
	case ',':
		buf.ReverseCharSearch()
	case '.':
		buf.RepeatLastChange()
	case 'd', 'c':
		pending.op = key
	case 'f', 'F', 't', 'T':
		pending.search = key
	default:
		return false
	}
	return true
}

func feedOperatorKey(buf *editor.Buffer, pending *normalPending, key rune) bool {
	op := pending.op

	if pending.scope != 0 {
		target, ok := editor.TargetFromChar(key)
		scope := editor.Inner
		if pending.scope == 'a' {
			scope = editor.Around
		}
		pending.clear()
		if !ok {
			return true
		}
		if op == 'd' {
			buf.DeleteTextObject(target, scope)
		} else {
			buf.ChangeTextObject(target, scope)
		}
		return true
	}

	switch key {
	case 'i', 'a':
		pending.scope = key
		return true
	case 'd', 'c':
		if key == op {
			buf.DeleteLine()
			if op == 'c' {
				buf.EnterInsert()
			}
		}
		pending.clear()
		return true
	case 'w':
		applyMotionOperator(buf, op, (*editor.Buffer).MoveWordForward)
	case 'b':
		applyMotionOperator(buf, op, (*editor.Buffer).MoveWordBackward)
	case 'e':
		applyMotionOperator(buf, op, (*editor.Buffer).MoveWordEnd)
	case '0':
		applyMotionOperator(buf, op, (*editor.Buffer).MoveStart)
	case '^':
		applyMotionOperator(buf, op, (*editor.Buffer).MoveFirstNonBlank)
	case '$':
		buf.DeleteToEnd()
		if op == 'c' {
			buf.EnterInsert()
		}
	default:
		pending.clear()
		return false
	}
	pending.clear()
	return true
}

// applyMotionOperator implements operator+motion (e.g. "dw") by deleting
// the text between the cursor's current position and the position the
// motion would move it to, since Buffer exposes motions and single-char
// deletes but not a generic "delete from here to there".
func applyMotionOperator(buf *editor.Buffer, op rune, motion func(*editor.Buffer)) {
	start := buf.Cursor()
	motion(buf)
	end := buf.Cursor()
	if end < start {
		start, end = end, start
	}
	text := []rune(buf.Text())
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return
	}
	buf.SetText(string(text[:start]) + string(text[end:]))
	buf.SetCursor(start)
	if op == 'c' {
		buf.EnterInsert()
	} else {
		buf.EnterNormal()
		buf.SetCursor(start)
	}
}
