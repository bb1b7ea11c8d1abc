// Package stats computes the results-pane stats-bar summary (spec.md §3's
// StatsState) from the raw text a query run produced, without fully
// unmarshalling it: a character scan is cheap enough to run on every
// keystroke's result where encoding/json round-tripping would not be.
//
// Grounded on original_source/src/stats/{parser.rs,types.rs,stats_state.rs}:
// spec.md §3's StatsState entity and Testable Property 9 give the
// persistence contract, but the exact array/stream detection algorithm is
// only fully specified in that original character-scanning parser, which
// this package follows directly.
package stats

import "strings"

// ElementType classifies the homogeneous contents of an array result.
type ElementType int

const (
	ElementEmpty ElementType = iota
	ElementObjects
	ElementArrays
	ElementStrings
	ElementNumbers
	ElementBooleans
	ElementNulls
	ElementMixed
)

func (e ElementType) String() string {
	switch e {
	case ElementObjects:
		return "objects"
	case ElementArrays:
		return "arrays"
	case ElementStrings:
		return "strings"
	case ElementNumbers:
		return "numbers"
	case ElementBooleans:
		return "booleans"
	case ElementNulls:
		return "nulls"
	case ElementMixed:
		return "mixed"
	default:
		return ""
	}
}

// Kind distinguishes the shape of a Result.
type Kind int

const (
	KindArray Kind = iota
	KindObject
	KindString
	KindNumber
	KindBoolean
	KindNull
	KindStream
)

// Result is the computed statistics for one query output.
type Result struct {
	Kind        Kind
	Count       int // Array element count, or Stream value count
	ElementType ElementType
}

// String renders the stats-bar text, e.g. "Array [5 numbers]" or "Stream [3]".
func (r Result) String() string {
	switch r.Kind {
	case KindArray:
		if r.ElementType == ElementEmpty {
			return "Array [0]"
		}
		return "Array [" + itoa(r.Count) + " " + r.ElementType.String() + "]"
	case KindObject:
		return "Object"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBoolean:
		return "Boolean"
	case KindStream:
		return "Stream [" + itoa(r.Count) + "]"
	default:
		return "null"
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Parse inspects raw query output and classifies it. Parse never returns an
// error: unrecognised leading bytes fall back to Null, mirroring the
// original parser's total-function design (this is a best-effort display
// hint, not a validator).
func Parse(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{Kind: KindNull}
	}

	if count, ok := detectStream(trimmed); ok {
		return Result{Kind: KindStream, Count: count}
	}

	switch trimmed[0] {
	case '[':
		count := countArrayItems(trimmed)
		elemType := ElementEmpty
		if count > 0 {
			elemType = detectElementType(trimmed)
		}
		return Result{Kind: KindArray, Count: count, ElementType: elemType}
	case '{':
		return Result{Kind: KindObject}
	case '"':
		return Result{Kind: KindString}
	case 't', 'f':
		return Result{Kind: KindBoolean}
	case 'n':
		return Result{Kind: KindNull}
	default:
		if trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9') {
			return Result{Kind: KindNumber}
		}
		return Result{Kind: KindNull}
	}
}

// countArrayItems counts top-level comma-separated elements of a JSON array
// text, honoring nested brackets and string literals.
func countArrayItems(s string) int {
	depth := 0
	commas := 0
	inString := false
	escape := false
	hasContent := false

	for _, ch := range s {
		if escape {
			escape = false
			continue
		}
		if ch == '\\' && inString {
			escape = true
			continue
		}
		if ch == '"' {
			inString = !inString
			if depth == 1 {
				hasContent = true
			}
			continue
		}
		if inString {
			continue
		}
		switch {
		case ch == '[' || ch == '{':
			if depth == 1 {
				hasContent = true
			}
			depth++
		case ch == ']' || ch == '}':
			depth--
		case ch == ',':
			if depth == 1 {
				commas++
			}
		case depth == 1 && ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r':
			hasContent = true
		}
	}

	if !hasContent {
		return 0
	}
	return commas + 1
}

const maxElementsToCheck = 10

// detectElementType samples up to the first 10 top-level array elements and
// reports their common type, or Mixed the moment two disagree.
func detectElementType(s string) ElementType {
	depth := 0
	inString := false
	escape := false
	var first *ElementType
	checked := 0

	note := func(t ElementType) (stop bool) {
		if first == nil {
			first = &t
		} else if *first != t {
			return true
		}
		checked++
		return false
	}

	runes := []rune(s)
	for i := 0; i < len(runes) && checked < maxElementsToCheck; i++ {
		ch := runes[i]
		if escape {
			escape = false
			continue
		}
		if ch == '\\' && inString {
			escape = true
			continue
		}
		if ch == '"' {
			if depth == 1 && !inString {
				if note(ElementStrings) {
					return ElementMixed
				}
			}
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch {
		case ch == '[':
			if depth == 1 {
				if note(ElementArrays) {
					return ElementMixed
				}
			}
			depth++
		case ch == '{':
			if depth == 1 {
				if note(ElementObjects) {
					return ElementMixed
				}
			}
			depth++
		case ch == ']' || ch == '}':
			depth--
		case depth == 1 && (ch == 't' || ch == 'f'):
			if note(ElementBooleans) {
				return ElementMixed
			}
		case depth == 1 && ch == 'n':
			if note(ElementNulls) {
				return ElementMixed
			}
		case depth == 1 && (ch == '-' || (ch >= '0' && ch <= '9')):
			if note(ElementNumbers) {
				return ElementMixed
			}
		}
	}

	if first == nil {
		return ElementEmpty
	}
	return *first
}

// detectStream reports whether raw looks like newline/whitespace-separated
// JSON values (a jq-style stream, e.g. `.[]` output) rather than a single
// value, and if so how many values it contains.
func detectStream(s string) (count int, ok bool) {
	depth := 0
	inString := false
	escape := false
	inValue := false

	for _, ch := range s {
		if escape {
			escape = false
			continue
		}
		if ch == '\\' && inString {
			escape = true
			continue
		}
		if ch == '"' {
			if !inString && depth == 0 && !inValue {
				count++
				inValue = true
			}
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch {
		case ch == '[' || ch == '{':
			if depth == 0 && !inValue {
				count++
				inValue = true
			}
			depth++
		case ch == ']' || ch == '}':
			depth--
			if depth == 0 {
				inValue = false
			}
		case depth == 0 && !inValue && (ch == 't' || ch == 'f' || ch == 'n'):
			count++
			inValue = true
		case depth == 0 && !inValue && (ch == '-' || (ch >= '0' && ch <= '9')):
			count++
			inValue = true
		case depth == 0 && (ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'):
			inValue = false
		}
	}

	return count, count > 1
}

// State caches the most recently computed Result so it survives a
// subsequent failed or empty query (Testable Property 9).
type State struct {
	current *Result
}

// Compute parses raw and caches the result, unless raw is empty or
// whitespace-only, in which case the previous cache is left untouched.
func (s *State) Compute(raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	r := Parse(raw)
	s.current = &r
}

// Display returns the stats-bar text, or "", false if nothing has been
// computed yet.
func (s *State) Display() (string, bool) {
	if s.current == nil {
		return "", false
	}
	return s.current.String(), true
}
