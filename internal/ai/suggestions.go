package ai

import (
	"regexp"
	"strconv"
	"strings"
)

// SuggestionType is one of spec.md §3's {Fix, Optimize, Next}.
type SuggestionType int

const (
	Next SuggestionType = iota
	Fix
	Optimize
)

// Suggestion mirrors spec.md §3's Suggestion entity.
type Suggestion struct {
	Query       string
	Type        SuggestionType
	Description string
}

const maxSuggestions = 5

// numberedLine matches "N. [Type] query", tolerating a missing type tag
// and extra whitespace.
var numberedLine = regexp.MustCompile(`^\s*(\d+)\.\s*(?:\[(\w+)\]\s*)?(.+?)\s*$`)

// ParseSuggestions extracts up to 5 numbered suggestions from an AI
// response, per spec.md §4.3's "Suggestion parsing": tolerates extra
// prose around the numbered lines, and a following indented line is
// taken as the description.
func ParseSuggestions(response string) []Suggestion {
	lines := strings.Split(response, "\n")
	var out []Suggestion

	for i := 0; i < len(lines) && len(out) < maxSuggestions; i++ {
		m := numberedLine.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		if _, err := strconv.Atoi(m[1]); err != nil {
			continue
		}

		sug := Suggestion{
			Type:  normalizeType(m[2]),
			Query: strings.TrimSpace(m[3]),
		}
		if sug.Query == "" {
			continue
		}

		if i+1 < len(lines) {
			desc := lines[i+1]
			if strings.TrimSpace(desc) != "" && (strings.HasPrefix(desc, " ") || strings.HasPrefix(desc, "\t")) {
				sug.Description = strings.TrimSpace(desc)
				i++
			}
		}
		out = append(out, sug)
	}
	return out
}

func normalizeType(raw string) SuggestionType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fix":
		return Fix
	case "optimize", "optimise":
		return Optimize
	default:
		return Next
	}
}
