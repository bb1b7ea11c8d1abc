package jsonmodel

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Analyzer caches a parsed JSON document and every field name it contains.
// Its contextual-suggestion navigation rules (dot access, array-bracket
// descent, pipe composition, case-insensitive prefix filtering, text-sorted
// tie-breaking) follow original_source/src/autocomplete/json_analyzer.rs's
// test matrix, which pins down the exact tie-breaking and malformed-path
// behavior left implicit elsewhere.
type Analyzer struct {
	root       any
	fieldNames map[string]struct{}
}

// New returns an empty Analyzer; call Analyze before using it.
func New() *Analyzer {
	return &Analyzer{fieldNames: map[string]struct{}{}}
}

// Analyze parses raw and rebuilds the field-name cache. A parse failure
// leaves the Analyzer in its previous state and returns the error; callers
// must treat this as non-fatal per spec.md §4.5 ("malformed input: return
// an empty suggestion list; never fail the overall app").
func (a *Analyzer) Analyze(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	names := map[string]struct{}{}
	extractFields(v, names)
	a.root = v
	a.fieldNames = names
	return nil
}

func extractFields(v any, out map[string]struct{}) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			out[k] = struct{}{}
			extractFields(child, out)
		}
	case []any:
		for _, child := range val {
			extractFields(child, out)
		}
	}
}

// AllFields returns every field name observed anywhere in the document,
// sorted, mainly useful for tests and diagnostics.
func (a *Analyzer) AllFields() []string {
	names := make([]string, 0, len(a.fieldNames))
	for n := range a.fieldNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ContextualFieldSuggestions enumerates the fields available at path,
// filtered by a case-insensitive prefix and sorted by text (spec.md §4.5's
// tie-breaking rule: "sorted by text, not by JSON key order").
func (a *Analyzer) ContextualFieldSuggestions(path, prefix string) []Suggestion {
	if a.root == nil {
		return nil
	}
	if path == "" || path == "." {
		return fieldsOf(a.root, prefix)
	}
	v, ok := a.valueAtPath(path)
	if !ok {
		return nil
	}
	return fieldsOf(v, prefix)
}

func fieldsOf(v any, prefix string) []Suggestion {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	lowerPrefix := strings.ToLower(prefix)
	out := make([]Suggestion, 0, len(obj))
	for k, child := range obj {
		if lowerPrefix != "" && !strings.HasPrefix(strings.ToLower(k), lowerPrefix) {
			continue
		}
		ft := detectType(child)
		out = append(out, Suggestion{Text: "." + k, Category: Field, Type: &ft})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out
}

// WildcardSuggestion returns the ".[]" array-iteration hint when path
// resolves to an array-typed field, supplementing §4.5's field enumeration
// with behavior present in original_source's analyzer but left out of
// spec.md's prose — see json_analyzer.rs's array-navigation tests.
func (a *Analyzer) WildcardSuggestion(path string) (Suggestion, bool) {
	if a.root == nil {
		return Suggestion{}, false
	}
	v, ok := a.valueAtPath(path)
	if !ok {
		if path == "" || path == "." {
			v, ok = a.root, true
		} else {
			return Suggestion{}, false
		}
	}
	if _, isArray := v.([]any); !isArray {
		return Suggestion{}, false
	}
	return Suggestion{Text: ".[]", Category: Function}, true
}

// RootType reports the document root's JSON value kind (e.g. "Object" or
// "Array[Object]"), for the AI prompt's structural summary (spec.md §4.4).
func (a *Analyzer) RootType() string {
	if a.root == nil {
		return ""
	}
	return detectType(a.root).String()
}

// TopLevelKeys returns the root object's direct keys, sorted. Empty unless
// the root is an object, matching the "top-level keys" line spec.md §4.4's
// prompt template describes.
func (a *Analyzer) TopLevelKeys() []string {
	obj, ok := a.root.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RootElement reports the element type and length of a root-level array,
// for prompts describing "an array of N things". ok is false unless the
// root is an array.
func (a *Analyzer) RootElement() (elemType string, count int, ok bool) {
	arr, isArr := a.root.([]any)
	if !isArr {
		return "", 0, false
	}
	if len(arr) == 0 {
		return "", 0, true
	}
	return detectType(arr[0]).String(), len(arr), true
}

// TypeAtPath resolves path from root and reports its type, backing the
// field-type tooltip spec.md §4.1 step 4 calls "recompute tooltip".
func (a *Analyzer) TypeAtPath(path string) (FieldType, bool) {
	if a.root == nil {
		return FieldType{}, false
	}
	v, ok := a.valueAtPath(path)
	if !ok {
		return FieldType{}, false
	}
	return detectType(v), true
}

// Schema renders a type-only structural summary of the document, object
// keys sorted, nesting cut off at maxDepth — the depth-budgeted schema
// spec.md §4.4 describes (see prompt.SchemaDepthBudget for the 30/20/10/5
// scaling table).
func (a *Analyzer) Schema(maxDepth int) string {
	if a.root == nil {
		return ""
	}
	var b strings.Builder
	writeSchema(&b, a.root, 0, maxDepth)
	return b.String()
}

func writeSchema(b *strings.Builder, v any, depth, maxDepth int) {
	indent := strings.Repeat("  ", depth)
	switch val := v.(type) {
	case map[string]any:
		if depth >= maxDepth {
			b.WriteString(indent + "{...}\n")
			return
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := val[k]
			switch child.(type) {
			case map[string]any, []any:
				fmt.Fprintf(b, "%s%s:\n", indent, k)
				writeSchema(b, child, depth+1, maxDepth)
			default:
				fmt.Fprintf(b, "%s%s: %s\n", indent, k, detectType(child).String())
			}
		}
	case []any:
		if len(val) == 0 {
			b.WriteString(indent + "[]\n")
			return
		}
		b.WriteString(indent + "[\n")
		writeSchema(b, val[0], depth+1, maxDepth)
		b.WriteString(indent + "]\n")
	default:
		b.WriteString(indent + detectType(v).String() + "\n")
	}
}

// valueAtPath navigates a (possibly piped) jq-shaped path from root.
func (a *Analyzer) valueAtPath(path string) (any, bool) {
	if idx := strings.LastIndex(path, "|"); idx >= 0 {
		left := strings.TrimSpace(path[:idx])
		right := strings.TrimSpace(path[idx+1:])

		leftVal := a.root
		if left != "" {
			v, ok := a.valueAtPath(left)
			if !ok {
				return nil, false
			}
			leftVal = v
		}
		return navigate(leftVal, right)
	}
	return navigate(a.root, path)
}

// navigate walks a dot/bracket path from start. An empty segment (bare
// "[]" or "[0]" right after a dot or pipe) descends into the first element
// of the current array without requiring a preceding field name.
func navigate(start any, path string) (any, bool) {
	path = strings.TrimPrefix(path, ".")
	current := start

	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			continue
		}
		field := segment
		isArray := false
		if idx := strings.IndexByte(segment, '['); idx >= 0 {
			field = segment[:idx]
			isArray = true
		}

		if field != "" {
			obj, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			child, ok := obj[field]
			if !ok {
				return nil, false
			}
			current = child
		}

		if isArray {
			arr, ok := current.([]any)
			if !ok || len(arr) == 0 {
				return nil, false
			}
			current = arr[0]
		}
	}
	return current, true
}
