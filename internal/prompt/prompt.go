// Package prompt builds the text sent to an AI provider from the current
// query context (spec.md §4.4): either an error-troubleshooting prompt or
// a success-optimisation prompt, both carrying a capped JSON sample, a
// type-only structural summary, and a word budget derived from the popup
// dimensions the response will be rendered into.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// sampleCap is the target size, in bytes, for the JSON sample embedded in
// a prompt (spec.md §4.4: "~25 KB").
const sampleCap = 25 * 1024

// minifySkipMultiplier: inputs more than this many times the cap skip the
// minification pass entirely, since parsing megabytes of JSON just to
// trim a prompt sample isn't worth the latency.
const minifySkipMultiplier = 10

// Context mirrors spec.md §4.4's QueryContext: everything the prompt
// builder needs, gathered by the event loop before dispatching to the AI
// worker.
type Context struct {
	Query           string
	Cursor          int
	InputSample     []byte
	Output          string
	Err             string
	RootType        string
	ElementType     string
	ElementCount    int
	TopLevelKeys    []string
	Schema          string
	BaseQuery       string
	BaseQueryResult string
	IsEmptyResult   bool
	WordBudget      int
}

// IsError reports whether this context represents a failing query
// (selects the troubleshooting prompt template).
func (c Context) IsError() bool { return c.Err != "" }

// Build renders the full prompt text for c.
func Build(c Context) string {
	var b strings.Builder

	if c.IsError() {
		b.WriteString("The user's jq-style query failed. Diagnose the problem and suggest fixes.\n\n")
		fmt.Fprintf(&b, "Query: %s\n", c.Query)
		fmt.Fprintf(&b, "Cursor position: %d\n", c.Cursor)
		fmt.Fprintf(&b, "Error: %s\n\n", c.Err)
		if c.BaseQuery != "" {
			b.WriteString("The last query that worked:\n")
			fmt.Fprintf(&b, "  %s\n", c.BaseQuery)
			if c.BaseQueryResult != "" {
				b.WriteString("Its output:\n")
				writeFenced(&b, c.BaseQueryResult)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("Suggest useful follow-up queries for exploring this JSON data.\n\n")
		fmt.Fprintf(&b, "Current query: %s\n", c.Query)
		if c.IsEmptyResult {
			b.WriteString("The current query returned no results.\n")
		} else if c.Output != "" {
			b.WriteString("Current output:\n")
			writeFenced(&b, c.Output)
		}
		b.WriteString("\n")
	}

	b.WriteString("Input structure:\n")
	fmt.Fprintf(&b, "  root type: %s\n", c.RootType)
	if c.ElementType != "" {
		fmt.Fprintf(&b, "  element type: %s\n", c.ElementType)
		fmt.Fprintf(&b, "  element count: %d\n", c.ElementCount)
	}
	if len(c.TopLevelKeys) > 0 {
		fmt.Fprintf(&b, "  top-level keys: %s\n", strings.Join(c.TopLevelKeys, ", "))
	}
	if c.Schema != "" {
		b.WriteString("  schema:\n")
		writeFenced(&b, c.Schema)
	}

	b.WriteString("\nSample input:\n")
	writeFenced(&b, string(PrepareSample(c.InputSample)))

	budget := c.WordBudget
	if budget <= 0 {
		budget = 150
	}
	fmt.Fprintf(&b, "\nRespond in under %d words. Format each suggestion as a numbered line:\n", budget)
	b.WriteString("1. [Type] query\n   description\n")

	return b.String()
}

func writeFenced(b *strings.Builder, s string) {
	b.WriteString("```\n")
	b.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
}

// PrepareSample caps raw to sampleCap bytes, per spec.md §4.4's "JSON
// sample preparation": if it's over the cap, try a minify (parse +
// reserialise) pass first, unless it's so large that parsing isn't worth
// attempting; if still over after minifying (or minifying was skipped),
// truncate and append a marker.
func PrepareSample(raw []byte) []byte {
	if len(raw) <= sampleCap {
		return raw
	}

	if len(raw) <= sampleCap*minifySkipMultiplier {
		if minified, ok := minify(raw); ok && len(minified) <= sampleCap {
			return minified
		} else if ok {
			raw = minified
		}
	}

	if len(raw) <= sampleCap {
		return raw
	}
	truncated := raw[:sampleCap:sampleCap]
	return append(truncated, []byte("\n... (truncated)")...)
}

func minify(raw []byte) ([]byte, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return out, true
}

// SchemaDepthBudget implements spec.md §4.4's "depth budget that scales
// inversely with input size": 30/20/10/5 for <1MB/<10MB/<100MB/larger.
func SchemaDepthBudget(inputSize int) int {
	const mb = 1024 * 1024
	switch {
	case inputSize < 1*mb:
		return 30
	case inputSize < 10*mb:
		return 20
	case inputSize < 100*mb:
		return 10
	default:
		return 5
	}
}
