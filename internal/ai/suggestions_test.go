package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSuggestionsBasic(t *testing.T) {
	resp := "Here are some ideas:\n\n1. [Fix] .items[]\n   handles the missing field\n2. [Optimize] .items | map(.id)\n   avoids re-evaluating the filter\n3. .items | length\n   counts the items"
	sugs := ParseSuggestions(resp)
	require.Len(t, sugs, 3)

	require.Equal(t, Fix, sugs[0].Type)
	require.Equal(t, ".items[]", sugs[0].Query)
	require.Equal(t, "handles the missing field", sugs[0].Description)

	require.Equal(t, Optimize, sugs[1].Type)
	require.Equal(t, Next, sugs[2].Type, "an untyped line defaults to Next")
}

func TestParseSuggestionsCapsAtFive(t *testing.T) {
	var resp string
	for i := 1; i <= 8; i++ {
		resp += string(rune('0'+i)) + ". [Next] .a\n   desc\n"
	}
	sugs := ParseSuggestions(resp)
	require.Len(t, sugs, 5, "spec.md §4.3 caps suggestion parsing at 5")
}

func TestParseSuggestionsTolerateExtraProse(t *testing.T) {
	resp := "I analyzed your query and here's what I found, hope it helps!\n\n1. [Fix] .a.b\n   resolves the typo\n\nLet me know if you need more."
	sugs := ParseSuggestions(resp)
	require.Len(t, sugs, 1)
	require.Equal(t, ".a.b", sugs[0].Query)
}

func TestParseSuggestionsMalformedResponseDegradesGracefully(t *testing.T) {
	sugs := ParseSuggestions("This is just prose with no numbered list at all.")
	require.Empty(t, sugs, "malformed suggestions must degrade to an empty list, not an error")
}

func TestNormalizeTypeUnknownDefaultsToNext(t *testing.T) {
	require.Equal(t, Next, normalizeType("Banana"))
	require.Equal(t, Fix, normalizeType("fix"))
	require.Equal(t, Optimize, normalizeType("Optimise"))
}
