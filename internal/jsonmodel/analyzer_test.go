package jsonmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func findSuggestion(t *testing.T, suggestions []Suggestion, text string) Suggestion {
	t.Helper()
	for _, s := range suggestions {
		if s.Text == text {
			return s
		}
	}
	t.Fatalf("suggestion %q not found", text)
	return Suggestion{}
}

func TestAnalyzeSimpleObject(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"name": "John", "age": 30}`)))
	require.Equal(t, []string{"age", "name"}, a.AllFields())
}

func TestAnalyzeNestedObject(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"user": {"name": "John", "email": "j@x.com"}, "posts": []}`)))
	require.Equal(t, []string{"email", "name", "posts", "user"}, a.AllFields())
}

func TestContextualTopLevelFields(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"services": {"items": []}, "products": {"type": "xyz", "sku": "123"}}`)))

	sug := a.ContextualFieldSuggestions("", "")
	require.Len(t, sug, 2)
	findSuggestion(t, sug, ".services")
	findSuggestion(t, sug, ".products")
}

func TestContextualNestedFields(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"services": {"items": []}, "products": {"type": "xyz", "sku": "123"}}`)))

	sug := a.ContextualFieldSuggestions(".products", "")
	require.Len(t, sug, 2)
	findSuggestion(t, sug, ".type")
	findSuggestion(t, sug, ".sku")
	for _, s := range sug {
		require.NotEqual(t, ".items", s.Text)
	}
}

func TestContextualArrayFields(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"items": [{"id": 1, "name": "Item1"}]}`)))

	sug := a.ContextualFieldSuggestions(".items[]", "")
	require.Len(t, sug, 2)
	findSuggestion(t, sug, ".id")
	findSuggestion(t, sug, ".name")
}

func TestPipeWithArrayExpansion(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"data": {"users": [{"userId": "123", "name": "John"}]}}`)))

	sug := a.ContextualFieldSuggestions(".data.users | .[]", "")
	require.Len(t, sug, 2)
	findSuggestion(t, sug, ".userId")
	findSuggestion(t, sug, ".name")
}

func TestPipeWithArrayExpansionAndField(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"data": {"users": [{"userId": "123", "profile": {"email": "t@x.com"}}]}}`)))

	sug := a.ContextualFieldSuggestions(".data.users | .[].profile", "")
	require.Len(t, sug, 1)
	findSuggestion(t, sug, ".email")
}

func TestMultiplePipes(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"outer": {"middle": {"inner": {"value": "test"}}}}`)))

	sug := a.ContextualFieldSuggestions(".outer | .middle | .inner", "")
	require.Len(t, sug, 1)
	findSuggestion(t, sug, ".value")
}

func TestMultiplePipesWithArrays(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"data": {"users": [{"posts": [{"title": "Hello", "body": "World"}]}]}}`)))

	sug := a.ContextualFieldSuggestions(".data.users | .[].posts | .[]", "")
	require.Len(t, sug, 2)
	findSuggestion(t, sug, ".title")
	findSuggestion(t, sug, ".body")
}

func TestPipeAtRoot(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"field1": "value1", "field2": "value2"}`)))

	sug := a.ContextualFieldSuggestions(". | ", "")
	require.Len(t, sug, 2)
	findSuggestion(t, sug, ".field1")
	findSuggestion(t, sug, ".field2")
}

func TestMalformedPathWithUnmatchedParen(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"items": [{"name": "test"}]}`)))

	sug := a.ContextualFieldSuggestions(".items | .name) |", "")
	require.Empty(t, sug)
}

func TestInvalidPathsFailGracefully(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"data": {"items": [{"id": 1}]}}`)))

	require.Empty(t, a.ContextualFieldSuggestions(".nonexistent | .foo", ""))
	require.Empty(t, a.ContextualFieldSuggestions(".data.wrong | .[]", ""))
	require.Empty(t, a.ContextualFieldSuggestions(".data.items.nothere", ""))
}

func TestMalformedJSONLeavesEmptySuggestions(t *testing.T) {
	a := New()
	require.Error(t, a.Analyze([]byte(`{not json`)))
	require.Empty(t, a.ContextualFieldSuggestions("", ""))
}

func TestRootLevelArrayReturnsEmpty(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`[{"id": 1, "name": "Item1"}, {"id": 2, "name": "Item2"}]`)))

	require.Empty(t, a.ContextualFieldSuggestions("", ""))
}

func TestFieldTypesAreDetectedCorrectly(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{
		"name": "Alice", "age": 30, "active": true, "nothing": null,
		"address": {"city": "NYC"}, "hobbies": ["reading", "coding"], "empty": []
	}`)))

	sug := a.ContextualFieldSuggestions("", "")
	require.Equal(t, KindString, findSuggestion(t, sug, ".name").Type.Kind)
	require.Equal(t, KindNumber, findSuggestion(t, sug, ".age").Type.Kind)
	require.Equal(t, KindBoolean, findSuggestion(t, sug, ".active").Type.Kind)
	require.Equal(t, KindNull, findSuggestion(t, sug, ".nothing").Type.Kind)
	require.Equal(t, KindObject, findSuggestion(t, sug, ".address").Type.Kind)

	hobbies := findSuggestion(t, sug, ".hobbies").Type
	require.Equal(t, KindArray, hobbies.Kind)
	require.Equal(t, KindString, hobbies.Elem.Kind)
	require.Equal(t, "Array[String]", hobbies.String())

	empty := findSuggestion(t, sug, ".empty").Type
	require.Equal(t, KindArray, empty.Kind)
	require.Nil(t, empty.Elem)
	require.Equal(t, "Array", empty.String())
}

func TestCaseInsensitivePrefixFiltering(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"Name": "Bob", "AGE": 25, "Active": true}`)))

	sug := a.ContextualFieldSuggestions("", "a")
	require.Len(t, sug, 2)
	findSuggestion(t, sug, ".AGE")
	findSuggestion(t, sug, ".Active")
}

func TestSuggestionsSortedByText(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"zeta": 1, "alpha": 2, "mu": 3}`)))

	sug := a.ContextualFieldSuggestions("", "")
	require.Equal(t, []string{".alpha", ".mu", ".zeta"}, []string{sug[0].Text, sug[1].Text, sug[2].Text})
}

func TestWildcardSuggestionOnArrayField(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"items": [{"id": 1}], "name": "x"}`)))

	sug, ok := a.WildcardSuggestion(".items")
	require.True(t, ok)
	require.Equal(t, ".[]", sug.Text)
	require.Equal(t, Function, sug.Category)

	_, ok = a.WildcardSuggestion(".name")
	require.False(t, ok, "non-array field must not offer the wildcard hint")
}

func TestRootTypeAndTopLevelKeys(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"b": 1, "a": {"x": 1}}`)))

	require.Equal(t, "Object", a.RootType())
	require.Equal(t, []string{"a", "b"}, a.TopLevelKeys())
}

func TestTopLevelKeysEmptyForArrayRoot(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`[1, 2, 3]`)))

	require.Empty(t, a.TopLevelKeys())
	elemType, count, ok := a.RootElement()
	require.True(t, ok)
	require.Equal(t, "Number", elemType)
	require.Equal(t, 3, count)
}

func TestRootElementFalseForObjectRoot(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"a": 1}`)))

	_, _, ok := a.RootElement()
	require.False(t, ok)
}

func TestTypeAtPathResolvesNestedField(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"user": {"name": "Bob", "tags": ["a", "b"]}}`)))

	ft, ok := a.TypeAtPath(".user.name")
	require.True(t, ok)
	require.Equal(t, KindString, ft.Kind)

	ft, ok = a.TypeAtPath(".user.tags")
	require.True(t, ok)
	require.Equal(t, "Array[String]", ft.String())

	_, ok = a.TypeAtPath(".nonexistent")
	require.False(t, ok)
}

func TestSchemaSummarizesTypesAndRespectsDepth(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{"a": {"b": {"c": 1}}, "d": "x"}`)))

	full := a.Schema(30)
	require.Contains(t, full, "d: String")
	require.Contains(t, full, "c: Number")

	shallow := a.Schema(1)
	require.Contains(t, shallow, "{...}")
	require.NotContains(t, shallow, "c: Number")
}

func TestComplexRealWorldScenario(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze([]byte(`{
		"status": "success",
		"data": {
			"users": [{
				"userId": "usr-001", "username": "johndoe",
				"profile": {"firstName": "John", "lastName": "Doe", "email": "john@example.com"},
				"posts": [{"postId": "post-1", "title": "My First Post", "tags": ["tech", "coding"]}]
			}]
		}
	}`)))

	sug := a.ContextualFieldSuggestions(".data.users | .[]", "u")
	findSuggestion(t, sug, ".userId")
	findSuggestion(t, sug, ".username")

	sug = a.ContextualFieldSuggestions(".data.users | .[].profile", "")
	require.Len(t, sug, 3)

	sug = a.ContextualFieldSuggestions(".data.users | .[].posts | .[]", "")
	require.Len(t, sug, 3)
	findSuggestion(t, sug, ".postId")
	findSuggestion(t, sug, ".title")
	findSuggestion(t, sug, ".tags")
}
