/*
File    : remespath/parser/search_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/akashmaji946/remespath/json"
	"github.com/stretchr/testify/assert"
)

// fooDocument is the shared query target for the end-to-end tests
const fooDocument = `{
	"foo": [[0, 1, 2], [3.0, 4.0, 5.0], [6.0, 7.0, 8.0]],
	"bar": {"a": false, "b": ["a` + "\\u0060" + `g", "bah"]},
	"baz": "z",
	"quz": {},
	"jub": [],
	"guzo": [[[1]], [[2], [3]]],
	"7": [{"foo": 2}, 1],
	"_": {"0": 0}
}`

func fooDoc(t *testing.T) json.JNode {
	return mustParseJSON(t, fooDocument)
}

// represents an end-to-end query test case
type TestSearchCase struct {
	Query    string
	Expected string
}

// runBothWays checks a query through Search and through
// Apply(Compile(q), input), which must agree
func runBothWays(t *testing.T, query string, input json.JNode, expected json.JNode) {
	got, err := Search(query, input)
	assert.Nil(t, err, query)
	if err == nil {
		assert.True(t, json.Equals(expected, got),
			"Search(%s): expected %s, got %s", query, expected.ToString(), got.ToString())
	}

	compiled, err := Compile(query)
	assert.Nil(t, err, query)
	got, err = Apply(compiled, input)
	assert.Nil(t, err, query)
	if err == nil {
		assert.True(t, json.Equals(expected, got),
			"Apply(Compile(%s)): expected %s, got %s", query, expected.ToString(), got.ToString())
	}
}

// TestSearch_SeedScenarios tests the canonical query set against the
// foo document
func TestSearch_SeedScenarios(t *testing.T) {
	tests := []TestSearchCase{
		{`2 - 4 * 3.5`, `-12.0`},
		{`@.foo[0] + @.foo[1]`, `[3.0, 5.0, 7.0]`},
		{`@.foo[1][@ > 3.5]`, `[4.0, 5.0]`},
		{`@.foo[:3:2]`, `[[0, 1, 2], [6.0, 7.0, 8.0]]`},
		{"@..g`\\d`", `[[{"foo": 2}, 1], 0]`},
		{`sort_by(@.foo, 0, true)[:2]`, `[[6.0, 7.0, 8.0], [3.0, 4.0, 5.0]]`},
		{`@.foo{f: @[0], b: @[1][:2]}`, `{"f": [0, 1, 2], "b": [3.0, 4.0]}`},
		{`range(2, 19, 5)`, `[2, 7, 12, 17]`},
	}
	for _, test := range tests {
		runBothWays(t, test.Query, fooDoc(t), mustParseJSON(t, test.Expected))
	}
}

// TestSearch_Indexing tests path navigation over the foo document
func TestSearch_Indexing(t *testing.T) {
	tests := []TestSearchCase{
		{`@.baz`, `"z"`},
		{`@.quz`, `{}`},
		{`@.jub`, `[]`},
		{`@.missing`, `{}`},
		{`@.bar.a`, `false`},
		{`@.bar.b[1]`, `"bah"`},
		{`@.foo[0][2]`, `2`},
		{`@.foo[-1][-1]`, `8.0`},
		{`@.guzo[1][0][0]`, `2`},
		{`@._.0`, `0`},
		{"@[`baz`, `7`]", `{"baz": "z", "7": [{"foo": 2}, 1]}`},
		{"@.bar[`a`, `missing`]", `{"a": false}`},
		{"@[g`^b`]", `{"bar": {"a": false, "b": ["a` + "\\u0060" + `g", "bah"]}, "baz": "z"}`},
		{`@.foo[0][0, 2]`, `[0, 2]`},
		{`@.foo[0][::2]`, `[0, 2]`},
		{`@.foo[0][::-1]`, `[2, 1, 0]`},
		{`@.quz.*`, `{}`},
		{`@.jub[*]`, `[]`},
		{`@.bar.*`, `{"a": false, "b": ["a` + "\\u0060" + `g", "bah"]}`},
		{`@.foo[0].*`, `[0, 1, 2]`},
	}
	for _, test := range tests {
		runBothWays(t, test.Query, fooDoc(t), mustParseJSON(t, test.Expected))
	}
}

// TestSearch_SlicerBoundaries tests clipping and negative bounds on a
// length-5 array
func TestSearch_SlicerBoundaries(t *testing.T) {
	input := mustParseJSON(t, `[0, 1, 2, 3, 4]`)
	tests := []TestSearchCase{
		{`@[:]`, `[0, 1, 2, 3, 4]`},
		{`@[3:]`, `[3, 4]`},
		{`@[:2]`, `[0, 1]`},
		{`@[-2:]`, `[3, 4]`},
		{`@[:-3]`, `[0, 1]`},
		{`@[1:100]`, `[1, 2, 3, 4]`},
		{`@[-100:2]`, `[0, 1]`},
		{`@[3:1]`, `[]`},
		{`@[3:3]`, `[]`},
		{`@[::-2]`, `[4, 2, 0]`},
		{`@[4:0:-1]`, `[4, 3, 2, 1]`},
		{`@[1:4:2]`, `[1, 3]`},
		{`@[100]`, `[]`},
		{`@[-5]`, `0`},
		{`@[-6]`, `[]`},
	}
	for _, test := range tests {
		runBothWays(t, test.Query, input, mustParseJSON(t, test.Expected))
	}
}

// TestSearch_Filtering tests boolean indices, including the idempotence
// identity
func TestSearch_Filtering(t *testing.T) {
	tests := []struct {
		Query    string
		Input    string
		Expected string
	}{
		{`@[@ > 2]`, `[1, 3, 2, 5]`, `[3, 5]`},
		{`@[@ == @]`, `[1, "a", null]`, `[1, "a", null]`},
		{`@[@ == @]`, `{"a": 1, "b": "x"}`, `{"a": 1, "b": "x"}`},
		{`@[true]`, `[1, 2]`, `[1, 2]`},
		{`@[false]`, `[1, 2]`, `[]`},
		{"@[@ =~ g`^a`]", `["ax", "bx", "ay"]`, `["ax", "ay"]`},
		{`@.foo[@[:][0] >= 3.0]`, fooDocument, `[[3.0, 4.0, 5.0], [6.0, 7.0, 8.0]]`},
		{`@[is_num(@)]`, `[1, "a", 2.5, null]`, `[1, 2.5]`},
	}
	for _, test := range tests {
		runBothWays(t, test.Query, mustParseJSON(t, test.Input), mustParseJSON(t, test.Expected))
	}
}

// TestSearch_Identity tests the round-trip invariant over assorted
// values
func TestSearch_Identity(t *testing.T) {
	values := []string{
		`null`, `true`, `3`, `2.5`, `"s"`, `[]`, `{}`,
		`[1, [2, [3]]]`, `{"a": {"b": [1, 2]}}`, fooDocument,
	}
	for _, v := range values {
		input := mustParseJSON(t, v)
		runBothWays(t, `@`, input, input)
	}
}

// TestSearch_Purity tests that repeated runs of a non-mutating query
// agree and leave the input unchanged
func TestSearch_Purity(t *testing.T) {
	input := fooDoc(t)
	snapshot := json.DeepCopy(input)
	for _, query := range []string{`@.foo[0] + @.foo[1]`, `sort_by(@.foo, 0, true)`, `@..g` + "`\\d`"} {
		first, err := Search(query, input)
		assert.Nil(t, err, query)
		second, err := Search(query, input)
		assert.Nil(t, err, query)
		assert.True(t, json.Equals(first, second), query)
		assert.True(t, json.Equals(snapshot, input), "input mutated by %s", query)
	}
}

// TestSearch_VectorizedFunctions tests vectorized dispatch end to end
func TestSearch_VectorizedFunctions(t *testing.T) {
	tests := []struct {
		Query    string
		Input    string
		Expected string
	}{
		{`s_len(@)`, `["a", "bbb"]`, `[1, 3]`},
		{`s_upper(@)`, `{"x": "ab"}`, `{"x": "AB"}`},
		{`s_len(@)`, `[]`, `[]`},
		{`abs(@)`, `{}`, `{}`},
		{`abs(@) + 1`, `[-1, -2]`, `[2, 3]`},
		{`ifelse(@ > 2, 1, 0)`, `[1, 3]`, `[0, 1]`},
		{`round(@ / 2)`, `[2, 5]`, `[1, 3]`},
		{`-@`, `[1, -2.5]`, `[-1, 2.5]`},
	}
	for _, test := range tests {
		runBothWays(t, test.Query, mustParseJSON(t, test.Input), mustParseJSON(t, test.Expected))
	}
}

// TestSearch_Projections tests array and object projections end to end
func TestSearch_Projections(t *testing.T) {
	tests := []struct {
		Query    string
		Input    string
		Expected string
	}{
		{`@{@[0], @[-1]}`, `[10, 20, 30]`, `[10, 30]`},
		{"@{first: @[0], rest: @[1:]}", `[10, 20, 30]`, `{"first": 10, "rest": [20, 30]}`},
		{"@{`k`: len(@)}", `[1, 2]`, `{"k": 2}`},
		{`@{1, 2, @}`, `5`, `[1, 2, 5]`},
		{`@.foo{f: @[0], b: @[1][:2]}.f`, fooDocument, `[0, 1, 2]`},
	}
	for _, test := range tests {
		runBothWays(t, test.Query, mustParseJSON(t, test.Input), mustParseJSON(t, test.Expected))
	}
}

// TestSearch_RecursiveSearch tests recursive key descent end to end
func TestSearch_RecursiveSearch(t *testing.T) {
	tests := []struct {
		Query    string
		Input    string
		Expected string
	}{
		{`@..k`, `{"a": {"k": 1}, "k": 2}`, `[1, 2]`},
		{`@..k`, `{"a": [{"k": 1}, {"x": {"k": 2}}]}`, `[1, 2]`},
		{"@..[`a`, `b`]", `{"a": 1, "c": {"b": 2}}`, `[1, 2]`},
		{`@..missing`, `{"a": 1}`, `[]`},
	}
	for _, test := range tests {
		runBothWays(t, test.Query, mustParseJSON(t, test.Input), mustParseJSON(t, test.Expected))
	}
}

// TestSearch_RecursiveAliasing tests that an aliased subtree never
// yields twice
func TestSearch_RecursiveAliasing(t *testing.T) {
	shared := mustParseJSON(t, `{"k": 7}`)
	input := json.NewObj()
	input.Set("a", shared)
	input.Set("b", shared)
	got, err := Search(`@..k`, input)
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParseJSON(t, `[7]`), got))
}

// TestSearch_MutatingFunction tests that a mutating builtin changes the
// input, which is why reruns need a clone
func TestSearch_MutatingFunction(t *testing.T) {
	input := mustParseJSON(t, `{"a": [1]}`)
	got, err := Search(`append(@.a, 2)`, input)
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParseJSON(t, `[1, 2]`), got))

	arr, _ := input.(*json.Obj).Get("a")
	assert.Equal(t, 2, arr.(*json.Arr).Len())
}

// TestEngine_SearchWithCache tests the engine front door
func TestEngine_SearchWithCache(t *testing.T) {
	engine := NewEngine(8)
	input := fooDoc(t)
	for i := 0; i < 3; i++ {
		got, err := engine.Search(`@.foo[:3:2]`, input)
		assert.Nil(t, err)
		assert.True(t, json.Equals(mustParseJSON(t, `[[0, 1, 2], [6.0, 7.0, 8.0]]`), got))
	}

	// an uncached engine behaves identically
	engine = NewEngine(0)
	got, err := engine.Search(`range(3)`, input)
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParseJSON(t, `[0, 1, 2]`), got))
}
