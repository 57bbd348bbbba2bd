/*
File    : remespath/lexer/lexer_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"testing"

	"github.com/akashmaji946/remespath/json"
	"github.com/stretchr/testify/assert"
)

// represents a test case for Tokenize
// Input: query text
// Expected: list of expected (type, literal) pairs
type TestTokenize struct {
	Input    string
	Expected []Token
}

// kinds extracts the comparable parts of a token sequence
func kinds(toks []Token) []Token {
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = Token{Type: t.Type, Literal: t.Literal}
	}
	return out
}

// TestLexer_Tokenize tests token kinds and literals across the surface
// syntax
func TestLexer_Tokenize(t *testing.T) {
	tests := []TestTokenize{
		{
			Input: ` 123 + 2.5 - 31 `,
			Expected: []Token{
				{Type: LITERAL_TOK, Literal: "123"},
				{Type: BINOP_TOK, Literal: "+"},
				{Type: LITERAL_TOK, Literal: "2.5"},
				{Type: BINOP_TOK, Literal: "-"},
				{Type: LITERAL_TOK, Literal: "31"},
			},
		},
		{
			Input: `@.foo[0]{a: @}`,
			Expected: []Token{
				{Type: LITERAL_TOK, Literal: "@"},
				{Type: DELIM_TOK, Literal: "."},
				{Type: IDENT_TOK, Literal: "foo"},
				{Type: DELIM_TOK, Literal: "["},
				{Type: LITERAL_TOK, Literal: "0"},
				{Type: DELIM_TOK, Literal: "]"},
				{Type: DELIM_TOK, Literal: "{"},
				{Type: IDENT_TOK, Literal: "a"},
				{Type: DELIM_TOK, Literal: ":"},
				{Type: LITERAL_TOK, Literal: "@"},
				{Type: DELIM_TOK, Literal: "}"},
			},
		},
		{
			Input: `2 ** 3 // 4 == 5 != 6 <= 7 >= 8 =~ g` + "`a`",
			Expected: []Token{
				{Type: LITERAL_TOK, Literal: "2"},
				{Type: BINOP_TOK, Literal: "**"},
				{Type: LITERAL_TOK, Literal: "3"},
				{Type: BINOP_TOK, Literal: "//"},
				{Type: LITERAL_TOK, Literal: "4"},
				{Type: BINOP_TOK, Literal: "=="},
				{Type: LITERAL_TOK, Literal: "5"},
				{Type: BINOP_TOK, Literal: "!="},
				{Type: LITERAL_TOK, Literal: "6"},
				{Type: BINOP_TOK, Literal: "<="},
				{Type: LITERAL_TOK, Literal: "7"},
				{Type: BINOP_TOK, Literal: ">="},
				{Type: LITERAL_TOK, Literal: "8"},
				{Type: BINOP_TOK, Literal: "=~"},
				{Type: LITERAL_TOK, Literal: "g`a`"},
			},
		},
		{
			Input: `@..bar[*]`,
			Expected: []Token{
				{Type: LITERAL_TOK, Literal: "@"},
				{Type: DELIM_TOK, Literal: ".."},
				{Type: IDENT_TOK, Literal: "bar"},
				{Type: DELIM_TOK, Literal: "["},
				{Type: BINOP_TOK, Literal: "*"},
				{Type: DELIM_TOK, Literal: "]"},
			},
		},
	}
	for _, test := range tests {
		toks, err := Tokenize(test.Input)
		assert.Nil(t, err, test.Input)
		assert.Equal(t, test.Expected, kinds(toks), test.Input)
	}
}

// TestLexer_Words tests resolution of identifiers against the literal
// words and the function registry
func TestLexer_Words(t *testing.T) {
	toks, err := Tokenize(`sort_by(true, false, null)`)
	assert.Nil(t, err)
	assert.Equal(t, FUNC_TOK, toks[0].Type)
	assert.Equal(t, "sort_by", toks[0].Fn.Name)
	assert.Equal(t, LITERAL_TOK, toks[2].Type)
	assert.Equal(t, json.BoolType, toks[2].Value.GetType())
	assert.Equal(t, json.BoolType, toks[4].Value.GetType())
	assert.Equal(t, json.NullType, toks[6].Value.GetType())

	// unregistered words act as string identifiers
	toks, err = Tokenize(`guzo`)
	assert.Nil(t, err)
	assert.Equal(t, IDENT_TOK, toks[0].Type)
	assert.Equal(t, "guzo", toks[0].Value.(*json.Str).Value)
}

// TestLexer_Strings tests backtick strings and their escapes
func TestLexer_Strings(t *testing.T) {
	toks, err := Tokenize("`hello world`")
	assert.Nil(t, err)
	assert.Equal(t, "hello world", toks[0].Value.(*json.Str).Value)

	// escaped backtick and backslash
	toks, err = Tokenize("`a\\`g`")
	assert.Nil(t, err)
	assert.Equal(t, "a`g", toks[0].Value.(*json.Str).Value)

	toks, err = Tokenize("`a\\\\b`")
	assert.Nil(t, err)
	assert.Equal(t, "a\\b", toks[0].Value.(*json.Str).Value)
}

// TestLexer_RegexAndJSONLiterals tests the g and j prefixed literals
func TestLexer_RegexAndJSONLiterals(t *testing.T) {
	toks, err := Tokenize("g`\\d+`")
	assert.Nil(t, err)
	re := toks[0].Value.(*json.Regex)
	assert.True(t, re.Value.MatchString("x123"))

	toks, err = Tokenize("j`[1, 2.5, \"three\"]`")
	assert.Nil(t, err)
	arr := toks[0].Value.(*json.Arr)
	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, json.IntType, arr.Children[0].GetType())
	assert.Equal(t, json.FloatType, arr.Children[1].GetType())
}

// TestLexer_Errors tests that malformed input reports the offset
func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		Input  string
		Offset int
	}{
		{"#", 0},
		{"1 + ?", 4},
		{"`unterminated", 0},
		{"1 + `oops", 4},
		{"g`[`", 0},
		{"j`{`", 0},
		{"1 = 2", 2},
	}
	for _, test := range tests {
		_, err := Tokenize(test.Input)
		assert.NotNil(t, err, test.Input)
		lexErr, ok := err.(*LexError)
		assert.True(t, ok, test.Input)
		assert.Equal(t, test.Offset, lexErr.Offset, test.Input)
	}
}
