/*
File    : remespath/lexer/token.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

package lexer

import (
	"fmt"

	"github.com/akashmaji946/remespath/binop"
	"github.com/akashmaji946/remespath/json"
	"github.com/akashmaji946/remespath/std"
)

// TokenType represents the kind of a lexical token in a RemesPath query.
// It is defined as a string to allow for easy comparison and debugging.
type TokenType string

const (
	// LITERAL_TOK is a JSON value embedded in the query: a number,
	// backtick string, bool, null, regex literal, JSON literal, or the
	// current-JSON reference `@`.
	LITERAL_TOK TokenType = "LITERAL"
	// IDENT_TOK is an unquoted word that matched no registry; it acts as
	// a string in the positions that allow one (key indexers, projection
	// keys).
	IDENT_TOK TokenType = "IDENT"
	// BINOP_TOK is a binary-operator symbol, resolved against the binop
	// registry.
	BINOP_TOK TokenType = "BINOP"
	// FUNC_TOK is a word that resolved against the function registry.
	FUNC_TOK TokenType = "FUNC"
	// DELIM_TOK is one of the delimiters . .. [ ] { } ( ) , :
	DELIM_TOK TokenType = "DELIM"
)

// Token is one lexical token. Literal always holds the source spelling;
// the Value/Op/Fn payloads are filled according to the token type.
type Token struct {
	Type    TokenType
	Literal string
	Offset  int
	Value   json.JNode       // literal and identifier tokens
	Op      *binop.Binop     // binop tokens
	Fn      *std.ArgFunction // function tokens
}

// IsDelim reports whether the token is the given delimiter.
func (t *Token) IsDelim(lit string) bool {
	return t.Type == DELIM_TOK && t.Literal == lit
}

// IsBinop reports whether the token is the given operator symbol.
func (t *Token) IsBinop(symbol string) bool {
	return t.Type == BINOP_TOK && t.Literal == symbol
}

// LexError is a malformed token, reported with the source offset it
// starts at.
type LexError struct {
	Offset int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Msg)
}
