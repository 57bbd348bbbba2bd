/*
File    : remespath/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

/*
Package parser compiles RemesPath query text into an executable form.

The compiler is a single top-down recursive-descent parser with an
embedded precedence loop for binary operators. Compiling produces a
JSON value: a constant when the query does not depend on its input, or
a late-bound current-JSON closure when it does. Every production threads
(tokens, position) in and (value, new position) out.

The three public operations are:
  - Compile: query text -> compiled query
  - Search:  query text + input -> result (compile, then apply)
  - Apply:   compiled query + input -> result (repeatable)

An Engine bundles the operations with an optional LRU query cache keyed
by query text.
*/
package parser

import (
	"fmt"

	"github.com/akashmaji946/remespath/eval"
	"github.com/akashmaji946/remespath/json"
	"github.com/akashmaji946/remespath/lexer"
)

// Parser walks one token sequence. It holds no state besides the tokens;
// positions are threaded through the productions explicitly.
type Parser struct {
	Toks []lexer.Token
}

// NewParser creates a parser over a token sequence.
func NewParser(toks []lexer.Token) *Parser {
	return &Parser{Toks: toks}
}

// ParseQuery parses the whole token sequence as one expression. Leftover
// tokens after the expression are an error.
func (p *Parser) ParseQuery() (json.JNode, error) {
	node, pos, err := p.parseExprOrScalarFunc(0)
	if err != nil {
		return nil, err
	}
	if pos != len(p.Toks) {
		return nil, p.errf(pos, "unexpected token '%s' after the end of the query",
			p.Toks[pos].Literal)
	}
	return node, nil
}

// errf builds a ParseError at a token index.
func (p *Parser) errf(tokenIndex int, format string, args ...any) error {
	return &ParseError{TokenIndex: tokenIndex, Msg: fmt.Sprintf(format, args...)}
}

// Compile lexes and parses query text into a compiled query: either a
// constant JSON value or a late-bound current-JSON closure.
func Compile(query string) (json.JNode, error) {
	toks, err := lexer.Tokenize(query)
	if err != nil {
		return nil, err
	}
	return NewParser(toks).ParseQuery()
}

// Search compiles a query and, if the result is late-bound, applies it
// to the input.
func Search(query string, input json.JNode) (json.JNode, error) {
	compiled, err := Compile(query)
	if err != nil {
		return nil, err
	}
	return eval.Apply(compiled, input)
}

// Apply runs a previously compiled query against an input. The compiled
// query is immutable and may be reused across any number of inputs.
func Apply(compiled, input json.JNode) (json.JNode, error) {
	return eval.Apply(compiled, input)
}

// DefaultCacheCapacity is the query-cache size an Engine uses unless
// told otherwise.
const DefaultCacheCapacity = 64

// Engine bundles compilation with an LRU query cache. The cache is not
// safe for simultaneous mutation from multiple goroutines.
type Engine struct {
	cache *QueryCache
}

// NewEngine creates an engine whose cache holds up to capacity compiled
// queries; a capacity below 1 disables caching.
func NewEngine(capacity int) *Engine {
	e := &Engine{}
	if capacity > 0 {
		e.cache = NewQueryCache(capacity)
	}
	return e
}

// Compile returns the cached compilation of the query text, compiling
// and caching on a miss.
func (e *Engine) Compile(query string) (json.JNode, error) {
	if e.cache != nil {
		if compiled, ok := e.cache.Get(query); ok {
			return compiled, nil
		}
	}
	compiled, err := Compile(query)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Add(query, compiled)
	}
	return compiled, nil
}

// Search compiles (through the cache) and applies in one call.
func (e *Engine) Search(query string, input json.JNode) (json.JNode, error) {
	compiled, err := e.Compile(query)
	if err != nil {
		return nil, err
	}
	return eval.Apply(compiled, input)
}
