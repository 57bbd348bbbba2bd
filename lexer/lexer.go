/*
File    : remespath/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package lexer performs lexical analysis of RemesPath query text. It
// scans the query byte by byte and produces a flat token sequence for
// the parser. It handles:
//   - Numbers (ints, floats, exponents)
//   - Backtick-delimited raw strings
//   - g`...` regex literals (compiled here)
//   - j`...` JSON literals (deferred to the JSON parser)
//   - The current-JSON reference `@`
//   - Identifiers, resolved against the function registry
//   - Binop symbols, resolved against the binop registry
//   - The delimiters . .. [ ] { } ( ) , : and the star
//
// Whitespace is insignificant outside string and regex literals. Every
// error carries the source offset of the offending byte.
package lexer

import (
	"math"
	"strconv"
	"strings"

	"github.com/akashmaji946/remespath/binop"
	"github.com/akashmaji946/remespath/json"
	"github.com/akashmaji946/remespath/std"
)

// twoCharBinops are tried before single-char symbols so that `**` never
// lexes as two stars.
var twoCharBinops = []string{"**", "//", "==", "!=", "<=", ">=", "=~"}

const singleCharBinops = "+-*/%&|^<>"

// Lexer holds the scan state over one query string.
type Lexer struct {
	Src       string // Entire query in plain text
	Position  int    // Current index into the source (0-indexed)
	SrcLength int    // Length of the source string
}

// NewLexer creates a Lexer for the given query text.
func NewLexer(src string) *Lexer {
	return &Lexer{Src: src, SrcLength: len(src)}
}

// Tokenize scans the whole query and returns its token sequence.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Tokenize()
}

// Tokenize scans the remaining input and returns its token sequence.
func (l *Lexer) Tokenize() ([]Token, error) {
	toks := []Token{}
	for {
		l.skipWhitespace()
		if l.Position >= l.SrcLength {
			return toks, nil
		}
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

func (l *Lexer) skipWhitespace() {
	for l.Position < l.SrcLength {
		switch l.Src[l.Position] {
		case ' ', '\t', '\n', '\r':
			l.Position++
		default:
			return
		}
	}
}

func (l *Lexer) peekAt(offset int) byte {
	if l.Position+offset >= l.SrcLength {
		return 0
	}
	return l.Src[l.Position+offset]
}

// nextToken scans one token starting at the current position.
func (l *Lexer) nextToken() (Token, error) {
	start := l.Position
	c := l.Src[l.Position]
	switch {
	case c >= '0' && c <= '9':
		return l.lexNumber()
	case c == '`':
		raw, err := l.lexRawString()
		if err != nil {
			return Token{}, err
		}
		return Token{Type: LITERAL_TOK, Literal: l.Src[start:l.Position],
			Offset: start, Value: json.NewStr(raw)}, nil
	case c == 'g' && l.peekAt(1) == '`':
		l.Position++
		raw, err := l.lexRawString()
		if err != nil {
			return Token{}, err
		}
		re, err := json.NewRegex(raw)
		if err != nil {
			return Token{}, &LexError{Offset: start, Msg: "invalid regex: " + err.Error()}
		}
		return Token{Type: LITERAL_TOK, Literal: l.Src[start:l.Position],
			Offset: start, Value: re}, nil
	case c == 'j' && l.peekAt(1) == '`':
		l.Position++
		raw, err := l.lexRawString()
		if err != nil {
			return Token{}, err
		}
		value, err := json.ParseJSON(raw)
		if err != nil {
			return Token{}, &LexError{Offset: start, Msg: "invalid JSON literal: " + err.Error()}
		}
		return Token{Type: LITERAL_TOK, Literal: l.Src[start:l.Position],
			Offset: start, Value: value}, nil
	case c == '@':
		l.Position++
		return Token{Type: LITERAL_TOK, Literal: "@", Offset: start,
			Value: json.Identity()}, nil
	case isIdentStart(c):
		return l.lexWord()
	case c == '.':
		if l.peekAt(1) == '.' {
			l.Position += 2
			return Token{Type: DELIM_TOK, Literal: "..", Offset: start}, nil
		}
		l.Position++
		return Token{Type: DELIM_TOK, Literal: ".", Offset: start}, nil
	case strings.ContainsRune("[]{}(),:", rune(c)):
		l.Position++
		return Token{Type: DELIM_TOK, Literal: string(c), Offset: start}, nil
	}
	for _, sym := range twoCharBinops {
		if strings.HasPrefix(l.Src[l.Position:], sym) {
			l.Position += 2
			return Token{Type: BINOP_TOK, Literal: sym, Offset: start,
				Op: binop.Binops[sym]}, nil
		}
	}
	if strings.ContainsRune(singleCharBinops, rune(c)) {
		l.Position++
		sym := string(c)
		return Token{Type: BINOP_TOK, Literal: sym, Offset: start,
			Op: binop.Binops[sym]}, nil
	}
	return Token{}, &LexError{Offset: start,
		Msg: "unexpected character " + strconv.QuoteRune(rune(c))}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// lexNumber scans an int or float literal. Negative numbers arrive as a
// unary minus binop followed by a positive literal.
func (l *Lexer) lexNumber() (Token, error) {
	start := l.Position
	isFloat := false
	for l.Position < l.SrcLength {
		c := l.Src[l.Position]
		switch {
		case c >= '0' && c <= '9':
			l.Position++
		case c == '.' && !isFloat && l.peekAt(1) != '.':
			isFloat = true
			l.Position++
		case (c == 'e' || c == 'E') && l.Position > start:
			isFloat = true
			l.Position++
			if p := l.peekAt(0); p == '+' || p == '-' {
				l.Position++
			}
		default:
			goto done
		}
	}
done:
	text := l.Src[start:l.Position]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, &LexError{Offset: start, Msg: "malformed number " + strconv.Quote(text)}
		}
		return Token{Type: LITERAL_TOK, Literal: text, Offset: start,
			Value: json.NewFloat(f)}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		// out of int64 range; keep the value as a float
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return Token{}, &LexError{Offset: start, Msg: "malformed number " + strconv.Quote(text)}
		}
		return Token{Type: LITERAL_TOK, Literal: text, Offset: start,
			Value: json.NewFloat(f)}, nil
	}
	return Token{Type: LITERAL_TOK, Literal: text, Offset: start,
		Value: json.NewInt(i)}, nil
}

// lexRawString scans a backtick-delimited raw string starting at the
// opening backtick. A backslash escapes a backtick or another backslash;
// any other byte passes through untouched.
func (l *Lexer) lexRawString() (string, error) {
	start := l.Position
	l.Position++ // opening backtick
	var b strings.Builder
	for l.Position < l.SrcLength {
		c := l.Src[l.Position]
		switch c {
		case '`':
			l.Position++
			return b.String(), nil
		case '\\':
			next := l.peekAt(1)
			if next == '`' || next == '\\' {
				b.WriteByte(next)
				l.Position += 2
				continue
			}
			b.WriteByte(c)
			l.Position++
		default:
			b.WriteByte(c)
			l.Position++
		}
	}
	return "", &LexError{Offset: start, Msg: "unterminated string literal"}
}

// lexWord scans an identifier and resolves it: the literal words (true,
// false, null, NaN, Infinity) become JSON literals, registry matches
// become function tokens, and anything else is an identifier usable as
// an unquoted key.
func (l *Lexer) lexWord() (Token, error) {
	start := l.Position
	for l.Position < l.SrcLength && isIdentByte(l.Src[l.Position]) {
		l.Position++
	}
	word := l.Src[start:l.Position]
	switch word {
	case "true":
		return Token{Type: LITERAL_TOK, Literal: word, Offset: start,
			Value: json.NewBool(true)}, nil
	case "false":
		return Token{Type: LITERAL_TOK, Literal: word, Offset: start,
			Value: json.NewBool(false)}, nil
	case "null":
		return Token{Type: LITERAL_TOK, Literal: word, Offset: start,
			Value: json.NewNull()}, nil
	case "NaN":
		return Token{Type: LITERAL_TOK, Literal: word, Offset: start,
			Value: json.NewFloat(math.NaN())}, nil
	case "Infinity":
		return Token{Type: LITERAL_TOK, Literal: word, Offset: start,
			Value: json.NewFloat(math.Inf(1))}, nil
	}
	if f, ok := std.Functions[word]; ok {
		return Token{Type: FUNC_TOK, Literal: word, Offset: start, Fn: f}, nil
	}
	return Token{Type: IDENT_TOK, Literal: word, Offset: start,
		Value: json.NewStr(word)}, nil
}
