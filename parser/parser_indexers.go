/*
File    : remespath/parser/parser_indexers.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser - parser_indexers.go
// This file parses the six indexer forms: dot key/regex selectors, the
// star, bracketed varname and slicer lists, boolean filters, and
// projections, plus the recursive `..` prefix (defined for key/regex
// selectors only).
package parser

import (
	"github.com/akashmaji946/remespath/eval"
	"github.com/akashmaji946/remespath/json"
	"github.com/akashmaji946/remespath/lexer"
)

// parseIndexer parses one indexer starting at its leading delimiter.
func (p *Parser) parseIndexer(pos int) (*eval.Indexer, int, error) {
	if p.Toks[pos].IsDelim("..") {
		pos++
		if pos >= len(p.Toks) {
			return nil, pos, p.errf(pos, "'..' must be followed by an indexer")
		}
		t := &p.Toks[pos]
		switch {
		case t.IsBinop("*"):
			return nil, pos, &NotImplementedError{Msg: "recursive search for all keys and indices"}
		case t.IsDelim("["):
			return p.parseBracketIndexer(pos, true)
		case t.IsDelim("{"):
			return nil, pos, p.errf(pos, "a projection cannot be recursive")
		}
		child, npos, err := p.parseVarname(pos)
		if err != nil {
			return nil, pos, err
		}
		return eval.NewVarnameListIndexer([]json.JNode{child}, true), npos, nil
	}
	t := &p.Toks[pos]
	switch {
	case t.IsDelim("."):
		pos++
		if pos < len(p.Toks) && p.Toks[pos].IsBinop("*") {
			return eval.NewStarIndexer(), pos + 1, nil
		}
		child, npos, err := p.parseVarname(pos)
		if err != nil {
			return nil, pos, err
		}
		return eval.NewVarnameListIndexer([]json.JNode{child}, false), npos, nil
	case t.IsDelim("["):
		return p.parseBracketIndexer(pos, false)
	case t.IsDelim("{"):
		return p.parseProjection(pos)
	}
	return nil, pos, p.errf(pos, "expected an indexer")
}

// parseVarname parses one key selector: an unquoted identifier, a
// backtick string, a regex literal, or an int literal standing for a
// numeric key.
func (p *Parser) parseVarname(pos int) (json.JNode, int, error) {
	if pos >= len(p.Toks) {
		return nil, pos, p.errf(pos, "expected a key or regex")
	}
	t := &p.Toks[pos]
	switch t.Type {
	case lexer.IDENT_TOK:
		return t.Value, pos + 1, nil
	case lexer.LITERAL_TOK:
		switch t.Value.(type) {
		case *json.Str, *json.Regex:
			return t.Value, pos + 1, nil
		case *json.Int:
			return json.NewStr(t.Literal), pos + 1, nil
		}
	}
	return nil, pos, p.errf(pos, "expected a key or regex, got '%s'", t.Literal)
}

// parseBracketIndexer parses `[ ... ]`: a star, a varname list (all
// strings/regexes), a slicer list (all ints/slices), or a single boolean
// filter expression. Mixing kinds is an error; the recursive prefix only
// supports varname lists.
func (p *Parser) parseBracketIndexer(pos int, recursive bool) (*eval.Indexer, int, error) {
	openPos := pos
	pos++
	if pos >= len(p.Toks) {
		return nil, pos, p.errf(openPos, "unterminated '[' indexer")
	}
	if p.Toks[pos].IsBinop("*") && pos+1 < len(p.Toks) && p.Toks[pos+1].IsDelim("]") {
		if recursive {
			return nil, pos, &NotImplementedError{Msg: "recursive search for all keys and indices"}
		}
		return eval.NewStarIndexer(), pos + 2, nil
	}

	children := []json.JNode{}
	sawVarname, sawSlicer, sawFilter := false, false, false
	for {
		if pos >= len(p.Toks) {
			return nil, pos, p.errf(openPos, "unterminated '[' indexer")
		}
		var child json.JNode
		var err error
		if p.Toks[pos].IsDelim(":") {
			child, pos, err = p.parseSlicer(pos, nil)
			if err != nil {
				return nil, pos, err
			}
			sawSlicer = true
		} else {
			child, pos, err = p.parseExprOrScalarFunc(pos)
			if err != nil {
				return nil, pos, err
			}
			if pos < len(p.Toks) && p.Toks[pos].IsDelim(":") {
				iv, ok := child.(*json.Int)
				if !ok {
					return nil, pos, p.errf(pos, "slice bounds must be int literals, got %s",
						json.TypeName(child.GetType()))
				}
				bound := iv.Value
				child, pos, err = p.parseSlicer(pos, &bound)
				if err != nil {
					return nil, pos, err
				}
				sawSlicer = true
			} else {
				switch child.(type) {
				case *json.Str, *json.Regex:
					sawVarname = true
				case *json.Int:
					sawSlicer = true
				default:
					// bool constant or a late-bound sub-expression
					sawFilter = true
				}
			}
		}
		children = append(children, child)
		if pos >= len(p.Toks) {
			return nil, pos, p.errf(openPos, "unterminated '[' indexer")
		}
		if p.Toks[pos].IsDelim(",") {
			pos++
			continue
		}
		if p.Toks[pos].IsDelim("]") {
			pos++
			break
		}
		return nil, pos, p.errf(pos, "expected ',' or ']' in a '[' indexer")
	}

	if sawFilter {
		if len(children) != 1 {
			return nil, pos, p.errf(openPos, "a boolean index must be the only thing in its indexer")
		}
		if recursive {
			return nil, pos, p.errf(openPos, "a boolean index cannot be recursive")
		}
		return eval.NewBooleanIndexer(children[0]), pos, nil
	}
	if sawVarname && sawSlicer {
		return nil, pos, p.errf(openPos,
			"an indexer list cannot mix strings/regexes with ints/slices")
	}
	if sawSlicer {
		if recursive {
			return nil, pos, &NotImplementedError{Msg: "recursive search for array indices and slices"}
		}
		return eval.NewSlicerListIndexer(children), pos, nil
	}
	return eval.NewVarnameListIndexer(children, recursive), pos, nil
}

// parseSlicer parses colon-separated slice syntax starting at the first
// colon; first is the already-parsed start bound, if any. A slicer has
// two or three colon-separated slots, (start, stop) or (start, stop,
// step), and any slot may be left empty.
func (p *Parser) parseSlicer(pos int, first *int64) (json.JNode, int, error) {
	parts := [3]*int64{first, nil, nil}
	slot := 0
	for pos < len(p.Toks) && p.Toks[pos].IsDelim(":") {
		if slot >= 2 {
			return nil, pos, p.errf(pos, "a slicer may have at most 3 parts")
		}
		slot++
		pos++
		if pos >= len(p.Toks) {
			break
		}
		t := &p.Toks[pos]
		if t.IsDelim(":") || t.IsDelim("]") || t.IsDelim(",") || t.IsDelim(")") {
			continue
		}
		v, npos, err := p.parseExprOrScalarFunc(pos)
		if err != nil {
			return nil, pos, err
		}
		iv, ok := v.(*json.Int)
		if !ok {
			return nil, pos, p.errf(pos, "slice bounds must be int literals, got %s",
				json.TypeName(v.GetType()))
		}
		bound := iv.Value
		parts[slot] = &bound
		pos = npos
	}
	sl, err := json.NewSlice(parts[0], parts[1], parts[2])
	if err != nil {
		return nil, pos, p.errf(pos, "%s", err.Error())
	}
	return sl, pos, nil
}

// parseProjection parses `{ ... }`: either a comma-separated sequence of
// values (array projection) or of `key: value` pairs with string keys
// (object projection). Mixing the two, or a non-string key, is an error.
func (p *Parser) parseProjection(pos int) (*eval.Indexer, int, error) {
	openPos := pos
	pos++
	keys := []string{}
	values := []json.JNode{}
	isDict := false
	first := true
	for {
		if pos >= len(p.Toks) {
			return nil, pos, p.errf(openPos, "unterminated projection")
		}
		var key *string
		var value json.JNode
		if p.Toks[pos].Type == lexer.IDENT_TOK &&
			pos+1 < len(p.Toks) && p.Toks[pos+1].IsDelim(":") {
			k := p.Toks[pos].Literal
			key = &k
			pos += 2
		} else {
			v, npos, err := p.parseExprOrScalarFunc(pos)
			if err != nil {
				return nil, pos, err
			}
			if npos < len(p.Toks) && p.Toks[npos].IsDelim(":") {
				s, ok := v.(*json.Str)
				if !ok {
					return nil, npos, p.errf(npos, "object projection keys must be strings, got %s",
						json.TypeName(v.GetType()))
				}
				k := s.Value
				key = &k
				pos = npos + 1
			} else {
				value = v
				pos = npos
			}
		}
		if key != nil {
			if !first && !isDict {
				return nil, pos, p.errf(openPos,
					"a projection cannot mix key-value pairs with plain values")
			}
			isDict = true
			v, npos, err := p.parseExprOrScalarFunc(pos)
			if err != nil {
				return nil, pos, err
			}
			keys = append(keys, *key)
			value = v
			pos = npos
		} else if isDict {
			return nil, pos, p.errf(openPos,
				"a projection cannot mix key-value pairs with plain values")
		}
		values = append(values, value)
		first = false
		if pos >= len(p.Toks) {
			return nil, pos, p.errf(openPos, "unterminated projection")
		}
		if p.Toks[pos].IsDelim(",") {
			pos++
			continue
		}
		if p.Toks[pos].IsDelim("}") {
			pos++
			break
		}
		return nil, pos, p.errf(pos, "expected ',' or '}' in a projection")
	}
	return eval.NewProjectionIndexer(keys, values, isDict), pos, nil
}
