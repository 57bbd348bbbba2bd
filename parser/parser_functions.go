/*
File    : remespath/parser/parser_functions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser - parser_functions.go
// This file parses argument-function calls. Every argument's static
// type is intersected with the permitted set for its position as soon
// as it is parsed, so type mismatches surface at compile time with the
// function name, argument index and both type sets. Short calls are
// padded with explicit nulls to the function's max arity.
package parser

import (
	"github.com/akashmaji946/remespath/eval"
	"github.com/akashmaji946/remespath/json"
	"github.com/akashmaji946/remespath/std"
)

// parseArgFunction parses `name(arg, ...)` starting at the function
// token. Positions whose type set admits a slice accept colon-separated
// slice syntax directly.
func (p *Parser) parseArgFunction(pos int) (json.JNode, int, error) {
	f := p.Toks[pos].Fn
	namePos := pos
	pos++
	if pos >= len(p.Toks) || !p.Toks[pos].IsDelim("(") {
		return nil, pos, p.errf(namePos, "function '%s' must be called with '('", f.Name)
	}
	pos++

	args := []json.JNode{}
	if pos < len(p.Toks) && p.Toks[pos].IsDelim(")") {
		pos++
	} else {
		for {
			if pos >= len(p.Toks) {
				return nil, pos, p.errf(pos, "unterminated call of function '%s'", f.Name)
			}
			argNum := len(args)
			arg, npos, err := p.parseArgOrSlicer(pos, f.TypeAt(argNum)&json.SliceType != 0)
			if err != nil {
				return nil, pos, err
			}
			pos = npos
			if err := std.CheckType(arg, f, argNum); err != nil {
				return nil, pos, p.errf(pos, "%s", err.Error())
			}
			args = append(args, arg)
			if pos >= len(p.Toks) {
				return nil, pos, p.errf(pos, "unterminated call of function '%s'", f.Name)
			}
			if p.Toks[pos].IsDelim(",") {
				pos++
				continue
			}
			if p.Toks[pos].IsDelim(")") {
				pos++
				break
			}
			return nil, pos, p.errf(pos, "expected ',' or ')' in the arguments of function '%s'", f.Name)
		}
	}

	if len(args) < f.MinArgs {
		return nil, pos, p.errf(namePos,
			"function '%s' requires at least %d arguments, got %d", f.Name, f.MinArgs, len(args))
	}
	if f.MaxArgs >= 0 && len(args) > f.MaxArgs {
		return nil, pos, p.errf(namePos,
			"function '%s' accepts at most %d arguments, got %d", f.Name, f.MaxArgs, len(args))
	}
	for f.MaxArgs >= 0 && len(args) < f.MaxArgs {
		args = append(args, json.NewNull())
	}
	node, err := eval.ApplyArgFunction(f, args)
	if err != nil {
		return nil, pos, err
	}
	return node, pos, nil
}

// parseArgOrSlicer parses one argument expression; when the position
// admits a slice, leading or trailing colons switch to slice syntax.
func (p *Parser) parseArgOrSlicer(pos int, admitsSlice bool) (json.JNode, int, error) {
	if admitsSlice && p.Toks[pos].IsDelim(":") {
		return p.parseSlicer(pos, nil)
	}
	arg, npos, err := p.parseExprOrScalarFunc(pos)
	if err != nil {
		return nil, pos, err
	}
	if admitsSlice && npos < len(p.Toks) && p.Toks[npos].IsDelim(":") {
		iv, ok := arg.(*json.Int)
		if !ok {
			return nil, npos, p.errf(npos, "slice bounds must be int literals, got %s",
				json.TypeName(arg.GetType()))
		}
		bound := iv.Value
		return p.parseSlicer(npos, &bound)
	}
	return arg, npos, nil
}
