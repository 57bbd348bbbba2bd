/*
File    : remespath/parser/parser_expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser - parser_expressions.go
// This file parses expressions: the alternating operand/binop loop that
// grows a binop tree, and the single-operand production with its
// trailing indexer chain.
package parser

import (
	"github.com/akashmaji946/remespath/binop"
	"github.com/akashmaji946/remespath/eval"
	"github.com/akashmaji946/remespath/json"
	"github.com/akashmaji946/remespath/lexer"
	"github.com/akashmaji946/remespath/std"
)

// binopWithArgs is a binop tree node under construction. The sides hold
// either a finished operand (json.JNode) or a nested *binopWithArgs; a
// nil right side marks the tree's one incomplete leaf.
type binopWithArgs struct {
	op    *binop.Binop
	left  any
	right any
}

// resolve folds the finished tree bottom-up into a compiled value,
// taking late binding into account at every node.
func (b *binopWithArgs) resolve() (json.JNode, error) {
	resolveSide := func(side any) (json.JNode, error) {
		switch v := side.(type) {
		case *binopWithArgs:
			return v.resolve()
		case json.JNode:
			return v, nil
		}
		return nil, &ParseError{Msg: "binop '" + b.op.Symbol + "' is missing an operand"}
	}
	left, err := resolveSide(b.left)
	if err != nil {
		return nil, err
	}
	right, err := resolveSide(b.right)
	if err != nil {
		return nil, err
	}
	return eval.ResolveBinop(b.op, left, right)
}

// rightAssocEpsilon nudges a right-associative operator's precedence up
// when it competes for a spot in the tree, so that `a ** b ** c` groups
// as `a ** (b ** c)`.
const rightAssocEpsilon = 0.1

// parseExprOrScalarFunc reads operands and binop tokens alternately
// until a terminating delimiter, growing a binop tree with a root and a
// rightmost incomplete leaf:
//
//   - an incoming operator at or below the root's precedence completes
//     the leaf with the most recent operand and is promoted to root;
//   - a higher-precedence operator becomes the leaf's right child and
//     the new leaf.
//
// A prefix `-` toggles a pending flag: when the following operand turns
// out to be the base of `**`, the minus folds into the synthetic
// negate-power operator; otherwise it is applied immediately through the
// registered unary-minus function.
func (p *Parser) parseExprOrScalarFunc(pos int) (json.JNode, int, error) {
	uminus := false
	var root, leaf *binopWithArgs
	var last json.JNode

loop:
	for pos < len(p.Toks) {
		t := &p.Toks[pos]
		if t.Type == lexer.BINOP_TOK {
			b := t.Op
			if last == nil {
				if b.Symbol != "-" {
					return nil, pos, p.errf(pos, "binop '%s' with no left operand", b.Symbol)
				}
				uminus = !uminus
				pos++
				continue
			}
			show := b.Precedence
			if b.RightAssoc {
				show += rightAssocEpsilon
			}
			if b.Symbol == "**" && uminus {
				b = binop.NegPow
				uminus = false
			}
			switch {
			case root == nil:
				root = &binopWithArgs{op: b, left: last}
				leaf = root
			case show <= root.op.Precedence:
				leaf.right = last
				root = &binopWithArgs{op: b, left: root}
				leaf = root
			default:
				next := &binopWithArgs{op: b, left: last}
				leaf.right = next
				leaf = next
			}
			last = nil
			pos++
			continue
		}
		if t.Type == lexer.DELIM_TOK {
			switch t.Literal {
			case ",", ")", "]", "}", ":":
				break loop
			}
		}
		if last != nil {
			return nil, pos, p.errf(pos, "expected a binop before '%s'", t.Literal)
		}
		operand, npos, err := p.parseExprOrScalar(pos)
		if err != nil {
			return nil, pos, err
		}
		pos = npos
		if uminus && !(pos < len(p.Toks) && p.Toks[pos].IsBinop("**")) {
			operand, err = eval.ApplyArgFunction(std.Uminus, []json.JNode{operand})
			if err != nil {
				return nil, pos, err
			}
			uminus = false
		}
		last = operand
	}

	if last == nil {
		return nil, pos, p.errf(pos, "expected an operand")
	}
	if root != nil {
		leaf.right = last
		return resolveAt(root, pos)
	}
	return last, pos, nil
}

// resolveAt folds a finished tree and anchors any error at the token
// index the expression ended on.
func resolveAt(root *binopWithArgs, pos int) (json.JNode, int, error) {
	node, err := root.resolve()
	if err != nil {
		return nil, pos, err
	}
	return node, pos, nil
}

// parseExprOrScalar parses one atom (a parenthesized sub-query, an
// argument-function call, or a literal / current-JSON reference) and
// then its trailing indexer chain.
func (p *Parser) parseExprOrScalar(pos int) (json.JNode, int, error) {
	if pos >= len(p.Toks) {
		return nil, pos, p.errf(pos, "unexpected end of query")
	}
	t := &p.Toks[pos]
	var node json.JNode
	var err error
	switch t.Type {
	case lexer.LITERAL_TOK:
		node = t.Value
		pos++
	case lexer.FUNC_TOK:
		node, pos, err = p.parseArgFunction(pos)
		if err != nil {
			return nil, pos, err
		}
	case lexer.DELIM_TOK:
		if t.Literal != "(" {
			return nil, pos, p.errf(pos, "unexpected token '%s'", t.Literal)
		}
		pos++
		node, pos, err = p.parseExprOrScalarFunc(pos)
		if err != nil {
			return nil, pos, err
		}
		if pos >= len(p.Toks) || !p.Toks[pos].IsDelim(")") {
			return nil, pos, p.errf(pos, "unclosed parenthesis")
		}
		pos++
	case lexer.IDENT_TOK:
		return nil, pos, p.errf(pos, "unquoted string '%s' is only allowed as a key", t.Literal)
	default:
		return nil, pos, p.errf(pos, "unexpected token '%s'", t.Literal)
	}

	indexers := []*eval.Indexer{}
	for pos < len(p.Toks) {
		t := &p.Toks[pos]
		if t.Type != lexer.DELIM_TOK {
			break
		}
		if t.Literal != "." && t.Literal != ".." && t.Literal != "[" && t.Literal != "{" {
			break
		}
		ix, npos, err := p.parseIndexer(pos)
		if err != nil {
			return nil, pos, err
		}
		indexers = append(indexers, ix)
		pos = npos
	}
	if len(indexers) > 0 {
		node, err = applyIndexersCompiled(node, indexers)
		if err != nil {
			return nil, pos, err
		}
	}
	return node, pos, nil
}

// applyIndexersCompiled attaches an indexer chain to a compiled operand:
// immediately for constants, as a composed closure for late-bound ones.
func applyIndexersCompiled(node json.JNode, indexers []*eval.Indexer) (json.JNode, error) {
	if cur, ok := node.(*json.CurJSON); ok {
		return json.NewCurJSON(func(input json.JNode) (json.JNode, error) {
			v, err := cur.Fn(input)
			if err != nil {
				return nil, err
			}
			return eval.ApplyIndexerList(v, indexers)
		}, json.UnknownType), nil
	}
	return eval.ApplyIndexerList(node, indexers)
}
