/*
File    : remespath/eval/eval.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package eval is the runtime of the RemesPath engine. It decides
// statically whether a construct depends on the query input: an operand
// is late-bound iff any of its subtrees is a current-JSON reference, and
// late-bound work is wrapped into a closure over the input so that the
// top-level Apply only has to call one function.
//
// The package also owns the two vectorization rules: binops distribute
// over matching-shape iterables (broadcasting scalars), and vectorized
// functions map over the elements of an iterable first argument.
package eval

import (
	"fmt"

	"github.com/akashmaji946/remespath/binop"
	"github.com/akashmaji946/remespath/json"
	"github.com/akashmaji946/remespath/std"
)

// Apply runs a compiled query against an input. A constant compiled
// query ignores the input; a late-bound one resolves against it.
func Apply(compiled, input json.JNode) (json.JNode, error) {
	if cur, ok := compiled.(*json.CurJSON); ok {
		return cur.Fn(input)
	}
	return compiled, nil
}

// ResolveBinop combines a binop with its two compiled operands. The four
// cases of (left late? right late?) either compute the result now or
// return a closure deferring the computation until an input arrives.
// The static output-type table runs in every case, so impossible operand
// combinations surface at compile time.
func ResolveBinop(b *binop.Binop, left, right json.JNode) (json.JNode, error) {
	outType, err := b.OutType(left.GetType(), right.GetType())
	if err != nil {
		return nil, err
	}
	lcur, lok := left.(*json.CurJSON)
	rcur, rok := right.(*json.CurJSON)
	switch {
	case lok && rok:
		return json.NewCurJSON(func(input json.JNode) (json.JNode, error) {
			l, err := lcur.Fn(input)
			if err != nil {
				return nil, err
			}
			r, err := rcur.Fn(input)
			if err != nil {
				return nil, err
			}
			return BinopTwoJsons(b, l, r)
		}, outType), nil
	case lok:
		return json.NewCurJSON(func(input json.JNode) (json.JNode, error) {
			l, err := lcur.Fn(input)
			if err != nil {
				return nil, err
			}
			return BinopTwoJsons(b, l, right)
		}, outType), nil
	case rok:
		return json.NewCurJSON(func(input json.JNode) (json.JNode, error) {
			r, err := rcur.Fn(input)
			if err != nil {
				return nil, err
			}
			return BinopTwoJsons(b, left, r)
		}, outType), nil
	}
	return BinopTwoJsons(b, left, right)
}

// BinopTwoJsons applies a binop to two concrete values, distributing
// over containers: two arrays must have equal length, two objects equal
// key sets, and a scalar broadcasts across every element or value.
func BinopTwoJsons(b *binop.Binop, l, r json.JNode) (json.JNode, error) {
	switch lv := l.(type) {
	case *json.Arr:
		switch rv := r.(type) {
		case *json.Arr:
			if len(lv.Children) != len(rv.Children) {
				return nil, &json.VectorizedArithmeticError{Msg: fmt.Sprintf(
					"binop '%s' on arrays of unequal length %d and %d",
					b.Symbol, len(lv.Children), len(rv.Children))}
			}
			out := json.NewArr()
			for i, c := range lv.Children {
				v, err := BinopTwoJsons(b, c, rv.Children[i])
				if err != nil {
					return nil, err
				}
				out.Children = append(out.Children, v)
			}
			return out, nil
		case *json.Obj:
			return nil, &json.VectorizedArithmeticError{Msg: fmt.Sprintf(
				"binop '%s' cannot mix an array with an object", b.Symbol)}
		}
		return broadcastLeft(b, lv, r)
	case *json.Obj:
		switch rv := r.(type) {
		case *json.Obj:
			if lv.Len() != rv.Len() {
				return nil, &json.VectorizedArithmeticError{Msg: fmt.Sprintf(
					"binop '%s' on objects with different key sets", b.Symbol)}
			}
			out := json.NewObj()
			for pair := lv.Pairs.Oldest(); pair != nil; pair = pair.Next() {
				other, present := rv.Get(pair.Key)
				if !present {
					return nil, &json.VectorizedArithmeticError{Msg: fmt.Sprintf(
						"binop '%s' on objects with different key sets", b.Symbol)}
				}
				v, err := BinopTwoJsons(b, pair.Value, other)
				if err != nil {
					return nil, err
				}
				out.Set(pair.Key, v)
			}
			return out, nil
		case *json.Arr:
			return nil, &json.VectorizedArithmeticError{Msg: fmt.Sprintf(
				"binop '%s' cannot mix an array with an object", b.Symbol)}
		}
		out := json.NewObj()
		for pair := lv.Pairs.Oldest(); pair != nil; pair = pair.Next() {
			v, err := BinopTwoJsons(b, pair.Value, r)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, v)
		}
		return out, nil
	}
	switch rv := r.(type) {
	case *json.Arr:
		out := json.NewArr()
		for _, c := range rv.Children {
			v, err := BinopTwoJsons(b, l, c)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, v)
		}
		return out, nil
	case *json.Obj:
		out := json.NewObj()
		for pair := rv.Pairs.Oldest(); pair != nil; pair = pair.Next() {
			v, err := BinopTwoJsons(b, l, pair.Value)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, v)
		}
		return out, nil
	}
	return b.Fn(l, r)
}

// broadcastLeft maps a binop across an array's elements with a fixed
// right-hand scalar.
func broadcastLeft(b *binop.Binop, lv *json.Arr, r json.JNode) (json.JNode, error) {
	out := json.NewArr()
	for _, c := range lv.Children {
		v, err := BinopTwoJsons(b, c, r)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, v)
	}
	return out, nil
}

// ApplyArgFunction calls an argument function on compiled arguments. If
// any argument is late-bound the call itself becomes late-bound: the
// returned closure resolves every argument against the input, re-checks
// the resolved types, and dispatches.
func ApplyArgFunction(f *std.ArgFunction, args []json.JNode) (json.JNode, error) {
	anyLate := false
	for _, a := range args {
		if _, ok := a.(*json.CurJSON); ok {
			anyLate = true
			break
		}
	}
	if !anyLate {
		return callFunction(f, args)
	}
	return json.NewCurJSON(func(input json.JNode) (json.JNode, error) {
		resolved := make([]json.JNode, len(args))
		for i, a := range args {
			if cur, ok := a.(*json.CurJSON); ok {
				v, err := cur.Fn(input)
				if err != nil {
					return nil, err
				}
				if err := std.CheckType(v, f, i); err != nil {
					return nil, err
				}
				resolved[i] = v
			} else {
				resolved[i] = a
			}
		}
		return callFunction(f, resolved)
	}, functionOutType(f, args)), nil
}

// functionOutType infers the static output tag of a call. A vectorized
// call mirrors the container shape of its first argument when that shape
// is known; otherwise the declared tag (or unknown) stands.
func functionOutType(f *std.ArgFunction, args []json.JNode) json.Dtype {
	if !f.Vectorized || len(args) == 0 {
		return f.OutType
	}
	t := args[0].GetType()
	if t&json.UnknownType != 0 {
		return json.UnknownType
	}
	if t&json.IterableType != 0 {
		return t
	}
	return f.OutType
}

// callFunction dispatches on the vectorized flag: element-wise over an
// iterable first argument, directly otherwise.
func callFunction(f *std.ArgFunction, args []json.JNode) (json.JNode, error) {
	if !f.Vectorized {
		return f.Fn(args)
	}
	switch x := args[0].(type) {
	case *json.Arr:
		out := json.NewArr()
		for _, c := range x.Children {
			sub := make([]json.JNode, len(args))
			copy(sub, args)
			sub[0] = c
			v, err := f.Fn(sub)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, v)
		}
		return out, nil
	case *json.Obj:
		out := json.NewObj()
		for pair := x.Pairs.Oldest(); pair != nil; pair = pair.Next() {
			sub := make([]json.JNode, len(args))
			copy(sub, args)
			sub[0] = pair.Value
			v, err := f.Fn(sub)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, v)
		}
		return out, nil
	}
	return f.Fn(args)
}
