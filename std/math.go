/*
File    : remespath/std/math.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package std - math.go
// This file defines the vectorized scalar functions: math, conversions
// and predicates. When the first argument is an iterable they apply
// element-wise over its top level; an element that is itself a
// container, and every later argument, reaches the implementation as is.
package std

import (
	"math"
	"strconv"
	"strings"

	"github.com/akashmaji946/remespath/json"
)

// Uminus is the registered unary-minus function. Because `-` lexes as a
// binop symbol, the parser also applies it directly for prefix minus.
var Uminus = &ArgFunction{
	Name: "uminus", MinArgs: 1, MaxArgs: 1,
	InputTypes: []json.Dtype{json.NumType},
	OutType:    json.NumType, Vectorized: true,
	Fn: func(args []json.JNode) (json.JNode, error) {
		switch v := args[0].(type) {
		case *json.Int:
			return json.NewInt(-v.Value), nil
		case *json.Float:
			return json.NewFloat(-v.Value), nil
		}
		return nil, argErr("uminus", 0, "num", args[0])
	},
}

var mathFunctions = []*ArgFunction{
	{Name: "abs", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.NumType},
		OutType:    json.NumType, Vectorized: true, Fn: absFn},
	{Name: "log", MinArgs: 1, MaxArgs: 2,
		InputTypes: []json.Dtype{json.NumType, json.NumType | json.NullType},
		OutType:    json.FloatType, Vectorized: true, Fn: logFn},
	{Name: "log2", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.NumType},
		OutType:    json.FloatType, Vectorized: true, Fn: log2Fn},
	{Name: "round", MinArgs: 1, MaxArgs: 2,
		InputTypes: []json.Dtype{json.NumType, json.IntType | json.NullType},
		OutType:    json.NumType, Vectorized: true, Fn: roundFn},
	{Name: "int", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.BoolType | json.NumType | json.StrType},
		OutType:    json.IntType, Vectorized: true, Fn: intFn},
	{Name: "float", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.BoolType | json.NumType | json.StrType},
		OutType:    json.FloatType, Vectorized: true, Fn: floatFn},
	{Name: "str", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.AnythingType},
		OutType:    json.StrType, Vectorized: true, Fn: strFn},
	{Name: "not", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.BoolType},
		OutType:    json.BoolType, Vectorized: true, Fn: notFn},
	{Name: "isna", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.NumType},
		OutType:    json.BoolType, Vectorized: true, Fn: isnaFn},
	{Name: "is_num", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.AnythingType},
		OutType:    json.BoolType, Vectorized: true, Fn: isNumFn},
	{Name: "is_str", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.AnythingType},
		OutType:    json.BoolType, Vectorized: true, Fn: isStrFn},
	{Name: "is_expr", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.AnythingType},
		OutType:    json.BoolType, Vectorized: true, Fn: isExprFn},
	{Name: "ifelse", MinArgs: 3, MaxArgs: 3,
		InputTypes: []json.Dtype{json.BoolType, json.AnythingType, json.AnythingType},
		OutType:    json.UnknownType, Vectorized: true, Fn: ifelseFn},
}

func init() {
	register(mathFunctions...)
	register(Uminus)
}

func absFn(args []json.JNode) (json.JNode, error) {
	switch v := args[0].(type) {
	case *json.Int:
		if v.Value < 0 {
			return json.NewInt(-v.Value), nil
		}
		return json.NewInt(v.Value), nil
	case *json.Float:
		return json.NewFloat(math.Abs(v.Value)), nil
	}
	return nil, argErr("abs", 0, "num", args[0])
}

func logFn(args []json.JNode) (json.JNode, error) {
	x, ok := json.AsFloat(args[0])
	if !ok {
		return nil, argErr("log", 0, "num", args[0])
	}
	if isNull(args[1]) {
		return json.NewFloat(math.Log(x)), nil
	}
	base, ok := json.AsFloat(args[1])
	if !ok {
		return nil, argErr("log", 1, "num", args[1])
	}
	return json.NewFloat(math.Log(x) / math.Log(base)), nil
}

func log2Fn(args []json.JNode) (json.JNode, error) {
	x, ok := json.AsFloat(args[0])
	if !ok {
		return nil, argErr("log2", 0, "num", args[0])
	}
	return json.NewFloat(math.Log2(x)), nil
}

// roundFn rounds to an int when ndigits is omitted, to a float with that
// many decimal places otherwise. Integer inputs pass through.
func roundFn(args []json.JNode) (json.JNode, error) {
	if i, ok := args[0].(*json.Int); ok {
		if isNull(args[1]) {
			return json.NewInt(i.Value), nil
		}
		return json.NewFloat(float64(i.Value)), nil
	}
	f, ok := args[0].(*json.Float)
	if !ok {
		return nil, argErr("round", 0, "num", args[0])
	}
	if isNull(args[1]) {
		return json.NewInt(int64(math.Round(f.Value))), nil
	}
	nd, ok := json.AsInt(args[1])
	if !ok {
		return nil, argErr("round", 1, "int", args[1])
	}
	shift := math.Pow(10, float64(nd))
	return json.NewFloat(math.Round(f.Value*shift) / shift), nil
}

func intFn(args []json.JNode) (json.JNode, error) {
	switch v := args[0].(type) {
	case *json.Bool:
		if v.Value {
			return json.NewInt(1), nil
		}
		return json.NewInt(0), nil
	case *json.Int:
		return json.NewInt(v.Value), nil
	case *json.Float:
		// truncates toward zero
		return json.NewInt(int64(v.Value)), nil
	case *json.Str:
		i, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return nil, &json.TypeError{Msg: "int: cannot parse " + json.QuoteString(v.Value)}
		}
		return json.NewInt(i), nil
	}
	return nil, argErr("int", 0, "bool, num or str", args[0])
}

func floatFn(args []json.JNode) (json.JNode, error) {
	switch v := args[0].(type) {
	case *json.Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, &json.TypeError{Msg: "float: cannot parse " + json.QuoteString(v.Value)}
		}
		return json.NewFloat(f), nil
	}
	f, ok := json.AsFloat(args[0])
	if !ok {
		return nil, argErr("float", 0, "bool, num or str", args[0])
	}
	return json.NewFloat(f), nil
}

// strFn renders any scalar as a string; strings pass through unquoted.
func strFn(args []json.JNode) (json.JNode, error) {
	if s, ok := args[0].(*json.Str); ok {
		return json.NewStr(s.Value), nil
	}
	return json.NewStr(args[0].ToString()), nil
}

func notFn(args []json.JNode) (json.JNode, error) {
	b, ok := args[0].(*json.Bool)
	if !ok {
		return nil, argErr("not", 0, "bool", args[0])
	}
	return json.NewBool(!b.Value), nil
}

// isnaFn reports whether a number is NaN.
func isnaFn(args []json.JNode) (json.JNode, error) {
	f, ok := json.AsFloat(args[0])
	if !ok {
		return nil, argErr("isna", 0, "num", args[0])
	}
	return json.NewBool(math.IsNaN(f)), nil
}

func isNumFn(args []json.JNode) (json.JNode, error) {
	return json.NewBool(args[0].GetType()&json.NumType != 0), nil
}

func isStrFn(args []json.JNode) (json.JNode, error) {
	return json.NewBool(args[0].GetType() == json.StrType), nil
}

func isExprFn(args []json.JNode) (json.JNode, error) {
	return json.NewBool(args[0].GetType()&json.IterableType != 0), nil
}

func ifelseFn(args []json.JNode) (json.JNode, error) {
	cond, ok := args[0].(*json.Bool)
	if !ok {
		return nil, argErr("ifelse", 0, "bool", args[0])
	}
	if cond.Value {
		return args[1], nil
	}
	return args[2], nil
}
