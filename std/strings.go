/*
File    : remespath/std/strings.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package std - strings.go
// This file defines the vectorized string functions. Patterns may be
// compiled regexes (g-literals) or plain strings; where both are allowed
// the plain string means a literal substring, not a pattern.
package std

import (
	"strings"

	"github.com/akashmaji946/remespath/json"
)

var stringFunctions = []*ArgFunction{
	{Name: "s_len", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.StrType},
		OutType:    json.IntType, Vectorized: true, Fn: sLenFn},
	{Name: "s_count", MinArgs: 2, MaxArgs: 2,
		InputTypes: []json.Dtype{json.StrType, json.StrOrRegexType},
		OutType:    json.IntType, Vectorized: true, Fn: sCountFn},
	{Name: "s_find", MinArgs: 2, MaxArgs: 2,
		InputTypes: []json.Dtype{json.StrType, json.RegexType},
		OutType:    json.ArrType, Vectorized: true, Fn: sFindFn},
	{Name: "s_lower", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.StrType},
		OutType:    json.StrType, Vectorized: true, Fn: sLowerFn},
	{Name: "s_upper", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.StrType},
		OutType:    json.StrType, Vectorized: true, Fn: sUpperFn},
	{Name: "s_strip", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.StrType},
		OutType:    json.StrType, Vectorized: true, Fn: sStripFn},
	{Name: "s_slice", MinArgs: 2, MaxArgs: 2,
		InputTypes: []json.Dtype{json.StrType, json.IntOrSliceType},
		OutType:    json.StrType, Vectorized: true, Fn: sSliceFn},
	{Name: "s_split", MinArgs: 2, MaxArgs: 2,
		InputTypes: []json.Dtype{json.StrType, json.StrOrRegexType},
		OutType:    json.ArrType, Vectorized: true, Fn: sSplitFn},
	{Name: "s_sub", MinArgs: 3, MaxArgs: 3,
		InputTypes: []json.Dtype{json.StrType, json.StrOrRegexType, json.StrType},
		OutType:    json.StrType, Vectorized: true, Fn: sSubFn},
	{Name: "s_join", MinArgs: 2, MaxArgs: 2,
		InputTypes: []json.Dtype{json.StrType, json.ArrType},
		OutType:    json.StrType, Fn: sJoinFn},
}

func init() {
	register(stringFunctions...)
}

func wantStr(name string, argNum int, arg json.JNode) (string, error) {
	s, ok := arg.(*json.Str)
	if !ok {
		return "", argErr(name, argNum, "str", arg)
	}
	return s.Value, nil
}

func sLenFn(args []json.JNode) (json.JNode, error) {
	s, err := wantStr("s_len", 0, args[0])
	if err != nil {
		return nil, err
	}
	return json.NewInt(int64(len([]rune(s)))), nil
}

func sCountFn(args []json.JNode) (json.JNode, error) {
	s, err := wantStr("s_count", 0, args[0])
	if err != nil {
		return nil, err
	}
	switch pat := args[1].(type) {
	case *json.Regex:
		return json.NewInt(int64(len(pat.Value.FindAllString(s, -1)))), nil
	case *json.Str:
		return json.NewInt(int64(strings.Count(s, pat.Value))), nil
	}
	return nil, argErr("s_count", 1, "str-or-regex", args[1])
}

func sFindFn(args []json.JNode) (json.JNode, error) {
	s, err := wantStr("s_find", 0, args[0])
	if err != nil {
		return nil, err
	}
	pat, ok := args[1].(*json.Regex)
	if !ok {
		return nil, argErr("s_find", 1, "regex", args[1])
	}
	out := json.NewArr()
	for _, m := range pat.Value.FindAllString(s, -1) {
		out.Children = append(out.Children, json.NewStr(m))
	}
	return out, nil
}

func sLowerFn(args []json.JNode) (json.JNode, error) {
	s, err := wantStr("s_lower", 0, args[0])
	if err != nil {
		return nil, err
	}
	return json.NewStr(strings.ToLower(s)), nil
}

func sUpperFn(args []json.JNode) (json.JNode, error) {
	s, err := wantStr("s_upper", 0, args[0])
	if err != nil {
		return nil, err
	}
	return json.NewStr(strings.ToUpper(s)), nil
}

func sStripFn(args []json.JNode) (json.JNode, error) {
	s, err := wantStr("s_strip", 0, args[0])
	if err != nil {
		return nil, err
	}
	return json.NewStr(strings.TrimSpace(s)), nil
}

// sSliceFn indexes or slices the runes of a string: an int picks one
// character, a slice takes a substring with the usual slice semantics.
func sSliceFn(args []json.JNode) (json.JNode, error) {
	s, err := wantStr("s_slice", 0, args[0])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	switch idx := args[1].(type) {
	case *json.Int:
		i, inBounds := json.NormIndex(idx.Value, len(runes))
		if !inBounds {
			return nil, &json.TypeError{Msg: "s_slice: index out of range"}
		}
		return json.NewStr(string(runes[i])), nil
	case *json.Slice:
		var b strings.Builder
		for _, i := range json.SliceIndices(idx, len(runes)) {
			b.WriteRune(runes[i])
		}
		return json.NewStr(b.String()), nil
	}
	return nil, argErr("s_slice", 1, "int-or-slice", args[1])
}

func sSplitFn(args []json.JNode) (json.JNode, error) {
	s, err := wantStr("s_split", 0, args[0])
	if err != nil {
		return nil, err
	}
	var parts []string
	switch sep := args[1].(type) {
	case *json.Regex:
		parts = sep.Value.Split(s, -1)
	case *json.Str:
		parts = strings.Split(s, sep.Value)
	default:
		return nil, argErr("s_split", 1, "str-or-regex", args[1])
	}
	out := json.NewArr()
	for _, p := range parts {
		out.Children = append(out.Children, json.NewStr(p))
	}
	return out, nil
}

func sSubFn(args []json.JNode) (json.JNode, error) {
	s, err := wantStr("s_sub", 0, args[0])
	if err != nil {
		return nil, err
	}
	repl, err := wantStr("s_sub", 2, args[2])
	if err != nil {
		return nil, err
	}
	switch pat := args[1].(type) {
	case *json.Regex:
		return json.NewStr(pat.Value.ReplaceAllString(s, repl)), nil
	case *json.Str:
		return json.NewStr(strings.ReplaceAll(s, pat.Value, repl)), nil
	}
	return nil, argErr("s_sub", 1, "str-or-regex", args[1])
}

// sJoinFn is the one non-vectorized string function: it reduces an array
// of strings to a single string.
func sJoinFn(args []json.JNode) (json.JNode, error) {
	sep, err := wantStr("s_join", 0, args[0])
	if err != nil {
		return nil, err
	}
	arr, ok := args[1].(*json.Arr)
	if !ok {
		return nil, argErr("s_join", 1, "array", args[1])
	}
	parts := make([]string, len(arr.Children))
	for i, c := range arr.Children {
		s, ok := c.(*json.Str)
		if !ok {
			return nil, &json.TypeError{Msg: "s_join requires an array of strings, found " +
				json.TypeName(c.GetType())}
		}
		parts[i] = s.Value
	}
	return json.NewStr(strings.Join(parts, sep)), nil
}
