/*
File    : remespath/std/std.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package std defines the argument-function registry of the RemesPath
// query language: the catalogue of builtin functions a query can call.
// Each entry declares its arity range, the permitted type set of every
// argument position, its output type tag, and whether it is vectorized
// (applied element-wise over an iterable first argument) or mutating
// (alters its first argument in place).
//
// Functions are grouped by concern into arrays.go, maps.go, math.go and
// strings.go, each registering its entries in an init function.
package std

import (
	"fmt"

	"github.com/akashmaji946/remespath/json"
)

// ArgFunction is one builtin function entry.
type ArgFunction struct {
	Name    string
	MinArgs int
	// MaxArgs is the maximum arity, or -1 for an unbounded argument list.
	MaxArgs int
	// InputTypes holds the permitted type set per argument position.
	// For unbounded functions the last entry covers every extra argument.
	InputTypes []json.Dtype
	OutType    json.Dtype
	// Vectorized functions map over the elements of an iterable first
	// argument and return a container of the same shape.
	Vectorized bool
	// Mutating functions alter their first argument in place; callers
	// that rerun such a query on the same input must clone it per run.
	Mutating bool
	// Fn is the scalar implementation. It receives the argument list
	// padded with nulls to MaxArgs (unbounded functions are unpadded).
	Fn func(args []json.JNode) (json.JNode, error)
}

// Functions is the function registry, keyed by name. It is an immutable
// process-level table filled once by the init functions in this package.
var Functions = map[string]*ArgFunction{}

// register adds entries to the registry.
func register(fns ...*ArgFunction) {
	for _, f := range fns {
		Functions[f.Name] = f
	}
}

// TypeAt returns the permitted type set for an argument position.
func (f *ArgFunction) TypeAt(argNum int) json.Dtype {
	if argNum >= len(f.InputTypes) {
		return f.InputTypes[len(f.InputTypes)-1]
	}
	return f.InputTypes[argNum]
}

// CheckType intersects an argument's static type tag with the permitted
// set for its position. Late-bound arguments with an unknown tag pass;
// the first argument of a vectorized function additionally admits any
// iterable, whose elements are checked at evaluation time instead.
func CheckType(arg json.JNode, f *ArgFunction, argNum int) error {
	allowed := f.TypeAt(argNum)
	if f.Vectorized && argNum == 0 {
		allowed |= json.IterableType
	}
	actual := arg.GetType()
	if actual&json.UnknownType != 0 {
		return nil
	}
	if actual&allowed == 0 {
		return &json.TypeError{Msg: fmt.Sprintf(
			"function '%s' argument %d must have type %s, got %s",
			f.Name, argNum, json.TypeName(allowed), json.TypeName(actual))}
	}
	return nil
}

// isNull reports whether a padded argument slot was left unfilled.
func isNull(n json.JNode) bool {
	_, ok := n.(*json.Null)
	return ok
}

// argErr builds the evaluation-time type error for a bad argument.
func argErr(name string, argNum int, want string, got json.JNode) error {
	return &json.TypeError{Msg: fmt.Sprintf(
		"function '%s' argument %d must be %s, got %s",
		name, argNum, want, json.TypeName(got.GetType()))}
}
