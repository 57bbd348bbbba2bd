/*
File    : remespath/std/maps.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package std - maps.go
// This file defines the builtin functions over objects.
package std

import (
	"github.com/akashmaji946/remespath/json"
)

var mapFunctions = []*ArgFunction{
	{Name: "keys", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.ObjType},
		OutType:    json.ArrType, Fn: keysFn},
	{Name: "values", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.ObjType},
		OutType:    json.ArrType, Fn: valuesFn},
	{Name: "items", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.ObjType},
		OutType:    json.ArrType, Fn: itemsFn},
}

func init() {
	register(mapFunctions...)
}

// keysFn returns the object's keys in insertion order.
func keysFn(args []json.JNode) (json.JNode, error) {
	obj, ok := args[0].(*json.Obj)
	if !ok {
		return nil, argErr("keys", 0, "object", args[0])
	}
	out := json.NewArr()
	for pair := obj.Pairs.Oldest(); pair != nil; pair = pair.Next() {
		out.Children = append(out.Children, json.NewStr(pair.Key))
	}
	return out, nil
}

// valuesFn returns the object's values in insertion order. The values
// alias the input's subtrees.
func valuesFn(args []json.JNode) (json.JNode, error) {
	obj, ok := args[0].(*json.Obj)
	if !ok {
		return nil, argErr("values", 0, "object", args[0])
	}
	out := json.NewArr()
	for pair := obj.Pairs.Oldest(); pair != nil; pair = pair.Next() {
		out.Children = append(out.Children, pair.Value)
	}
	return out, nil
}

// itemsFn returns the object's [key, value] pairs in insertion order.
func itemsFn(args []json.JNode) (json.JNode, error) {
	obj, ok := args[0].(*json.Obj)
	if !ok {
		return nil, argErr("items", 0, "object", args[0])
	}
	out := json.NewArr()
	for pair := obj.Pairs.Oldest(); pair != nil; pair = pair.Next() {
		out.Children = append(out.Children,
			json.NewArr(json.NewStr(pair.Key), pair.Value))
	}
	return out, nil
}
