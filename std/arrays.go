/*
File    : remespath/std/arrays.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package std - arrays.go
// This file defines the builtin functions that aggregate, order and
// reshape arrays.
package std

import (
	"sort"

	"github.com/akashmaji946/remespath/json"
)

var arrayFunctions = []*ArgFunction{
	{Name: "len", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.IterableType},
		OutType:    json.IntType, Fn: lenFn},
	{Name: "sum", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.ArrType},
		OutType:    json.FloatType, Fn: sumFn},
	{Name: "mean", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.ArrType},
		OutType:    json.FloatType, Fn: meanFn},
	{Name: "max", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.ArrType},
		OutType:    json.FloatType, Fn: maxFn},
	{Name: "min", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.ArrType},
		OutType:    json.FloatType, Fn: minFn},
	{Name: "range", MinArgs: 1, MaxArgs: 3,
		InputTypes: []json.Dtype{json.IntType, json.IntType | json.NullType, json.IntType | json.NullType},
		OutType:    json.ArrType, Fn: rangeFn},
	{Name: "sorted", MinArgs: 1, MaxArgs: 2,
		InputTypes: []json.Dtype{json.ArrType, json.BoolType | json.NullType},
		OutType:    json.ArrType, Fn: sortedFn},
	{Name: "sort_by", MinArgs: 2, MaxArgs: 3,
		InputTypes: []json.Dtype{json.ArrType, json.StrType | json.IntType, json.BoolType | json.NullType},
		OutType:    json.ArrType, Fn: sortByFn},
	{Name: "max_by", MinArgs: 2, MaxArgs: 2,
		InputTypes: []json.Dtype{json.ArrType, json.StrType | json.IntType},
		OutType:    json.UnknownType, Fn: maxByFn},
	{Name: "min_by", MinArgs: 2, MaxArgs: 2,
		InputTypes: []json.Dtype{json.ArrType, json.StrType | json.IntType},
		OutType:    json.UnknownType, Fn: minByFn},
	{Name: "unique", MinArgs: 1, MaxArgs: 2,
		InputTypes: []json.Dtype{json.ArrType, json.BoolType | json.NullType},
		OutType:    json.ArrType, Fn: uniqueFn},
	{Name: "flatten", MinArgs: 1, MaxArgs: 2,
		InputTypes: []json.Dtype{json.ArrType, json.IntType | json.NullType},
		OutType:    json.ArrType, Fn: flattenFn},
	{Name: "concat", MinArgs: 2, MaxArgs: -1,
		InputTypes: []json.Dtype{json.IterableType},
		OutType:    json.UnknownType, Fn: concatFn},
	{Name: "append", MinArgs: 2, MaxArgs: -1,
		InputTypes: []json.Dtype{json.ArrType, json.AnythingType},
		OutType:    json.ArrType, Mutating: true, Fn: appendFn},
	{Name: "add_items", MinArgs: 3, MaxArgs: -1,
		InputTypes: []json.Dtype{json.ObjType, json.StrType, json.AnythingType},
		OutType:    json.ObjType, Mutating: true, Fn: addItemsFn},
	{Name: "index", MinArgs: 2, MaxArgs: 3,
		InputTypes: []json.Dtype{json.ArrType, json.ScalarType, json.BoolType | json.NullType},
		OutType:    json.IntType, Fn: indexFn},
	{Name: "quantile", MinArgs: 2, MaxArgs: 2,
		InputTypes: []json.Dtype{json.ArrType, json.NumType},
		OutType:    json.FloatType, Fn: quantileFn},
	{Name: "value_counts", MinArgs: 1, MaxArgs: 1,
		InputTypes: []json.Dtype{json.ArrType},
		OutType:    json.ArrType, Fn: valueCountsFn},
	{Name: "in", MinArgs: 2, MaxArgs: 2,
		InputTypes: []json.Dtype{json.ScalarType, json.IterableType},
		OutType:    json.BoolType, Fn: inFn},
}

func init() {
	register(arrayFunctions...)
}

// compareNodes orders two scalars: numbers with numbers (booleans as
// 0/1), strings with strings. Returns -1, 0 or 1.
func compareNodes(a, b json.JNode) (int, error) {
	if as, ok := a.(*json.Str); ok {
		bs, ok := b.(*json.Str)
		if !ok {
			return 0, &json.TypeError{Msg: "cannot compare str with " + json.TypeName(b.GetType())}
		}
		switch {
		case as.Value < bs.Value:
			return -1, nil
		case as.Value > bs.Value:
			return 1, nil
		}
		return 0, nil
	}
	af, aok := json.AsFloat(a)
	bf, bok := json.AsFloat(b)
	if !aok || !bok {
		return 0, &json.TypeError{Msg: "cannot compare " +
			json.TypeName(a.GetType()) + " with " + json.TypeName(b.GetType())}
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	}
	return 0, nil
}

func lenFn(args []json.JNode) (json.JNode, error) {
	switch v := args[0].(type) {
	case *json.Arr:
		return json.NewInt(int64(v.Len())), nil
	case *json.Obj:
		return json.NewInt(int64(v.Len())), nil
	}
	return nil, argErr("len", 0, "iterable", args[0])
}

// floats extracts the numeric elements of an array.
func floats(name string, arr json.JNode) ([]float64, error) {
	a, ok := arr.(*json.Arr)
	if !ok {
		return nil, argErr(name, 0, "array", arr)
	}
	out := make([]float64, len(a.Children))
	for i, c := range a.Children {
		f, ok := json.AsFloat(c)
		if !ok {
			return nil, &json.TypeError{Msg: "function '" + name +
				"' requires an array of numbers, found " + json.TypeName(c.GetType())}
		}
		out[i] = f
	}
	return out, nil
}

func sumFn(args []json.JNode) (json.JNode, error) {
	nums, err := floats("sum", args[0])
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, f := range nums {
		total += f
	}
	return json.NewFloat(total), nil
}

func meanFn(args []json.JNode) (json.JNode, error) {
	nums, err := floats("mean", args[0])
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, &json.TypeError{Msg: "mean of an empty array"}
	}
	total := 0.0
	for _, f := range nums {
		total += f
	}
	return json.NewFloat(total / float64(len(nums))), nil
}

func maxFn(args []json.JNode) (json.JNode, error) {
	nums, err := floats("max", args[0])
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, &json.TypeError{Msg: "max of an empty array"}
	}
	best := nums[0]
	for _, f := range nums[1:] {
		if f > best {
			best = f
		}
	}
	return json.NewFloat(best), nil
}

func minFn(args []json.JNode) (json.JNode, error) {
	nums, err := floats("min", args[0])
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, &json.TypeError{Msg: "min of an empty array"}
	}
	best := nums[0]
	for _, f := range nums[1:] {
		if f < best {
			best = f
		}
	}
	return json.NewFloat(best), nil
}

func rangeFn(args []json.JNode) (json.JNode, error) {
	first, ok := json.AsInt(args[0])
	if !ok {
		return nil, argErr("range", 0, "int", args[0])
	}
	start, stop, step := int64(0), first, int64(1)
	if !isNull(args[1]) {
		v, ok := json.AsInt(args[1])
		if !ok {
			return nil, argErr("range", 1, "int", args[1])
		}
		start, stop = first, v
	}
	if !isNull(args[2]) {
		v, ok := json.AsInt(args[2])
		if !ok {
			return nil, argErr("range", 2, "int", args[2])
		}
		step = v
	}
	if step == 0 {
		return nil, &json.TypeError{Msg: "range step cannot be 0"}
	}
	out := json.NewArr()
	if step > 0 {
		for i := start; i < stop; i += step {
			out.Children = append(out.Children, json.NewInt(i))
		}
	} else {
		for i := start; i > stop; i += step {
			out.Children = append(out.Children, json.NewInt(i))
		}
	}
	return out, nil
}

// sortRows stable-sorts a copy of the rows by extracted keys. Neighbouring
// keys are checked for comparability up front, which rules out mixed key
// kinds anywhere in the list, so the sort callback never has to swallow
// an error.
func sortRows(rows []json.JNode, key func(json.JNode) (json.JNode, error), reverse bool) ([]json.JNode, error) {
	type keyed struct {
		row json.JNode
		key json.JNode
	}
	pairs := make([]keyed, len(rows))
	for i, row := range rows {
		k, err := key(row)
		if err != nil {
			return nil, err
		}
		pairs[i] = keyed{row: row, key: k}
	}
	for i := 1; i < len(pairs); i++ {
		if _, err := compareNodes(pairs[i-1].key, pairs[i].key); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		c, _ := compareNodes(pairs[i].key, pairs[j].key)
		if reverse {
			return c > 0
		}
		return c < 0
	})
	out := make([]json.JNode, len(pairs))
	for i, p := range pairs {
		out[i] = p.row
	}
	return out, nil
}

func sortedFn(args []json.JNode) (json.JNode, error) {
	arr, ok := args[0].(*json.Arr)
	if !ok {
		return nil, argErr("sorted", 0, "array", args[0])
	}
	reverse := false
	if b, ok := args[1].(*json.Bool); ok {
		reverse = b.Value
	}
	rows := make([]json.JNode, len(arr.Children))
	copy(rows, arr.Children)
	sorted, err := sortRows(rows, func(row json.JNode) (json.JNode, error) { return row, nil }, reverse)
	if err != nil {
		return nil, err
	}
	return json.NewArr(sorted...), nil
}

// rowKey extracts the sort key from one row: an object member for string
// keys, an array element (negatives count from the end) for int keys.
func rowKey(name string, row, key json.JNode) (json.JNode, error) {
	switch k := key.(type) {
	case *json.Str:
		obj, ok := row.(*json.Obj)
		if !ok {
			return nil, &json.TypeError{Msg: "function '" + name +
				"' with a string key requires rows to be objects"}
		}
		v, present := obj.Get(k.Value)
		if !present {
			return nil, &json.TypeError{Msg: "function '" + name +
				"': row has no key " + json.QuoteString(k.Value)}
		}
		return v, nil
	case *json.Int:
		arr, ok := row.(*json.Arr)
		if !ok {
			return nil, &json.TypeError{Msg: "function '" + name +
				"' with an int key requires rows to be arrays"}
		}
		i, inBounds := json.NormIndex(k.Value, len(arr.Children))
		if !inBounds {
			return nil, &json.TypeError{Msg: "function '" + name +
				"': row index out of range"}
		}
		return arr.Children[i], nil
	}
	return nil, argErr(name, 1, "str or int", key)
}

func sortByFn(args []json.JNode) (json.JNode, error) {
	arr, ok := args[0].(*json.Arr)
	if !ok {
		return nil, argErr("sort_by", 0, "array", args[0])
	}
	reverse := false
	if b, ok := args[2].(*json.Bool); ok {
		reverse = b.Value
	}
	rows := make([]json.JNode, len(arr.Children))
	copy(rows, arr.Children)
	sorted, err := sortRows(rows, func(row json.JNode) (json.JNode, error) {
		return rowKey("sort_by", row, args[1])
	}, reverse)
	if err != nil {
		return nil, err
	}
	return json.NewArr(sorted...), nil
}

func extremeByFn(name string, args []json.JNode, wantGreater bool) (json.JNode, error) {
	arr, ok := args[0].(*json.Arr)
	if !ok {
		return nil, argErr(name, 0, "array", args[0])
	}
	if len(arr.Children) == 0 {
		return json.NewNull(), nil
	}
	best := arr.Children[0]
	bestKey, err := rowKey(name, best, args[1])
	if err != nil {
		return nil, err
	}
	for _, row := range arr.Children[1:] {
		k, err := rowKey(name, row, args[1])
		if err != nil {
			return nil, err
		}
		c, err := compareNodes(k, bestKey)
		if err != nil {
			return nil, err
		}
		if (wantGreater && c > 0) || (!wantGreater && c < 0) {
			best, bestKey = row, k
		}
	}
	return best, nil
}

func maxByFn(args []json.JNode) (json.JNode, error) {
	return extremeByFn("max_by", args, true)
}

func minByFn(args []json.JNode) (json.JNode, error) {
	return extremeByFn("min_by", args, false)
}

func uniqueFn(args []json.JNode) (json.JNode, error) {
	arr, ok := args[0].(*json.Arr)
	if !ok {
		return nil, argErr("unique", 0, "array", args[0])
	}
	sortResult := false
	if b, ok := args[1].(*json.Bool); ok {
		sortResult = b.Value
	}
	seen := map[string]bool{}
	out := []json.JNode{}
	for _, c := range arr.Children {
		key := c.ToString()
		if !seen[key] {
			seen[key] = true
			out = append(out, c)
		}
	}
	if sortResult {
		sorted, err := sortRows(out, func(row json.JNode) (json.JNode, error) { return row, nil }, false)
		if err != nil {
			return nil, err
		}
		out = sorted
	}
	return json.NewArr(out...), nil
}

func flattenFn(args []json.JNode) (json.JNode, error) {
	arr, ok := args[0].(*json.Arr)
	if !ok {
		return nil, argErr("flatten", 0, "array", args[0])
	}
	depth := int64(1)
	if !isNull(args[1]) {
		v, ok := json.AsInt(args[1])
		if !ok {
			return nil, argErr("flatten", 1, "int", args[1])
		}
		depth = v
	}
	children := arr.Children
	for d := int64(0); d < depth; d++ {
		flat := []json.JNode{}
		changed := false
		for _, c := range children {
			if inner, ok := c.(*json.Arr); ok {
				flat = append(flat, inner.Children...)
				changed = true
			} else {
				flat = append(flat, c)
			}
		}
		children = flat
		if !changed {
			break
		}
	}
	out := make([]json.JNode, len(children))
	copy(out, children)
	return json.NewArr(out...), nil
}

func concatFn(args []json.JNode) (json.JNode, error) {
	switch args[0].(type) {
	case *json.Arr:
		out := json.NewArr()
		for i, a := range args {
			arr, ok := a.(*json.Arr)
			if !ok {
				return nil, argErr("concat", i, "array (like the first argument)", a)
			}
			out.Children = append(out.Children, arr.Children...)
		}
		return out, nil
	case *json.Obj:
		out := json.NewObj()
		for i, a := range args {
			obj, ok := a.(*json.Obj)
			if !ok {
				return nil, argErr("concat", i, "object (like the first argument)", a)
			}
			for pair := obj.Pairs.Oldest(); pair != nil; pair = pair.Next() {
				out.Set(pair.Key, pair.Value)
			}
		}
		return out, nil
	}
	return nil, argErr("concat", 0, "iterable", args[0])
}

// appendFn mutates its first argument, pushing every extra argument onto
// the end of the array.
func appendFn(args []json.JNode) (json.JNode, error) {
	arr, ok := args[0].(*json.Arr)
	if !ok {
		return nil, argErr("append", 0, "array", args[0])
	}
	arr.Children = append(arr.Children, args[1:]...)
	return arr, nil
}

// addItemsFn mutates its first argument, setting each (key, value) pair
// taken from the remaining arguments.
func addItemsFn(args []json.JNode) (json.JNode, error) {
	obj, ok := args[0].(*json.Obj)
	if !ok {
		return nil, argErr("add_items", 0, "object", args[0])
	}
	rest := args[1:]
	if len(rest)%2 != 0 {
		return nil, &json.TypeError{Msg: "add_items requires an even number of key-value arguments"}
	}
	for i := 0; i < len(rest); i += 2 {
		key, ok := rest[i].(*json.Str)
		if !ok {
			return nil, argErr("add_items", i+1, "str", rest[i])
		}
		obj.Set(key.Value, rest[i+1])
	}
	return obj, nil
}

func indexFn(args []json.JNode) (json.JNode, error) {
	arr, ok := args[0].(*json.Arr)
	if !ok {
		return nil, argErr("index", 0, "array", args[0])
	}
	reverse := false
	if b, ok := args[2].(*json.Bool); ok {
		reverse = b.Value
	}
	n := len(arr.Children)
	for i := 0; i < n; i++ {
		pos := i
		if reverse {
			pos = n - 1 - i
		}
		if json.Equals(arr.Children[pos], args[1]) {
			return json.NewInt(int64(pos)), nil
		}
	}
	return nil, &json.TypeError{Msg: "index: value " + args[1].ToString() + " not found"}
}

func quantileFn(args []json.JNode) (json.JNode, error) {
	nums, err := floats("quantile", args[0])
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, &json.TypeError{Msg: "quantile of an empty array"}
	}
	q, ok := json.AsFloat(args[1])
	if !ok || q < 0 || q > 1 {
		return nil, &json.TypeError{Msg: "quantile requires a fraction between 0 and 1"}
	}
	sort.Float64s(nums)
	pos := q * float64(len(nums)-1)
	lo := int(pos)
	if lo == len(nums)-1 {
		return json.NewFloat(nums[lo]), nil
	}
	frac := pos - float64(lo)
	return json.NewFloat(nums[lo]*(1-frac) + nums[lo+1]*frac), nil
}

func valueCountsFn(args []json.JNode) (json.JNode, error) {
	arr, ok := args[0].(*json.Arr)
	if !ok {
		return nil, argErr("value_counts", 0, "array", args[0])
	}
	counts := map[string]int64{}
	order := []json.JNode{}
	for _, c := range arr.Children {
		key := c.ToString()
		if _, seen := counts[key]; !seen {
			order = append(order, c)
		}
		counts[key]++
	}
	out := json.NewArr()
	for _, v := range order {
		out.Children = append(out.Children,
			json.NewArr(v, json.NewInt(counts[v.ToString()])))
	}
	return out, nil
}

func inFn(args []json.JNode) (json.JNode, error) {
	switch container := args[1].(type) {
	case *json.Arr:
		for _, c := range container.Children {
			if json.Equals(c, args[0]) {
				return json.NewBool(true), nil
			}
		}
		return json.NewBool(false), nil
	case *json.Obj:
		key, ok := args[0].(*json.Str)
		if !ok {
			return nil, argErr("in", 0, "str (for object membership)", args[0])
		}
		_, present := container.Get(key.Value)
		return json.NewBool(present), nil
	}
	return nil, argErr("in", 1, "iterable", args[1])
}
