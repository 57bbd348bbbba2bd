/*
File    : remespath/eval/indexers.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package eval - indexers.go
// This file is the indexer engine. Every parsed indexer becomes an
// Indexer: a function from a value to a lazy sequence of (key, child)
// pairs, plus the flags the chain loop dispatches on. Sequences are
// iter.Seq2 push iterators; iteration is strictly forward and
// single-pass, and nothing materializes until a projection or an
// ambiguous shape forces it.
package eval

import (
	"fmt"
	"iter"

	"github.com/akashmaji946/remespath/json"
)

// pairSeq is a lazy sequence of (key-or-index, child-value) pairs. Keys
// are strings for object selections and int64 indices for array ones.
type pairSeq = iter.Seq2[any, json.JNode]

// Indexer is one compiled indexer in a chain.
type Indexer struct {
	fn func(x json.JNode) (pairSeq, error)
	// HasOneOption marks an indexer statically known to select at most
	// one element; the chain unwraps its result from the container.
	HasOneOption bool
	// IsProjection marks projections, which materialize immediately.
	IsProjection bool
	// IsDict marks a projection that emits an object.
	IsDict bool
	// IsRecursive marks recursive-descent indexers, whose results always
	// collect into an array.
	IsRecursive bool
}

func emptySeq(yield func(any, json.JNode) bool) {}

// allPairs yields every (key, value) of an object or (index, value) of
// an array, in container order.
func allPairs(x json.JNode) pairSeq {
	return func(yield func(any, json.JNode) bool) {
		switch v := x.(type) {
		case *json.Obj:
			for pair := v.Pairs.Oldest(); pair != nil; pair = pair.Next() {
				if !yield(pair.Key, pair.Value) {
					return
				}
			}
		case *json.Arr:
			for i, c := range v.Children {
				if !yield(int64(i), c) {
					return
				}
			}
		}
	}
}

// NewStarIndexer builds the `.*` / `[*]` indexer.
func NewStarIndexer() *Indexer {
	return &Indexer{fn: func(x json.JNode) (pairSeq, error) {
		return allPairs(x), nil
	}}
}

// NewVarnameListIndexer builds a key/regex selector over objects. A
// non-recursive list with exactly one string child is a singleton: its
// result is returned bare, not wrapped in a one-key object.
func NewVarnameListIndexer(children []json.JNode, recursive bool) *Indexer {
	ix := &Indexer{IsRecursive: recursive}
	if !recursive && len(children) == 1 {
		_, isStr := children[0].(*json.Str)
		ix.HasOneOption = isStr
	}
	ix.fn = func(x json.JNode) (pairSeq, error) {
		if recursive {
			return recursiveSeq(children, x), nil
		}
		obj, ok := x.(*json.Obj)
		if !ok {
			return emptySeq, nil
		}
		return func(yield func(any, json.JNode) bool) {
			for _, child := range children {
				switch c := child.(type) {
				case *json.Str:
					// non-existent literal keys are silently skipped
					if v, present := obj.Get(c.Value); present {
						if !yield(c.Value, v) {
							return
						}
					}
				case *json.Regex:
					for pair := obj.Pairs.Oldest(); pair != nil; pair = pair.Next() {
						if c.Value.MatchString(pair.Key) {
							if !yield(pair.Key, pair.Value) {
								return
							}
						}
					}
				}
			}
		}, nil
	}
	return ix
}

// recursiveSeq performs the recursive key descent: at each object, keys
// matching any configured name or regex yield their values; keys that do
// not match are descended into. Arrays are traversed without being
// matched. The seen set guarantees no (rooted) subtree yields twice even
// when the document aliases subtrees.
func recursiveSeq(children []json.JNode, x json.JNode) pairSeq {
	return func(yield func(any, json.JNode) bool) {
		seen := map[json.JNode]bool{}
		var walk func(node json.JNode) bool
		walk = func(node json.JNode) bool {
			switch v := node.(type) {
			case *json.Obj:
				for pair := v.Pairs.Oldest(); pair != nil; pair = pair.Next() {
					matched := false
					for _, child := range children {
						switch c := child.(type) {
						case *json.Str:
							matched = matched || c.Value == pair.Key
						case *json.Regex:
							matched = matched || c.Value.MatchString(pair.Key)
						}
					}
					if matched {
						if !seen[pair.Value] {
							seen[pair.Value] = true
							if !yield(pair.Key, pair.Value) {
								return false
							}
						}
					} else if !walk(pair.Value) {
						return false
					}
				}
			case *json.Arr:
				for _, c := range v.Children {
					if !walk(c) {
						return false
					}
				}
			}
			return true
		}
		walk(x)
	}
}

// NewSlicerListIndexer builds an int/slice selector over arrays. A list
// with exactly one int child is a singleton.
func NewSlicerListIndexer(children []json.JNode) *Indexer {
	ix := &Indexer{}
	if len(children) == 1 {
		_, isInt := children[0].(*json.Int)
		ix.HasOneOption = isInt
	}
	ix.fn = func(x json.JNode) (pairSeq, error) {
		arr, ok := x.(*json.Arr)
		if !ok {
			return emptySeq, nil
		}
		n := len(arr.Children)
		return func(yield func(any, json.JNode) bool) {
			for _, child := range children {
				switch c := child.(type) {
				case *json.Int:
					// out-of-range indices are silently skipped
					if i, inBounds := json.NormIndex(c.Value, n); inBounds {
						if !yield(int64(i), arr.Children[i]) {
							return
						}
					}
				case *json.Slice:
					for _, i := range json.SliceIndices(c, n) {
						if !yield(int64(i), arr.Children[i]) {
							return
						}
					}
				}
			}
		}, nil
	}
	return ix
}

// NewBooleanIndexer builds a boolean filter. The filter expression is
// evaluated against the container being indexed: a scalar bool keeps all
// or none of its pairs, an iterable of bools with the same shape masks
// pair by pair, and anything else is a vectorized-arithmetic error.
func NewBooleanIndexer(filter json.JNode) *Indexer {
	ix := &Indexer{}
	ix.fn = func(x json.JNode) (pairSeq, error) {
		mask := filter
		if cur, ok := filter.(*json.CurJSON); ok {
			v, err := cur.Fn(x)
			if err != nil {
				return nil, err
			}
			mask = v
		}
		switch m := mask.(type) {
		case *json.Bool:
			if m.Value {
				return allPairs(x), nil
			}
			return emptySeq, nil
		case *json.Arr:
			arr, ok := x.(*json.Arr)
			if !ok || len(arr.Children) != len(m.Children) {
				return nil, &json.VectorizedArithmeticError{Msg:
					"boolean index mask does not match the shape of the array"}
			}
			keep := make([]bool, len(m.Children))
			for i, c := range m.Children {
				b, ok := c.(*json.Bool)
				if !ok {
					return nil, &json.VectorizedArithmeticError{Msg: fmt.Sprintf(
						"boolean index mask contains a non-boolean element of type %s",
						json.TypeName(c.GetType()))}
				}
				keep[i] = b.Value
			}
			return func(yield func(any, json.JNode) bool) {
				for i, c := range arr.Children {
					if keep[i] {
						if !yield(int64(i), c) {
							return
						}
					}
				}
			}, nil
		case *json.Obj:
			obj, ok := x.(*json.Obj)
			if !ok || obj.Len() != m.Len() {
				return nil, &json.VectorizedArithmeticError{Msg:
					"boolean index mask does not match the key set of the object"}
			}
			keep := map[string]bool{}
			for pair := m.Pairs.Oldest(); pair != nil; pair = pair.Next() {
				if _, present := obj.Get(pair.Key); !present {
					return nil, &json.VectorizedArithmeticError{Msg:
						"boolean index mask does not match the key set of the object"}
				}
				b, ok := pair.Value.(*json.Bool)
				if !ok {
					return nil, &json.VectorizedArithmeticError{Msg: fmt.Sprintf(
						"boolean index mask contains a non-boolean element of type %s",
						json.TypeName(pair.Value.GetType()))}
				}
				keep[pair.Key] = b.Value
			}
			return func(yield func(any, json.JNode) bool) {
				for pair := obj.Pairs.Oldest(); pair != nil; pair = pair.Next() {
					if keep[pair.Key] {
						if !yield(pair.Key, pair.Value) {
							return
						}
					}
				}
			}, nil
		}
		return nil, &json.VectorizedArithmeticError{Msg: fmt.Sprintf(
			"boolean index filter produced %s, expected bool or an iterable of bools",
			json.TypeName(mask.GetType()))}
	}
	return ix
}

// NewProjectionIndexer builds a projection: a fixed ordered sequence of
// (key, child) pairs whose late-bound children resolve against the value
// being projected. Array projection pairs are keyed by their int64
// position.
func NewProjectionIndexer(keys []string, values []json.JNode, isDict bool) *Indexer {
	ix := &Indexer{IsProjection: true, IsDict: isDict}
	ix.fn = func(x json.JNode) (pairSeq, error) {
		resolved := make([]json.JNode, len(values))
		for i, v := range values {
			if cur, ok := v.(*json.CurJSON); ok {
				r, err := cur.Fn(x)
				if err != nil {
					return nil, err
				}
				resolved[i] = r
			} else {
				resolved[i] = v
			}
		}
		return func(yield func(any, json.JNode) bool) {
			for i, v := range resolved {
				var key any = int64(i)
				if isDict {
					key = keys[i]
				}
				if !yield(key, v) {
					return
				}
			}
		}, nil
	}
	return ix
}

// isEmptyContainer reports an empty array or object.
func isEmptyContainer(n json.JNode) bool {
	switch v := n.(type) {
	case *json.Arr:
		return len(v.Children) == 0
	case *json.Obj:
		return v.Len() == 0
	}
	return false
}

// ApplyIndexerList runs an indexer chain left to right. Singleton
// indexers unwrap their single result (or produce an empty container
// when nothing matched); projections materialize and the remaining chain
// continues from the projected value; empty subresults of deeper chain
// segments are elided so filtered-out paths leave no holes.
func ApplyIndexerList(obj json.JNode, indexers []*Indexer) (json.JNode, error) {
	if len(indexers) == 0 {
		return obj, nil
	}
	ix := indexers[0]
	rest := indexers[1:]
	seq, err := ix.fn(obj)
	if err != nil {
		return nil, err
	}
	if ix.IsProjection {
		var projected json.JNode
		if ix.IsDict {
			out := json.NewObj()
			for k, v := range seq {
				out.Set(k.(string), v)
			}
			projected = out
		} else {
			out := json.NewArr()
			for _, v := range seq {
				out.Children = append(out.Children, v)
			}
			projected = out
		}
		return ApplyIndexerList(projected, rest)
	}
	_, fromObj := obj.(*json.Obj)
	emitsObject := fromObj && !ix.IsRecursive
	if ix.HasOneOption {
		for _, v := range seq {
			return ApplyIndexerList(v, rest)
		}
		if emitsObject {
			return json.NewObj(), nil
		}
		return json.NewArr(), nil
	}
	if emitsObject {
		out := json.NewObj()
		for k, v := range seq {
			sub, err := ApplyIndexerList(v, rest)
			if err != nil {
				return nil, err
			}
			if len(rest) > 0 && isEmptyContainer(sub) {
				continue
			}
			out.Set(k.(string), sub)
		}
		return out, nil
	}
	out := json.NewArr()
	for _, v := range seq {
		sub, err := ApplyIndexerList(v, rest)
		if err != nil {
			return nil, err
		}
		if len(rest) > 0 && isEmptyContainer(sub) {
			continue
		}
		out.Children = append(out.Children, sub)
	}
	return out, nil
}
