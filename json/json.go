/*
File    : remespath/json/json.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package json defines the tagged value union the RemesPath engine operates
// on. It covers the seven JSON kinds (null, bool, int, float, string, array,
// object) plus three engine-only variants: a compiled regex, a compiled
// slice, and a late-bound reference to the current input ("current-JSON").
// All variants implement the JNode interface, which allows for type
// checking, compact JSON rendering, and structural comparison.
//
// Objects preserve insertion order and enforce key uniqueness; both
// properties come from the ordered map backing them. Arrays preserve index
// order. Every constructor sets the type tag to match the stored payload,
// so tags are never stale.
package json

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Dtype is the logical type tag of a JNode. Tags are bit flags so that
// supersets like Num or Iterable can be expressed as unions and tested
// with a single mask intersection.
type Dtype uint16

const (
	// BoolType represents boolean values
	BoolType Dtype = 1 << iota
	// IntType represents 64-bit signed integers
	IntType
	// FloatType represents 64-bit floats
	FloatType
	// StrType represents strings
	StrType
	// NullType represents JSON null
	NullType
	// RegexType represents a compiled regular expression
	RegexType
	// SliceType represents a compiled slice (start:stop:step)
	SliceType
	// ArrType represents ordered arrays
	ArrType
	// ObjType represents insertion-ordered objects
	ObjType
	// UnknownType marks a late-bound value whose concrete type cannot be
	// determined until an input is supplied
	UnknownType
)

const (
	// NumType matches any numeric value
	NumType = IntType | FloatType
	// IntOrSliceType matches an integer index or a compiled slice
	IntOrSliceType = IntType | SliceType
	// StrOrRegexType matches a string or a compiled regex
	StrOrRegexType = StrType | RegexType
	// IterableType matches any container
	IterableType = ArrType | ObjType
	// ScalarType matches any non-container value
	ScalarType = BoolType | IntType | FloatType | StrType | NullType | RegexType
	// AnythingType matches every queryable value, including late-bound ones
	AnythingType = ScalarType | IterableType | UnknownType
)

// TypeName returns a human-readable name for a type tag or tag set.
// Composite sets get their predicate names; anything else is spelled out
// flag by flag.
func TypeName(t Dtype) string {
	switch t {
	case NumType:
		return "num"
	case IterableType:
		return "iterable"
	case StrOrRegexType:
		return "str-or-regex"
	case IntOrSliceType:
		return "int-or-slice"
	case AnythingType:
		return "anything"
	}
	names := []string{}
	single := []struct {
		tag  Dtype
		name string
	}{
		{BoolType, "bool"}, {IntType, "int"}, {FloatType, "float"},
		{StrType, "str"}, {NullType, "null"}, {RegexType, "regex"},
		{SliceType, "slice"}, {ArrType, "array"}, {ObjType, "object"},
		{UnknownType, "unknown"},
	}
	for _, s := range single {
		if t&s.tag != 0 {
			names = append(names, s.name)
		}
	}
	if len(names) == 0 {
		return "empty"
	}
	return strings.Join(names, "|")
}

// JNode is the interface every value variant implements.
type JNode interface {
	// GetType returns the type tag of the value. For a late-bound
	// reference this is the statically inferred output tag.
	GetType() Dtype
	// ToString renders the value as compact JSON text. Engine-only
	// variants render a debugging form instead.
	ToString() string
}

// Null represents JSON null.
type Null struct{}

// NewNull creates a null value.
func NewNull() *Null { return &Null{} }

// GetType returns the type tag of the null value.
func (n *Null) GetType() Dtype { return NullType }

// ToString renders null as JSON text.
func (n *Null) ToString() string { return "null" }

// Bool represents a boolean value.
type Bool struct {
	Value bool
}

// NewBool creates a boolean value.
func NewBool(v bool) *Bool { return &Bool{Value: v} }

// GetType returns the type tag of the boolean.
func (b *Bool) GetType() Dtype { return BoolType }

// ToString renders the boolean as JSON text.
func (b *Bool) ToString() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Int represents a 64-bit signed integer.
type Int struct {
	Value int64
}

// NewInt creates an integer value.
func NewInt(v int64) *Int { return &Int{Value: v} }

// GetType returns the type tag of the integer.
func (i *Int) GetType() Dtype { return IntType }

// ToString renders the integer as JSON text.
func (i *Int) ToString() string { return strconv.FormatInt(i.Value, 10) }

// Float represents a 64-bit float.
type Float struct {
	Value float64
}

// NewFloat creates a float value.
func NewFloat(v float64) *Float { return &Float{Value: v} }

// GetType returns the type tag of the float.
func (f *Float) GetType() Dtype { return FloatType }

// ToString renders the float as JSON text. Integral floats keep a trailing
// ".0" so that 3.0 stays distinguishable from the integer 3; the
// non-standard values NaN and +/-Infinity render by name.
func (f *Float) ToString() string {
	if math.IsNaN(f.Value) {
		return "NaN"
	}
	if math.IsInf(f.Value, 1) {
		return "Infinity"
	}
	if math.IsInf(f.Value, -1) {
		return "-Infinity"
	}
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Str represents a string value.
type Str struct {
	Value string
}

// NewStr creates a string value.
func NewStr(v string) *Str { return &Str{Value: v} }

// GetType returns the type tag of the string.
func (s *Str) GetType() Dtype { return StrType }

// ToString renders the string as quoted, escaped JSON text.
func (s *Str) ToString() string { return QuoteString(s.Value) }

// QuoteString renders a raw string as a JSON string literal.
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				for len(hex) < 4 {
					hex = "0" + hex
				}
				b.WriteString(hex)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Arr represents an ordered array of values.
type Arr struct {
	Children []JNode
}

// NewArr creates an array from the given children.
func NewArr(children ...JNode) *Arr {
	if children == nil {
		children = []JNode{}
	}
	return &Arr{Children: children}
}

// GetType returns the type tag of the array.
func (a *Arr) GetType() Dtype { return ArrType }

// Len returns the number of elements.
func (a *Arr) Len() int { return len(a.Children) }

// ToString renders the array as compact JSON text.
func (a *Arr) ToString() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range a.Children {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.ToString())
	}
	b.WriteByte(']')
	return b.String()
}

// Obj represents an insertion-ordered mapping from string keys to values.
// Key uniqueness is enforced by the backing ordered map: setting an
// existing key overwrites its value but keeps its original position.
type Obj struct {
	Pairs *orderedmap.OrderedMap[string, JNode]
}

// NewObj creates an empty object.
func NewObj() *Obj {
	return &Obj{Pairs: orderedmap.New[string, JNode]()}
}

// GetType returns the type tag of the object.
func (o *Obj) GetType() Dtype { return ObjType }

// Len returns the number of keys.
func (o *Obj) Len() int { return o.Pairs.Len() }

// Set stores a key-value pair, overwriting any existing value for the key.
func (o *Obj) Set(key string, value JNode) { o.Pairs.Set(key, value) }

// Get looks up a key.
func (o *Obj) Get(key string) (JNode, bool) { return o.Pairs.Get(key) }

// Keys returns the keys in insertion order.
func (o *Obj) Keys() []string {
	keys := make([]string, 0, o.Pairs.Len())
	for pair := o.Pairs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// ToString renders the object as compact JSON text in insertion order.
func (o *Obj) ToString() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for pair := o.Pairs.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(QuoteString(pair.Key))
		b.WriteString(": ")
		b.WriteString(pair.Value.ToString())
	}
	b.WriteByte('}')
	return b.String()
}

// Regex represents a compiled regular expression. It is a queryable scalar
// only in the positions that admit str-or-regex (key indexers and certain
// function arguments).
type Regex struct {
	Value  *regexp.Regexp
	Source string
}

// NewRegex compiles a pattern into a regex value.
func NewRegex(pattern string) (*Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{Value: re, Source: pattern}, nil
}

// GetType returns the type tag of the regex.
func (r *Regex) GetType() Dtype { return RegexType }

// ToString renders the regex in its query-literal form.
func (r *Regex) ToString() string { return "g`" + r.Source + "`" }

// Slice represents a compiled slice with up to three optional integers.
// It is an indexer construct, not a queryable value.
type Slice struct {
	Start *int64
	Stop  *int64
	Step  *int64
}

// NewSlice creates a compiled slice. A zero step is rejected here so that
// no slice with an impossible traversal can exist.
func NewSlice(start, stop, step *int64) (*Slice, error) {
	if step != nil && *step == 0 {
		return nil, &TypeError{Msg: "slice step cannot be 0"}
	}
	return &Slice{Start: start, Stop: stop, Step: step}, nil
}

// GetType returns the type tag of the slice.
func (s *Slice) GetType() Dtype { return SliceType }

// ToString renders the slice in its query form.
func (s *Slice) ToString() string {
	part := func(p *int64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatInt(*p, 10)
	}
	out := part(s.Start) + ":" + part(s.Stop)
	if s.Step != nil {
		out += ":" + part(s.Step)
	}
	return out
}

// CurJSON is a late-bound reference to the current input: a function from
// the input to a value, together with the output type tag the analyzer
// inferred for it. The declared tag must be a superset of every concrete
// type the function may produce.
type CurJSON struct {
	Fn      func(input JNode) (JNode, error)
	OutType Dtype
}

// NewCurJSON creates a late-bound reference.
func NewCurJSON(fn func(input JNode) (JNode, error), outType Dtype) *CurJSON {
	return &CurJSON{Fn: fn, OutType: outType}
}

// Identity returns the late-bound reference for `@` itself: the function
// that hands the input back unchanged, with an unknown output tag.
func Identity() *CurJSON {
	return &CurJSON{
		Fn:      func(input JNode) (JNode, error) { return input, nil },
		OutType: UnknownType,
	}
}

// GetType returns the statically inferred output tag.
func (c *CurJSON) GetType() Dtype { return c.OutType }

// ToString renders the reference in its query form.
func (c *CurJSON) ToString() string { return "@" }

// AsFloat extracts a float from any numeric value (bools count as 0/1).
// The second return reports whether the value was numeric at all.
func AsFloat(n JNode) (float64, bool) {
	switch v := n.(type) {
	case *Int:
		return float64(v.Value), true
	case *Float:
		return v.Value, true
	case *Bool:
		if v.Value {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// AsInt extracts an int64 from an integer or boolean value.
func AsInt(n JNode) (int64, bool) {
	switch v := n.(type) {
	case *Int:
		return v.Value, true
	case *Bool:
		if v.Value {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Equals reports structural equality of two values. Numbers compare by
// numeric value across int and float; booleans only equal booleans;
// containers compare element-wise (objects also by key sets, order
// ignored); values of different kinds are unequal rather than an error.
func Equals(a, b JNode) bool {
	switch av := a.(type) {
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Bool:
		bv, ok := b.(*Bool)
		return ok && av.Value == bv.Value
	case *Int, *Float:
		if _, isBool := b.(*Bool); isBool {
			return false
		}
		af, _ := AsFloat(a)
		bf, ok := AsFloat(b)
		return ok && af == bf
	case *Str:
		bv, ok := b.(*Str)
		return ok && av.Value == bv.Value
	case *Arr:
		bv, ok := b.(*Arr)
		if !ok || len(av.Children) != len(bv.Children) {
			return false
		}
		for i, c := range av.Children {
			if !Equals(c, bv.Children[i]) {
				return false
			}
		}
		return true
	case *Obj:
		bv, ok := b.(*Obj)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for pair := av.Pairs.Oldest(); pair != nil; pair = pair.Next() {
			other, present := bv.Get(pair.Key)
			if !present || !Equals(pair.Value, other) {
				return false
			}
		}
		return true
	case *Regex:
		bv, ok := b.(*Regex)
		return ok && av.Source == bv.Source
	}
	return false
}

// DeepCopy clones a value so that mutating builtins can run repeatedly on
// the same logical input. Engine-only variants are returned as-is; they
// are immutable.
func DeepCopy(n JNode) JNode {
	switch v := n.(type) {
	case *Null:
		return NewNull()
	case *Bool:
		return NewBool(v.Value)
	case *Int:
		return NewInt(v.Value)
	case *Float:
		return NewFloat(v.Value)
	case *Str:
		return NewStr(v.Value)
	case *Arr:
		children := make([]JNode, len(v.Children))
		for i, c := range v.Children {
			children[i] = DeepCopy(c)
		}
		return NewArr(children...)
	case *Obj:
		out := NewObj()
		for pair := v.Pairs.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, DeepCopy(pair.Value))
		}
		return out
	}
	return n
}
