/*
File    : remespath/json/json_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package json

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseJSON_PreservesOrderAndNumberKinds tests that object keys keep
// document order and that ints and floats stay distinct kinds
func TestParseJSON_PreservesOrderAndNumberKinds(t *testing.T) {
	doc, err := ParseJSON(`{"b": 1, "a": 2.0, "c": [3, 4.5, -6], "d": null}`)
	assert.Nil(t, err)

	obj, ok := doc.(*Obj)
	assert.True(t, ok)
	assert.Equal(t, []string{"b", "a", "c", "d"}, obj.Keys())

	b, _ := obj.Get("b")
	assert.Equal(t, IntType, b.GetType())
	a, _ := obj.Get("a")
	assert.Equal(t, FloatType, a.GetType())

	c, _ := obj.Get("c")
	arr := c.(*Arr)
	assert.Equal(t, IntType, arr.Children[0].GetType())
	assert.Equal(t, FloatType, arr.Children[1].GetType())
	assert.Equal(t, int64(-6), arr.Children[2].(*Int).Value)

	d, _ := obj.Get("d")
	assert.Equal(t, NullType, d.GetType())
}

// TestParseJSON_Scalars tests top-level scalar documents
func TestParseJSON_Scalars(t *testing.T) {
	tests := []struct {
		Input    string
		Expected JNode
	}{
		{`3`, NewInt(3)},
		{`3.25`, NewFloat(3.25)},
		{`1e2`, NewFloat(100)},
		{"\"a\\u0060g\"", NewStr("a`g")},
		{`true`, NewBool(true)},
		{`null`, NewNull()},
		{`[]`, NewArr()},
		{`{}`, NewObj()},
	}
	for _, test := range tests {
		got, err := ParseJSON(test.Input)
		assert.Nil(t, err, test.Input)
		assert.True(t, Equals(test.Expected, got), test.Input)
	}
}

// TestParseJSON_Errors tests malformed documents
func TestParseJSON_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "{", `{"a":}`, "[1,", "nul", `{"a":1} x`} {
		_, err := ParseJSON(input)
		assert.NotNil(t, err, input)
	}
}

// TestFloat_ToString tests that integral floats keep a decimal point
func TestFloat_ToString(t *testing.T) {
	assert.Equal(t, "3.0", NewFloat(3).ToString())
	assert.Equal(t, "-12.0", NewFloat(-12).ToString())
	assert.Equal(t, "3.25", NewFloat(3.25).ToString())
	assert.Equal(t, "Infinity", NewFloat(math.Inf(1)).ToString())
}

// TestObj_SetOverwritesInPlace tests key uniqueness with stable position
func TestObj_SetOverwritesInPlace(t *testing.T) {
	obj := NewObj()
	obj.Set("a", NewInt(1))
	obj.Set("b", NewInt(2))
	obj.Set("a", NewInt(3))
	assert.Equal(t, 2, obj.Len())
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	v, _ := obj.Get("a")
	assert.Equal(t, int64(3), v.(*Int).Value)
}

// TestNewSlice_RejectsZeroStep tests the slice construction invariant
func TestNewSlice_RejectsZeroStep(t *testing.T) {
	step := int64(0)
	_, err := NewSlice(nil, nil, &step)
	assert.NotNil(t, err)

	step = 2
	sl, err := NewSlice(nil, nil, &step)
	assert.Nil(t, err)
	assert.Equal(t, SliceType, sl.GetType())
}

// TestSliceIndices tests the slice expansion semantics on a length-5
// container: clipping, negative bounds, negative steps
func TestSliceIndices(t *testing.T) {
	mk := func(start, stop, step *int64) *Slice {
		sl, err := NewSlice(start, stop, step)
		assert.Nil(t, err)
		return sl
	}
	p := func(v int64) *int64 { return &v }

	tests := []struct {
		Name     string
		Slice    *Slice
		Expected []int
	}{
		{"full", mk(nil, nil, nil), []int{0, 1, 2, 3, 4}},
		{"stop3", mk(nil, p(3), nil), []int{0, 1, 2}},
		{"start2", mk(p(2), nil, nil), []int{2, 3, 4}},
		{"step2", mk(nil, p(3), p(2)), []int{0, 2}},
		{"neg_start", mk(p(-2), nil, nil), []int{3, 4}},
		{"neg_stop", mk(nil, p(-1), nil), []int{0, 1, 2, 3}},
		{"clip_high", mk(nil, p(100), nil), []int{0, 1, 2, 3, 4}},
		{"clip_low", mk(p(-100), nil, nil), []int{0, 1, 2, 3, 4}},
		{"empty_when_stop_le_start", mk(p(3), p(3), nil), []int{}},
		{"reversed_empty", mk(p(4), p(1), nil), []int{}},
		{"neg_step", mk(nil, nil, p(-1)), []int{4, 3, 2, 1, 0}},
		{"neg_step_bounds", mk(p(4), p(1), p(-1)), []int{4, 3, 2}},
		{"neg_step_2", mk(nil, nil, p(-2)), []int{4, 2, 0}},
		{"neg_step_clip", mk(p(100), nil, p(-2)), []int{4, 2, 0}},
	}
	for _, test := range tests {
		assert.Equal(t, test.Expected, SliceIndices(test.Slice, 5), test.Name)
	}
}

// TestEquals tests structural equality with numeric coercion
func TestEquals(t *testing.T) {
	assert.True(t, Equals(NewInt(3), NewFloat(3.0)))
	assert.False(t, Equals(NewInt(1), NewBool(true)))
	assert.False(t, Equals(NewInt(3), NewStr("3")))
	assert.True(t, Equals(NewNull(), NewNull()))

	a, err := ParseJSON(`{"x": [1, 2.0], "y": "z"}`)
	assert.Nil(t, err)
	b, err := ParseJSON(`{"x": [1.0, 2], "y": "z"}`)
	assert.Nil(t, err)
	assert.True(t, Equals(a, b))

	c, err := ParseJSON(`{"x": [1, 2, 3], "y": "z"}`)
	assert.Nil(t, err)
	assert.False(t, Equals(a, c))
}

// TestDeepCopy tests that copies do not share mutable structure
func TestDeepCopy(t *testing.T) {
	orig, err := ParseJSON(`{"a": [1, 2]}`)
	assert.Nil(t, err)
	clone := DeepCopy(orig)
	assert.True(t, Equals(orig, clone))

	arr, _ := clone.(*Obj).Get("a")
	arr.(*Arr).Children = append(arr.(*Arr).Children, NewInt(3))
	assert.False(t, Equals(orig, clone))
}

// TestTypeName tests the flag-set names
func TestTypeName(t *testing.T) {
	assert.Equal(t, "num", TypeName(NumType))
	assert.Equal(t, "iterable", TypeName(IterableType))
	assert.Equal(t, "str-or-regex", TypeName(StrOrRegexType))
	assert.Equal(t, "int-or-slice", TypeName(IntOrSliceType))
	assert.Equal(t, "int", TypeName(IntType))
	assert.Equal(t, "bool|null", TypeName(BoolType|NullType))
}
