/*
File    : remespath/eval/eval_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"testing"

	"github.com/akashmaji946/remespath/binop"
	"github.com/akashmaji946/remespath/json"
	"github.com/akashmaji946/remespath/std"
	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, text string) json.JNode {
	v, err := json.ParseJSON(text)
	assert.Nil(t, err, text)
	return v
}

// TestBinopTwoJsons_Vectorization tests element-wise application and
// scalar broadcast
func TestBinopTwoJsons_Vectorization(t *testing.T) {
	add := binop.Binops["+"]

	got, err := BinopTwoJsons(add, mustParse(t, `[1, 2]`), mustParse(t, `[10, 20]`))
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParse(t, `[11, 22]`), got))

	got, err = BinopTwoJsons(add, mustParse(t, `[1, 2]`), json.NewInt(10))
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParse(t, `[11, 12]`), got))

	got, err = BinopTwoJsons(add, json.NewInt(10), mustParse(t, `[1, 2]`))
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParse(t, `[11, 12]`), got))

	got, err = BinopTwoJsons(add, mustParse(t, `{"a": 1, "b": 2}`), mustParse(t, `{"b": 20, "a": 10}`))
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParse(t, `{"a": 11, "b": 22}`), got))

	got, err = BinopTwoJsons(add, mustParse(t, `{"a": 1}`), json.NewInt(5))
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParse(t, `{"a": 6}`), got))

	// nested containers distribute recursively
	got, err = BinopTwoJsons(add, mustParse(t, `[[1], [2]]`), mustParse(t, `[[10], [20]]`))
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParse(t, `[[11], [22]]`), got))
}

// TestBinopTwoJsons_ShapeMismatch tests the vectorized-arithmetic errors
func TestBinopTwoJsons_ShapeMismatch(t *testing.T) {
	add := binop.Binops["+"]
	cases := [][2]json.JNode{
		{mustParse(t, `[1, 2]`), mustParse(t, `[1]`)},
		{mustParse(t, `{"a": 1}`), mustParse(t, `{"b": 1}`)},
		{mustParse(t, `{"a": 1, "b": 2}`), mustParse(t, `{"a": 1}`)},
		{mustParse(t, `[1]`), mustParse(t, `{"a": 1}`)},
	}
	for _, c := range cases {
		_, err := BinopTwoJsons(add, c[0], c[1])
		assert.NotNil(t, err)
		_, ok := err.(*json.VectorizedArithmeticError)
		assert.True(t, ok, "expected a vectorized-arithmetic error, got %v", err)
	}
}

// TestResolveBinop_LateBinding tests the four late-binding cases
func TestResolveBinop_LateBinding(t *testing.T) {
	add := binop.Binops["+"]
	late := json.Identity()

	// const op const computes immediately
	got, err := ResolveBinop(add, json.NewInt(1), json.NewInt(2))
	assert.Nil(t, err)
	assert.Equal(t, json.IntType, got.GetType())

	// late operands defer until an input arrives
	for _, pair := range [][2]json.JNode{
		{late, json.NewInt(2)},
		{json.NewInt(2), late},
		{late, late},
	} {
		compiled, err := ResolveBinop(add, pair[0], pair[1])
		assert.Nil(t, err)
		cur, ok := compiled.(*json.CurJSON)
		assert.True(t, ok)
		result, err := cur.Fn(json.NewInt(10))
		assert.Nil(t, err)
		assert.True(t, result.GetType()&json.IntType != 0)
	}

	// statically impossible combinations fail at resolve time
	_, err = ResolveBinop(add, json.NewBool(true), json.NewBool(false))
	assert.NotNil(t, err)
}

// TestApplyArgFunction_Vectorized tests element-wise dispatch over both
// container shapes, including the empty ones
func TestApplyArgFunction_Vectorized(t *testing.T) {
	sLen := std.Functions["s_len"]

	got, err := ApplyArgFunction(sLen, []json.JNode{mustParse(t, `["a", "bb"]`)})
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParse(t, `[1, 2]`), got))

	got, err = ApplyArgFunction(sLen, []json.JNode{mustParse(t, `{"x": "a", "y": "bb"}`)})
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParse(t, `{"x": 1, "y": 2}`), got))

	// empty iterables map to empty iterables of the same shape
	got, err = ApplyArgFunction(sLen, []json.JNode{json.NewArr()})
	assert.Nil(t, err)
	assert.True(t, json.Equals(json.NewArr(), got))
	got, err = ApplyArgFunction(sLen, []json.JNode{json.NewObj()})
	assert.Nil(t, err)
	assert.True(t, json.Equals(json.NewObj(), got))

	// scalar first argument calls directly
	got, err = ApplyArgFunction(sLen, []json.JNode{json.NewStr("abc")})
	assert.Nil(t, err)
	assert.True(t, json.Equals(json.NewInt(3), got))
}

// TestApplyArgFunction_LateBinding tests deferred calls and the runtime
// re-check of late-resolved argument types
func TestApplyArgFunction_LateBinding(t *testing.T) {
	sLen := std.Functions["s_len"]
	compiled, err := ApplyArgFunction(sLen, []json.JNode{json.Identity()})
	assert.Nil(t, err)
	cur, ok := compiled.(*json.CurJSON)
	assert.True(t, ok)

	got, err := cur.Fn(mustParse(t, `["ab", "c"]`))
	assert.Nil(t, err)
	assert.True(t, json.Equals(mustParse(t, `[2, 1]`), got))

	// an int input is incompatible with s_len's signature
	_, err = cur.Fn(json.NewInt(5))
	assert.NotNil(t, err)
}

// TestApply tests constant and late-bound compiled queries
func TestApply(t *testing.T) {
	got, err := Apply(json.NewInt(7), json.NewStr("ignored"))
	assert.Nil(t, err)
	assert.True(t, json.Equals(json.NewInt(7), got))

	got, err = Apply(json.Identity(), json.NewStr("echo"))
	assert.Nil(t, err)
	assert.True(t, json.Equals(json.NewStr("echo"), got))
}
