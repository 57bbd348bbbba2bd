/*
File    : remespath/binop/binop.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package binop defines the binary-operator registry of the RemesPath
// query language. Each operator carries its symbol, numeric precedence,
// associativity, and a scalar callable; containers never reach the
// callables because the evaluator vectorizes over them first.
//
// Precedence tiers (low to high, matching the grammar):
//
//	0: |    1: ^    2: &
//	3: == != < <= > >= =~
//	4: + -
//	5: * / // %
//	6: ** (right-associative) and the synthetic negate-power
package binop

import (
	"fmt"
	"math"

	"github.com/akashmaji946/remespath/json"
)

// Binop is one binary infix operator.
type Binop struct {
	Symbol     string
	Precedence float64
	RightAssoc bool
	// Fn computes the operator on two scalar operands.
	Fn func(left, right json.JNode) (json.JNode, error)
}

// Classification sets. An operator's class drives the static output-type
// table: boolean operators yield bool, bitwise operators reject floats,
// and so on.
var (
	booleanOps = map[string]bool{
		"==": true, "!=": true, "<": true, "<=": true,
		">": true, ">=": true, "=~": true,
	}
	bitwiseOps = map[string]bool{"&": true, "|": true, "^": true}
	floatOps   = map[string]bool{"/": true, "**": true, "-**": true}
)

// Binops is the operator registry, keyed by symbol. It is an immutable
// process-level table initialized once.
var Binops = map[string]*Binop{
	"|":  {Symbol: "|", Precedence: 0, Fn: bitOr},
	"^":  {Symbol: "^", Precedence: 1, Fn: bitXor},
	"&":  {Symbol: "&", Precedence: 2, Fn: bitAnd},
	"==": {Symbol: "==", Precedence: 3, Fn: eq},
	"!=": {Symbol: "!=", Precedence: 3, Fn: ne},
	"<":  {Symbol: "<", Precedence: 3, Fn: lt},
	"<=": {Symbol: "<=", Precedence: 3, Fn: le},
	">":  {Symbol: ">", Precedence: 3, Fn: gt},
	">=": {Symbol: ">=", Precedence: 3, Fn: ge},
	"=~": {Symbol: "=~", Precedence: 3, Fn: strMatch},
	"+":  {Symbol: "+", Precedence: 4, Fn: add},
	"-":  {Symbol: "-", Precedence: 4, Fn: sub},
	"*":  {Symbol: "*", Precedence: 5, Fn: mul},
	"/":  {Symbol: "/", Precedence: 5, Fn: div},
	"//": {Symbol: "//", Precedence: 5, Fn: intDiv},
	"%":  {Symbol: "%", Precedence: 5, Fn: mod},
	"**": {Symbol: "**", Precedence: 6, RightAssoc: true, Fn: pow},
}

// NegPow is the synthetic negate-then-power operator. The parser folds a
// pending unary minus into it when the operand is followed by `**`, so
// that -x ** y means -(x ** y) while the minus still reads as a prefix.
// It never appears in query text and is not in the registry.
var NegPow = &Binop{Symbol: "-**", Precedence: 6, RightAssoc: true, Fn: negPow}

// OutType is the static type-resolution table: given the type tags of the
// two operands, it returns the tag of the result, or an error when the
// combination can never evaluate. Unknown operands defer the decision to
// evaluation time.
func (b *Binop) OutType(lt, rt json.Dtype) (json.Dtype, error) {
	if lt&json.UnknownType != 0 || rt&json.UnknownType != 0 {
		return json.UnknownType, nil
	}
	lIter := lt&json.IterableType != 0
	rIter := rt&json.IterableType != 0
	if lIter || rIter {
		if lIter && rIter && lt != rt {
			return 0, &json.TypeError{Msg: fmt.Sprintf(
				"binop '%s' cannot mix an array with an object", b.Symbol)}
		}
		if lIter {
			return lt, nil
		}
		return rt, nil
	}
	if booleanOps[b.Symbol] {
		return json.BoolType, nil
	}
	if bitwiseOps[b.Symbol] {
		if lt == json.FloatType || rt == json.FloatType {
			return 0, &json.TypeError{Msg: fmt.Sprintf(
				"bitwise binop '%s' does not accept floats", b.Symbol)}
		}
		if lt == json.BoolType && rt == json.BoolType {
			return json.BoolType, nil
		}
		return json.IntType, nil
	}
	if b.Symbol == "//" {
		return json.IntType, nil
	}
	if floatOps[b.Symbol] {
		return json.FloatType, nil
	}
	// Polymorphic arithmetic: + - * %
	if lt == json.BoolType && rt == json.BoolType {
		return 0, &json.TypeError{Msg: fmt.Sprintf(
			"arithmetic binop '%s' does not accept two booleans", b.Symbol)}
	}
	if b.Symbol == "+" && lt == json.StrType && rt == json.StrType {
		return json.StrType, nil
	}
	if lt == json.IntType && rt == json.IntType {
		return json.IntType, nil
	}
	if lt&json.NumType != 0 && rt&json.NumType != 0 {
		return json.FloatType, nil
	}
	if (lt|rt)&json.BoolType != 0 && (lt|rt)&json.NumType != 0 {
		// bool with a number acts as 0/1
		if lt == json.IntType || rt == json.IntType {
			return json.IntType, nil
		}
		return json.FloatType, nil
	}
	return 0, &json.TypeError{Msg: fmt.Sprintf(
		"binop '%s' not defined on types %s and %s",
		b.Symbol, json.TypeName(lt), json.TypeName(rt))}
}

func operandErr(sym string, l, r json.JNode) error {
	return &json.TypeError{Msg: fmt.Sprintf(
		"binop '%s' not defined on operands of type %s and %s",
		sym, json.TypeName(l.GetType()), json.TypeName(r.GetType()))}
}

// arith applies a polymorphic arithmetic operator: int with int stays int,
// any float makes the result float, a lone boolean counts as 0/1, and two
// booleans are rejected.
func arith(sym string, l, r json.JNode,
	intFn func(a, b int64) (int64, error),
	floatFn func(a, b float64) float64) (json.JNode, error) {
	_, lb := l.(*json.Bool)
	_, rb := r.(*json.Bool)
	if lb && rb {
		return nil, &json.TypeError{Msg: fmt.Sprintf(
			"arithmetic binop '%s' does not accept two booleans", sym)}
	}
	li, lok := json.AsInt(l)
	ri, rok := json.AsInt(r)
	if lok && rok {
		v, err := intFn(li, ri)
		if err != nil {
			return nil, err
		}
		return json.NewInt(v), nil
	}
	lf, lok := json.AsFloat(l)
	rf, rok := json.AsFloat(r)
	if !lok || !rok {
		return nil, operandErr(sym, l, r)
	}
	return json.NewFloat(floatFn(lf, rf)), nil
}

func add(l, r json.JNode) (json.JNode, error) {
	if ls, ok := l.(*json.Str); ok {
		rs, ok := r.(*json.Str)
		if !ok {
			return nil, operandErr("+", l, r)
		}
		return json.NewStr(ls.Value + rs.Value), nil
	}
	if _, ok := r.(*json.Str); ok {
		return nil, operandErr("+", l, r)
	}
	return arith("+", l, r,
		func(a, b int64) (int64, error) { return a + b, nil },
		func(a, b float64) float64 { return a + b })
}

func sub(l, r json.JNode) (json.JNode, error) {
	return arith("-", l, r,
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) float64 { return a - b })
}

func mul(l, r json.JNode) (json.JNode, error) {
	return arith("*", l, r,
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) float64 { return a * b })
}

func mod(l, r json.JNode) (json.JNode, error) {
	return arith("%", l, r,
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, &json.TypeError{Msg: "modulo by zero"}
			}
			return a % b, nil
		},
		func(a, b float64) float64 { return math.Mod(a, b) })
}

// div always produces a float, like the reference.
func div(l, r json.JNode) (json.JNode, error) {
	lf, lok := json.AsFloat(l)
	rf, rok := json.AsFloat(r)
	if !lok || !rok {
		return nil, operandErr("/", l, r)
	}
	return json.NewFloat(lf / rf), nil
}

// intDiv floors the float quotient back to an int.
func intDiv(l, r json.JNode) (json.JNode, error) {
	lf, lok := json.AsFloat(l)
	rf, rok := json.AsFloat(r)
	if !lok || !rok {
		return nil, operandErr("//", l, r)
	}
	if rf == 0 {
		return nil, &json.TypeError{Msg: "integer division by zero"}
	}
	return json.NewInt(int64(math.Floor(lf / rf))), nil
}

func pow(l, r json.JNode) (json.JNode, error) {
	lf, lok := json.AsFloat(l)
	rf, rok := json.AsFloat(r)
	if !lok || !rok {
		return nil, operandErr("**", l, r)
	}
	return json.NewFloat(math.Pow(lf, rf)), nil
}

func negPow(l, r json.JNode) (json.JNode, error) {
	v, err := pow(l, r)
	if err != nil {
		return nil, err
	}
	return json.NewFloat(-v.(*json.Float).Value), nil
}

// bitwise applies &, | or ^: logical on two booleans, integral otherwise,
// and never defined on floats.
func bitwise(sym string, l, r json.JNode,
	intFn func(a, b int64) int64,
	boolFn func(a, b bool) bool) (json.JNode, error) {
	lb, lIsBool := l.(*json.Bool)
	rb, rIsBool := r.(*json.Bool)
	if lIsBool && rIsBool {
		return json.NewBool(boolFn(lb.Value, rb.Value)), nil
	}
	if _, ok := l.(*json.Float); ok {
		return nil, &json.TypeError{Msg: fmt.Sprintf(
			"bitwise binop '%s' does not accept floats", sym)}
	}
	if _, ok := r.(*json.Float); ok {
		return nil, &json.TypeError{Msg: fmt.Sprintf(
			"bitwise binop '%s' does not accept floats", sym)}
	}
	li, lok := json.AsInt(l)
	ri, rok := json.AsInt(r)
	if !lok || !rok {
		return nil, operandErr(sym, l, r)
	}
	return json.NewInt(intFn(li, ri)), nil
}

func bitAnd(l, r json.JNode) (json.JNode, error) {
	return bitwise("&", l, r,
		func(a, b int64) int64 { return a & b },
		func(a, b bool) bool { return a && b })
}

func bitOr(l, r json.JNode) (json.JNode, error) {
	return bitwise("|", l, r,
		func(a, b int64) int64 { return a | b },
		func(a, b bool) bool { return a || b })
}

func bitXor(l, r json.JNode) (json.JNode, error) {
	return bitwise("^", l, r,
		func(a, b int64) int64 { return a ^ b },
		func(a, b bool) bool { return a != b })
}

func eq(l, r json.JNode) (json.JNode, error) {
	return json.NewBool(json.Equals(l, r)), nil
}

func ne(l, r json.JNode) (json.JNode, error) {
	return json.NewBool(!json.Equals(l, r)), nil
}

// compare applies an ordering comparison: numbers with numbers (booleans
// count as 0/1) and strings with strings; anything else is a type error.
func compare(sym string, l, r json.JNode,
	numFn func(a, b float64) bool,
	strFn func(a, b string) bool) (json.JNode, error) {
	if ls, ok := l.(*json.Str); ok {
		rs, ok := r.(*json.Str)
		if !ok {
			return nil, operandErr(sym, l, r)
		}
		return json.NewBool(strFn(ls.Value, rs.Value)), nil
	}
	lf, lok := json.AsFloat(l)
	rf, rok := json.AsFloat(r)
	if !lok || !rok {
		return nil, operandErr(sym, l, r)
	}
	return json.NewBool(numFn(lf, rf)), nil
}

func lt(l, r json.JNode) (json.JNode, error) {
	return compare("<", l, r,
		func(a, b float64) bool { return a < b },
		func(a, b string) bool { return a < b })
}

func le(l, r json.JNode) (json.JNode, error) {
	return compare("<=", l, r,
		func(a, b float64) bool { return a <= b },
		func(a, b string) bool { return a <= b })
}

func gt(l, r json.JNode) (json.JNode, error) {
	return compare(">", l, r,
		func(a, b float64) bool { return a > b },
		func(a, b string) bool { return a > b })
}

func ge(l, r json.JNode) (json.JNode, error) {
	return compare(">=", l, r,
		func(a, b float64) bool { return a >= b },
		func(a, b string) bool { return a >= b })
}

// strMatch implements `=~`: does the left string match the right pattern.
// The right side is a compiled regex or a string compiled on the fly.
func strMatch(l, r json.JNode) (json.JNode, error) {
	ls, ok := l.(*json.Str)
	if !ok {
		return nil, operandErr("=~", l, r)
	}
	switch pat := r.(type) {
	case *json.Regex:
		return json.NewBool(pat.Value.MatchString(ls.Value)), nil
	case *json.Str:
		re, err := json.NewRegex(pat.Value)
		if err != nil {
			return nil, &json.TypeError{Msg: fmt.Sprintf(
				"invalid regex %q in '=~': %v", pat.Value, err)}
		}
		return json.NewBool(re.Value.MatchString(ls.Value)), nil
	}
	return nil, operandErr("=~", l, r)
}
