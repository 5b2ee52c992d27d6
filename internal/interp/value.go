package interp

import (
	"strconv"
	"strings"
)

// ValueKind tags the dynamic type of a Lox runtime value.
type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindClass
	KindInstance
)

// Value is any Lox runtime value: Nil, Bool, Number, String, Function,
// Class or Instance (§3 of the specification).
type Value interface {
	Kind() ValueKind
	String() string
}

// Nil is Lox's single nil value.
type Nil struct{}

func (Nil) Kind() ValueKind { return KindNil }
func (Nil) String() string  { return "nil" }

// Bool wraps a Lox boolean.
type Bool bool

func (b Bool) Kind() ValueKind { return KindBool }
func (b Bool) String() string  { return strconv.FormatBool(bool(b)) }

// Number wraps an IEEE-754 double. Equality and comparisons follow plain
// float64 semantics, so NaN never compares equal to itself (§3, §9 open
// question).
type Number float64

func (n Number) Kind() ValueKind { return KindNumber }

// String renders an integral double without a trailing ".0" and otherwise
// uses the shortest round-trippable decimal form.
func (n Number) String() string {
	f := float64(n)
	if f == float64(int64(f)) && !strings.ContainsAny(strconv.FormatFloat(f, 'g', -1, 64), "eE") {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String wraps a Lox string value (distinct from the String() method that
// every Value implements for display purposes).
type String string

func (s String) Kind() ValueKind { return KindString }
func (s String) String() string  { return string(s) }

// IsTruthy implements §4.4's truthiness rule: nil and false are falsy,
// everything else (including 0, 0.0 and "") is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(val)
	default:
		return true
	}
}

// Equal implements the reflexive-on-Nil, structural-on-Bool/Number/String,
// reference-identity-otherwise equality of §3. It never panics.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify renders a value the way `print` does (§4.4).
func Stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
