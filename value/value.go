package value

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindTable
	KindCallable
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTable:
		return "table"
	case KindCallable:
		return "callable"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Callable is an opaque compiled template. Only its captured source text is
// ever read.
type Callable interface {
	Source() string
}

// Value is an immutable tagged union. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	t    *Table
	c    Callable
}

// Null is the Null value.
var Null Value

// Bool returns a Boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Number returns a Number value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// TableValue returns a Table value. A nil t yields Null.
func TableValue(t *Table) Value {
	if t == nil {
		return Null
	}

	return Value{kind: KindTable, t: t}
}

// CallableValue returns a Callable value. A nil c yields Null.
func CallableValue(c Callable) Value {
	if c == nil {
		return Null
	}

	return Value{kind: KindCallable, c: c}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the payload of a Boolean value, false otherwise.
func (v Value) Bool() bool { return v.kind == KindBoolean && v.b }

// Number returns the payload of a Number value, 0 otherwise.
func (v Value) Number() float64 {
	if v.kind != KindNumber {
		return 0
	}

	return v.n
}

// Str returns the payload of a String value, "" otherwise.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}

	return v.s
}

// Table returns the payload of a Table value, nil otherwise.
func (v Value) Table() *Table {
	if v.kind != KindTable {
		return nil
	}

	return v.t
}

// Callable returns the payload of a Callable value, nil otherwise.
func (v Value) Callable() Callable {
	if v.kind != KindCallable {
		return nil
	}

	return v.c
}

// Truthy reports whether a section opened on v renders its body.
//
// Null, false, 0, "", empty Tables and Callables are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString:
		return v.s != ""
	case KindTable:
		return v.t.Len() > 0
	case KindCallable:
		return false
	default:
		return false
	}
}

// Format returns the text a variable tag emits for v. Tables, Callables and
// Null produce no text.
func (v Value) Format() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return FormatNumber(v.n)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindNull, KindTable, KindCallable:
		return ""
	default:
		return ""
	}
}

// Compare orders v against the literal text of a comparison tag and returns
// -1, 0 or +1. Numbers compare numerically against the literal's numeric
// prefix. Booleans and Null compare their canonical text. Tables and
// Callables never match.
func (v Value) Compare(literal string) int {
	switch v.kind {
	case KindNumber:
		d := v.n - ParseNumberPrefix(literal)

		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		default:
			return 0
		}

	case KindString:
		return compareText(v.s, literal)

	case KindBoolean:
		return compareText(strconv.FormatBool(v.b), literal)

	case KindNull:
		return compareText("null", literal)

	case KindTable, KindCallable:
		return 1

	default:
		return 1
	}
}

// Equal reports whether v and o hold the same kind and payload. Tables are
// compared entry by entry in order; Callables by identity.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBoolean:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n || (math.IsNaN(v.n) && math.IsNaN(o.n))
	case KindString:
		return v.s == o.s
	case KindTable:
		return v.t.Equal(o.t)
	case KindCallable:
		return v.c == o.c
	default:
		return false
	}
}

// String returns a debugging representation of v.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.s)
	case KindNull:
		return "null"
	case KindTable:
		return "table[" + strconv.Itoa(v.t.Len()) + "]"
	case KindCallable:
		return "callable"
	default:
		return v.Format()
	}
}
