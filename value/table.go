package value

import (
	"errors"
	"iter"
	"math"
)

// ErrInvalidKey is returned when a Table key is Null, NaN or not a scalar.
var ErrInvalidKey = errors.New("invalid table key")

// key is the comparable form of a scalar Value.
type key struct {
	kind Kind
	b    bool
	n    float64
	s    string
}

func makeKey(v Value) (key, error) {
	switch v.kind {
	case KindBoolean:
		return key{kind: KindBoolean, b: v.b}, nil

	case KindNumber:
		if math.IsNaN(v.n) {
			return key{}, ErrInvalidKey
		}

		return key{kind: KindNumber, n: v.n}, nil

	case KindString:
		return key{kind: KindString, s: v.s}, nil

	case KindNull, KindTable, KindCallable:
		return key{}, ErrInvalidKey

	default:
		return key{}, ErrInvalidKey
	}
}

// Table is an ordered mapping from scalar keys to Values. Entries iterate in
// insertion order; overwriting a key keeps its position. A key may hold Null
// and is still contained.
//
// A Table is not safe for concurrent mutation. Rendering only reads it.
type Table struct {
	keys  []Value
	vals  []Value
	index map[key]int

	// seq is the largest n such that keys 1..n are all present.
	seq int
}

// NewTable returns an empty Table with room for n entries.
func NewTable(n int) *Table {
	return &Table{
		keys:  make([]Value, 0, n),
		vals:  make([]Value, 0, n),
		index: make(map[key]int, n),
	}
}

// List returns an array-like Table holding vals at keys 1..len(vals).
func List(vals ...Value) *Table {
	t := NewTable(len(vals))
	for _, v := range vals {
		t.Append(v)
	}

	return t
}

// Set stores val at k.
func (t *Table) Set(k, val Value) error {
	mk, err := makeKey(k)
	if err != nil {
		return err
	}

	if t.index == nil {
		t.index = make(map[key]int)
	}

	if i, ok := t.index[mk]; ok {
		t.vals[i] = val

		return nil
	}

	t.index[mk] = len(t.keys)
	t.keys = append(t.keys, Value{kind: mk.kind, b: mk.b, n: mk.n, s: mk.s})
	t.vals = append(t.vals, val)

	if mk.kind == KindNumber && mk.n == float64(t.seq+1) {
		for t.contains(float64(t.seq + 1)) {
			t.seq++
		}
	}

	return nil
}

// SetField stores val at the String key name.
func (t *Table) SetField(name string, val Value) *Table {
	_ = t.Set(String(name), val)

	return t
}

// Append stores val at the first missing key of the sequence 1, 2, ….
func (t *Table) Append(val Value) *Table {
	_ = t.Set(Number(float64(t.seq+1)), val)

	return t
}

func (t *Table) contains(n float64) bool {
	_, ok := t.index[key{kind: KindNumber, n: n}]

	return ok
}

// Get returns the Value stored at k and whether k is present.
func (t *Table) Get(k Value) (Value, bool) {
	if t == nil {
		return Null, false
	}

	mk, err := makeKey(k)
	if err != nil {
		return Null, false
	}

	i, ok := t.index[mk]
	if !ok {
		return Null, false
	}

	return t.vals[i], true
}

// Field returns the Value stored at the String key name and whether it is
// present.
func (t *Table) Field(name string) (Value, bool) {
	if t == nil {
		return Null, false
	}

	i, ok := t.index[key{kind: KindString, s: name}]
	if !ok {
		return Null, false
	}

	return t.vals[i], true
}

// Index returns the element at array position n (1-based).
func (t *Table) Index(n int) (Value, bool) {
	if t == nil {
		return Null, false
	}

	i, ok := t.index[key{kind: KindNumber, n: float64(n)}]
	if !ok {
		return Null, false
	}

	return t.vals[i], true
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.keys)
}

// ArrayLen returns N when the keys of t are exactly 1..N, and 0 otherwise.
func (t *Table) ArrayLen() int {
	if t == nil || t.seq != len(t.keys) {
		return 0
	}

	return t.seq
}

// Entry returns the i-th entry (0-based) in insertion order.
func (t *Table) Entry(i int) (k, v Value) {
	return t.keys[i], t.vals[i]
}

// All iterates over the entries of t in insertion order.
func (t *Table) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		for i := range t.Len() {
			if !yield(t.keys[i], t.vals[i]) {
				return
			}
		}
	}
}

// Equal reports whether t and o hold equal entries in the same order.
func (t *Table) Equal(o *Table) bool {
	if t.Len() != o.Len() {
		return false
	}

	for i := range t.Len() {
		if !t.keys[i].Equal(o.keys[i]) || !t.vals[i].Equal(o.vals[i]) {
			return false
		}
	}

	return true
}
