package mustache

import (
	"github.com/ardnew/stache/engine"
	"github.com/ardnew/stache/value"
)

type iterKind uint8

const (
	iterNone iterKind = iota
	iterArray
	iterKeyValue
)

// frame is one entered section.
type frame struct {
	val  value.Value
	cont *value.Table
	kind iterKind

	// cursor is the 1-based element of an array iteration, or the 0-based
	// entry of a key-value iteration.
	cursor int
	n      int
	key    value.Value
}

// scope drives the engine over a Value tree.
type scope struct {
	root  value.Value
	stack frames[frame]
	sel   value.Value
}

var _ engine.Itf = (*scope)(nil)

func newScope(root value.Value) *scope {
	return &scope{root: root}
}

func lookupOf(v value.Value) engine.Lookup {
	if v.IsNull() {
		return engine.FoundNull
	}

	return engine.Found
}

func (s *scope) Start() error {
	s.stack.reset(frame{val: s.root})
	s.sel = s.root

	return nil
}

func (s *scope) Stop(error) {}

// Sel selects the value of name in the innermost scope whose Table contains
// it, even when that value is null or falsy.
func (s *scope) Sel(name string) engine.Lookup {
	for f := range s.stack.inward() {
		if v, ok := f.val.Table().Field(name); ok {
			s.sel = v

			return lookupOf(v)
		}
	}

	s.sel = value.Null

	return engine.NotFound
}

func (s *scope) SelCurrent() { s.sel = s.stack.top().val }

func (s *scope) Subsel(name string) engine.Lookup {
	v, ok := s.sel.Table().Field(name)
	if !ok {
		return engine.NotFound
	}

	s.sel = v

	return lookupOf(v)
}

func (s *scope) Enter(keyValue bool) (bool, error) {
	t := s.sel.Table()

	if keyValue {
		if t.Len() == 0 {
			return false, nil
		}

		k, v := t.Entry(0)

		return s.enter(frame{val: v, cont: t, kind: iterKeyValue, key: k})
	}

	switch s.sel.Kind() {
	case value.KindTable:
		if n := t.ArrayLen(); n > 0 {
			first, _ := t.Index(1)

			return s.enter(frame{val: first, cont: t, kind: iterArray, cursor: 1, n: n})
		}

		if t.Len() == 0 {
			return false, nil
		}

		return s.enter(frame{val: s.sel})

	case value.KindNull, value.KindBoolean, value.KindNumber, value.KindString,
		value.KindCallable:
		if !s.sel.Truthy() {
			return false, nil
		}

		return s.enter(frame{val: s.sel})

	default:
		return false, nil
	}
}

func (s *scope) enter(f frame) (bool, error) {
	if err := s.stack.push(f); err != nil {
		return false, err
	}

	return true, nil
}

func (s *scope) Next() (bool, error) {
	if s.stack.depth() <= 0 {
		return false, ErrStackUnderflow
	}

	f := s.stack.top()

	switch f.kind {
	case iterArray:
		f.cursor++
		if f.cursor > f.n {
			return false, nil
		}

		f.val, _ = f.cont.Index(f.cursor)

		return true, nil

	case iterKeyValue:
		f.cursor++
		if f.cursor >= f.cont.Len() {
			return false, nil
		}

		f.key, f.val = f.cont.Entry(f.cursor)

		return true, nil

	case iterNone:
		return false, nil

	default:
		return false, nil
	}
}

func (s *scope) Leave() error { return s.stack.pop() }

func (s *scope) Get(key bool) string {
	if !key {
		return s.sel.Format()
	}

	for f := range s.stack.inward() {
		if f.kind == iterKeyValue {
			return value.FormatKey(f.key)
		}
	}

	return ""
}

func (s *scope) Compare(literal string) int { return s.sel.Compare(literal) }
