package engine

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

var errUnderflow = errors.New("stack underflow")

type testFrame struct {
	val  any
	list []any
	m    map[string]any
	keys []string
	idx  int
	arr  bool
	kv   bool
}

// testItf is a minimal Itf over plain Go maps, slices and scalars. Map keys
// iterate in sorted order.
type testItf struct {
	root    any
	stack   []testFrame
	sel     any
	started int
	stopped []error

	// failEnter, when set, is returned by every Enter.
	failEnter error
}

func newTestItf(root any) *testItf { return &testItf{root: root} }

func (t *testItf) Start() error {
	t.started++
	t.stack = []testFrame{{val: t.root}}
	t.sel = t.root

	return nil
}

func (t *testItf) Stop(err error) { t.stopped = append(t.stopped, err) }

func (t *testItf) top() *testFrame { return &t.stack[len(t.stack)-1] }

func found(v any) Lookup {
	if v == nil {
		return FoundNull
	}

	return Found
}

func (t *testItf) Sel(name string) Lookup {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if m, ok := t.stack[i].val.(map[string]any); ok {
			if v, ok := m[name]; ok {
				t.sel = v

				return found(v)
			}
		}
	}

	t.sel = nil

	return NotFound
}

func (t *testItf) SelCurrent() { t.sel = t.top().val }

func (t *testItf) Subsel(name string) Lookup {
	m, ok := t.sel.(map[string]any)
	if !ok {
		return NotFound
	}

	v, ok := m[name]
	if !ok {
		return NotFound
	}

	t.sel = v

	return found(v)
}

func (t *testItf) Enter(keyValue bool) (bool, error) {
	if t.failEnter != nil {
		return false, t.failEnter
	}

	if keyValue {
		m, ok := t.sel.(map[string]any)
		if !ok || len(m) == 0 {
			return false, nil
		}

		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}

		slices.Sort(keys)
		t.stack = append(t.stack, testFrame{val: m[keys[0]], m: m, keys: keys, kv: true})

		return true, nil
	}

	switch v := t.sel.(type) {
	case []any:
		if len(v) == 0 {
			return false, nil
		}

		t.stack = append(t.stack, testFrame{val: v[0], list: v, arr: true})

		return true, nil

	case map[string]any:
		if len(v) == 0 {
			return false, nil
		}

	case nil:
		return false, nil

	case bool:
		if !v {
			return false, nil
		}

	case string:
		if v == "" {
			return false, nil
		}

	case float64:
		if v == 0 {
			return false, nil
		}
	}

	t.stack = append(t.stack, testFrame{val: t.sel})

	return true, nil
}

func (t *testItf) Next() (bool, error) {
	if len(t.stack) <= 1 {
		return false, errUnderflow
	}

	f := t.top()

	switch {
	case f.arr:
		f.idx++
		if f.idx >= len(f.list) {
			return false, nil
		}

		f.val = f.list[f.idx]

		return true, nil

	case f.kv:
		f.idx++
		if f.idx >= len(f.keys) {
			return false, nil
		}

		f.val = f.m[f.keys[f.idx]]

		return true, nil
	}

	return false, nil
}

func (t *testItf) Leave() error {
	if len(t.stack) <= 1 {
		return errUnderflow
	}

	t.stack = t.stack[:len(t.stack)-1]

	return nil
}

func (t *testItf) Get(key bool) string {
	if key {
		for i := len(t.stack) - 1; i >= 0; i-- {
			if t.stack[i].kv {
				return t.stack[i].keys[t.stack[i].idx]
			}
		}

		return ""
	}

	switch v := t.sel.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func (t *testItf) Compare(literal string) int {
	switch v := t.sel.(type) {
	case float64:
		n, _ := strconv.ParseFloat(literal, 64)

		switch {
		case v < n:
			return -1
		case v > n:
			return 1
		default:
			return 0
		}

	case string:
		return strings.Compare(v, literal)

	default:
		return 1
	}
}
