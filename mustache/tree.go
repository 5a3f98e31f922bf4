package mustache

import (
	"reflect"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/stache/engine"
	"github.com/ardnew/stache/value"
)

// treeFrame is one entered section over decoded document data.
type treeFrame struct {
	val  any
	list []any
	obj  yaml.MapSlice
	kind iterKind

	// cursor is the 0-based element or entry being visited.
	cursor int
	key    any
}

// tree drives the engine over a decoded JSON or YAML document with JSON
// mustache semantics: arrays iterate when non-empty, objects always enter
// once, and scalars enter by truthiness.
type tree struct {
	root  any
	stack frames[treeFrame]
	sel   any
}

var _ engine.Itf = (*tree)(nil)

func newTree(root any) *tree { return &tree{root: root} }

func (t *tree) Start() error {
	t.stack.reset(treeFrame{val: t.root})
	t.sel = t.root

	return nil
}

func (t *tree) Stop(error) {}

// field returns the value of the first entry of obj whose key text is name.
func field(obj any, name string) (any, bool) {
	m, ok := obj.(yaml.MapSlice)
	if !ok {
		return nil, false
	}

	for _, item := range m {
		if keyText(item.Key) == name {
			return item.Value, true
		}
	}

	return nil, false
}

func treeLookup(v any) engine.Lookup {
	if v == nil {
		return engine.FoundNull
	}

	return engine.Found
}

func (t *tree) Sel(name string) engine.Lookup {
	for f := range t.stack.inward() {
		if v, ok := field(f.val, name); ok {
			t.sel = v

			return treeLookup(v)
		}
	}

	t.sel = nil

	return engine.NotFound
}

func (t *tree) SelCurrent() { t.sel = t.stack.top().val }

func (t *tree) Subsel(name string) engine.Lookup {
	v, ok := field(t.sel, name)
	if !ok {
		return engine.NotFound
	}

	t.sel = v

	return treeLookup(v)
}

func (t *tree) Enter(keyValue bool) (bool, error) {
	switch v := t.sel.(type) {
	case yaml.MapSlice:
		if keyValue {
			if len(v) == 0 {
				return false, nil
			}

			return t.enter(treeFrame{val: v[0].Value, obj: v, kind: iterKeyValue, key: v[0].Key})
		}

		return t.enter(treeFrame{val: v})

	case []any:
		if keyValue || len(v) == 0 {
			return false, nil
		}

		return t.enter(treeFrame{val: v[0], list: v, kind: iterArray})
	}

	if keyValue || !scalar(t.sel).Truthy() {
		return false, nil
	}

	return t.enter(treeFrame{val: t.sel})
}

func (t *tree) enter(f treeFrame) (bool, error) {
	if err := t.stack.push(f); err != nil {
		return false, err
	}

	return true, nil
}

func (t *tree) Next() (bool, error) {
	if t.stack.depth() <= 0 {
		return false, ErrStackUnderflow
	}

	f := t.stack.top()

	switch f.kind {
	case iterArray:
		f.cursor++
		if f.cursor >= len(f.list) {
			return false, nil
		}

		f.val = f.list[f.cursor]

		return true, nil

	case iterKeyValue:
		f.cursor++
		if f.cursor >= len(f.obj) {
			return false, nil
		}

		f.key, f.val = f.obj[f.cursor].Key, f.obj[f.cursor].Value

		return true, nil

	case iterNone:
		return false, nil

	default:
		return false, nil
	}
}

func (t *tree) Leave() error { return t.stack.pop() }

func (t *tree) Get(key bool) string {
	if !key {
		return scalarText(t.sel)
	}

	for f := range t.stack.inward() {
		if f.kind == iterKeyValue {
			return keyText(f.key)
		}
	}

	return ""
}

func (t *tree) Compare(literal string) int { return scalar(t.sel).Compare(literal) }

// scalar converts decoded scalars to a Value. Arrays and objects become an
// empty Table, which only matters for comparison and never matches.
func scalar(v any) value.Value {
	switch v.(type) {
	case yaml.MapSlice, []any:
		return value.TableValue(value.NewTable(0))
	}

	s, err := value.Of(v)
	if err != nil {
		return value.Null
	}

	return s
}

// scalarText formats a decoded scalar. Integers print every digit.
func scalarText(v any) string {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Slice, reflect.Map:
		return ""
	}

	return scalar(v).Format()
}

// keyText formats an object key: strings verbatim, numbers as numbers, and
// anything else as empty text.
func keyText(k any) string {
	switch k := k.(type) {
	case string:
		return k
	case bool, nil:
		return ""
	}

	return scalarText(k)
}
