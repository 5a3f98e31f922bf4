package value

import (
	"cmp"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrUnsupported is returned by [Of] for Go values with no Value form.
var ErrUnsupported = errors.New("unsupported data type")

// maxNativeDepth bounds recursion through self-referencing Go data.
const maxNativeDepth = 1024

// Of converts Go data to a Value.
//
//   - nil, nil pointers and nil interfaces become Null.
//   - bool, every integer and float kind, and json.Number become Boolean or
//     Number.
//   - string, []byte and encoding.TextMarshaler become String.
//   - slices and arrays become array-like Tables.
//   - yaml.MapSlice becomes a Table in slice order.
//   - maps become Tables with keys in sorted order.
//   - structs become Tables of their exported fields in declaration order.
//     A `mustache:"name"` tag renames a field and `mustache:"-"` skips it.
//
// Value, *Table and Callable pass through unchanged.
func Of(data any) (Value, error) {
	return of(data, 0)
}

// MustOf is like [Of] but panics on error.
func MustOf(data any) Value {
	v, err := Of(data)
	if err != nil {
		panic(err)
	}

	return v
}

func of(data any, depth int) (Value, error) {
	if depth > maxNativeDepth {
		return Null, fmt.Errorf("%w: nesting deeper than %d", ErrUnsupported, maxNativeDepth)
	}

	switch d := data.(type) {
	case nil:
		return Null, nil
	case Value:
		return d, nil
	case *Table:
		return TableValue(d), nil
	case bool:
		return Bool(d), nil
	case string:
		return String(d), nil
	case []byte:
		return String(string(d)), nil
	case float64:
		return Number(d), nil
	case int:
		return Number(float64(d)), nil
	case json.Number:
		f, err := d.Float64()
		if err != nil {
			return Null, fmt.Errorf("%w: %w", ErrUnsupported, err)
		}

		return Number(f), nil
	case yaml.MapSlice:
		return ofMapSlice(d, depth)
	case Callable:
		return CallableValue(d), nil
	case encoding.TextMarshaler:
		text, err := d.MarshalText()
		if err != nil {
			return Null, err
		}

		return String(string(text)), nil
	}

	return ofReflect(reflect.ValueOf(data), depth)
}

func ofReflect(rv reflect.Value, depth int) (Value, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return Null, nil

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null, nil
		}

		return of(rv.Elem().Interface(), depth+1)

	case reflect.Bool:
		return Bool(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil

	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil

	case reflect.String:
		return String(rv.String()), nil

	case reflect.Slice:
		if rv.IsNil() {
			return Null, nil
		}

		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(string(rv.Bytes())), nil
		}

		return ofList(rv, depth)

	case reflect.Array:
		return ofList(rv, depth)

	case reflect.Map:
		if rv.IsNil() {
			return Null, nil
		}

		return ofMap(rv, depth)

	case reflect.Struct:
		return ofStruct(rv, depth)

	default:
		return Null, fmt.Errorf("%w: %s", ErrUnsupported, rv.Type())
	}
}

func ofList(rv reflect.Value, depth int) (Value, error) {
	t := NewTable(rv.Len())

	for i := range rv.Len() {
		elem, err := of(rv.Index(i).Interface(), depth+1)
		if err != nil {
			return Null, err
		}

		t.Append(elem)
	}

	return TableValue(t), nil
}

func ofMap(rv reflect.Value, depth int) (Value, error) {
	type entry struct{ k, v Value }

	entries := make([]entry, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		k, err := of(iter.Key().Interface(), depth+1)
		if err != nil {
			return Null, err
		}

		v, err := of(iter.Value().Interface(), depth+1)
		if err != nil {
			return Null, err
		}

		entries = append(entries, entry{k, v})
	}

	slices.SortFunc(entries, func(a, b entry) int { return orderKeys(a.k, b.k) })

	t := NewTable(len(entries))
	for _, e := range entries {
		if err := t.Set(e.k, e.v); err != nil {
			return Null, fmt.Errorf("%w: map key %s", err, e.k)
		}
	}

	return TableValue(t), nil
}

func ofMapSlice(ms yaml.MapSlice, depth int) (Value, error) {
	t := NewTable(len(ms))

	for _, item := range ms {
		k, err := of(item.Key, depth+1)
		if err != nil {
			return Null, err
		}

		v, err := of(item.Value, depth+1)
		if err != nil {
			return Null, err
		}

		if err := t.Set(k, v); err != nil {
			return Null, fmt.Errorf("%w: mapping key %s", err, k)
		}
	}

	return TableValue(t), nil
}

func ofStruct(rv reflect.Value, depth int) (Value, error) {
	rt := rv.Type()
	t := NewTable(rt.NumField())

	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name

		if tag, ok := field.Tag.Lookup("mustache"); ok {
			tag, _, _ = strings.Cut(tag, ",")

			switch tag {
			case "-":
				continue
			case "":
			default:
				name = tag
			}
		}

		v, err := of(rv.Field(i).Interface(), depth+1)
		if err != nil {
			return Null, fmt.Errorf("field %s: %w", field.Name, err)
		}

		t.SetField(name, v)
	}

	return TableValue(t), nil
}

// orderKeys sorts Booleans before Numbers before Strings, and each kind by
// its natural order.
func orderKeys(a, b Value) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}

	switch a.kind {
	case KindBoolean:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case KindNumber:
		return cmp.Compare(a.n, b.n)
	case KindString:
		return strings.Compare(a.s, b.s)
	case KindNull, KindTable, KindCallable:
		return 0
	default:
		return 0
	}
}

// Native converts v back to plain Go data. Array-like Tables become []any,
// other Tables map[string]any keyed by [FormatKey] text. Callables are
// returned as is.
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindTable:
		if n := v.t.ArrayLen(); n > 0 {
			list := make([]any, 0, n)
			for i := range n {
				elem, _ := v.t.Index(i + 1)
				list = append(list, elem.Native())
			}

			return list
		}

		m := make(map[string]any, v.t.Len())
		for k, elem := range v.t.All() {
			name := FormatKey(k)
			if k.kind == KindBoolean {
				name = k.Format()
			}

			m[name] = elem.Native()
		}

		return m
	case KindCallable:
		return v.c
	default:
		return nil
	}
}

// Decode parses a JSON or YAML document into a Value, preserving the key
// order of every mapping. Empty input decodes to Null.
func Decode(data []byte) (Value, error) {
	var doc any

	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return Null, err
	}

	return Of(doc)
}
