package value

import (
	"math"
	"testing"
)

type source string

func (s source) Source() string { return string(s) }

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero", Number(0), false},
		{"negative zero", Number(math.Copysign(0, -1)), false},
		{"nonzero", Number(-2.5), true},
		{"nan", Number(math.NaN()), true},
		{"empty string", String(""), false},
		{"string", String("0"), true},
		{"empty table", TableValue(NewTable(0)), false},
		{"table", TableValue(NewTable(0).SetField("a", Null)), true},
		{"callable", CallableValue(source("x")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("%s.Truthy() = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestValue_Format(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null, ""},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"integer", Number(42), "42"},
		{"sum", Number(0.1 + 0.2), "0.3"},
		{"third", Number(1.0 / 3), "0.33333333333333"},
		{"large", Number(1e15), "1e+15"},
		{"fourteen digits", Number(12345678901234), "12345678901234"},
		{"small", Number(0.0001), "0.0001"},
		{"tiny", Number(0.00001), "1e-05"},
		{"negative", Number(-7.25), "-7.25"},
		{"inf", Number(math.Inf(1)), "inf"},
		{"string", String("a<b"), "a<b"},
		{"table", TableValue(List(String("x"))), ""},
		{"callable", CallableValue(source("x")), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Compare(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		literal string
		want    int
	}{
		{"number equal", Number(3), "3", 0},
		{"number less", Number(2), "3", -1},
		{"number greater", Number(4), "3.5", 1},
		{"number prefix", Number(12), "12abc", 0},
		{"number no prefix", Number(0), "abc", 0},
		{"number exponent", Number(1500), "1.5e3", 0},
		{"string equal", String("abc"), "abc", 0},
		{"string less", String("abc"), "abd", -1},
		{"string greater", String("b"), "a", 1},
		{"bool true", Bool(true), "true", 0},
		{"bool false", Bool(false), "true", -1},
		{"null", Null, "null", 0},
		{"null other", Null, "nil", 1},
		{"table", TableValue(NewTable(0)), "", 1},
		{"callable", CallableValue(source("")), "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Compare(tt.literal); got != tt.want {
				t.Errorf("Compare(%q) = %d, want %d", tt.literal, got, tt.want)
			}
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	v := String("s")
	if v.Kind() != KindString || v.Str() != "s" {
		t.Errorf("String accessors: kind %v str %q", v.Kind(), v.Str())
	}
	if v.Number() != 0 || v.Bool() || v.Table() != nil || v.Callable() != nil {
		t.Error("mismatched accessors should return zero values")
	}

	if TableValue(nil).Kind() != KindNull {
		t.Error("TableValue(nil) should be Null")
	}
	if CallableValue(nil).Kind() != KindNull {
		t.Error("CallableValue(nil) should be Null")
	}
	if !Null.IsNull() || Number(0).IsNull() {
		t.Error("IsNull mismatch")
	}
}

func TestKind_String(t *testing.T) {
	want := []string{"null", "boolean", "number", "string", "table", "callable"}
	for k, name := range want {
		if got := Kind(k).String(); got != name {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, name)
		}
	}
}
