package mustache

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/stache/value"
)

func TestPartials_ResolvePartial(t *testing.T) {
	p := Partials{
		"text":     value.String("Hello, {{name}}!"),
		"callable": value.CallableValue(source("{{x}}")),
		"compiled": value.CallableValue(MustCompile("\n  indented {{y}}\n")),
		"number":   value.Number(1),
		"null":     value.Null,
	}

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"text", "Hello, {{name}}!", true},
		{"callable", "{{x}}", true},
		{"compiled", "indented {{y}}\n", true},
		{"number", "", false},
		{"null", "", false},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.ResolvePartial(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResolvePartial(%q) = %q, %v, want %q, %v",
					tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	var none Partials

	if _, ok := none.ResolvePartial("text"); ok {
		t.Error("nil registry resolved a partial")
	}
}

func TestPartials_Suggest(t *testing.T) {
	p := Partials{
		"greeting": value.String(""),
		"greeter":  value.String(""),
		"footer":   value.String(""),
		"header":   value.String(""),
		"great":    value.String(""),
	}

	got := p.Suggest("greet")
	if len(got) == 0 || len(got) > maxSuggestions {
		t.Fatalf("Suggest(greet) = %q, want 1 to %d names", got, maxSuggestions)
	}

	for _, name := range got {
		if name == "footer" || name == "header" {
			t.Errorf("Suggest(greet) = %q, includes unrelated %q", got, name)
		}
	}

	if s := p.Suggest("zzz"); len(s) != 0 {
		t.Errorf("Suggest(zzz) = %q, want none", s)
	}

	if s := Partials(nil).Suggest("greet"); s != nil {
		t.Errorf("nil registry Suggest() = %q, want nil", s)
	}
}

func TestPartials_Names(t *testing.T) {
	p := Partials{"b": value.Null, "c": value.Null, "a": value.Null}

	if diff := cmp.Diff([]string{"a", "b", "c"}, p.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}
