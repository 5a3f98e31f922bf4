package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func testData() map[string]any {
	return map[string]any{
		"name":  "Ada",
		"html":  `<b>&"`,
		"items": []any{"a", "b", "c"},
		"empty": []any{},
		"obj":   map[string]any{"x": "1"},
		"kv":    map[string]any{"b": "2", "a": "1"},
		"t":     true,
		"f":     false,
		"n":     nil,
		"num":   3.0,
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"variable", "Hello, {{name}}!", "Hello, Ada!"},
		{"escaped", "{{html}}", "&lt;b&gt;&amp;&quot;"},
		{"triple", "{{{html}}}", `<b>&"`},
		{"ampersand", "{{& html}}", `<b>&"`},
		{"padded name", "{{ name }}", "Ada"},
		{"number", "{{num}}", "3"},
		{"missing", "[{{missing}}]", "[]"},
		{"null", "[{{n}}]", "[]"},
		{"list", "{{#items}}{{.}},{{/items}}", "a,b,c,"},
		{"empty list", "{{#empty}}x{{/empty}}{{^empty}}none{{/empty}}", "none"},
		{"object", "{{#obj}}{{x}}{{/obj}}", "1"},
		{"booleans", "{{#t}}yes{{/t}}{{#f}}no{{/f}}{{^f}}nf{{/f}}", "yesnf"},
		{"inverted truthy", "{{^t}}no{{/t}}", ""},
		{"null section", "{{#n}}x{{/n}}{{^n}}null{{/n}}", "null"},
		{"missing section", "{{#zz}}x{{/zz}}{{^zz}}absent{{/zz}}", "absent"},
		{"dotted", "{{obj.x}}", "1"},
		{"scope climbing", "{{#obj}}{{name}}{{/obj}}", "Ada"},
		{"no climbing in path", "[{{obj.name}}]", "[]"},
		{"dotted missing head", "[{{zz.x}}]", "[]"},
		{"dotted section", "{{#obj.x}}<{{.}}>{{/obj.x}}", "<1>"},
		{"comment", "a{{! note }}b", "ab"},
		{"delimiters", "{{=<% %>=}}<% name %> {{name}}", "Ada {{name}}"},
		{"delimiters back", "{{=| |=}}|name||={{ }}=|{{name}}", "AdaAda"},
		{"standalone section", "begin\n{{#t}}\nin\n{{/t}}\nend\n", "begin\nin\nend\n"},
		{"standalone indented", "  {{#t}}\n  in\n  {{/t}}\n", "  in\n"},
		{"standalone crlf", "{{#t}}\r\nin\r\n{{/t}}\r\n", "in\r\n"},
		{"standalone at eof", "in\n{{! done }}", "in\n"},
		{"standalone comment", "a\n  {{! c }}\nb", "a\nb"},
		{"not standalone", " {{#t}}x{{/t}} \n", " x \n"},
		{"shared line", "{{#t}}{{/t}}\n", "\n"},
		{"variable never standalone", "  {{name}}\n", "  Ada\n"},
		{"equal", "{{#num=3}}eq{{/num=3}}", "eq"},
		{"not equal", "{{#name=!Bob}}notbob{{/name=!Bob}}", "notbob"},
		{"greater", "{{#num>2}}gt{{/num>2}}{{#num<2}}lt{{/num<2}}", "gt"},
		{"greater equal", "{{#num>=3}}ge{{/num>=3}}{{#num<=2}}le{{/num<=2}}", "ge"},
		{"inverted comparison", "{{^num=4}}ne{{/num=4}}", "ne"},
		{"comparison missing", "{{#zz=1}}x{{/zz=1}}", ""},
		{"comparison scope", "{{#num=3}}{{name}}{{/num=3}}", "Ada"},
		{"object iteration", "{{#kv.*}}{{*}}={{.}};{{/kv.*}}", "a=1;b=2;"},
		{"object iteration empty", "{{#empty.*}}x{{/empty.*}}", ""},
		{"key outside iteration", "[{{*}}]", "[]"},
		{"colon", "{{:name}}", "Ada"},
		{"empty tag", "a{{}}b", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, newTestItf(testData()))
			if err != nil {
				t.Fatalf("Render(%q) error = %v", tt.template, err)
			}

			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestRender_FlagsDisabled(t *testing.T) {
	data := testData()
	data["num=3"] = "literal"

	got, err := Render("{{#num=3}}{{.}}{{/num=3}}", newTestItf(data), WithFlags(0))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got != "literal" {
		t.Errorf("Render() = %q, want literal name lookup", got)
	}
}

func TestRender_Partials(t *testing.T) {
	partials := map[string]string{
		"greet": "Hello, {{name}}!",
		"lines": "a\nb\n",
		"item":  "[{{.}}]",
		"loop":  "{{>loop}}",
	}

	resolve := func(name string) (string, bool) {
		text, ok := partials[name]

		return text, ok
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"inline", "{{>greet}}", "Hello, Ada!"},
		{"padded", "{{> greet }}", "Hello, Ada!"},
		{"indented standalone", "<\n  {{>lines}}\n>", "<\n  a\n  b\n>"},
		{"inline not indented", "x {{>lines}}y", "x a\nb\ny"},
		{"in section", "{{#items}}{{>item}}{{/items}}", "[a][b][c]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, newTestItf(testData()), WithPartials(resolve))
			if err != nil {
				t.Fatalf("Render(%q) error = %v", tt.template, err)
			}

			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}

	_, err := Render("{{>loop}}", newTestItf(testData()), WithPartials(resolve))
	if StatusOf(err) != StatusTooDeep {
		t.Errorf("recursive partial error = %v, want %v", err, StatusTooDeep)
	}
}

func TestRender_PartialNotFound(t *testing.T) {
	none := func(string) (string, bool) { return "", false }

	for name, opts := range map[string][]Option{
		"no resolver":   nil,
		"resolver miss": {WithPartials(none)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Render("a{{>nope}}b", newTestItf(testData()), opts...)

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("error = %v, want *Error", err)
			}

			if e.Status != StatusPartialNotFound || e.Tag != "nope" {
				t.Errorf("error = %+v, want partial-not-found for nope", e)
			}
		})
	}
}

func TestRender_ErrorUndefined(t *testing.T) {
	opt := WithFlags(AllExtensions | ErrorUndefined)

	_, err := Render("{{missing}}", newTestItf(testData()), opt)
	if StatusOf(err) != StatusUndefinedTag {
		t.Errorf("missing variable error = %v, want undefined tag", err)
	}

	for _, tmpl := range []string{"{{n}}", "{{#missing}}x{{/missing}}", "{{^missing}}{{/missing}}"} {
		if _, err := Render(tmpl, newTestItf(testData()), opt); err != nil {
			t.Errorf("Render(%q) error = %v, want nil", tmpl, err)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		flags    Flags
		want     Status
	}{
		{"unclosed section", "{{#a}}x", AllExtensions, StatusUnexpectedEnd},
		{"unterminated tag", "x {{name", AllExtensions, StatusUnexpectedEnd},
		{"stray close", "{{/a}}", AllExtensions, StatusClosing},
		{"mismatched close", "{{#a}}{{/b}}", AllExtensions, StatusClosing},
		{"empty tag", "{{}}", Equal, StatusEmptyTag},
		{"empty section", "{{# }}{{/}}", AllExtensions, StatusEmptyTag},
		{"empty partial", "{{>}}", AllExtensions, StatusEmptyTag},
		{"delimiters unterminated", "{{=<% %>}}", AllExtensions, StatusBadSeparators},
		{"delimiters one", "{{=x=}}", AllExtensions, StatusBadSeparators},
		{"delimiters equals", "{{=a= b=}}", AllExtensions, StatusBadSeparators},
		{"bad unescape", "{{{name}}", AllExtensions, StatusBadUnescapeTag},
		{"too long", "{{" + strings.Repeat("x", MaxTagLength+1) + "}}", AllExtensions, StatusTagTooLong},
		{
			"too deep",
			strings.Repeat("{{#t}}", MaxDepth+1) + strings.Repeat("{{/t}}", MaxDepth+1),
			AllExtensions,
			StatusTooDeep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.template, WithFlags(tt.flags))
			if got := StatusOf(err); got != tt.want {
				t.Errorf("Parse(%q) status = %v (%v), want %v", tt.name, got, err, tt.want)
			}

			if !errors.Is(err, &Error{Status: tt.want}) {
				t.Errorf("errors.Is(%v, status %v) = false", err, tt.want)
			}
		})
	}
}

func TestRender_MaxDepth(t *testing.T) {
	tmpl := strings.Repeat("{{#t}}", MaxDepth) + "x" + strings.Repeat("{{/t}}", MaxDepth)

	got, err := Render(tmpl, newTestItf(testData()))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got != "x" {
		t.Errorf("Render() = %q, want x", got)
	}
}

func TestExecute_ItfErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	itf := newTestItf(testData())
	itf.failEnter = boom

	tmpl, err := Parse("before {{#t}}x{{/t}} after")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, itf); !errors.Is(err, boom) {
		t.Fatalf("Execute() error = %v, want %v", err, boom)
	}

	if buf.Len() != 0 {
		t.Errorf("failed render wrote %q", buf.String())
	}

	if itf.started != 1 || len(itf.stopped) != 1 || !errors.Is(itf.stopped[0], boom) {
		t.Errorf("Start/Stop calls: started %d stopped %v", itf.started, itf.stopped)
	}
}

func TestExecute_Reusable(t *testing.T) {
	tmpl, err := Parse("{{#items}}{{.}}{{/items}}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	itf := newTestItf(testData())

	for range 3 {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, itf); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		if buf.String() != "abc" {
			t.Errorf("Execute() = %q, want abc", buf.String())
		}
	}

	if itf.started != 3 || len(itf.stopped) != 3 || itf.stopped[2] != nil {
		t.Errorf("Start/Stop calls: started %d stopped %v", itf.started, itf.stopped)
	}

	if tmpl.Source() != "{{#items}}{{.}}{{/items}}" {
		t.Errorf("Source() = %q", tmpl.Source())
	}
}

func TestExecute_NilItf(t *testing.T) {
	tmpl, err := Parse("x")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if err := tmpl.Execute(&bytes.Buffer{}, nil); StatusOf(err) != StatusInvalidItf {
		t.Errorf("Execute(nil) error = %v, want invalid interface", err)
	}
}

func TestIndentLines(t *testing.T) {
	tests := []struct{ text, indent, want string }{
		{"a\nb\n", "  ", "  a\n  b\n"},
		{"a\nb", "\t", "\ta\n\tb"},
		{"a\n\nb", "-", "-a\n-\n-b"},
		{"", "  ", ""},
		{"a", "", "a"},
	}

	for _, tt := range tests {
		if got := indentLines(tt.text, tt.indent); got != tt.want {
			t.Errorf("indentLines(%q, %q) = %q, want %q", tt.text, tt.indent, got, tt.want)
		}
	}
}

func TestError_Format(t *testing.T) {
	err := &Error{Status: StatusClosing, Tag: "a", Offset: 3}

	if got, want := err.Error(), `mustache: mismatched closing tag "a" at offset 3`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if StatusOf(nil) != StatusOK {
		t.Error("StatusOf(nil) != StatusOK")
	}

	if StatusOf(errors.New("x")) != StatusSystem {
		t.Error("StatusOf(foreign) != StatusSystem")
	}

	if Status(-99).String() != "status -99" {
		t.Errorf("unknown status string = %q", Status(-99).String())
	}
}
