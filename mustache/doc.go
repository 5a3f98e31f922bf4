// Package mustache compiles and renders mustache templates against Go data,
// [value.Value] trees, or JSON and YAML documents.
//
// A [Template] is compiled once with [Compile] and rendered any number of
// times:
//
//	t, err := mustache.Compile(`
//	    {{#items}}
//	    - {{name}}
//	    {{/items}}
//	`, mustache.WithPartial("footer", "--"))
//	...
//	out, err := t.Render(map[string]any{"items": items})
//
// Template text is dedented by default (see [Dedent]), so templates may be
// indented to match the surrounding Go source.
//
// # Scopes
//
// A name is resolved in the innermost entered section whose Table contains
// it, climbing outward to the data root. A dotted name a.b.c resolves a that
// way and then b and c only inside the previous value. A key holding null
// still stops the climb.
//
// A section over an array-like Table iterates its elements in order. A
// non-empty Table that is not array-like, or a truthy scalar, renders its
// body once with that value in scope. Null, false, empty Tables and
// Callables do not enter.
//
// # Data forms
//
// The representation of data decides how it is read. A string, []byte or
// io.Reader is decoded as a JSON or YAML document and rendered with JSON
// semantics, where an empty object still enters. Any other value is
// converted with [value.Of].
//
// # Errors
//
// Failures match one of [ErrTooDeep], [ErrStackUnderflow],
// [ErrPartialNotFound], [ErrDataParse] or [ErrRender] under [errors.Is]. A
// failed render produces no output.
package mustache
