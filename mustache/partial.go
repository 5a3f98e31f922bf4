package mustache

import (
	"log/slog"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/stache/value"
)

// maxSuggestions bounds the names offered when a partial is missing.
const maxSuggestions = 3

// Partials maps partial names to their source. An entry is either a String
// holding template text or a Callable (such as a *Template) whose source text
// is substituted.
type Partials map[string]value.Value

// ResolvePartial returns the template text registered under name.
func (p Partials) ResolvePartial(name string) (string, bool) {
	v, ok := p[name]
	if !ok {
		return "", false
	}

	switch v.Kind() {
	case value.KindString:
		return v.Str(), true
	case value.KindCallable:
		return v.Callable().Source(), true
	case value.KindNull, value.KindBoolean, value.KindNumber, value.KindTable:
		return "", false
	default:
		return "", false
	}
}

// Names returns the registered partial names in sorted order.
func (p Partials) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Suggest returns up to three registered names that fuzzily match name, best
// match first.
func (p Partials) Suggest(name string) []string {
	if len(p) == 0 || name == "" {
		return nil
	}

	matches := fuzzy.Find(name, p.Names())

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches[:min(len(matches), maxSuggestions)] {
		out = append(out, m.Str)
	}

	return out
}

// notFound builds the error reported for a missing partial.
func (p Partials) notFound(name string) *Error {
	attrs := []slog.Attr{slog.String("name", name)}

	if s := p.Suggest(name); len(s) > 0 {
		attrs = append(attrs, slog.Any("suggestions", s))
	}

	return ErrPartialNotFound.With(attrs...)
}
