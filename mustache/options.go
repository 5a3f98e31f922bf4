package mustache

import (
	"log/slog"
	"maps"

	"github.com/ardnew/stache/engine"
	"github.com/ardnew/stache/log"
	"github.com/ardnew/stache/value"
)

// Option configures compilation of a Template.
type Option func(*Template)

// WithDedent enables or disables margin removal before compilation.
// It is enabled by default.
func WithDedent(dedent bool) Option {
	return func(t *Template) {
		t.dedent = dedent
	}
}

// WithPartials adds every entry of partials to the template's registry.
// The entries are copied; later changes to partials do not reach the
// Template. Entries given later in the option list replace earlier ones of
// the same name.
func WithPartials(partials Partials) Option {
	return func(t *Template) {
		if len(partials) == 0 {
			return
		}

		if t.partials == nil {
			t.partials = make(Partials, len(partials))
		}

		maps.Copy(t.partials, partials)
	}
}

// WithPartial registers a single partial. src is template text, a compiled
// *Template, or anything else [value.Of] accepts; values that are neither
// text nor a Callable never resolve.
//
// A src that cannot be converted makes [Compile] fail with [ErrDataParse].
func WithPartial(name string, src any) Option {
	return func(t *Template) {
		v, err := value.Of(src)
		if err != nil {
			if t.err == nil {
				t.err = ErrDataParse.Wrap(err).With(slog.String("partial", name))
			}

			return
		}

		if t.partials == nil {
			t.partials = make(Partials)
		}

		t.partials[name] = v
	}
}

// WithFlags selects the template syntax extensions.
// The default is [engine.AllExtensions].
func WithFlags(flags engine.Flags) Option {
	return func(t *Template) {
		t.flags = flags
	}
}

// WithName sets the name reported in logs and traces.
func WithName(name string) Option {
	return func(t *Template) {
		t.name = name
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(t *Template) {
		t.logger = logger
	}
}

func applyDefaults(t *Template) {
	t.dedent = true
	t.flags = engine.AllExtensions
}

func applyOptions(t *Template, opts ...Option) {
	for _, opt := range opts {
		opt(t)
	}
}
