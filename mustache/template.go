package mustache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ardnew/stache/engine"
	"github.com/ardnew/stache/log"
	"github.com/ardnew/stache/value"
)

const tracerName = "github.com/ardnew/stache/mustache"

// Data forms reported in logs and traces.
const (
	formValue = "value"
	formText  = "text"
)

// Template is a compiled template together with the partial registry it was
// compiled with. It is immutable and safe for concurrent use. Only [Compile]
// and [MustCompile] produce usable values; the zero Template fails every
// render with [ErrRender].
type Template struct {
	name     string
	source   string
	dedent   bool
	flags    engine.Flags
	partials Partials
	logger   log.Logger // outside the template's identity; never affects output

	tmpl *engine.Template
	err  error // first option failure, reported by Compile
}

var _ value.Callable = (*Template)(nil)

// Compile prepares text for rendering. Syntax errors are reported here.
func Compile(text string, opts ...Option) (*Template, error) {
	t := &Template{}

	applyDefaults(t)
	applyOptions(t, opts...)

	if t.err != nil {
		return nil, t.err
	}

	if t.dedent {
		text = Dedent(text)
	}

	t.source = text

	tmpl, err := engine.Parse(text, engine.WithFlags(t.flags))
	if err != nil {
		return nil, t.fail(err)
	}

	t.tmpl = tmpl

	t.logger.Trace(
		"template compiled",
		slog.String("template", t.name),
		slog.Int("source_length", len(text)),
		slog.Int("partials", len(t.partials)),
	)

	return t, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(text string, opts ...Option) *Template {
	t, err := Compile(text, opts...)
	if err != nil {
		panic(err)
	}

	return t
}

// Render compiles text and renders it once with data.
func Render(text string, data any, opts ...Option) (string, error) {
	t, err := Compile(text, opts...)
	if err != nil {
		return "", err
	}

	return t.Render(data)
}

// Source returns the template text after dedenting. A Template registered as
// a partial contributes this text.
func (t *Template) Source() string { return t.source }

// Name returns the name set with [WithName].
func (t *Template) Name() string { return t.name }

// Partials returns a copy of the partial registry the template was compiled
// with.
func (t *Template) Partials() Partials { return maps.Clone(t.partials) }

// Render renders the template with data. See [Template.ExecuteContext].
func (t *Template) Render(data any) (string, error) {
	return t.RenderContext(context.Background(), data)
}

// RenderContext renders the template with data. See [Template.ExecuteContext].
func (t *Template) RenderContext(ctx context.Context, data any) (string, error) {
	var b strings.Builder

	if err := t.ExecuteContext(ctx, &b, data); err != nil {
		return "", err
	}

	return b.String(), nil
}

// Execute renders the template with data to w.
func (t *Template) Execute(w io.Writer, data any) error {
	return t.ExecuteContext(context.Background(), w, data)
}

// ExecuteContext renders the template with data to w. Nothing is written
// unless the render succeeds.
//
// A string, []byte or io.Reader is a JSON or YAML document and is decoded
// before rendering. Anything else is converted with [value.Of].
func (t *Template) ExecuteContext(ctx context.Context, w io.Writer, data any) error {
	ctx, span := otel.Tracer(tracerName).Start(
		ctx,
		"mustache.Render",
		trace.WithAttributes(
			attribute.String("template.name", t.name),
			attribute.Int("template.size", len(t.source)),
			attribute.Int("template.partials", len(t.partials)),
		),
	)
	defer span.End()

	if t.tmpl == nil {
		err := ErrRender.With(slog.String("template", t.name))

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	itf, form, err := t.adapt(ctx, data)

	span.SetAttributes(attribute.String("data.form", form))

	if err == nil {
		err = t.tmpl.Execute(w, itf, engine.WithPartials(t.partials.ResolvePartial))
		if err != nil {
			err = t.fail(err)
		}
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		t.logger.DebugContext(
			ctx,
			"render failed",
			slog.String("template", t.name),
			slog.String("data_form", form),
			slog.Any("error", err),
		)

		return err
	}

	t.logger.TraceContext(
		ctx,
		"template rendered",
		slog.String("template", t.name),
		slog.String("data_form", form),
	)

	return nil
}

// adapt selects the engine interface for data by its Go type.
func (t *Template) adapt(ctx context.Context, data any) (engine.Itf, string, error) {
	switch d := data.(type) {
	case string:
		return t.decode(ctx, []byte(d))

	case []byte:
		return t.decode(ctx, d)

	case io.Reader:
		ra := readahead.NewReader(d)
		defer ra.Close()

		b, err := io.ReadAll(ra)
		if err != nil {
			return nil, formText, ErrDataParse.Wrap(err).
				With(slog.String("source", "reader"))
		}

		return t.decode(ctx, b)
	}

	v, err := value.Of(data)
	if err != nil {
		return nil, formValue, ErrDataParse.Wrap(err)
	}

	return newScope(v), formValue, nil
}

// decode parses a JSON or YAML document into an ordered generic tree.
func (t *Template) decode(ctx context.Context, b []byte) (engine.Itf, string, error) {
	var doc any

	if err := yaml.UnmarshalWithOptions(b, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, formText, ErrDataParse.Wrap(errors.New(yaml.FormatError(err, false, true)))
	}

	t.logger.TraceContext(ctx, "data decoded", slog.Int("data_length", len(b)))

	return newTree(doc), formText, nil
}

// fail translates an engine failure into a package error. Errors raised by
// the scope adapters are already package errors and pass through.
func (t *Template) fail(err error) error {
	var own *Error
	if errors.As(err, &own) {
		return err
	}

	var ee *engine.Error
	if !errors.As(err, &ee) {
		return ErrRender.Wrap(err)
	}

	switch ee.Status {
	case engine.StatusTooDeep:
		return ErrTooDeep.Wrap(err).With(slog.Int("max_depth", engine.MaxDepth))

	case engine.StatusPartialNotFound:
		return t.partials.notFound(ee.Tag).Wrap(err)

	default:
		return ErrRender.Wrap(err).With(
			slog.Int("status", int(ee.Status)),
			slog.String("status_name", ee.Status.String()),
		)
	}
}
