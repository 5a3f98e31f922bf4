package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/stache/engine"
	"github.com/ardnew/stache/log"
	"github.com/ardnew/stache/mustache"
	"github.com/ardnew/stache/value"
)

// Render renders a template against JSON or YAML data.
type Render struct {
	Template string `arg:"" default:"-" help:"Template file or '-' for stdin." name:"template"`

	Data       string            `help:"JSON or YAML data file or '-' for stdin."                placeholder:"FILE"     short:"d"`
	Set        []string          `help:"Set a data value from an expression (repeatable)."       placeholder:"KEY=EXPR" short:"s" sep:"none"`
	Partial    map[string]string `help:"Register a partial template file (repeatable)."          placeholder:"NAME=FILE" short:"p"`
	PartialDir []string          `help:"Register every partial file found in a directory."       placeholder:"DIR"      type:"existingdir"`
	PartialExt string            `help:"File extension of partials found with --partial-dir."    default:".mustache"`
	Dedent     bool              `help:"Remove the common margin of template and partials."      default:"true"         negatable:""`
	Strict     bool              `help:"Fail on variables that are not found."`
	Sanitize   string            `help:"Sanitize HTML output (${enum})."                         default:"none"         enum:"none,strict,ugc"`
	Output     string            `help:"Output file or '-' for stdout."                          default:"-"            short:"o" type:"path"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if r.Template == stdStream && r.Data == stdStream {
		return ErrStdinTwice
	}

	text, err := readSource(ctx, r.Template)
	if err != nil {
		return err
	}

	data, err := r.data(ctx)
	if err != nil {
		return err
	}

	opts := r.options()

	partials, err := r.partials(ctx, opts)
	if err != nil {
		return err
	}

	tmpl, err := mustache.Compile(string(text),
		append(opts,
			mustache.WithName(r.Template),
			mustache.WithPartials(partials),
		)...,
	)
	if err != nil {
		return err
	}

	out, err := tmpl.RenderContext(ctx, data)
	if err != nil {
		return err
	}

	if sanitize := sanitizer(r.Sanitize); sanitize != nil {
		out = sanitize(out)
	}

	log.DebugContext(ctx, "rendered",
		slog.String("template", r.Template),
		slog.Int("partials", len(partials)),
		slog.Int("bytes", len(out)),
	)

	return writeTarget(ctx, r.Output, []byte(out))
}

// options returns the compile options shared by the template and partials.
func (r *Render) options() []mustache.Option {
	flags := engine.AllExtensions
	if r.Strict {
		flags |= engine.ErrorUndefined
	}

	return []mustache.Option{
		mustache.WithDedent(r.Dedent),
		mustache.WithFlags(flags),
		mustache.WithLogger(log.Default()),
	}
}

// data loads the render data. Without assignments the document is handed to
// the template as text so its key order is kept. Assignments need a mutable
// tree, so the document is decoded first.
func (r *Render) data(ctx context.Context) (any, error) {
	var doc []byte

	if r.Data != "" {
		var err error
		if doc, err = readSource(ctx, r.Data); err != nil {
			return nil, err
		}
	}

	if len(r.Set) == 0 {
		if doc == nil {
			return nil, nil
		}

		return doc, nil
	}

	data := make(map[string]any)

	if len(doc) > 0 {
		if err := yaml.Unmarshal(doc, &data); err != nil {
			return nil, ErrDataDecode.
				With(slog.String("file", r.Data)).
				Wrap(err)
		}

		if data == nil {
			data = make(map[string]any)
		}
	}

	for _, spec := range r.Set {
		if err := assign(data, spec); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// partials compiles every partial file. Files named with --partial take
// precedence over those found in --partial-dir.
func (r *Render) partials(ctx context.Context, opts []mustache.Option) (mustache.Partials, error) {
	files := make(map[string]string)

	for _, dir := range r.PartialDir {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, ErrPartial.
				With(slog.String("dir", dir)).
				Wrap(err)
		}

		for _, e := range entries {
			name, ok := strings.CutSuffix(e.Name(), r.PartialExt)
			if !ok || name == "" || e.IsDir() {
				continue
			}

			files[name] = filepath.Join(dir, e.Name())
		}
	}

	for name, path := range r.Partial {
		files[name] = path
	}

	partials := make(mustache.Partials, len(files))

	for name, path := range files {
		text, err := readSource(ctx, path)
		if err != nil {
			return nil, err
		}

		p, err := mustache.Compile(string(text), append(opts, mustache.WithName(name))...)
		if err != nil {
			return nil, ErrPartial.
				With(slog.String("name", name), slog.String("file", path)).
				Wrap(err)
		}

		partials[name] = value.CallableValue(p)
	}

	return partials, nil
}
