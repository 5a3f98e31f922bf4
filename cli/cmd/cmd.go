package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type stdinKey struct{}

// withStdin replaces standard input for commands run with ctx.
func withStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey{}, r)
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok {
		return r
	}

	return os.Stdin
}

// stdoutFrom returns the kong application's standard output.
func stdoutFrom(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdStream names standard input or output wherever a file is expected.
const stdStream = "-"

// readSource returns the content of the file at path, or of standard input
// when path is "-".
func readSource(ctx context.Context, path string) ([]byte, error) {
	r := stdinFrom(ctx)

	if path != stdStream {
		file, err := os.Open(path)
		if err != nil {
			return nil, ErrReadInput.
				With(slog.String("file", path)).
				Wrap(err)
		}
		defer file.Close()

		r = file
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return b, nil
}

// writeTarget writes b to the file at path, or to standard output when path
// is "-".
func writeTarget(ctx context.Context, path string, b []byte) error {
	if path == stdStream {
		if _, err := stdoutFrom(ctx).Write(b); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return ErrWriteOutput.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return nil
}
