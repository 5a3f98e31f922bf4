package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/expr-lang/expr"
)

// assign evaluates the expression of an assignment "a.b.c=EXPR" with data as
// its environment and stores the result at the dotted path, creating
// intermediate objects as needed. Earlier assignments are visible to later
// ones.
//
// Besides the data, expressions may call env(NAME) to read the process
// environment.
func assign(data map[string]any, spec string) error {
	key, source, ok := strings.Cut(spec, "=")

	key = strings.TrimSpace(key)
	if !ok || key == "" || strings.TrimSpace(source) == "" {
		return ErrInvalidSet.With(slog.String("set", spec))
	}

	program, err := expr.Compile(source,
		expr.Env(data),
		expr.Function("env", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		}, new(func(string) string)),
	)
	if err != nil {
		return ErrEvalSet.Wrap(err).
			With(slog.String("key", key), slog.String("source", source))
	}

	out, err := expr.Run(program, data)
	if err != nil {
		return ErrEvalSet.Wrap(err).
			With(slog.String("key", key), slog.String("source", source))
	}

	path := strings.Split(key, ".")
	m := data

	for _, name := range path[:len(path)-1] {
		next, ok := m[name].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[name] = next
		}

		m = next
	}

	m[path[len(path)-1]] = out

	return nil
}
