package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// ErrConfig reports a configuration file that cannot be decoded.
var ErrConfig = errors.New("invalid configuration file")

// resolve is a [kong.ConfigurationLoader] for YAML (or JSON) config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The document must be a mapping. Nested mappings are flattened by joining
// keys with "-", so both of these set --log-level:
//
//	log-level: debug
//
//	log:
//	  level: debug
//
// Keys may use "_" in place of "-". Command-line flags override config file
// values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrConfig, yaml.FormatError(err, false, true))
	}

	cfg := make(config)
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over flattened config file values.
type config map[string]any

// flatten stores every leaf of m under its "-"-joined key path.
func (c config) flatten(prefix string, m map[string]any) {
	for key, val := range m {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := val.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		c[key] = flagValue(val)
	}
}

// flagValue converts a decoded value to a form kong's mappers accept.
// Numbers become strings and lists become comma-separated strings.
func flagValue(v any) any {
	switch v := v.(type) {
	case nil, bool, string:
		return v

	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(flagValue(e))
		}

		return strings.Join(parts, ",")

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	default:
		return fmt.Sprint(v)
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// LogValue implements slog.LogValuer.
func (c config) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(c))
	for key, val := range c {
		attrs = append(attrs, slog.Any(key, val))
	}

	return slog.GroupValue(attrs...)
}
