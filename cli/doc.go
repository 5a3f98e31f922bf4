// Package cli contains the command line interface for stache.
//
// # Usage
//
// The default command renders a template with data:
//
//	stache page.mustache --data page.yaml
//	stache render page.mustache -d page.json -p header=header.mustache
//	echo '{{#items}}{{.}} {{/items}}' | stache -d list.json
//
// Other commands remove common indentation from text (dedent), write the
// current flag values to the configuration file (init) and print the version.
//
// # Configuration
//
// Flag defaults are read from $XDG_CONFIG_HOME/stache/config.yaml when it
// exists. Nested mappings are joined with "-" to form flag names, so
//
//	log:
//	  level: debug
//
// is the same as passing --log-level=debug. Flags given on the command line
// always win.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o stache .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/stache/pprof)
package cli
