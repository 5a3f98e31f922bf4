// Package profile starts optional runtime profiling for stache.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof -o stache .
//	stache --pprof-mode cpu render page.mustache --data page.yaml
//
// Without the tag [Enabled] is false, [Modes] is empty and every
// [Profiler.Start] returns a Stopper that does nothing.
//
// Profiles are written by [github.com/pkg/profile] into the configured
// directory, named after the mode (cpu.pprof, mem.pprof, ...), and can be
// inspected with go tool pprof. Builds with the tag also register the
// net/http/pprof handlers on http.DefaultServeMux.
package profile
