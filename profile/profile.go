package profile

import "slices"

// Tag is the build tag that enables profiling.
const Tag = `pprof`

// Profiler selects what to profile and where the profile is written.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Dir   string // output directory; empty uses the working directory
	Quiet bool   // suppress the profiler's own log lines
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling. Both Start and Stop are always safe to call: an
// empty or unknown Mode, or a build without the pprof tag, yields a Stopper
// that does nothing.
func (p Profiler) Start() Stopper {
	if p.Mode == "" || !slices.Contains(Modes(), p.Mode) {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
