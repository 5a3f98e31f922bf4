//go:build pprof

package profile

import "github.com/pkg/profile"

// control accumulates the settings passed to profile.Start.
type control struct {
	opts []func(*profile.Profile)
}

// setting adds one profile.Start option to a control.
type setting func(control) control

func apply(c control, with ...setting) control {
	for _, fn := range with {
		c = fn(c)
	}

	return c
}

func withMode(m string) setting {
	return func(c control) control {
		if fn, ok := modes[m]; ok {
			c.opts = append(c.opts, fn)
		}

		return c
	}
}

func withPath(p string) setting {
	return func(c control) control {
		if p != "" {
			c.opts = append(c.opts, profile.ProfilePath(p))
		}

		return c
	}
}

func withQuiet(v bool) setting {
	return func(c control) control {
		if v {
			c.opts = append(c.opts, profile.Quiet)
		}

		return c
	}
}
