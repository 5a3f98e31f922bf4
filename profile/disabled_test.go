//go:build !pprof

package profile

import "testing"

func TestStart_Disabled(t *testing.T) {
	if Enabled {
		t.Fatal("Enabled = true without the pprof tag")
	}

	if m := Modes(); len(m) != 0 {
		t.Errorf("Modes() = %q, want none", m)
	}

	s := Profiler{Mode: "cpu", Dir: t.TempDir()}.Start()
	if _, ok := s.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", s)
	}

	s.Stop()
}
