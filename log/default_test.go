package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfig_RedirectsDefault(t *testing.T) {
	saved := Default()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = saved
		defaultMu.Unlock()
	})

	var buf bytes.Buffer
	Config(WithOutput(&buf), WithPretty(false), WithLevel(LevelDebug))

	Debug("from package")
	Info("also")

	got := buf.String()
	if !strings.Contains(got, "msg=\"from package\"") {
		t.Errorf("debug message missing: %s", got)
	}
	if !strings.Contains(got, "msg=also") {
		t.Errorf("info message missing: %s", got)
	}

	if Default().Level() != LevelDebug {
		t.Errorf("Default().Level() = %v", Default().Level())
	}
}
