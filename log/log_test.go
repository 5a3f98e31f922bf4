package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.Level())
	}
	if logger.caller {
		t.Error("expected caller disabled by default")
	}
	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}
}

func TestLogger_Zero_Discards(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Info("nothing")
	logger.ErrorContext(t.Context(), "nothing", slog.Int("n", 1))
	logger = logger.With(slog.String("k", "v"))

	if logger.Logger != nil {
		t.Error("With on zero Logger should stay zero")
	}
	if logger.Level() != DefaultLevel {
		t.Errorf("zero Logger level = %v, want %v", logger.Level(), DefaultLevel)
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug), WithPretty(false))

	logger.Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()
	logger2 := Make(&buf, WithLevel(LevelError), WithPretty(false))
	logger2.Info("info message")
	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger2.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Trace_LevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON))

	logger.Trace("deep")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}

	if entry["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", entry["level"])
	}
}

func TestLogger_Make_WithTimeLayout(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		contains string
	}{
		{"rfc3339 named", "RFC3339", "T"},
		{"rfc3339 nano named", "rfc-3339-nano", "."},
		{"custom", "2006", "time=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithTimeLayout(tt.layout), WithPretty(false))
			logger.Info("test")

			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf(
					"expected time format to contain %q, got: %s",
					tt.contains,
					buf.String(),
				)
			}
		})
	}
}

func TestLogger_Make_WithTimeLayout_None(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithTimeLayout("none"), WithPretty(false))
	logger.Info("untimed")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("expected no timestamp, got: %s", buf.String())
	}
}

func TestLogger_Make_WithCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true), WithFormat(FormatJSON))
	logger.Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller in output, got: %s", buf.String())
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatJSON)).
		With(slog.String("component", "render"))

	logger.Info("hello", slog.Int("count", 3))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if entry["component"] != "render" {
		t.Errorf("component = %v, want render", entry["component"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("count = %v, want 3", entry["count"])
	}
}

func TestLogger_Wrap_KeepsOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithPretty(false)).Wrap(WithLevel(LevelWarn))

	logger.Info("dropped")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Error("Info logged after raising level to Warn")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("Warn not written to original output")
	}
}

func TestLogger_Pretty_NoColorOnBuffer(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithTimeLayout("none"))

	logger.Info("styled", slog.String("name", "x"), slog.Bool("ok", true))

	got := buf.String()
	if strings.Contains(got, "\x1b[") {
		t.Errorf("expected no escape sequences on non-terminal, got %q", got)
	}

	want := "INFO  styled name=x ok=true\n"
	if got != want {
		t.Errorf("pretty output = %q, want %q", got, want)
	}
}

func TestLogger_Pretty_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithTimeLayout("none"))

	logger.Info("g", slog.Group("req", slog.String("id", "7")))

	if !strings.Contains(buf.String(), "req.id=7") {
		t.Errorf("expected flattened group key, got %q", buf.String())
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithTimeLayout("none"))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.Info("line")
		}()
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 16 {
		t.Errorf("expected 16 lines, got %d", n)
	}
}
