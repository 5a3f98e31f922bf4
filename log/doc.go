// Package log provides a concurrency-safe logger for stache built on
// [log/slog].
//
// A [Logger] is a value. Its configuration is fixed when it is created with
// [Make] and changed only by deriving a new Logger with [Logger.Wrap] or
// [Logger.With]. The zero Logger discards every record, so library types can
// hold one without requiring callers to configure logging.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("template compiled", slog.Int("bytes", 42))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. The renderer reports compile and render
// activity at Trace and Debug only.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. When pretty printing is enabled,
// text output is styled with lipgloss; styling degrades to plain text when
// the output is not a terminal.
//
// # Default Logger
//
// Package-level functions ([Info], [ErrorContext], ...) write through a
// default logger on standard error that [Config] reconfigures. The CLI
// configures it from its --log-* flags.
package log
