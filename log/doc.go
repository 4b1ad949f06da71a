// Package log provides a leveled structured logger based on [log/slog].
//
// Every logging method takes [slog.Attr] values rather than alternating keys
// and values:
//
//	logger := log.Make(os.Stderr)
//	logger.Info("template compiled", slog.Int("chunks", 4))
//
// # Configuration
//
// A [Logger] is configured when it is made, with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with some options changed and
// [Logger.With] one that adds attributes to every record.
//
// # Levels
//
// In addition to the four levels of [log/slog] the package defines
// [LevelTrace], below Debug, for high-volume diagnostics such as the steps
// of compiling and rendering a template.
//
// # Output Formats
//
// [FormatText] writes one line per record. When pretty printing is enabled
// (the default) and the output is a color terminal, the line is styled with
// [github.com/charmbracelet/lipgloss]. [FormatJSON] writes one JSON object
// per record.
//
// # Zero Value
//
// The zero [Logger] discards everything, so libraries can accept a Logger
// option and log unconditionally.
//
// # Package Logger
//
// Functions such as [Info] and [ErrorContext] log through a package-level
// logger writing to standard error, which [Config] reconfigures. Functions
// without a context argument use [DefaultContextProvider].
package log
