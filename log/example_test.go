package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/interp/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Info("template compiled",
		slog.String("locale", "de-DE"),
		slog.Int("chunks", 3))

	// Output:
	// level=INFO msg="template compiled" locale=de-DE chunks=3
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"))

	logger.Warn("render missing value",
		slog.String("param", "user.name"),
		slog.Bool("fail_if_missing", false))

	// Output:
	// {"level":"WARN","msg":"render missing value","param":"user.name","fail_if_missing":false}
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Trace("cache lookup", slog.Bool("cache_hit", true))
	logger.Debug("typecheck complete", slog.Int("params", 2))
	logger.Error("parse failed", slog.Int("offset", 7))

	// Output:
	// level=DEBUG msg="typecheck complete" params=2
	// level=ERROR msg="parse failed" offset=7
}

func Example_trace() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"))

	logger.Trace("parse complete",
		slog.Int("source_bytes", 24),
		slog.Int("chunks", 5))

	// Output:
	// {"level":"TRACE","msg":"parse complete","source_bytes":24,"chunks":5}
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	// every record of this template carries its locale
	logger = logger.With(slog.Group("locale",
		slog.String("tag", "it-IT"),
		slog.String("timezone", "Europe/Rome")))

	logger.Info("render complete", slog.Bool("ok", true))

	// Output:
	// level=INFO msg="render complete" locale.tag=it-IT locale.timezone=Europe/Rome ok=true
}

func Example_wrap() {
	quiet := log.Make(os.Stdout,
		log.WithLevel(log.LevelError),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	quiet.Info("render complete")

	verbose := quiet.Wrap(log.WithLevel(log.LevelInfo))
	verbose.Info("render complete", slog.Bool("any_missing", true))

	// Output:
	// level=INFO msg="render complete" any_missing=true
}

func Example_withContext() {
	type templateKey struct{}

	ctx := context.WithValue(context.Background(), templateKey{}, "greeting")

	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"))

	logger.InfoContext(ctx, "cache bypass", slog.Bool("units", true))

	// Output:
	// {"level":"INFO","msg":"cache bypass","units":true}
}
