package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/interp/interp"
	"github.com/ardnew/interp/log"
)

// Render renders a template with the configured arguments.
type Render struct {
	Template  string `arg:"" help:"Template text; read from --file or stdin when omitted" optional:""`
	File      string `       help:"Template file or '-' for stdin"                                    short:"f"`
	NoNewline bool   `       help:"Do not print a trailing newline"                                   short:"n"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context, opts *Options, std *Streams) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	source, err := r.source(opts, std)
	if err != nil {
		return err
	}

	args, err := opts.Arguments(std.In)
	if err != nil {
		return err
	}

	logger := log.With(slog.String("command", "render"))

	tmpl, err := interp.CompileCached(ctx, source, opts.compileOptions(logger)...)
	if err != nil {
		return interp.WrapError(err).With(slog.String("command", "render"))
	}

	out, ok := tmpl.RenderContext(ctx, args)
	if !ok {
		return ErrNoResult.With(slog.String("template", source))
	}

	logger.DebugContext(ctx, "rendered",
		slog.Int("params", len(tmpl.Expansion().Params())),
		slog.Int("bytes", len(out)))

	if r.NoNewline {
		_, err = fmt.Fprint(std.Out, out)
	} else {
		_, err = fmt.Fprintln(std.Out, out)
	}

	return err
}

// source returns the template text from the positional argument, the
// template file or stdin, in that order.
func (r *Render) source(opts *Options, std *Streams) (string, error) {
	switch {
	case r.Template != "" && r.File != "":
		return "", ErrInvalidArg.With(
			slog.String("reason", "both template text and --file given"))

	case r.Template != "":
		return r.Template, nil
	}

	name := r.File
	if name == "" {
		name = stdinSource
	}

	if name == stdinSource && opts.readsStdin() {
		return "", ErrInvalidArg.With(
			slog.String("reason", "template and arguments both read from stdin"))
	}

	text, err := readTemplate(std.In, name)
	if err != nil {
		return "", ErrReadSource.Wrap(err).With(slog.String("file", name))
	}

	return text, nil
}
