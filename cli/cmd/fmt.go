package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/interp/interp"
)

// Fmt parses a template and prints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Print canonical template text (default)."`
	JSON   JSON   `cmd:""                    help:"Print the template tree as JSON."`
	YAML   YAML   `cmd:""                    help:"Print the template tree as YAML."`
}

// source is the positional template file of the fmt subcommands.
type source struct {
	Source string `arg:"" default:"-" help:"Template file or '-' for default stdin." name:"source"`
}

func (s source) parse(std *Streams, format string) (interp.Expansion, error) {
	text, err := readTemplate(std.In, s.Source)
	if err != nil {
		return nil, ErrReadSource.Wrap(err).With(slog.String("file", s.Source))
	}

	e, err := interp.Parse(text)
	if err != nil {
		return nil, interp.WrapError(err).
			With(slog.String("format", format))
	}

	return e, nil
}

// Native formats input as canonical template text.
type Native struct {
	source
}

// Run executes the native subcommand.
func (n *Native) Run(ctx context.Context, std *Streams) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	e, err := n.parse(std, "native")
	if err != nil {
		return err
	}

	return e.Format(ctx, std.Out)
}

// JSON formats input as a JSON tree.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output; 0 for compact" short:"i"`

	source
}

// Run executes the json subcommand.
func (j *JSON) Run(ctx context.Context, std *Streams) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	e, err := j.parse(std, "json")
	if err != nil {
		return err
	}

	return e.FormatJSON(ctx, std.Out, j.Indent)
}

// YAML formats input as a YAML tree.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output; 0 for flow style" short:"i"`

	source
}

// Run executes the yaml subcommand.
func (y *YAML) Run(ctx context.Context, std *Streams) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	e, err := y.parse(std, "yaml")
	if err != nil {
		return err
	}

	return e.FormatYAML(ctx, std.Out, y.Indent)
}
