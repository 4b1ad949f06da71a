package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ardnew/interp/interp"
	"github.com/ardnew/interp/log"
	"github.com/ardnew/interp/units"
)

// Check parses and typechecks template files.
type Check struct {
	Files []string `arg:"" help:"Template files or '-' for stdin" name:"file"`
}

// Run executes the check command. Each failing file is reported on a line
// of its own, prefixed with the file name and position.
func (c *Check) Run(ctx context.Context, std *Streams) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	failed := 0

	for _, name := range uniqueFiles(c.Files) {
		if msg := checkFile(std, name); msg != "" {
			failed++

			fmt.Fprintln(std.Out, msg)

			continue
		}

		log.DebugContext(ctx, "template ok", slog.String("file", name))
	}

	if failed > 0 {
		return ErrCheck.With(
			slog.Int("failed", failed),
			slog.Int("files", len(c.Files)),
		)
	}

	return nil
}

// checkFile returns the diagnostic of the named template file, or an empty
// string when it is valid.
func checkFile(std *Streams, name string) string {
	text, err := readTemplate(std.In, name)
	if err != nil {
		return name + ": " + err.Error()
	}

	e, err := interp.Parse(text)
	if err != nil {
		var perr *interp.ParseError
		if errors.As(err, &perr) {
			return fmt.Sprintf("%s:%s: %s\n%s", name, perr.Position, perr.Reason, perr.Snippet())
		}

		return name + ": " + err.Error()
	}

	if err := interp.Typecheck(e, units.Default); err != nil {
		return name + ": " + err.Error()
	}

	return ""
}
