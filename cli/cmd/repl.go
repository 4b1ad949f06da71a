package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/interp/cli/cmd/repl"
	"github.com/ardnew/interp/log"
)

// Repl renders templates interactively.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, opts *Options, std *Streams) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if opts.readsStdin() {
		return ErrInvalidArg.With(
			slog.String("reason", "the REPL reads its input from stdin"))
	}

	args, err := opts.Arguments(std.In)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	logger := log.With(slog.String("command", "repl"))

	return repl.Run(ctx, repl.Config{
		Args:     args,
		Assign:   assign,
		Options:  opts.compileOptions(logger),
		CacheDir: cacheDir,
		Logger:   logger,
		Input:    std.In,
		Output:   std.Out,
	})
}
