package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/interp/cli/cmd"
	"github.com/ardnew/interp/pkg"
)

// CLI is the top-level command-line interface for interp.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Options cmd.Options `embed:"" group:"render"`

	Render  cmd.Render  `cmd:"" default:"withargs" help:"Render a template (default)"`
	Check   cmd.Check   `cmd:""                    help:"Check template syntax and units"`
	Fmt     cmd.Fmt     `cmd:""                    help:"Format templates"`
	Repl    cmd.Repl    `cmd:""                    help:"Render templates interactively"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
	Version cmd.Version `cmd:""                    help:"Print version"`
}

// Run executes the interp CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, exit, cmd.StdStreams(), userDirs(), args)
}

func run(
	ctx context.Context,
	exit func(code int),
	std *cmd.Streams,
	dir dirs,
	args []string,
) error {
	var cli CLI

	err := dir.mkdirAll()
	if err != nil {
		return err
	}

	configFilePath := dir.configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  dir.cache,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars(dir))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(std.Out, std.Err),
		kong.ExplicitGroups([]kong.Group{
			{Key: "render", Title: "Rendering options"},
			cli.Log.group(),
			cli.Pprof.group(),
		}),
		kong.DefaultEnvars(pkg.EnvPrefix()),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.Bind(&cli.Options, std),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, dir.configPath(baseConfig+".json")),
		kong.Configuration(loadYAML, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// TimeLayout and Caller have no TextUnmarshaler; apply everything now.
	cli.Log.start(ctx)

	// no-op unless built with tag pprof and a mode is selected
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
