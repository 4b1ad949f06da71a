// Package cmd implements the subcommands of the interp command line:
// render, check, fmt, init, repl and version.
//
// Commands are [github.com/alecthomas/kong] command structs. Their Run
// methods receive the [context.Context], the shared [Options] and the
// [Streams] bound by package cli.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
