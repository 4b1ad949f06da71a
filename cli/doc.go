// Package cli contains the command line interface for interp.
//
// # Usage
//
//	interp [flags] TEMPLATE             render TEMPLATE (default command)
//	interp render [-f FILE] [TEMPLATE]  render text, a file, or stdin
//	interp check FILE...                report syntax and unit errors
//	interp fmt [native|json|yaml] [FILE]
//	interp repl                         interactive rendering
//	interp init [--force]               write the configuration file
//	interp version [--short]
//
// Arguments come from YAML or JSON files given with --args and from
// --set KEY=EXPR assignments evaluated with [github.com/expr-lang/expr]:
//
//	interp -a user.yaml --set 'n=len(user.mail)' \
//		'${user.name} has ${n:plural:one{a message} other{$n messages}}'
//
// # Configuration
//
// Flag defaults are read from config.yaml and config.json in the
// configuration directory. YAML keys are flag names; nested mappings are
// joined with '-', so "log: {level: debug}" sets --log-level. Every flag can
// also be set from an environment variable named after the executable, such
// as INTERP_LOCALE. Command-line flags take precedence.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize text output on terminals
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o interp .
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread or trace
//   - --pprof-dir: profile output directory (default: the pprof directory
//     in the cache directory)
package cli
