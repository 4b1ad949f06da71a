// Package profile provides optional runtime profiling for the interp
// command.
//
// Profiling is built on [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag [Modes] is empty and [Profiler.Start] returns a no-op, so
// callers never need to check which build they run in.
//
// # Modes
//
// With the tag, the following modes are available:
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking on synchronization primitives
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine stacks
//   - heap:      live heap allocations
//   - mem:       general memory profiling
//   - mutex:     mutex contention
//   - thread:    thread creation
//   - trace:     execution tracer
//
// # Usage
//
//	p := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/profiles"))
//	defer p.Start().Stop()
//
// From the command line:
//
//	interp --pprof-mode=cpu --pprof-dir=./profiles render '${n}' --set n=1
//	go tool pprof ./profiles/cpu.pprof
//
// The default output directory is the "pprof" subdirectory of the user cache
// directory of the command, for example $XDG_CACHE_HOME/interp/pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
