package profile

// Profiler describes a profiling session.
//
// The zero Profiler is disabled; its Start returns a no-op.
type Profiler struct {
	// Mode is one of [Modes]. An empty or unsupported mode disables
	// profiling.
	Mode string
	// Path is the directory profile data is written to. When empty, the
	// current working directory is used.
	Path string
	// Quiet suppresses the messages of the profiler.
	Quiet bool
}

// Option modifies a [Profiler].
type Option func(Profiler) Profiler

// New returns a Profiler configured with opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		if opt != nil {
			p = opt(p)
		}
	}

	return p
}

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet sets whether the profiler is silent.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Enabled reports whether the binary supports profiling at all.
func Enabled() bool { return len(Modes()) > 0 }

// Start begins profiling and returns a handle that stops it.
//
// Start returns a no-op handle if the binary was built without the pprof tag
// or p.Mode is empty or unsupported. Both Start and Stop are always safe to
// call.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
