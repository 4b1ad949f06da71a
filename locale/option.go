package locale

import "github.com/ardnew/interp/units"

type config struct {
	enum     EnumFormatter
	units    units.Service
	facility Facility
}

// Option configures a [Formatter] built with [New].
type Option func(config) config

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// WithEnumFormatter replaces [Clean] as the renderer of "enum" values.
func WithEnumFormatter(fn EnumFormatter) Option {
	return func(c config) config {
		if fn != nil {
			c.enum = fn
		}

		return c
	}
}

// WithUnits sets the service used for measurement conversion.
func WithUnits(svc units.Service) Option {
	return func(c config) config {
		if svc != nil {
			c.units = svc
		}

		return c
	}
}

// WithFacility overrides the locale primitives the formatter delegates to.
// The locale tag given to [New] is then only used to decide whether the
// formatter is neutral.
func WithFacility(f Facility) Option {
	return func(c config) config {
		c.facility = f

		return c
	}
}
