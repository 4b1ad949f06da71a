package interp

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/ardnew/interp/locale"
	"github.com/ardnew/interp/log"
	"github.com/ardnew/interp/units"
)

// Default option values.
const (
	DefaultLocale          = locale.NeutralTag
	DefaultFailIfMissing   = true
	DefaultNullReplacement = ""
)

// config holds the options of [Compile].
type config struct {
	units           units.Service
	facility        locale.Facility
	enum            locale.EnumFormatter
	logger          log.Logger
	locale          string
	timezone        string
	nullReplacement string
	failIfMissing   bool
}

// Option configures [Compile] and its variants.
type Option func(config) config

func makeConfig(opts ...Option) config {
	cfg := config{
		locale:          DefaultLocale,
		failIfMissing:   DefaultFailIfMissing,
		nullReplacement: DefaultNullReplacement,
	}

	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// WithLocale sets the BCP 47 locale tag; "C" selects neutral formatting.
func WithLocale(tag string) Option {
	return func(c config) config {
		c.locale = tag

		return c
	}
}

// WithTimezone sets the IANA timezone dates and times are shown in.
func WithTimezone(tz string) Option {
	return func(c config) config {
		c.timezone = tz

		return c
	}
}

// WithEnumFormatter overrides the renderer of "enum" values.
func WithEnumFormatter(fn locale.EnumFormatter) Option {
	return func(c config) config {
		c.enum = fn

		return c
	}
}

// WithFailIfMissing controls whether rendering yields no result when every
// value of the template is missing.
func WithFailIfMissing(fail bool) Option {
	return func(c config) config {
		c.failIfMissing = fail

		return c
	}
}

// WithNullReplacement sets the text written in place of missing values.
func WithNullReplacement(s string) Option {
	return func(c config) config {
		c.nullReplacement = s

		return c
	}
}

// WithUnits sets the units service used to validate and convert
// measurements.
func WithUnits(svc units.Service) Option {
	return func(c config) config {
		c.units = svc

		return c
	}
}

// WithFacility overrides the locale primitives used for formatting.
func WithFacility(f locale.Facility) Option {
	return func(c config) config {
		c.facility = f

		return c
	}
}

// WithLogger sets the logger receiving trace messages.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// Template is a compiled template. It is immutable and safe for concurrent
// use.
type Template struct {
	formatter       *locale.Formatter
	logger          log.Logger
	source          string
	nullReplacement string
	expansion       Expansion
	failIfMissing   bool
}

// Compile parses and typechecks template and binds it to a formatter built
// from the options.
func Compile(ctx context.Context, template string, opts ...Option) (*Template, error) {
	return compile(ctx, template, makeConfig(opts...))
}

func compile(ctx context.Context, template string, cfg config) (*Template, error) {
	e, err := Parse(template)
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("source_bytes", len(template)),
		slog.Int("chunks", len(e)))

	if err := Typecheck(e, cfg.units); err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "typecheck complete",
		slog.Int("params", len(e.Params())))

	f, err := locale.New(cfg.locale, cfg.timezone,
		locale.WithEnumFormatter(cfg.enum),
		locale.WithUnits(cfg.units),
		locale.WithFacility(cfg.facility),
	)
	if err != nil {
		return nil, ErrLocale.Wrap(err).With(
			slog.String("locale", cfg.locale),
			slog.String("timezone", cfg.timezone),
		)
	}

	return &Template{
		formatter:       f,
		logger:          cfg.logger,
		source:          template,
		nullReplacement: cfg.nullReplacement,
		expansion:       e,
		failIfMissing:   cfg.failIfMissing,
	}, nil
}

// CompileReader compiles the template read from r.
func CompileReader(ctx context.Context, r io.Reader, opts ...Option) (*Template, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return CompileCached(ctx, string(data), opts...)
}

// Interpolate compiles template and renders it with args. The boolean result
// is false when the template yields no result.
func Interpolate(
	ctx context.Context,
	template string,
	args any,
	opts ...Option,
) (string, bool, error) {
	t, err := Compile(ctx, template, opts...)
	if err != nil {
		return "", false, err
	}

	s, ok := t.RenderContext(ctx, args)

	return s, ok, nil
}

// Render renders t with args, which is converted with [Args]. The boolean
// result is false when the template yields no result.
func (t *Template) Render(args any) (string, bool) {
	return t.RenderContext(log.DefaultContextProvider(), args)
}

// RenderContext is like [Template.Render] and passes ctx to the logger.
func (t *Template) RenderContext(ctx context.Context, args any) (string, bool) {
	r := &renderer{ctx: ctx, tmpl: t, args: Args(args)}

	res := r.expand(t.expansion, t.failIfMissing, false)

	t.logger.TraceContext(ctx, "render complete",
		slog.Bool("ok", res.ok),
		slog.Bool("any_missing", res.anyMissing))

	return res.text, res.ok
}

// Source returns the template text t was compiled from.
func (t *Template) Source() string { return t.source }

// Expansion returns the parsed template.
func (t *Template) Expansion() Expansion { return t.expansion }

// Formatter returns the formatter t renders values with.
func (t *Template) Formatter() *locale.Formatter { return t.formatter }

// String returns the template source.
func (t *Template) String() string { return t.source }
