package locale

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/ardnew/interp/pkg"
	"github.com/ardnew/interp/units"
	"github.com/ardnew/interp/value"
)

// NeutralTag is the sentinel locale selecting the [Neutral] facility.
const NeutralTag = "C"

var (
	ErrInvalidLocale    = pkg.NewError("invalid locale")
	ErrInvalidTimezone  = pkg.NewError("invalid timezone")
	ErrUnsupportedValue = pkg.NewError("unsupported value for format")
)

// LocaleStringer is implemented by values that know how to render
// themselves for a locale.
type LocaleStringer interface {
	LocaleString(tag language.Tag) string
}

// Formatter converts argument values to text for one locale and timezone.
// It is immutable and safe for concurrent use.
type Formatter struct {
	facility Facility
	units    units.Service
	enum     EnumFormatter
	location *time.Location
	tag      string
}

// New returns a formatter for the BCP 47 locale tag and the IANA timezone.
// An empty tag or "C" selects the neutral locale. An empty timezone keeps
// the value's own location under the neutral locale and uses UTC otherwise.
func New(tag, timezone string, opts ...Option) (*Formatter, error) {
	cfg := apply(config{enum: cleanEnum, units: units.Default}, opts...)

	f := &Formatter{
		facility: cfg.facility,
		units:    cfg.units,
		enum:     cfg.enum,
		tag:      tag,
	}

	if tag == "" {
		f.tag = NeutralTag
	}

	if f.facility == nil {
		if f.Neutral() {
			f.facility = Neutral{}
		} else {
			lt, err := language.Parse(tag)
			if err != nil {
				return nil, ErrInvalidLocale.Wrap(err).With(slog.String("locale", tag))
			}

			f.facility = NewIntl(lt)
		}
	}

	switch {
	case timezone != "":
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, ErrInvalidTimezone.Wrap(err).
				With(slog.String("timezone", timezone))
		}

		f.location = loc

	case !f.Neutral():
		f.location = time.UTC
	}

	return f, nil
}

// Neutral reports whether f formats for the sentinel "C" locale.
func (f *Formatter) Neutral() bool { return f.tag == NeutralTag }

// Locale returns the locale tag f was built with.
func (f *Formatter) Locale() string { return f.tag }

// Facility returns the primitives f delegates to.
func (f *Formatter) Facility() Facility { return f.facility }

// PluralCategory returns the CLDR plural category of n.
func (f *Formatter) PluralCategory(n float64, t PluralType) string {
	return f.facility.PluralCategory(n, t)
}

// FormatNumber renders n with at most precision fraction digits.
func (f *Formatter) FormatNumber(n float64, precision int) string {
	return f.facility.FormatNumber(n, precision)
}

// FormatDateTime renders both the date and the time of t, as ISO 8601 in
// the neutral locale.
func (f *Formatter) FormatDateTime(t time.Time) string {
	return f.facility.FormatDateTime(f.in(t))
}

// FormatValue renders v as directed by d. Sequences are formatted element by
// element and joined with d.List; nullish elements are skipped.
//
// An error wrapping [ErrUnsupportedValue] is returned when v cannot be
// rendered with d.Option, such as a date format applied to a string.
func (f *Formatter) FormatValue(v any, d Directive) (string, error) {
	if seq, ok := value.Sequence(v); ok {
		items := make([]string, 0, len(seq))

		for _, elem := range seq {
			if value.Nullish(elem) {
				continue
			}

			s, err := f.FormatValue(elem, d)
			if err != nil {
				return "", err
			}

			items = append(items, s)
		}

		return f.facility.FormatList(items, d.List), nil
	}

	switch d.Option {
	case "":
		return f.fallback(v, d.precision(2)), nil

	case OptionPercent:
		n, ok := value.Number(v)
		if !ok {
			return "", unsupported(v, d)
		}

		return f.facility.FormatNumber(n*100, d.precision(2)), nil

	case OptionISODate:
		t, ok := value.Time(v)
		if !ok {
			return "", unsupported(v, d)
		}

		return t.UTC().Format(ISODateLayout), nil

	case OptionDate:
		t, ok := value.Time(v)
		if !ok {
			return "", unsupported(v, d)
		}

		return f.facility.FormatDate(f.in(t)), nil

	case OptionTime:
		t, ok := value.Time(v)
		if !ok {
			return "", unsupported(v, d)
		}

		return f.facility.FormatTime(f.in(t)), nil

	case OptionURL:
		return EscapeComponent(value.String(v)), nil

	case OptionEnum:
		return f.enum(value.String(v), d.Param), nil

	case OptionLat, OptionLon:
		c, ok := value.Field(v, d.Option)
		if !ok || value.Nullish(c) {
			return "", unsupported(v, d)
		}

		return f.fallback(c, d.precision(2)), nil

	default:
		return f.measure(v, d)
	}
}

func (f *Formatter) measure(v any, d Directive) (string, error) {
	n, ok := value.Number(v)
	if !ok {
		return "", unsupported(v, d)
	}

	n, err := f.units.FromBase(n, d.Option)
	if err != nil {
		return "", ErrUnsupportedValue.Wrap(err).
			With(slog.String("param", d.Param))
	}

	return f.facility.FormatNumber(n, d.precision(0)), nil
}

// fallback renders v without a format option: numbers use the locale number
// format, then a LocaleString method, then a non-empty display member, and
// finally the facility's generic rendering.
func (f *Formatter) fallback(v any, precision int) string {
	if n, ok := value.Number(v); ok {
		return f.facility.FormatNumber(n, precision)
	}

	if ls, ok := v.(LocaleStringer); ok {
		return ls.LocaleString(f.facility.Tag())
	}

	if _, isTime := value.Time(v); !isTime {
		if d, ok := value.Field(v, "display"); ok && truthy(d) {
			return value.String(d)
		}
	}

	return f.facility.FormatAny(f.convert(v))
}

func (f *Formatter) convert(v any) any {
	if t, ok := value.Time(v); ok {
		return f.in(t)
	}

	return v
}

func (f *Formatter) in(t time.Time) time.Time {
	if f.location == nil {
		return t
	}

	return t.In(f.location)
}

func truthy(v any) bool {
	if value.Nullish(v) {
		return false
	}

	if b, ok := v.(bool); ok {
		return b
	}

	if n, ok := value.Number(v); ok {
		return n != 0
	}

	return true
}

func unsupported(v any, d Directive) error {
	return ErrUnsupportedValue.
		Wrap(fmt.Errorf("%q cannot format %T", d.Option, v)).
		With(slog.String("param", d.Param))
}
