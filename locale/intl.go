package locale

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ardnew/interp/value"
)

// Layouts used by [Intl] when no locale specific layout is known.
const (
	FallbackDateLayout = "Monday, January 2, 2006"
	TimeLayout12       = "3:04:05 PM MST"
	TimeLayout24       = "15:04:05 MST"
)

// Intl is the [Facility] of a real locale, built on golang.org/x/text for
// numbers and plural rules and on monday for translated date names.
type Intl struct {
	tag     language.Tag
	printer *message.Printer
	names   monday.Locale
	list    listPattern
	native  bool
	hour12  bool
}

// NewIntl returns the facility bound to tag.
func NewIntl(tag language.Tag) *Intl {
	base, _ := tag.Base()
	region, _ := tag.Region()

	list, native := listPatterns[base.String()]

	return &Intl{
		tag:     tag,
		printer: message.NewPrinter(tag),
		names:   mondayLocale(base.String(), region.String()),
		list:    list,
		native:  native,
		hour12:  base.String() == "en" && region.String() != "GB" && region.String() != "IE",
	}
}

func (f *Intl) Tag() language.Tag { return f.tag }

// FormatNumber renders n with locale grouping and between zero and precision
// fraction digits.
func (f *Intl) FormatNumber(n float64, precision int) string {
	return f.printer.Sprint(number.Decimal(n,
		number.MinFractionDigits(0),
		number.MaxFractionDigits(precision),
	))
}

func (f *Intl) FormatList(items []string, style ListStyle) string {
	if !f.native {
		return strings.Join(items, ", ")
	}

	return f.list.join(items, style)
}

func (f *Intl) FormatDate(t time.Time) string {
	layout, ok := monday.FullFormatsByLocale[f.names]
	if !ok {
		layout = FallbackDateLayout
	}

	return monday.Format(t, layout, f.names)
}

func (f *Intl) FormatTime(t time.Time) string {
	layout := TimeLayout24
	if f.hour12 {
		layout = TimeLayout12
	}

	return monday.Format(t, layout, f.names)
}

func (f *Intl) FormatDateTime(t time.Time) string {
	return f.FormatDate(t) + " " + f.FormatTime(t)
}

// PluralCategory selects the CLDR category of n using the operands of its
// shortest decimal representation.
func (f *Intl) PluralCategory(n float64, t PluralType) string {
	rules := plural.Cardinal
	if t == Ordinal {
		rules = plural.Ordinal
	}

	i, v, w, fr, tr := operands(n)

	return category(rules.MatchPlural(f.tag, i, v, w, fr, tr))
}

func (f *Intl) FormatAny(v any) string {
	if t, ok := value.Time(v); ok {
		return f.FormatDateTime(t)
	}

	return value.String(v)
}

// operands computes the CLDR plural operands of n: the integer digits i, the
// count of visible fraction digits v and w, and those digits as integers f
// and t. The shortest representation has no trailing zeros, so v == w and
// f == t.
func operands(n float64) (i, v, w, f, t int) {
	s := strconv.FormatFloat(math.Abs(n), 'f', -1, 64)
	ip, fp, _ := strings.Cut(s, ".")

	// rules only inspect i modulo powers of ten up to a million
	if len(ip) > 9 {
		ip = "1" + ip[len(ip)-9:]
	}

	i, _ = strconv.Atoi(ip)

	if len(fp) > 15 {
		fp = fp[:15]
	}

	if fp != "" {
		f, _ = strconv.Atoi(fp)
	}

	return i, len(fp), len(fp), f, f
}

func category(form plural.Form) string {
	switch form {
	case plural.Zero:
		return CategoryZero

	case plural.One:
		return CategoryOne

	case plural.Two:
		return CategoryTwo

	case plural.Few:
		return CategoryFew

	case plural.Many:
		return CategoryMany

	default:
		return CategoryOther
	}
}

//nolint:gochecknoglobals
var mondayLocales = sync.OnceValue(func() map[monday.Locale]bool {
	set := make(map[monday.Locale]bool)
	for _, loc := range monday.ListLocales() {
		set[loc] = true
	}

	return set
})

// mondayLocale picks the monday locale for a language and region, trying
// the exact pair, then the language's home region, then any region of the
// language.
func mondayLocale(base, region string) monday.Locale {
	known := mondayLocales()

	for _, candidate := range []monday.Locale{
		monday.Locale(base + "_" + region),
		monday.Locale(base + "_" + strings.ToUpper(base)),
	} {
		if known[candidate] {
			return candidate
		}
	}

	for _, loc := range monday.ListLocales() {
		if strings.HasPrefix(string(loc), base+"_") {
			return loc
		}
	}

	return monday.LocaleEnUS
}
