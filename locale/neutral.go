package locale

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"github.com/ardnew/interp/value"
)

// Layouts used by the neutral locale.
const (
	NeutralDateLayout = "Mon Jan 02 2006"
	NeutralTimeLayout = "15:04:05 GMT-0700 (MST)"
	ISODateLayout     = "2006-01-02T15:04:05.000Z"
)

// Neutral is the facility of the sentinel "C" locale. Its output does not
// depend on any locale data, which makes it the deterministic baseline for
// tests and for templates rendered without a configured locale.
type Neutral struct{}

func (Neutral) Tag() language.Tag { return language.Und }

// FormatNumber renders integers without a decimal point and any other value
// with exactly precision fraction digits.
func (Neutral) FormatNumber(n float64, precision int) string {
	if math.IsInf(n, 0) || n == math.Trunc(n) {
		return value.FormatFloat(n)
	}

	return strconv.FormatFloat(n, 'f', precision, 64)
}

func (Neutral) FormatList(items []string, style ListStyle) string {
	return englishList(items, style)
}

func (Neutral) FormatDate(t time.Time) string {
	return t.Format(NeutralDateLayout)
}

func (Neutral) FormatTime(t time.Time) string {
	return t.Format(NeutralTimeLayout)
}

func (Neutral) FormatDateTime(t time.Time) string {
	return t.UTC().Format(ISODateLayout)
}

// PluralCategory returns "one" for exactly 1 and "other" for anything else.
func (Neutral) PluralCategory(n float64, _ PluralType) string {
	if n == 1 {
		return CategoryOne
	}

	return CategoryOther
}

func (f Neutral) FormatAny(v any) string {
	if t, ok := value.Time(v); ok {
		return f.FormatDateTime(t)
	}

	return value.String(v)
}
