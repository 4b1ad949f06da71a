package locale

import (
	"time"

	"golang.org/x/text/language"
)

// Facility is the set of locale-aware primitives a [Formatter] is built on.
// A Facility is bound to a single locale. Times passed to it have already
// been converted to the formatter's timezone.
type Facility interface {
	// Tag returns the bound locale, or [language.Und] for the neutral locale.
	Tag() language.Tag
	// FormatNumber renders n with at most precision fraction digits.
	FormatNumber(n float64, precision int) string
	// FormatList joins already formatted items.
	FormatList(items []string, style ListStyle) string
	// FormatDate renders the date portion of t.
	FormatDate(t time.Time) string
	// FormatTime renders the time-of-day portion of t.
	FormatTime(t time.Time) string
	// FormatDateTime renders both the date and the time of t.
	FormatDateTime(t time.Time) string
	// PluralCategory returns the CLDR plural category of n.
	PluralCategory(n float64, t PluralType) string
	// FormatAny renders a value no other rule applies to.
	FormatAny(v any) string
}

// Plural categories defined by CLDR.
const (
	CategoryZero  = "zero"
	CategoryOne   = "one"
	CategoryTwo   = "two"
	CategoryFew   = "few"
	CategoryMany  = "many"
	CategoryOther = "other"
)

// IsCategory reports whether s names a CLDR plural category.
func IsCategory(s string) bool {
	switch s {
	case CategoryZero, CategoryOne, CategoryTwo, CategoryFew, CategoryMany,
		CategoryOther:
		return true

	default:
		return false
	}
}
