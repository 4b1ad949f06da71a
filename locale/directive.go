package locale

//go:generate go tool stringer --linecomment --type ListStyle,PluralType --output directive_string.go

// ListStyle selects how sequence values are joined.
type ListStyle int

const (
	ListNone    ListStyle = iota // none
	Conjunction                  // conjunction
	Disjunction                  // disjunction
)

// ParseListStyle returns the list style named s.
func ParseListStyle(s string) (ListStyle, bool) {
	switch s {
	case Conjunction.String():
		return Conjunction, true

	case Disjunction.String():
		return Disjunction, true

	default:
		return ListNone, false
	}
}

// PluralType selects the CLDR plural rule set.
type PluralType int

const (
	Cardinal PluralType = iota // cardinal
	Ordinal                    // ordinal
)

// NoPrecision marks a directive without an explicit precision, leaving the
// format to apply its own default.
const NoPrecision = -1

// Format options with built-in meaning. Any other non-empty option names a
// unit code.
const (
	OptionPercent = "%"
	OptionISODate = "iso-date"
	OptionDate    = "date"
	OptionTime    = "time"
	OptionURL     = "url"
	OptionEnum    = "enum"
	OptionLat     = "lat"
	OptionLon     = "lon"
)

// Reserved reports whether option is a built-in format option rather than a
// unit code.
func Reserved(option string) bool {
	switch option {
	case "", OptionPercent, OptionISODate, OptionDate, OptionTime, OptionURL,
		OptionEnum, OptionLat, OptionLon:
		return true

	default:
		return false
	}
}

// Directive describes how a single value is rendered.
type Directive struct {
	Param     string
	Option    string
	List      ListStyle
	Precision int
}

func (d Directive) precision(fallback int) int {
	if d.Precision < 0 {
		return fallback
	}

	return d.Precision
}
