package locale

import "strings"

type listPattern struct {
	and, or string
	serial  bool
}

// listPatterns holds the CLDR "standard" and "or" list patterns for the
// languages joined natively. Other languages fall back to a comma join.
//
//nolint:gochecknoglobals
var listPatterns = map[string]listPattern{
	"en": {and: "and", or: "or", serial: true},
	"de": {and: "und", or: "oder"},
	"es": {and: "y", or: "o"},
	"fr": {and: "et", or: "ou"},
	"it": {and: "e", or: "o"},
	"nl": {and: "en", or: "of"},
	"pt": {and: "e", or: "ou"},
}

func englishList(items []string, style ListStyle) string {
	return listPatterns["en"].join(items, style)
}

func (p listPattern) join(items []string, style ListStyle) string {
	word := p.and
	if style == Disjunction {
		word = p.or
	}

	switch n := len(items); n {
	case 0:
		return ""

	case 1:
		return items[0]

	case 2:
		return items[0] + " " + word + " " + items[1]

	default:
		sep := " "
		if p.serial {
			sep = ", "
		}

		return strings.Join(items[:n-1], ", ") + sep + word + " " + items[n-1]
	}
}
