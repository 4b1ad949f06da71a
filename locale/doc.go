// Package locale renders template argument values as text for a locale and
// timezone.
//
// A [Formatter] decides how a value is shown from the format option of a
// placeholder: plain numbers and strings, percentages, dates and times,
// URL components, enum labels, coordinates, and measurements converted
// through a [units.Service]. The locale specific primitives underneath are
// supplied by a [Facility]:
//
//   - [Neutral] serves the sentinel locale "C" with fixed, non-localized
//     output.
//   - [Intl] serves real BCP 47 locales using golang.org/x/text and
//     github.com/goodsign/monday.
//
// Values a format option cannot handle produce an error wrapping
// [ErrUnsupportedValue].
package locale

import "github.com/ardnew/interp/units"

var _ units.Service = units.Default
