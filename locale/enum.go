package locale

import (
	"regexp"
	"strings"
)

// EnumFormatter renders the enum value of the placeholder named param.
type EnumFormatter func(value, param string) string

var (
	enumPrefix = regexp.MustCompile(`^[vwgp]_`)
	enumCamel  = regexp.MustCompile(`([^A-Z ])([A-Z])`)
)

// Clean turns an enum identifier into a lowercase label: a leading "v_",
// "w_", "g_" or "p_" is dropped, underscores become spaces and camel case
// humps are split.
//
//	Clean("v_onFire")    // "on fire"
//	Clean("LOW_BATTERY") // "low battery"
func Clean(name string) string {
	name = enumPrefix.ReplaceAllLiteralString(name, "")
	name = strings.ReplaceAll(name, "_", " ")
	name = enumCamel.ReplaceAllString(name, "$1 $2")

	return strings.ToLower(name)
}

func cleanEnum(value, _ string) string { return Clean(value) }
