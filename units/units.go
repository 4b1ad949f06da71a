// Package units converts measurements between a canonical base unit and the
// unit codes that templates request for display.
//
// Every measurement travels through templates in its base unit (meters,
// milliseconds, kilograms, Celsius, ...). A placeholder such as ${d:km}
// asks for the value to be shown in kilometers, which requires a [Service]
// that knows the code "km" and how to derive it from the base unit "m".
package units

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/interp/pkg"
)

var (
	// ErrUnknownUnit is returned for unit codes absent from the table.
	ErrUnknownUnit = pkg.NewError("unknown unit")
	// ErrIncompatible is returned when converting between units of
	// different dimensions.
	ErrIncompatible = pkg.NewError("incompatible units")
)

// Service is the units collaborator consumed by the formatter and the
// template typechecker.
type Service interface {
	// Normalize returns the base unit of code, failing for unknown codes.
	Normalize(code string) (string, error)
	// FromBase converts value, given in the base unit of code, to code.
	FromBase(value float64, code string) (float64, error)
}

// Unit describes one code of a [Table]: a value v in this unit equals
// v*Scale + Offset in Base.
type Unit struct {
	Base   string
	Scale  float64
	Offset float64
}

// Table is a [Service] backed by a static map of unit codes.
type Table map[string]Unit

// Default is the unit table used when no other [Service] is configured.
//
//nolint:gochecknoglobals
var Default = Table{
	// time
	"ms":   {"ms", 1, 0},
	"s":    {"ms", 1000, 0},
	"min":  {"ms", 60 * 1000, 0},
	"h":    {"ms", 3600 * 1000, 0},
	"day":  {"ms", 86400 * 1000, 0},
	"week": {"ms", 7 * 86400 * 1000, 0},
	"mon":  {"ms", 30 * 86400 * 1000, 0},
	"year": {"ms", 365 * 86400 * 1000, 0},

	// length
	"m":  {"m", 1, 0},
	"km": {"m", 1000, 0},
	"mm": {"m", 0.001, 0},
	"cm": {"m", 0.01, 0},
	"mi": {"m", 1609.344, 0},
	"in": {"m", 0.0254, 0},
	"ft": {"m", 0.3048, 0},
	"yd": {"m", 0.9144, 0},

	// area
	"m2":  {"m2", 1, 0},
	"km2": {"m2", 1000 * 1000, 0},
	"mm2": {"m2", 0.001 * 0.001, 0},
	"cm2": {"m2", 0.01 * 0.01, 0},
	"mi2": {"m2", 1609.344 * 1609.344, 0},
	"in2": {"m2", 0.0254 * 0.0254, 0},
	"ft2": {"m2", 0.3048 * 0.3048, 0},

	// volume
	"m3":     {"m3", 1, 0},
	"km3":    {"m3", 1e9, 0},
	"mm3":    {"m3", 1e-9, 0},
	"cm3":    {"m3", 1e-6, 0},
	"in3":    {"m3", 0.0254 * 0.0254 * 0.0254, 0},
	"ft3":    {"m3", 0.3048 * 0.3048 * 0.3048, 0},
	"l":      {"m3", 0.001, 0},
	"hl":     {"m3", 0.1, 0},
	"cl":     {"m3", 0.00001, 0},
	"ml":     {"m3", 0.000001, 0},
	"gal":    {"m3", 0.00378541, 0},
	"galuk":  {"m3", 0.00454609, 0},
	"qt":     {"m3", 0.000946353, 0},
	"qtuk":   {"m3", 0.00113652, 0},
	"pint":   {"m3", 0.000473176, 0},
	"pintuk": {"m3", 0.000568261, 0},
	"cup":    {"m3", 0.000236588, 0},
	"floz":   {"m3", 0.0000295735, 0},
	"tbsp":   {"m3", 0.0000147868, 0},
	"tsp":    {"m3", 0.00000492892, 0},

	// speed
	"mps":  {"mps", 1, 0},
	"kmph": {"mps", 1000.0 / 3600, 0},
	"mph":  {"mps", 1609.344 / 3600, 0},

	// mass
	"kg": {"kg", 1, 0},
	"g":  {"kg", 0.001, 0},
	"mg": {"kg", 0.000001, 0},
	"lb": {"kg", 0.45359237, 0},
	"oz": {"kg", 0.028349523125, 0},

	// pressure
	"Pa":   {"Pa", 1, 0},
	"bar":  {"Pa", 100000, 0},
	"psi":  {"Pa", 6894.757293168, 0},
	"mmHg": {"Pa", 133.322387415, 0},
	"inHg": {"Pa", 3386.388, 0},
	"atm":  {"Pa", 101325, 0},

	// temperature
	"C": {"C", 1, 0},
	"F": {"C", 5.0 / 9, -32 * 5.0 / 9},
	"K": {"C", 1, -273.15},

	// energy
	"kcal": {"kcal", 1, 0},
	"kJ":   {"kcal", 1 / 4.184, 0},

	// power
	"W":  {"W", 1, 0},
	"kW": {"W", 1000, 0},

	// data
	"byte": {"byte", 1, 0},
	"KB":   {"byte", 1000, 0},
	"MB":   {"byte", 1000 * 1000, 0},
	"GB":   {"byte", 1000 * 1000 * 1000, 0},
	"TB":   {"byte", 1000 * 1000 * 1000 * 1000, 0},
	"KiB":  {"byte", 1 << 10, 0},
	"MiB":  {"byte", 1 << 20, 0},
	"GiB":  {"byte", 1 << 30, 0},
	"TiB":  {"byte", 1 << 40, 0},

	// light
	"lm": {"lm", 1, 0},
	"lx": {"lx", 1, 0},

	// sound
	"dB":  {"dB", 1, 0},
	"dBm": {"dBm", 1, 0},
}

// Lookup returns the table entry for code.
func (t Table) Lookup(code string) (Unit, error) {
	u, ok := t[code]
	if !ok {
		return Unit{}, ErrUnknownUnit.
			Wrap(fmt.Errorf("%q", code)).
			With(slog.String("unit", code))
	}

	return u, nil
}

// Normalize returns the base unit of code.
func (t Table) Normalize(code string) (string, error) {
	u, err := t.Lookup(code)
	if err != nil {
		return "", err
	}

	return u.Base, nil
}

// FromBase converts value from the base unit of code to code.
func (t Table) FromBase(value float64, code string) (float64, error) {
	u, err := t.Lookup(code)
	if err != nil {
		return 0, err
	}

	return (value - u.Offset) / u.Scale, nil
}

// ToBase converts value from code to its base unit.
func (t Table) ToBase(value float64, code string) (float64, error) {
	u, err := t.Lookup(code)
	if err != nil {
		return 0, err
	}

	return value*u.Scale + u.Offset, nil
}

// Convert converts value between two codes of the same dimension.
func (t Table) Convert(value float64, from, to string) (float64, error) {
	src, err := t.Lookup(from)
	if err != nil {
		return 0, err
	}

	dst, err := t.Lookup(to)
	if err != nil {
		return 0, err
	}

	if src.Base != dst.Base {
		return 0, ErrIncompatible.With(
			slog.String("from", from),
			slog.String("to", to),
		)
	}

	return (value*src.Scale + src.Offset - dst.Offset) / dst.Scale, nil
}

// Codes returns the sorted unit codes sharing the base unit base, or all
// codes when base is empty.
func (t Table) Codes(base string) []string {
	codes := make([]string, 0, len(t))

	for code := range maps.Keys(t) {
		if base == "" || t[code].Base == base {
			codes = append(codes, code)
		}
	}

	slices.Sort(codes)

	return codes
}
