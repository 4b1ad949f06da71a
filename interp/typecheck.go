package interp

import (
	"github.com/ardnew/interp/locale"
	"github.com/ardnew/interp/units"
)

// Typecheck verifies that every placeholder option in e, including those in
// defaults, optional spans and variants, is either a built-in format option
// or a unit code accepted by svc. Parameters are not checked.
//
// The first failure is returned as an *[InvalidUnitError].
func Typecheck(e Expansion, svc units.Service) error {
	if svc == nil {
		svc = units.Default
	}

	for c := range e.Walk() {
		ph, ok := c.(Placeholder)
		if !ok || locale.Reserved(ph.Option) {
			continue
		}

		if _, err := svc.Normalize(ph.Option); err != nil {
			return &InvalidUnitError{Unit: ph.Option, Param: ph.Param, Err: err}
		}
	}

	return nil
}
