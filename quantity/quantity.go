// Package quantity provides the runtime value types shared by generated
// quantity code: the generic numeric constraint, directional vector math
// and the physical domain checks that cannot be expressed statically.
//
// Everything here is an immutable value type with structural equality;
// quantities are trivially safe to share across goroutines.
package quantity

import (
	"math"

	"github.com/mensura/mensura/errors"
)

// Float is the numeric storage constraint for generated quantities. A
// single generic definition replaces per-storage duplicate hierarchies.
type Float interface {
	~float32 | ~float64
}

// Valid reports whether a stored value is physically representable:
// neither NaN nor infinite. Sign is a per-dimension concern (only
// dimensions with a hard floor, like Temperature, restrict it).
func Valid[T Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// CheckAbsoluteZero validates a temperature in the base (Kelvin)
// representation. Exactly zero is allowed; below is a domain violation
// regardless of which unit the caller supplied the value in.
func CheckAbsoluteZero[T Float](kelvin T) error {
	if !Valid(kelvin) {
		return errors.Wrapf(errors.ErrDomain, "temperature %v is not a finite value", kelvin)
	}
	if kelvin < 0 {
		return errors.Wrapf(errors.ErrDomain, "temperature %v K is below absolute zero", kelvin)
	}
	return nil
}

// CheckDivisor validates the denominator of a derived calculation
// (focal length from optical power, density division and the like).
func CheckDivisor[T Float](d T) error {
	if d == 0 {
		return errors.Wrap(errors.ErrDomain, "division by zero quantity")
	}
	if !Valid(d) {
		return errors.Wrapf(errors.ErrDomain, "divisor %v is not a finite value", d)
	}
	return nil
}
