// Package algebra implements the dimension algebra engine: exponent
// vectors over the seven base dimensions, component-wise products and
// quotients, and the two-phase registry that resolves a catalog's
// dimensions into a closed, consistent graph.
package algebra

import (
	"fmt"
	"sort"
	"strings"
)

// Base-dimension keys recognized in exponent maps.
const (
	BaseMass        = "mass"
	BaseLength      = "length"
	BaseTime        = "time"
	BaseTemperature = "temperature"
	BaseCurrent     = "current"
	BaseAmount      = "amount"
	BaseLuminosity  = "luminosity"
)

// BaseKeys is the canonical ordering of the seven base dimensions.
var BaseKeys = []string{
	BaseMass,
	BaseLength,
	BaseTime,
	BaseTemperature,
	BaseCurrent,
	BaseAmount,
	BaseLuminosity,
}

// baseSymbols follows the ISO 80000 dimension symbols.
var baseSymbols = map[string]string{
	BaseMass:        "M",
	BaseLength:      "L",
	BaseTime:        "T",
	BaseTemperature: "Θ",
	BaseCurrent:     "I",
	BaseAmount:      "N",
	BaseLuminosity:  "J",
}

// Exponents is a dimension's exponent vector over the seven base
// dimensions. It is a comparable value type: two dimensions are equal iff
// their Exponents compare equal, and the zero value is Dimensionless.
type Exponents struct {
	Mass        int
	Length      int
	Time        int
	Temperature int
	Current     int
	Amount      int
	Luminosity  int
}

// FromMap builds an Exponents vector from a raw metadata exponent map.
// Unrecognized keys are an error naming every offending key; absent keys
// are zero.
func FromMap(m map[string]int) (Exponents, error) {
	var e Exponents
	var bad []string
	for key, value := range m {
		switch key {
		case BaseMass:
			e.Mass = value
		case BaseLength:
			e.Length = value
		case BaseTime:
			e.Time = value
		case BaseTemperature:
			e.Temperature = value
		case BaseCurrent:
			e.Current = value
		case BaseAmount:
			e.Amount = value
		case BaseLuminosity:
			e.Luminosity = value
		default:
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return Exponents{}, fmt.Errorf("unrecognized base-dimension key(s): %s", strings.Join(bad, ", "))
	}
	return e, nil
}

// Get returns the exponent for a base key; unknown keys return 0.
func (e Exponents) Get(key string) int {
	switch key {
	case BaseMass:
		return e.Mass
	case BaseLength:
		return e.Length
	case BaseTime:
		return e.Time
	case BaseTemperature:
		return e.Temperature
	case BaseCurrent:
		return e.Current
	case BaseAmount:
		return e.Amount
	case BaseLuminosity:
		return e.Luminosity
	}
	return 0
}

// Add returns the component-wise sum: the exponents of a product
// dimension.
func (e Exponents) Add(o Exponents) Exponents {
	return Exponents{
		Mass:        e.Mass + o.Mass,
		Length:      e.Length + o.Length,
		Time:        e.Time + o.Time,
		Temperature: e.Temperature + o.Temperature,
		Current:     e.Current + o.Current,
		Amount:      e.Amount + o.Amount,
		Luminosity:  e.Luminosity + o.Luminosity,
	}
}

// Sub returns the component-wise difference: the exponents of a quotient
// dimension.
func (e Exponents) Sub(o Exponents) Exponents {
	return e.Add(o.Neg())
}

// Neg returns the component-wise negation: the reciprocal dimension.
func (e Exponents) Neg() Exponents {
	return Exponents{
		Mass:        -e.Mass,
		Length:      -e.Length,
		Time:        -e.Time,
		Temperature: -e.Temperature,
		Current:     -e.Current,
		Amount:      -e.Amount,
		Luminosity:  -e.Luminosity,
	}
}

// IsZero reports whether e is the dimensionless (identity) vector.
func (e Exponents) IsZero() bool {
	return e == Exponents{}
}

// String renders the vector in dimension-symbol form, e.g. "M L2 T-2".
// The zero vector renders as "1".
func (e Exponents) String() string {
	var parts []string
	for _, key := range BaseKeys {
		exp := e.Get(key)
		if exp == 0 {
			continue
		}
		if exp == 1 {
			parts = append(parts, baseSymbols[key])
		} else {
			parts = append(parts, fmt.Sprintf("%s%d", baseSymbols[key], exp))
		}
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " ")
}

// Op is a binary dimensional operator.
type Op string

const (
	OpMul Op = "*"
	OpDiv Op = "/"
)

// Apply combines two exponent vectors under the operator.
func (op Op) Apply(a, b Exponents) Exponents {
	if op == OpDiv {
		return a.Sub(b)
	}
	return a.Add(b)
}
