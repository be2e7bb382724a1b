// Package units resolves unit conversion factors against each dimension's
// SI-coherent reference unit and performs base/round-trip conversions.
//
// Every unit is expressed relative to its dimension's reference unit as
// base = value*Factor + Offset. The offset is only non-zero for affine
// scales (Celsius, Fahrenheit).
package units

import (
	"sort"

	"github.com/mensura/mensura/algebra"
	"github.com/mensura/mensura/errors"
	"github.com/mensura/mensura/schema"
)

// Unit is a resolved unit: the catalog definition bound to its owning
// dimension.
type Unit struct {
	Name      string
	Symbol    string
	System    string
	Factor    float64
	Offset    float64
	Dimension string
}

// IsReference reports whether the unit is its dimension's SI-coherent
// reference (factor 1, offset 0).
func (u Unit) IsReference() bool {
	return u.Factor == 1 && u.Offset == 0
}

// ToBase converts a value in this unit to the dimension's base
// representation.
func (u Unit) ToBase(v float64) float64 {
	return v*u.Factor + u.Offset
}

// FromBase converts a base-representation value into this unit.
func (u Unit) FromBase(base float64) float64 {
	return (base - u.Offset) / u.Factor
}

// Convert converts v from one unit to another of the same dimension.
// Mixing dimensions is a generation-time type error; reaching it here is
// a caller bug, reported as an assertion failure.
func Convert(v float64, from, to Unit) (float64, error) {
	if from.Dimension != to.Dimension {
		return 0, errors.AssertionFailedf(
			"cannot convert between dimensions %s and %s (units %s, %s)",
			from.Dimension, to.Dimension, from.Name, to.Name)
	}
	return to.FromBase(from.ToBase(v)), nil
}

// Table holds every resolved unit keyed by dimension and by name.
type Table struct {
	byName      map[string]Unit
	byDimension map[string][]Unit
	reference   map[string]Unit
}

// Resolve binds the catalog's units to their dimensions and validates the
// SI-coherence invariants:
//
//   - every unit named by a dimension exists in the catalog
//   - a unit belongs to exactly one dimension
//   - exactly one unit per dimension is the reference (factor 1, offset 0)
//   - alias dimensions inherit the canonical dimension's units and may not
//     declare their own
//
// A canonical dimension that declares no units at all is flagged as a
// warning rather than an error: the dimension still participates in the
// algebra, it just cannot be expressed in any named unit.
//
// Findings are collected into diags; the table is complete for every
// dimension that resolved cleanly.
func Resolve(c *schema.Catalog, reg *algebra.Registry, diags *schema.Diagnostics) *Table {
	t := &Table{
		byName:      make(map[string]Unit),
		byDimension: make(map[string][]Unit),
		reference:   make(map[string]Unit),
	}
	owner := make(map[string]string) // unit name -> dimension name

	for _, dimName := range reg.Names() {
		dim, _ := reg.ByName(dimName)
		if dim.IsAlias() {
			if len(dim.Units) > 0 {
				diags.Errorf(schema.KindSchema, dimName,
					"alias dimension must not declare units (inherits from %s)", dim.AliasOf)
			}
			continue
		}

		var resolved []Unit
		refCount := 0
		for _, unitName := range dim.Units {
			def, ok := c.Unit(unitName)
			if !ok {
				diags.Errorf(schema.KindReference, dimName,
					"available unit %s is not in the unit catalog", unitName)
				continue
			}
			if prev, claimed := owner[unitName]; claimed {
				diags.Errorf(schema.KindConflict, unitName,
					"unit claimed by both %s and %s; a unit belongs to exactly one dimension", prev, dimName)
				continue
			}
			owner[unitName] = dimName

			u := Unit{
				Name:      def.Name,
				Symbol:    def.Symbol,
				System:    def.System,
				Factor:    def.Factor,
				Offset:    def.Offset,
				Dimension: dimName,
			}
			resolved = append(resolved, u)
			t.byName[u.Name] = u
			if u.IsReference() {
				refCount++
				t.reference[dimName] = u
			}
		}

		if len(dim.Units) == 0 {
			// Quantities of this dimension can be constructed but never
			// expressed in a named unit.
			diags.Warnf(schema.KindSchema, dimName, "dimension declares no units")
		} else if len(resolved) > 0 && refCount != 1 {
			diags.Add(schema.Diagnostic{
				Severity:    schema.SeverityError,
				Kind:        schema.KindSchema,
				Entry:       dimName,
				Message:     "dimension must have exactly one SI-coherent reference unit (factor 1, offset 0)",
				Suggestions: []string{"mark the SI unit with factor = 1.0 and no offset"},
			})
		}

		sort.Slice(resolved, func(i, j int) bool { return resolved[i].Name < resolved[j].Name })
		t.byDimension[dimName] = resolved
	}

	for _, u := range c.Units {
		if _, used := owner[u.Name]; !used && u.Name != "" {
			diags.Warnf(schema.KindReference, u.Name, "unit is not referenced by any dimension")
		}
	}

	return t
}

// ByName looks up a resolved unit.
func (t *Table) ByName(name string) (Unit, bool) {
	u, ok := t.byName[name]
	return u, ok
}

// ForDimension returns the resolved units of a canonical dimension,
// sorted by name.
func (t *Table) ForDimension(dim string) []Unit {
	return t.byDimension[dim]
}

// Reference returns the SI-coherent reference unit of a dimension.
func (t *Table) Reference(dim string) (Unit, bool) {
	u, ok := t.reference[dim]
	return u, ok
}
