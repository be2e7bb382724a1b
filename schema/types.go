// Package schema defines the declarative metadata model for mensura
// catalogs: dimensions, units, conversions and inter-dimension
// relationships. It is pure data plus loading and diagnostics; the
// algebra, synth and units packages give it behavior.
package schema

// SupportedSchema is the semver constraint the loader accepts for a
// catalog's schema_version field.
const SupportedSchema = "^1"

// Catalog is a full metadata document: every dimension and every unit the
// generator knows about. Multiple files merge into one Catalog before
// resolution.
type Catalog struct {
	SchemaVersion string         `toml:"schema_version" json:"schema_version" yaml:"schema_version"`
	Dimensions    []DimensionDef `toml:"dimension" json:"dimensions" yaml:"dimensions"`
	Units         []UnitDef      `toml:"unit" json:"units" yaml:"units"`
}

// DimensionDef declares a physical quantity kind. Exponents maps the seven
// base-dimension keys (mass, length, time, temperature, current, amount,
// luminosity) to integer exponents; absent keys are zero. The exponent map
// is the identity of the dimension and is never mutated after loading.
type DimensionDef struct {
	Name      string         `toml:"name" json:"name" yaml:"name"`
	Symbol    string         `toml:"symbol" json:"symbol" yaml:"symbol"`
	Exponents map[string]int `toml:"exponents" json:"exponents" yaml:"exponents"`

	// AliasOf names the canonical dimension this one is a zero-cost
	// wrapper of (Weight -> Force, Torque -> Energy). An alias inherits
	// the canonical exponents and forms; it may not declare its own
	// relationships.
	AliasOf string `toml:"alias_of" json:"alias_of,omitempty" yaml:"alias_of,omitempty"`

	// Forms lists the directional arities (2, 3, 4) generated in addition
	// to the always-present magnitude form. 1 is accepted and treated as a
	// one-component directional type (signed scalar with direction).
	Forms []int `toml:"forms" json:"forms,omitempty" yaml:"forms,omitempty"`

	// Units names entries in the catalog-level unit list available for
	// this dimension.
	Units []string `toml:"units" json:"units,omitempty" yaml:"units,omitempty"`

	// Integrals declares Self * Other = Result facts; Derivatives declares
	// Self / Other = Result facts. Inverse operators are synthesized, not
	// declared.
	Integrals   []RelationDef `toml:"integrals" json:"integrals,omitempty" yaml:"integrals,omitempty"`
	Derivatives []RelationDef `toml:"derivatives" json:"derivatives,omitempty" yaml:"derivatives,omitempty"`

	// DotProducts and CrossProducts declare direction-aware products for
	// directional forms. Cross requires both operands to carry form 3.
	DotProducts   []RelationDef `toml:"dot_products" json:"dot_products,omitempty" yaml:"dot_products,omitempty"`
	CrossProducts []RelationDef `toml:"cross_products" json:"cross_products,omitempty" yaml:"cross_products,omitempty"`
}

// UnitDef declares a unit of measure. Factor and Offset express the unit
// relative to its dimension's SI-coherent reference unit:
//
//	base = value*Factor + Offset
//
// Exactly one unit per dimension has Factor == 1 and Offset == 0.
type UnitDef struct {
	Name   string  `toml:"name" json:"name" yaml:"name"`
	Symbol string  `toml:"symbol" json:"symbol" yaml:"symbol"`
	System string  `toml:"system" json:"system" yaml:"system"`
	Factor float64 `toml:"factor" json:"factor" yaml:"factor"`
	Offset float64 `toml:"offset" json:"offset,omitempty" yaml:"offset,omitempty"`
}

// Unit system tags.
const (
	SystemSIBase      = "si-base"
	SystemSIDerived   = "si-derived"
	SystemImperial    = "imperial"
	SystemUSCustomary = "us-customary"
	SystemCGS         = "cgs"
	SystemOther       = "other"
)

// RelationDef is one ternary fact: Self <op> Other = Result, where Self is
// the declaring dimension. Commutative defaults to true for integrals
// (scalar multiplication of independent quantities commutes); it is
// ignored for derivatives, dot and cross products.
type RelationDef struct {
	Other       string `toml:"other" json:"other" yaml:"other"`
	Result      string `toml:"result" json:"result" yaml:"result"`
	Commutative *bool  `toml:"commutative" json:"commutative,omitempty" yaml:"commutative,omitempty"`
}

// IsCommutative resolves the Commutative default.
func (r RelationDef) IsCommutative() bool {
	return r.Commutative == nil || *r.Commutative
}

// Dimension looks up a dimension definition by name.
func (c *Catalog) Dimension(name string) (*DimensionDef, bool) {
	for i := range c.Dimensions {
		if c.Dimensions[i].Name == name {
			return &c.Dimensions[i], true
		}
	}
	return nil, false
}

// Unit looks up a unit definition by name.
func (c *Catalog) Unit(name string) (*UnitDef, bool) {
	for i := range c.Units {
		if c.Units[i].Name == name {
			return &c.Units[i], true
		}
	}
	return nil, false
}
