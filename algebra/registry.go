package algebra

import (
	"sort"

	"github.com/mensura/mensura/schema"
)

// Dimension is a resolved dimension node: the exponent vector plus the
// metadata the later phases need. Exponents are fixed at registration;
// they are the identity of the dimension.
type Dimension struct {
	Name      string
	Symbol    string
	Exponents Exponents

	// AliasOf is the canonical dimension name when this dimension is a
	// semantic alias (Torque -> Energy); empty for canonical dimensions.
	AliasOf string

	// Forms holds the directional arities (1..4) declared for this
	// dimension, sorted. The magnitude form is always present and not
	// listed here.
	Forms []int

	// Units names the catalog units available for this dimension.
	Units []string

	def *schema.DimensionDef
}

// IsAlias reports whether the dimension is a semantic alias of another.
func (d *Dimension) IsAlias() bool { return d.AliasOf != "" }

// HasForm reports whether the dimension declares directional form n.
func (d *Dimension) HasForm(n int) bool {
	for _, f := range d.Forms {
		if f == n {
			return true
		}
	}
	return false
}

// Def returns the raw metadata definition the dimension was built from.
func (d *Dimension) Def() *schema.DimensionDef { return d.def }

// Registry is the dimension algebra engine. It is built in two phases:
// Register every dimension first, then resolve aliases and look up
// relationship operands — relationships may reference dimensions that
// appear later in the catalog, so nothing cross-entry is checked until
// the full dimension set is known.
type Registry struct {
	byName      map[string]*Dimension
	byExponents map[Exponents]*Dimension // canonical dimensions only
	aliases     map[string][]string      // canonical name -> alias names
	names       []string                 // insertion order
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:      make(map[string]*Dimension),
		byExponents: make(map[Exponents]*Dimension),
		aliases:     make(map[string][]string),
	}
}

// Build runs both phases over a loaded catalog and returns the resolved
// registry. All findings are collected into diags; the registry is only
// usable downstream when diags carries no errors.
func Build(c *schema.Catalog, diags *schema.Diagnostics) *Registry {
	r := NewRegistry()
	for i := range c.Dimensions {
		r.Register(&c.Dimensions[i], diags)
	}
	r.ResolveAliases(diags)
	r.CheckDimensionless(diags)
	return r
}

// Register performs phase one for a single dimension definition: parse
// and fix its exponent vector, record it by name. Exponent-vector
// collisions between two canonical dimensions are conflicts — sharing a
// vector is permitted only through an explicit alias declaration.
func (r *Registry) Register(def *schema.DimensionDef, diags *schema.Diagnostics) {
	if def.Name == "" {
		return // already reported by schema.ValidateFields
	}
	if _, dup := r.byName[def.Name]; dup {
		diags.Errorf(schema.KindConflict, def.Name, "dimension registered twice")
		return
	}

	d := &Dimension{
		Name:    def.Name,
		Symbol:  def.Symbol,
		AliasOf: def.AliasOf,
		Units:   def.Units,
		def:     def,
	}
	d.Forms = append(d.Forms, def.Forms...)
	sort.Ints(d.Forms)

	if def.AliasOf == "" {
		exp, err := FromMap(def.Exponents)
		if err != nil {
			diags.Errorf(schema.KindSchema, def.Name, "%v", err)
			return
		}
		d.Exponents = exp

		if prev, taken := r.byExponents[exp]; taken {
			diags.Add(schema.Diagnostic{
				Severity: schema.SeverityError,
				Kind:     schema.KindConflict,
				Entry:    def.Name,
				Message:  "exponent vector " + exp.String() + " already declared by " + prev.Name,
				Suggestions: []string{
					"declare " + def.Name + " with alias_of = \"" + prev.Name + "\" if they are semantic aliases",
				},
			})
			return
		}
		r.byExponents[exp] = d
	}

	r.byName[def.Name] = d
	r.names = append(r.names, def.Name)
}

// ResolveAliases performs phase two for alias dimensions: copy the
// canonical exponent vector onto each alias and record the alias link.
// Alias chains (an alias of an alias) are rejected; aliases point at a
// canonical dimension directly.
func (r *Registry) ResolveAliases(diags *schema.Diagnostics) {
	for _, name := range r.names {
		d := r.byName[name]
		if !d.IsAlias() {
			continue
		}
		target, ok := r.byName[d.AliasOf]
		if !ok {
			diags.Errorf(schema.KindReference, d.Name, "alias target %s is not a declared dimension", d.AliasOf)
			continue
		}
		if target.IsAlias() {
			diags.Errorf(schema.KindSchema, d.Name, "alias target %s is itself an alias of %s", target.Name, target.AliasOf)
			continue
		}
		d.Exponents = target.Exponents
		if d.Symbol == "" {
			d.Symbol = target.Symbol
		}
		if len(d.Forms) == 0 {
			d.Forms = target.Forms
		}
		r.aliases[target.Name] = append(r.aliases[target.Name], d.Name)
	}
	for _, list := range r.aliases {
		sort.Strings(list)
	}
}

// CheckDimensionless enforces that the zero vector — the identity element
// for multiply and divide — is declared exactly once as a canonical
// dimension.
func (r *Registry) CheckDimensionless(diags *schema.Diagnostics) {
	var zero Exponents
	if _, ok := r.byExponents[zero]; !ok {
		diags.Add(schema.Diagnostic{
			Severity:    schema.SeverityError,
			Kind:        schema.KindSchema,
			Entry:       "Dimensionless",
			Message:     "no dimension declares the zero exponent vector",
			Suggestions: []string{"declare a Dimensionless dimension with an empty exponent map"},
		})
	}
}

// ByName looks up a dimension (canonical or alias) by name.
func (r *Registry) ByName(name string) (*Dimension, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// ByExponents looks up the canonical dimension for an exponent vector.
// A miss is not an error in isolation: it means no type exists for that
// combination and no operator should be synthesized for it.
func (r *Registry) ByExponents(e Exponents) (*Dimension, bool) {
	d, ok := r.byExponents[e]
	return d, ok
}

// Canonical resolves a dimension to its canonical form (itself when it is
// not an alias).
func (r *Registry) Canonical(d *Dimension) *Dimension {
	if d == nil || !d.IsAlias() {
		return d
	}
	if target, ok := r.byName[d.AliasOf]; ok {
		return target
	}
	return d
}

// Aliases returns the alias names declared over a canonical dimension.
func (r *Registry) Aliases(canonical string) []string {
	return r.aliases[canonical]
}

// Dimensionless returns the canonical dimension for the zero vector.
func (r *Registry) Dimensionless() (*Dimension, bool) {
	return r.ByExponents(Exponents{})
}

// Names returns all registered dimension names, sorted, for deterministic
// iteration.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	sort.Strings(out)
	return out
}

// Combine applies op to two dimensions' exponent vectors and reports the
// canonical dimension matching the result, if one is declared.
func (r *Registry) Combine(a, b *Dimension, op Op) (Exponents, *Dimension, bool) {
	result := op.Apply(a.Exponents, b.Exponents)
	d, ok := r.byExponents[result]
	return result, d, ok
}
