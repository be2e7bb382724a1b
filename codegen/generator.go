// Package codegen emits Go source for every dimension in a resolved
// catalog graph: one file per canonical dimension carrying its quantity
// types (magnitude plus declared directional forms), unit factories and
// accessors, synthesized operators and semantic-alias wrappers, plus a
// registry manifest.
//
// The emitter consumes only the validated graph, never raw metadata, and
// builds every file in memory first: generation either succeeds completely
// or fails without touching the output directory.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/mensura/mensura/algebra"
	"github.com/mensura/mensura/errors"
	"github.com/mensura/mensura/internal/util"
	"github.com/mensura/mensura/synth"
	"github.com/mensura/mensura/units"
)

// QuantityImport is the import path of the runtime support package
// generated code depends on.
const QuantityImport = "github.com/mensura/mensura/quantity"

// AvogadroNumber is emitted into amount-of-substance quantity files for
// the entity-count helpers.
const AvogadroNumber = "6.02214076e23"

// Options configures a generation run.
type Options struct {
	// PackageName is the package clause of every emitted file.
	PackageName string
}

func (o Options) withDefaults() Options {
	if o.PackageName == "" {
		o.PackageName = "quantities"
	}
	return o
}

// File is one emitted source file.
type File struct {
	Name    string
	Content []byte
}

// Generator emits Go source from a resolved graph.
type Generator struct {
	reg   *algebra.Registry
	units *units.Table
	graph *synth.Graph
	opts  Options
}

// NewGenerator builds a generator over a resolved, validated graph.
func NewGenerator(reg *algebra.Registry, table *units.Table, graph *synth.Graph, opts Options) *Generator {
	return &Generator{reg: reg, units: table, graph: graph, opts: opts.withDefaults()}
}

// Generate emits every file in memory. Output is deterministic: dimensions,
// units and operators are iterated in sorted order.
func (g *Generator) Generate() ([]File, error) {
	var files []File

	for _, name := range g.reg.Names() {
		dim, _ := g.reg.ByName(name)
		if dim.IsAlias() {
			continue // emitted inside the canonical dimension's file
		}
		src := g.dimensionFile(dim)
		formatted, err := format(fileName(dim.Name), src)
		if err != nil {
			return nil, errors.Wrapf(err, "generated source for dimension %s does not format", dim.Name)
		}
		files = append(files, File{Name: fileName(dim.Name), Content: formatted})
	}

	manifest, err := format(manifestFileName, g.manifest())
	if err != nil {
		return nil, errors.Wrap(err, "generated registry manifest does not format")
	}
	files = append(files, File{Name: manifestFileName, Content: manifest})

	return files, nil
}

const manifestFileName = "zz_generated_registry.go"

func fileName(dimension string) string {
	return util.ToSnakeCase(dimension) + ".go"
}

func format(name string, src string) ([]byte, error) {
	return imports.Process(name, []byte(src), nil)
}

const header = "// Code generated by mensura; DO NOT EDIT.\n\n"

// dimensionFile emits the complete source file for one canonical
// dimension.
func (g *Generator) dimensionFile(dim *algebra.Dimension) string {
	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "package %s\n\n", g.opts.PackageName)
	fmt.Fprintf(&b, "import (\n\t%q\n)\n\n", QuantityImport)

	g.emitMagnitude(&b, dim)
	g.emitUnits(&b, dim)
	g.emitScalarOperators(&b, dim)

	for _, form := range dim.Forms {
		g.emitDirectional(&b, dim, form)
	}
	g.emitDirectionalOperators(&b, dim)

	for _, alias := range g.reg.Aliases(dim.Name) {
		g.emitAlias(&b, dim, alias)
	}

	return b.String()
}

// emitMagnitude emits the scalar quantity type and its uniform arithmetic
// contract. Ordering is only defined here, never on directional forms.
func (g *Generator) emitMagnitude(b *strings.Builder, dim *algebra.Dimension) {
	name := dim.Name
	base := g.baseUnitName(dim)

	fmt.Fprintf(b, "// %s is the quantity with dimension %s (symbol %s).\n", name, dim.Exponents, dim.Symbol)
	fmt.Fprintf(b, "// The stored value is the base (%s) representation.\n", base)
	fmt.Fprintf(b, "type %s[T quantity.Float] struct {\n\tv T\n}\n\n", name)

	if g.isTemperature(dim) {
		fmt.Fprintf(b, "// %sFromBase constructs a %s from a base (%s) value.\n", name, name, base)
		fmt.Fprintf(b, "// Values below absolute zero are rejected.\n")
		fmt.Fprintf(b, "func %sFromBase[T quantity.Float](v T) (%s[T], error) {\n", name, name)
		fmt.Fprintf(b, "\tif err := quantity.CheckAbsoluteZero(v); err != nil {\n\t\treturn %s[T]{}, err\n\t}\n", name)
		fmt.Fprintf(b, "\treturn %s[T]{v: v}, nil\n}\n\n", name)
	} else {
		fmt.Fprintf(b, "// %sFromBase constructs a %s from a base (%s) value.\n", name, name, base)
		fmt.Fprintf(b, "func %sFromBase[T quantity.Float](v T) %s[T] {\n\treturn %s[T]{v: v}\n}\n\n", name, name, name)
	}

	fmt.Fprintf(b, "// BaseValue returns the base (%s) representation.\n", base)
	fmt.Fprintf(b, "func (q %s[T]) BaseValue() T {\n\treturn q.v\n}\n\n", name)

	fmt.Fprintf(b, "// Add returns q + o.\n")
	fmt.Fprintf(b, "func (q %s[T]) Add(o %s[T]) %s[T] {\n\treturn %s[T]{v: q.v + o.v}\n}\n\n", name, name, name, name)
	fmt.Fprintf(b, "// Sub returns q - o.\n")
	fmt.Fprintf(b, "func (q %s[T]) Sub(o %s[T]) %s[T] {\n\treturn %s[T]{v: q.v - o.v}\n}\n\n", name, name, name, name)
	fmt.Fprintf(b, "// Scale returns q scaled by the dimensionless factor k.\n")
	fmt.Fprintf(b, "func (q %s[T]) Scale(k T) %s[T] {\n\treturn %s[T]{v: q.v * k}\n}\n\n", name, name, name)
	fmt.Fprintf(b, "// ScaleDiv returns q divided by the dimensionless factor k.\n")
	fmt.Fprintf(b, "func (q %s[T]) ScaleDiv(k T) (%s[T], error) {\n", name, name)
	fmt.Fprintf(b, "\tif err := quantity.CheckDivisor(k); err != nil {\n\t\treturn %s[T]{}, err\n\t}\n", name)
	fmt.Fprintf(b, "\treturn %s[T]{v: q.v / k}, nil\n}\n\n", name)
	fmt.Fprintf(b, "// Neg returns -q.\n")
	fmt.Fprintf(b, "func (q %s[T]) Neg() %s[T] {\n\treturn %s[T]{v: -q.v}\n}\n\n", name, name, name)
	fmt.Fprintf(b, "// Less reports whether q is strictly smaller than o.\n")
	fmt.Fprintf(b, "func (q %s[T]) Less(o %s[T]) bool {\n\treturn q.v < o.v\n}\n\n", name, name)
	fmt.Fprintf(b, "// IsPhysicallyValid reports whether the stored value is finite.\n")
	fmt.Fprintf(b, "func (q %s[T]) IsPhysicallyValid() bool {\n\treturn quantity.Valid(q.v)\n}\n\n", name)

	if g.isAmount(dim) {
		// Exactly one dimension carries the bare amount vector, so the
		// factory name needs no dimension prefix.
		fmt.Fprintf(b, "// FromEntities constructs a %s from a raw entity count.\n", name)
		fmt.Fprintf(b, "func FromEntities[T quantity.Float](n T) %s[T] {\n", name)
		fmt.Fprintf(b, "\treturn %s[T]{v: n / T(%s)}\n}\n\n", name, AvogadroNumber)
		fmt.Fprintf(b, "// NumberOfEntities returns the entity count (Avogadro scaling).\n")
		fmt.Fprintf(b, "func (q %s[T]) NumberOfEntities() T {\n\treturn q.v * T(%s)\n}\n\n", name, AvogadroNumber)
	}
}

// emitUnits emits a From<Unit> factory and <Unit>() accessor per resolved
// unit. Temperature factories validate the absolute-zero floor against
// the base representation, whatever unit the caller supplied.
func (g *Generator) emitUnits(b *strings.Builder, dim *algebra.Dimension) {
	name := dim.Name
	temp := g.isTemperature(dim)

	for _, u := range g.units.ForDimension(dim.Name) {
		toBase := convertToBase("v", u)
		fromBase := convertFromBase("q.v", u)

		fmt.Fprintf(b, "// From%s constructs a %s from a value in %s (%s).\n", u.Name, name, u.Name, u.Symbol)
		if temp {
			fmt.Fprintf(b, "func From%s[T quantity.Float](v T) (%s[T], error) {\n", u.Name, name)
			fmt.Fprintf(b, "\tbase := %s\n", toBase)
			fmt.Fprintf(b, "\tif err := quantity.CheckAbsoluteZero(base); err != nil {\n\t\treturn %s[T]{}, err\n\t}\n", name)
			fmt.Fprintf(b, "\treturn %s[T]{v: base}, nil\n}\n\n", name)
		} else {
			fmt.Fprintf(b, "func From%s[T quantity.Float](v T) %s[T] {\n", u.Name, name)
			fmt.Fprintf(b, "\treturn %s[T]{v: %s}\n}\n\n", name, toBase)
		}

		fmt.Fprintf(b, "// %s returns the value in %s (%s).\n", u.Name, u.Name, u.Symbol)
		fmt.Fprintf(b, "func (q %s[T]) %s() T {\n\treturn %s\n}\n\n", name, u.Name, fromBase)
	}
}

// convertToBase renders expr * factor + offset, eliding identity terms.
func convertToBase(expr string, u units.Unit) string {
	out := expr
	if u.Factor != 1 {
		out = fmt.Sprintf("%s * T(%s)", out, formatFloat(u.Factor))
	}
	if u.Offset != 0 {
		out = fmt.Sprintf("%s + T(%s)", out, formatFloat(u.Offset))
	}
	return out
}

// convertFromBase renders (expr - offset) / factor, eliding identity terms.
func convertFromBase(expr string, u units.Unit) string {
	out := expr
	if u.Offset != 0 {
		out = fmt.Sprintf("(%s - T(%s))", out, formatFloat(u.Offset))
	}
	if u.Factor != 1 {
		out = fmt.Sprintf("%s / T(%s)", out, formatFloat(u.Factor))
	}
	return out
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	// %g may drop the decimal point for integral factors; keep them
	// readable as floats.
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// emitScalarOperators emits the synthesized mul/div methods whose left
// operand is this dimension's magnitude form. Division checks its divisor
// at runtime; the result dimension is fixed statically.
func (g *Generator) emitScalarOperators(b *strings.Builder, dim *algebra.Dimension) {
	for _, op := range g.graph.OperatorsFor(dim.Name) {
		switch op.Kind {
		case synth.KindMul:
			fmt.Fprintf(b, "// Mul%s returns the %s product q * o.\n", op.Right, op.Result)
			fmt.Fprintf(b, "func (q %s[T]) Mul%s(o %s[T]) %s[T] {\n", op.Left, op.Right, op.Right, op.Result)
			fmt.Fprintf(b, "\treturn %s[T]{v: q.v * o.v}\n}\n\n", op.Result)
		case synth.KindDiv:
			fmt.Fprintf(b, "// Div%s returns the %s quotient q / o.\n", op.Right, op.Result)
			fmt.Fprintf(b, "func (q %s[T]) Div%s(o %s[T]) (%s[T], error) {\n", op.Left, op.Right, op.Right, op.Result)
			fmt.Fprintf(b, "\tif err := quantity.CheckDivisor(o.v); err != nil {\n\t\treturn %s[T]{}, err\n\t}\n", op.Result)
			fmt.Fprintf(b, "\treturn %s[T]{v: q.v / o.v}, nil\n}\n\n", op.Result)
		}
	}
}

// emitDirectional emits one directional form type: the N-component
// variant sharing the scalar arithmetic contract minus ordering, plus the
// derived magnitude.
func (g *Generator) emitDirectional(b *strings.Builder, dim *algebra.Dimension, form int) {
	name := dim.Name
	fname := directionalName(name, form)

	fmt.Fprintf(b, "// %s is the %d-component directional form of %s.\n", fname, form, name)
	if form == 1 {
		fmt.Fprintf(b, "type %s[T quantity.Float] struct {\n\tv T\n}\n\n", fname)
		fmt.Fprintf(b, "// New%s constructs a %s from its signed component in base units.\n", fname, fname)
		fmt.Fprintf(b, "func New%s[T quantity.Float](x T) %s[T] {\n\treturn %s[T]{v: x}\n}\n\n", fname, fname, fname)
		fmt.Fprintf(b, "// Component returns the signed component.\n")
		fmt.Fprintf(b, "func (q %s[T]) Component() T {\n\treturn q.v\n}\n\n", fname)
		fmt.Fprintf(b, "// Add returns q + o.\n")
		fmt.Fprintf(b, "func (q %s[T]) Add(o %s[T]) %s[T] {\n\treturn %s[T]{v: q.v + o.v}\n}\n\n", fname, fname, fname, fname)
		fmt.Fprintf(b, "// Sub returns q - o.\n")
		fmt.Fprintf(b, "func (q %s[T]) Sub(o %s[T]) %s[T] {\n\treturn %s[T]{v: q.v - o.v}\n}\n\n", fname, fname, fname, fname)
		fmt.Fprintf(b, "// Scale returns q scaled by k.\n")
		fmt.Fprintf(b, "func (q %s[T]) Scale(k T) %s[T] {\n\treturn %s[T]{v: q.v * k}\n}\n\n", fname, fname, fname)
		fmt.Fprintf(b, "// Neg returns -q.\n")
		fmt.Fprintf(b, "func (q %s[T]) Neg() %s[T] {\n\treturn %s[T]{v: -q.v}\n}\n\n", fname, fname, fname)
		fmt.Fprintf(b, "// Magnitude returns the absolute value as the magnitude form.\n")
		fmt.Fprintf(b, "func (q %s[T]) Magnitude() %s[T] {\n", fname, name)
		fmt.Fprintf(b, "\tif q.v < 0 {\n\t\treturn %s[T]{v: -q.v}\n\t}\n\treturn %s[T]{v: q.v}\n}\n\n", name, name)
		return
	}

	vec := fmt.Sprintf("quantity.Vec%d[T]", form)
	params, fields := vecParams(form)

	fmt.Fprintf(b, "type %s[T quantity.Float] struct {\n\tv %s\n}\n\n", fname, vec)
	fmt.Fprintf(b, "// New%s constructs a %s from components in base units.\n", fname, fname)
	fmt.Fprintf(b, "func New%s[T quantity.Float](%s T) %s[T] {\n", fname, params, fname)
	fmt.Fprintf(b, "\treturn %s[T]{v: %s{%s}}\n}\n\n", fname, vec, fields)
	fmt.Fprintf(b, "// Components returns the component vector.\n")
	fmt.Fprintf(b, "func (q %s[T]) Components() %s {\n\treturn q.v\n}\n\n", fname, vec)
	fmt.Fprintf(b, "// Add returns q + o.\n")
	fmt.Fprintf(b, "func (q %s[T]) Add(o %s[T]) %s[T] {\n\treturn %s[T]{v: q.v.Add(o.v)}\n}\n\n", fname, fname, fname, fname)
	fmt.Fprintf(b, "// Sub returns q - o.\n")
	fmt.Fprintf(b, "func (q %s[T]) Sub(o %s[T]) %s[T] {\n\treturn %s[T]{v: q.v.Sub(o.v)}\n}\n\n", fname, fname, fname, fname)
	fmt.Fprintf(b, "// Scale returns q scaled by k.\n")
	fmt.Fprintf(b, "func (q %s[T]) Scale(k T) %s[T] {\n\treturn %s[T]{v: q.v.Scale(k)}\n}\n\n", fname, fname, fname)
	fmt.Fprintf(b, "// Neg returns -q.\n")
	fmt.Fprintf(b, "func (q %s[T]) Neg() %s[T] {\n\treturn %s[T]{v: q.v.Neg()}\n}\n\n", fname, fname, fname)
	fmt.Fprintf(b, "// Magnitude returns the Euclidean norm as the magnitude form.\n")
	fmt.Fprintf(b, "func (q %s[T]) Magnitude() %s[T] {\n\treturn %s[T]{v: q.v.Norm()}\n}\n\n", fname, name, name)
}

func directionalName(dim string, form int) string {
	return fmt.Sprintf("%s%d", dim, form)
}

func vecParams(form int) (params, fields string) {
	names := []string{"x", "y", "z", "w"}[:form]
	upper := []string{"X", "Y", "Z", "W"}[:form]
	var f []string
	for i, n := range names {
		f = append(f, fmt.Sprintf("%s: %s", upper[i], n))
	}
	return strings.Join(names, ", "), strings.Join(f, ", ")
}

// emitDirectionalOperators emits dot and cross methods on this
// dimension's directional forms.
func (g *Generator) emitDirectionalOperators(b *strings.Builder, dim *algebra.Dimension) {
	for _, op := range g.graph.OperatorsFor(dim.Name) {
		switch op.Kind {
		case synth.KindDot:
			left := directionalName(op.Left, op.Form)
			right := directionalName(op.Right, op.Form)
			fmt.Fprintf(b, "// Dot%s returns the scalar %s product q · o.\n", right, op.Result)
			fmt.Fprintf(b, "func (q %s[T]) Dot%s(o %s[T]) %s[T] {\n", left, right, right, op.Result)
			if op.Form == 1 {
				// One-component forms store a bare signed value.
				fmt.Fprintf(b, "\treturn %s[T]{v: q.v * o.v}\n}\n\n", op.Result)
			} else {
				fmt.Fprintf(b, "\treturn %s[T]{v: q.v.Dot(o.v)}\n}\n\n", op.Result)
			}
		case synth.KindCross:
			left := directionalName(op.Left, 3)
			right := directionalName(op.Right, 3)
			result := directionalName(op.Result, 3)
			fmt.Fprintf(b, "// Cross%s returns the directional %s product q × o.\n", right, op.Result)
			fmt.Fprintf(b, "func (q %s[T]) Cross%s(o %s[T]) %s[T] {\n", left, right, right, result)
			fmt.Fprintf(b, "\treturn %s[T]{v: q.v.Cross(o.v)}\n}\n\n", result)
		}
	}
}

// emitAlias emits zero-cost semantic wrappers over the canonical forms.
// Aliases round-trip losslessly and carry no behavior of their own; a
// wrapper is emitted for the magnitude form and for every directional
// form the alias inherits, so relations may name the alias as a result.
func (g *Generator) emitAlias(b *strings.Builder, dim *algebra.Dimension, alias string) {
	fmt.Fprintf(b, "// %s is a semantic alias of %s; it exists for domain\n", alias, dim.Name)
	fmt.Fprintf(b, "// vocabulary and round-trips losslessly to the base form.\n")
	fmt.Fprintf(b, "type %s[T quantity.Float] %s[T]\n\n", alias, dim.Name)
	fmt.Fprintf(b, "// %sOf wraps a %s as %s.\n", alias, dim.Name, alias)
	fmt.Fprintf(b, "func %sOf[T quantity.Float](base %s[T]) %s[T] {\n\treturn %s[T](base)\n}\n\n", alias, dim.Name, alias, alias)
	fmt.Fprintf(b, "// As%s converts the alias back to its base form.\n", dim.Name)
	fmt.Fprintf(b, "func (q %s[T]) As%s() %s[T] {\n\treturn %s[T](q)\n}\n\n", alias, dim.Name, dim.Name, dim.Name)

	aliasDim, ok := g.reg.ByName(alias)
	if !ok {
		return
	}
	for _, form := range aliasDim.Forms {
		an := directionalName(alias, form)
		cn := directionalName(dim.Name, form)
		fmt.Fprintf(b, "// %s is the %d-component directional form of %s.\n", an, form, alias)
		fmt.Fprintf(b, "type %s[T quantity.Float] %s[T]\n\n", an, cn)
		fmt.Fprintf(b, "// %sOf wraps a %s as %s.\n", an, cn, an)
		fmt.Fprintf(b, "func %sOf[T quantity.Float](base %s[T]) %s[T] {\n\treturn %s[T](base)\n}\n\n", an, cn, an, an)
		fmt.Fprintf(b, "// As%s converts the alias back to its base form.\n", cn)
		fmt.Fprintf(b, "func (q %s[T]) As%s() %s[T] {\n\treturn %s[T](q)\n}\n\n", an, cn, cn, cn)
	}
}

// manifest emits zz_generated_registry.go: dimension names (aliases
// included) mapped to exponent vectors, and base unit names per
// dimension.
func (g *Generator) manifest() string {
	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "package %s\n\n", g.opts.PackageName)

	names := g.reg.Names()
	sort.Strings(names)

	b.WriteString("// Dimensions maps every generated quantity to its exponent vector.\n")
	b.WriteString("var Dimensions = map[string]string{\n")
	for _, name := range names {
		dim, _ := g.reg.ByName(name)
		fmt.Fprintf(&b, "\t%q: %q,\n", name, dim.Exponents.String())
	}
	b.WriteString("}\n\n")

	b.WriteString("// BaseUnits maps each canonical dimension to its SI-coherent unit.\n")
	b.WriteString("var BaseUnits = map[string]string{\n")
	for _, name := range names {
		dim, _ := g.reg.ByName(name)
		if dim.IsAlias() {
			continue
		}
		if ref, ok := g.units.Reference(name); ok {
			fmt.Fprintf(&b, "\t%q: %q,\n", name, ref.Name)
		}
	}
	b.WriteString("}\n")

	return b.String()
}

func (g *Generator) baseUnitName(dim *algebra.Dimension) string {
	if ref, ok := g.units.Reference(dim.Name); ok {
		return ref.Name
	}
	return "SI-coherent"
}

func (g *Generator) isTemperature(dim *algebra.Dimension) bool {
	return dim.Exponents == algebra.Exponents{Temperature: 1}
}

func (g *Generator) isAmount(dim *algebra.Dimension) bool {
	return dim.Exponents == algebra.Exponents{Amount: 1}
}
