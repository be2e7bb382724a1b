// Package synth expands declared integral/derivative relationships into
// the complete operator set — forward and all inverse forms — and
// validates every operator against the dimension algebra before it is
// handed to code generation. Dimensional correctness is a static property
// of the resulting graph, never a runtime check.
package synth

import (
	"fmt"
	"sort"

	"github.com/mensura/mensura/algebra"
	"github.com/mensura/mensura/schema"
)

// Kind classifies a synthesized operator.
type Kind string

const (
	KindMul   Kind = "mul"
	KindDiv   Kind = "div"
	KindDot   Kind = "dot"
	KindCross Kind = "cross"
)

func (k Kind) op() algebra.Op {
	if k == KindDiv {
		return algebra.OpDiv
	}
	return algebra.OpMul // dot and cross products sum exponents
}

// Operator is one synthesized operation between dimensions. Left, Right
// and Result are canonical dimension names. Form is 0 for scalar mul/div,
// the shared arity for dot products, and 3 for cross products.
type Operator struct {
	Kind   Kind
	Left   string
	Right  string
	Result string
	Form   int

	// Declared is true when the operator comes directly from a metadata
	// declaration; false for synthesized inverse forms.
	Declared bool

	// Origin names the declaration the operator was synthesized from,
	// for conflict reporting.
	Origin string
}

// Signature identifies an operator slot: two operands under one kind and
// form may resolve to at most one result dimension.
type Signature struct {
	Kind  Kind
	Left  string
	Right string
	Form  int
}

func (o Operator) signature() Signature {
	return Signature{Kind: o.Kind, Left: o.Left, Right: o.Right, Form: o.Form}
}

func (o Operator) String() string {
	symbol := map[Kind]string{KindMul: "*", KindDiv: "/", KindDot: "·", KindCross: "×"}[o.Kind]
	return fmt.Sprintf("%s %s %s -> %s", o.Left, symbol, o.Right, o.Result)
}

// Graph is the closed, validated operator set over a registry.
type Graph struct {
	reg   *algebra.Registry
	bySig map[Signature]*Operator
	order []Signature
}

// Expand synthesizes the full operator graph from every canonical
// dimension's declared relationships. All inconsistencies are collected
// into diags; the graph is sound iff diags carries no errors.
func Expand(reg *algebra.Registry, diags *schema.Diagnostics) *Graph {
	g := &Graph{
		reg:   reg,
		bySig: make(map[Signature]*Operator),
	}

	for _, name := range reg.Names() {
		dim, _ := reg.ByName(name)
		if dim.IsAlias() {
			continue // aliases delegate; relations live on the canonical dimension
		}
		def := dim.Def()
		if def == nil {
			continue
		}
		for _, rel := range def.Integrals {
			g.expandIntegral(dim, rel, diags)
		}
		for _, rel := range def.Derivatives {
			g.expandDerivative(dim, rel, diags)
		}
		for _, rel := range def.DotProducts {
			g.expandDot(dim, rel, diags)
		}
		for _, rel := range def.CrossProducts {
			g.expandCross(dim, rel, diags)
		}
	}

	return g
}

// resolveOperands looks up the two named dimensions of a declaration.
// Operands resolve to their canonical form (operators are methods on
// canonical types); the result keeps the declared name — declaring
// Torque rather than Energy as a cross-product result is exactly the
// vocabulary the alias exists for, and conflation is never automatic.
func (g *Graph) resolveOperands(self *algebra.Dimension, rel schema.RelationDef, label string, diags *schema.Diagnostics) (other, result *algebra.Dimension, ok bool) {
	other, okOther := g.reg.ByName(rel.Other)
	if !okOther {
		diags.Errorf(schema.KindReference, self.Name, "%s relation names undeclared dimension %s", label, rel.Other)
	}
	result, okResult := g.reg.ByName(rel.Result)
	if !okResult {
		diags.Errorf(schema.KindReference, self.Name, "%s relation names undeclared result dimension %s", label, rel.Result)
	}
	if !okOther || !okResult {
		return nil, nil, false
	}
	return g.reg.Canonical(other), result, true
}

// checkAlgebra validates a declared relation against the algebra engine:
// the declared result's exponents must equal the operands' vectors
// combined under op. Mismatches report all three dimensions and vectors.
func checkAlgebra(self, other, result *algebra.Dimension, op algebra.Op, diags *schema.Diagnostics) bool {
	want := op.Apply(self.Exponents, other.Exponents)
	if result.Exponents == want {
		return true
	}
	diags.Errorf(schema.KindAlgebra, self.Name,
		"%s %s %s declared to yield %s, but [%s] %s [%s] = [%s] while %s is [%s]",
		self.Name, op, other.Name, result.Name,
		self.Exponents, op, other.Exponents, want,
		result.Name, result.Exponents)
	return false
}

// add inserts an operator, enforcing the one-result-per-signature rule.
// A declared operator landing on an operator another declaration already
// produced — declared or synthesized — is the redundant-inverse case and
// warns; a different result is a hard conflict naming both declarations.
func (g *Graph) add(op Operator, diags *schema.Diagnostics) {
	sig := op.signature()
	existing, ok := g.bySig[sig]
	if !ok {
		stored := op
		g.bySig[sig] = &stored
		g.order = append(g.order, sig)
		return
	}

	if existing.Result != op.Result {
		diags.Errorf(schema.KindConflict, op.Left,
			"conflicting declarations for %s %s %s: %s (from %s) vs %s (from %s)",
			op.Left, op.Kind, op.Right,
			existing.Result, existing.Origin, op.Result, op.Origin)
		return
	}

	if existing.Declared && op.Declared {
		diags.Warnf(schema.KindConflict, op.Left,
			"declaration %q is redundant: already implied by %q", op.Origin, existing.Origin)
		return
	}
	if op.Declared {
		// A declaration's own synthesized forms share its origin; landing
		// on a different origin means another declaration already implies
		// this operator.
		if existing.Origin != op.Origin {
			diags.Warnf(schema.KindConflict, op.Left,
				"declaration %q is redundant: already implied by %q", op.Origin, existing.Origin)
		}
		existing.Declared = true
		existing.Origin = op.Origin
	}
}

// expandIntegral handles Self * Other = Result: the forward operator, the
// commuted form (unless marked non-commutative) and both inverse
// extractions.
func (g *Graph) expandIntegral(self *algebra.Dimension, rel schema.RelationDef, diags *schema.Diagnostics) {
	other, result, ok := g.resolveOperands(self, rel, "integral", diags)
	if !ok {
		return
	}
	canon := g.reg.Canonical(self)
	if !checkAlgebra(canon, other, result, algebra.OpMul, diags) {
		return
	}
	origin := fmt.Sprintf("%s: integral %s -> %s", self.Name, rel.Other, rel.Result)

	g.add(Operator{Kind: KindMul, Left: canon.Name, Right: other.Name, Result: result.Name, Declared: true, Origin: origin}, diags)
	if rel.IsCommutative() {
		g.add(Operator{Kind: KindMul, Left: other.Name, Right: canon.Name, Result: result.Name, Origin: origin}, diags)
	}
	// Inverse extraction: Result / Other = Self, Result / Self = Other.
	// Inverses are methods on the canonical result type.
	canonResult := g.reg.Canonical(result)
	g.add(Operator{Kind: KindDiv, Left: canonResult.Name, Right: other.Name, Result: canon.Name, Origin: origin}, diags)
	g.add(Operator{Kind: KindDiv, Left: canonResult.Name, Right: canon.Name, Result: other.Name, Origin: origin}, diags)
}

// expandDerivative handles Self / Other = Result: the forward operator
// and the implied Self = Result * Other family.
func (g *Graph) expandDerivative(self *algebra.Dimension, rel schema.RelationDef, diags *schema.Diagnostics) {
	other, result, ok := g.resolveOperands(self, rel, "derivative", diags)
	if !ok {
		return
	}
	canon := g.reg.Canonical(self)
	if !checkAlgebra(canon, other, result, algebra.OpDiv, diags) {
		return
	}
	origin := fmt.Sprintf("%s: derivative %s -> %s", self.Name, rel.Other, rel.Result)

	g.add(Operator{Kind: KindDiv, Left: canon.Name, Right: other.Name, Result: result.Name, Declared: true, Origin: origin}, diags)
	// Implied: Result * Other = Self (both orders), Self / Result = Other.
	canonResult := g.reg.Canonical(result)
	g.add(Operator{Kind: KindMul, Left: canonResult.Name, Right: other.Name, Result: canon.Name, Origin: origin}, diags)
	g.add(Operator{Kind: KindMul, Left: other.Name, Right: canonResult.Name, Result: canon.Name, Origin: origin}, diags)
	g.add(Operator{Kind: KindDiv, Left: canon.Name, Right: canonResult.Name, Result: other.Name, Origin: origin}, diags)
}

// expandDot handles VectorN<Self> · VectorN<Other> = Scalar<Result> for
// every directional arity the two operands share.
func (g *Graph) expandDot(self *algebra.Dimension, rel schema.RelationDef, diags *schema.Diagnostics) {
	other, result, ok := g.resolveOperands(self, rel, "dot product", diags)
	if !ok {
		return
	}
	canon := g.reg.Canonical(self)
	if !checkAlgebra(canon, other, result, algebra.OpMul, diags) {
		return
	}
	origin := fmt.Sprintf("%s: dot %s -> %s", self.Name, rel.Other, rel.Result)

	shared := sharedForms(canon, other)
	if len(shared) == 0 {
		diags.Errorf(schema.KindSchema, self.Name,
			"dot product with %s requires a shared directional form; %s has %v, %s has %v",
			other.Name, canon.Name, canon.Forms, other.Name, other.Forms)
		return
	}
	for _, n := range shared {
		g.add(Operator{Kind: KindDot, Left: canon.Name, Right: other.Name, Result: result.Name, Form: n, Declared: true, Origin: origin}, diags)
	}
}

// expandCross handles Vector3<Self> × Vector3<Other> = Vector3<Result>.
// Both operands and the result must carry form 3; cross products are
// never commuted (they anti-commute).
func (g *Graph) expandCross(self *algebra.Dimension, rel schema.RelationDef, diags *schema.Diagnostics) {
	other, result, ok := g.resolveOperands(self, rel, "cross product", diags)
	if !ok {
		return
	}
	canon := g.reg.Canonical(self)
	if !checkAlgebra(canon, other, result, algebra.OpMul, diags) {
		return
	}
	origin := fmt.Sprintf("%s: cross %s -> %s", self.Name, rel.Other, rel.Result)

	valid := true
	for _, d := range []*algebra.Dimension{canon, other, result} {
		if !d.HasForm(3) {
			diags.Errorf(schema.KindSchema, self.Name,
				"cross product participant %s does not declare vector form 3", d.Name)
			valid = false
		}
	}
	if !valid {
		return
	}
	g.add(Operator{Kind: KindCross, Left: canon.Name, Right: other.Name, Result: result.Name, Form: 3, Declared: true, Origin: origin}, diags)
}

func sharedForms(a, b *algebra.Dimension) []int {
	var shared []int
	for _, n := range a.Forms {
		if b.HasForm(n) {
			shared = append(shared, n)
		}
	}
	sort.Ints(shared)
	return shared
}

// Operators returns every synthesized operator in deterministic order
// (sorted by left operand, kind, right operand, form).
func (g *Graph) Operators() []Operator {
	out := make([]Operator, 0, len(g.order))
	for _, sig := range g.order {
		out = append(out, *g.bySig[sig])
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Right != b.Right {
			return a.Right < b.Right
		}
		return a.Form < b.Form
	})
	return out
}

// Lookup finds the operator for a signature.
func (g *Graph) Lookup(sig Signature) (Operator, bool) {
	op, ok := g.bySig[sig]
	if !ok {
		return Operator{}, false
	}
	return *op, true
}

// OperatorsFor returns the operators whose left operand is the given
// canonical dimension, in deterministic order.
func (g *Graph) OperatorsFor(dim string) []Operator {
	var out []Operator
	for _, op := range g.Operators() {
		if op.Left == dim {
			out = append(out, op)
		}
	}
	return out
}
