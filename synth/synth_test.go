package synth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensura/mensura/algebra"
	"github.com/mensura/mensura/schema"
	"github.com/mensura/mensura/synth"
)

func expand(t *testing.T, dims []schema.DimensionDef) (*synth.Graph, *schema.Diagnostics) {
	t.Helper()
	diags := &schema.Diagnostics{}
	reg := algebra.Build(&schema.Catalog{Dimensions: dims}, diags)
	g := synth.Expand(reg, diags)
	return g, diags
}

func dimensionless() schema.DimensionDef {
	return schema.DimensionDef{Name: "Dimensionless", Symbol: "1", Exponents: map[string]int{}}
}

func forceEnergyLength() []schema.DimensionDef {
	return []schema.DimensionDef{
		dimensionless(),
		{Name: "Force", Symbol: "F", Exponents: map[string]int{"mass": 1, "length": 1, "time": -2},
			Integrals: []schema.RelationDef{{Other: "Length", Result: "Energy"}}},
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1}},
		{Name: "Energy", Symbol: "E", Exponents: map[string]int{"mass": 1, "length": 2, "time": -2}},
	}
}

func TestIntegralSynthesizesForwardCommutedAndInverses(t *testing.T) {
	g, diags := expand(t, forceEnergyLength())
	require.NoError(t, diags.Err())

	want := []struct {
		kind                Kind
		left, right, result string
		declared            bool
	}{
		{synth.KindMul, "Force", "Length", "Energy", true},
		{synth.KindMul, "Length", "Force", "Energy", false},
		{synth.KindDiv, "Energy", "Length", "Force", false},
		{synth.KindDiv, "Energy", "Force", "Length", false},
	}
	for _, w := range want {
		op, ok := g.Lookup(synth.Signature{Kind: w.kind, Left: w.left, Right: w.right})
		require.True(t, ok, "missing operator %s %s %s", w.left, w.kind, w.right)
		assert.Equal(t, w.result, op.Result)
		assert.Equal(t, w.declared, op.Declared)
	}
	assert.Len(t, g.Operators(), 4)
}

type Kind = synth.Kind

func TestNonCommutativeIntegralSkipsCommutedForm(t *testing.T) {
	no := false
	dims := forceEnergyLength()
	dims[1].Integrals[0].Commutative = &no

	g, diags := expand(t, dims)
	require.NoError(t, diags.Err())

	_, ok := g.Lookup(synth.Signature{Kind: synth.KindMul, Left: "Length", Right: "Force"})
	assert.False(t, ok, "commuted form must not be synthesized")
	assert.Len(t, g.Operators(), 3)
}

func TestDerivativeSynthesizesImpliedFamily(t *testing.T) {
	g, diags := expand(t, []schema.DimensionDef{
		dimensionless(),
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1},
			Derivatives: []schema.RelationDef{{Other: "Time", Result: "Velocity"}}},
		{Name: "Time", Symbol: "T", Exponents: map[string]int{"time": 1}},
		{Name: "Velocity", Symbol: "v", Exponents: map[string]int{"length": 1, "time": -1}},
	})
	require.NoError(t, diags.Err())

	cases := []struct {
		kind                Kind
		left, right, result string
	}{
		{synth.KindDiv, "Length", "Time", "Velocity"},
		{synth.KindMul, "Velocity", "Time", "Length"},
		{synth.KindMul, "Time", "Velocity", "Length"},
		{synth.KindDiv, "Length", "Velocity", "Time"},
	}
	for _, c := range cases {
		op, ok := g.Lookup(synth.Signature{Kind: c.kind, Left: c.left, Right: c.right})
		require.True(t, ok, "missing %s %s %s", c.left, c.kind, c.right)
		assert.Equal(t, c.result, op.Result)
	}
}

func TestAlgebraicInconsistencyReportsAllThreeVectors(t *testing.T) {
	_, diags := expand(t, []schema.DimensionDef{
		dimensionless(),
		{Name: "Force", Symbol: "F", Exponents: map[string]int{"mass": 1, "length": 1, "time": -2},
			Integrals: []schema.RelationDef{{Other: "Length", Result: "Power"}}},
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1}},
		{Name: "Power", Symbol: "P", Exponents: map[string]int{"mass": 1, "length": 2, "time": -3}},
	})
	err := diags.Err()
	require.Error(t, err)
	assert.ErrorContains(t, err, "Force")
	assert.ErrorContains(t, err, "Length")
	assert.ErrorContains(t, err, "Power")
	assert.ErrorContains(t, err, "M L2 T-3")
}

func TestConflictingResultsForSameSignatureNameBothDeclarations(t *testing.T) {
	_, diags := expand(t, []schema.DimensionDef{
		dimensionless(),
		// Work shares Energy's vector via alias, so both declarations pass
		// the algebra check yet claim different result types for the same
		// signature. Conflation of aliases is never automatic.
		{Name: "Force", Symbol: "F", Exponents: map[string]int{"mass": 1, "length": 1, "time": -2},
			Integrals: []schema.RelationDef{
				{Other: "Length", Result: "Energy"},
				{Other: "Length", Result: "Work"},
			}},
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1}},
		{Name: "Energy", Symbol: "E", Exponents: map[string]int{"mass": 1, "length": 2, "time": -2}},
		{Name: "Work", AliasOf: "Energy"},
	})
	err := diags.Err()
	require.Error(t, err)
	assert.ErrorContains(t, err, "conflicting declarations")
	assert.ErrorContains(t, err, "integral Length -> Energy")
	assert.ErrorContains(t, err, "integral Length -> Work")
}

func TestAliasResultPreservedInOperator(t *testing.T) {
	g, diags := expand(t, []schema.DimensionDef{
		dimensionless(),
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1}, Forms: []int{3},
			CrossProducts: []schema.RelationDef{{Other: "Force", Result: "Torque"}}},
		{Name: "Force", Symbol: "F", Exponents: map[string]int{"mass": 1, "length": 1, "time": -2}, Forms: []int{3}},
		{Name: "Energy", Symbol: "E", Exponents: map[string]int{"mass": 1, "length": 2, "time": -2}, Forms: []int{3}},
		{Name: "Torque", AliasOf: "Energy"},
	})
	require.NoError(t, diags.Err())

	op, ok := g.Lookup(synth.Signature{Kind: synth.KindCross, Left: "Length", Right: "Force", Form: 3})
	require.True(t, ok)
	assert.Equal(t, "Torque", op.Result, "declared alias vocabulary is preserved")
}

func TestRedundantInverseDeclarationWarns(t *testing.T) {
	_, diags := expand(t, []schema.DimensionDef{
		dimensionless(),
		{Name: "Force", Symbol: "F", Exponents: map[string]int{"mass": 1, "length": 1, "time": -2},
			Integrals: []schema.RelationDef{{Other: "Length", Result: "Energy"}}},
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1}},
		{Name: "Energy", Symbol: "E", Exponents: map[string]int{"mass": 1, "length": 2, "time": -2},
			Derivatives: []schema.RelationDef{{Other: "Length", Result: "Force"}}},
	})
	require.NoError(t, diags.Err(), "redundancy is a warning, not an error")

	var warnings []schema.Diagnostic
	for _, d := range diags.Items() {
		if d.Severity == schema.SeverityWarning {
			warnings = append(warnings, d)
		}
	}
	require.Len(t, warnings, 1, "exactly one redundancy warning for the declaration pair")
	assert.Contains(t, warnings[0].Message, "redundant")
	assert.Contains(t, warnings[0].Message, "Force: integral Length -> Energy")
	assert.Contains(t, warnings[0].Message, "Energy: derivative Length -> Force")

	// The operator set is deduplicated, not doubled.
	g, _ := expand(t, forceEnergyLength())
	assert.Len(t, g.Operators(), 4)
}

// Same redundancy, opposite processing order: here the integral declarer
// (Area) sorts before the derivative declarer (Volume), so the second
// declaration lands on operators the first already synthesized.
func TestRedundantInverseDeclarationWarnsEitherOrder(t *testing.T) {
	g, diags := expand(t, []schema.DimensionDef{
		dimensionless(),
		{Name: "Area", Symbol: "A", Exponents: map[string]int{"length": 2},
			Integrals: []schema.RelationDef{{Other: "Length", Result: "Volume"}}},
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1}},
		{Name: "Volume", Symbol: "V", Exponents: map[string]int{"length": 3},
			Derivatives: []schema.RelationDef{{Other: "Length", Result: "Area"}}},
	})
	require.NoError(t, diags.Err())

	var warnings []schema.Diagnostic
	for _, d := range diags.Items() {
		if d.Severity == schema.SeverityWarning {
			warnings = append(warnings, d)
		}
	}
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "redundant")
	assert.Contains(t, warnings[0].Message, "Area: integral Length -> Volume")
	assert.Contains(t, warnings[0].Message, "Volume: derivative Length -> Area")

	assert.Len(t, g.Operators(), 4)
}

func TestUndeclaredResultDimensionIsReferenceError(t *testing.T) {
	_, diags := expand(t, []schema.DimensionDef{
		dimensionless(),
		{Name: "Force", Symbol: "F", Exponents: map[string]int{"mass": 1, "length": 1, "time": -2},
			Integrals: []schema.RelationDef{{Other: "Length", Result: "Enthalpy"}}},
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1}},
	})
	err := diags.Err()
	require.Error(t, err)
	assert.ErrorContains(t, err, "Enthalpy")
}

func TestCrossProductRequiresForm3OnAllParticipants(t *testing.T) {
	dims := []schema.DimensionDef{
		dimensionless(),
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1}, Forms: []int{2, 3},
			CrossProducts: []schema.RelationDef{{Other: "Force", Result: "Torque"}}},
		{Name: "Force", Symbol: "F", Exponents: map[string]int{"mass": 1, "length": 1, "time": -2}, Forms: []int{3}},
		{Name: "Torque", Symbol: "τ", Exponents: map[string]int{"mass": 1, "length": 2, "time": -2}, Forms: []int{3}},
	}
	g, diags := expand(t, dims)
	require.NoError(t, diags.Err())
	op, ok := g.Lookup(synth.Signature{Kind: synth.KindCross, Left: "Length", Right: "Force", Form: 3})
	require.True(t, ok)
	assert.Equal(t, "Torque", op.Result)

	// Drop form 3 from the result: generation must fail.
	dims[3].Forms = []int{2}
	_, diags = expand(t, dims)
	require.Error(t, diags.Err())
	assert.ErrorContains(t, diags.Err(), "vector form 3")
}

func TestDotProductExpandsPerSharedForm(t *testing.T) {
	g, diags := expand(t, []schema.DimensionDef{
		dimensionless(),
		{Name: "Force", Symbol: "F", Exponents: map[string]int{"mass": 1, "length": 1, "time": -2}, Forms: []int{2, 3},
			DotProducts: []schema.RelationDef{{Other: "Length", Result: "Energy"}}},
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1}, Forms: []int{3, 4}},
		{Name: "Energy", Symbol: "E", Exponents: map[string]int{"mass": 1, "length": 2, "time": -2}},
	})
	require.NoError(t, diags.Err())

	_, ok := g.Lookup(synth.Signature{Kind: synth.KindDot, Left: "Force", Right: "Length", Form: 3})
	assert.True(t, ok, "shared form 3 must synthesize")
	_, ok = g.Lookup(synth.Signature{Kind: synth.KindDot, Left: "Force", Right: "Length", Form: 2})
	assert.False(t, ok, "form 2 not shared by Length")
	_, ok = g.Lookup(synth.Signature{Kind: synth.KindDot, Left: "Force", Right: "Length", Form: 4})
	assert.False(t, ok, "form 4 not shared by Force")
}

func TestDotProductCoversOneComponentForm(t *testing.T) {
	g, diags := expand(t, []schema.DimensionDef{
		dimensionless(),
		{Name: "Force", Symbol: "F", Exponents: map[string]int{"mass": 1, "length": 1, "time": -2}, Forms: []int{1},
			DotProducts: []schema.RelationDef{{Other: "Length", Result: "Energy"}}},
		{Name: "Length", Symbol: "L", Exponents: map[string]int{"length": 1}, Forms: []int{1}},
		{Name: "Energy", Symbol: "E", Exponents: map[string]int{"mass": 1, "length": 2, "time": -2}},
	})
	require.NoError(t, diags.Err(), "a shared one-component form satisfies the dot product")

	op, ok := g.Lookup(synth.Signature{Kind: synth.KindDot, Left: "Force", Right: "Length", Form: 1})
	require.True(t, ok)
	assert.Equal(t, "Energy", op.Result)
}

func TestDimensionlessIsMultiplicativeIdentity(t *testing.T) {
	g, diags := expand(t, []schema.DimensionDef{
		dimensionless(),
		{Name: "Force", Symbol: "F", Exponents: map[string]int{"mass": 1, "length": 1, "time": -2},
			Integrals: []schema.RelationDef{{Other: "Dimensionless", Result: "Force"}}},
	})
	require.NoError(t, diags.Err())

	op, ok := g.Lookup(synth.Signature{Kind: synth.KindMul, Left: "Force", Right: "Dimensionless"})
	require.True(t, ok)
	assert.Equal(t, "Force", op.Result, "multiplying by Dimensionless is exponent identity, still a typed conversion")
}
