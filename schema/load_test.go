package schema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensura/mensura/errors"
	"github.com/mensura/mensura/schema"
)

const minimalTOML = `
schema_version = "1.0.0"

[[dimension]]
name = "Dimensionless"
symbol = "1"
exponents = {}

[[dimension]]
name = "Length"
symbol = "L"
exponents = { length = 1 }
units = ["Meter"]

[[unit]]
name = "Meter"
symbol = "m"
system = "si-base"
factor = 1.0
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseTOML(t *testing.T) {
	diags := &schema.Diagnostics{}
	c, ok := schema.Parse("catalog.toml", []byte(minimalTOML), diags)
	require.True(t, ok)
	require.NoError(t, diags.Err())

	assert.Equal(t, "1.0.0", c.SchemaVersion)
	require.Len(t, c.Dimensions, 2)
	length, ok := c.Dimension("Length")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"length": 1}, length.Exponents)
	assert.Equal(t, []string{"Meter"}, length.Units)

	meter, ok := c.Unit("Meter")
	require.True(t, ok)
	assert.Equal(t, 1.0, meter.Factor)
	assert.Equal(t, schema.SystemSIBase, meter.System)
}

func TestParseJSONAndYAML(t *testing.T) {
	jsonDoc := `{
		"schema_version": "1.2.0",
		"dimensions": [
			{"name": "Time", "symbol": "t", "exponents": {"time": 1}}
		],
		"units": []
	}`
	yamlDoc := `
schema_version: "1.2.0"
dimensions:
  - name: Time
    symbol: t
    exponents:
      time: 1
`
	for _, tc := range []struct{ path, doc string }{
		{"catalog.json", jsonDoc},
		{"catalog.yaml", yamlDoc},
	} {
		diags := &schema.Diagnostics{}
		c, ok := schema.Parse(tc.path, []byte(tc.doc), diags)
		require.True(t, ok, "parsing %s", tc.path)
		dim, ok := c.Dimension("Time")
		require.True(t, ok)
		assert.Equal(t, 1, dim.Exponents["time"])
	}
}

func TestParseRejectsUnsupportedFormat(t *testing.T) {
	diags := &schema.Diagnostics{}
	_, ok := schema.Parse("catalog.ini", []byte("whatever"), diags)
	assert.False(t, ok)
	require.True(t, diags.HasErrors())
	assert.ErrorIs(t, diags.Err(), errors.ErrSchema)
}

func TestSchemaVersionGate(t *testing.T) {
	cases := []struct {
		name, version string
		ok            bool
	}{
		{"current", "1.0.0", true},
		{"newer minor", "1.7.3", true},
		{"next major", "2.0.0", false},
		{"garbage", "one", false},
		{"missing", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := "schema_version = \"" + tc.version + "\"\n"
			if tc.version == "" {
				doc = ""
			}
			diags := &schema.Diagnostics{}
			_, ok := schema.Parse("catalog.toml", []byte(doc), diags)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, !tc.ok, diags.HasErrors())
		})
	}
}

func TestLoadMergesMultipleFiles(t *testing.T) {
	base := writeTemp(t, "base.toml", minimalTOML)
	extra := writeTemp(t, "extra.toml", `
schema_version = "1.0.0"

[[dimension]]
name = "Time"
symbol = "t"
exponents = { time = 1 }
units = ["Second"]

[[unit]]
name = "Second"
symbol = "s"
system = "si-base"
factor = 1.0
`)

	c, diags := schema.Load(base, extra)
	require.NoError(t, diags.Err())
	assert.Len(t, c.Dimensions, 3)
	_, ok := c.Dimension("Time")
	assert.True(t, ok)
	_, ok = c.Unit("Second")
	assert.True(t, ok)
}

func TestLoadFlagsDuplicateAcrossFiles(t *testing.T) {
	base := writeTemp(t, "base.toml", minimalTOML)
	dup := writeTemp(t, "dup.toml", `
schema_version = "1.0.0"

[[dimension]]
name = "Length"
symbol = "L"
exponents = { length = 1 }
`)

	_, diags := schema.Load(base, dup)
	err := diags.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.ErrorContains(t, err, "Length")
	assert.ErrorContains(t, err, "more than once")
}

func TestLoadCollectsEveryFinding(t *testing.T) {
	// One unreadable file plus one bad document: both reported in a
	// single pass.
	bad := writeTemp(t, "bad.toml", `schema_version = "9.0.0"`)

	_, diags := schema.Load(filepath.Join(t.TempDir(), "absent.toml"), bad)
	require.True(t, diags.HasErrors())
	assert.GreaterOrEqual(t, len(diags.Items()), 2)
}

func TestValidateFields(t *testing.T) {
	c := &schema.Catalog{
		SchemaVersion: "1.0.0",
		Dimensions: []schema.DimensionDef{
			{Name: "Dimensionless", Symbol: "1", Exponents: map[string]int{}},
			{Name: "", Symbol: "?"},
			{Name: "NoSymbol", Exponents: map[string]int{"mass": 1}},
			{Name: "BadAlias", AliasOf: "Dimensionless", Exponents: map[string]int{"mass": 1},
				Integrals: []schema.RelationDef{{Other: "X", Result: "Y"}}},
			{Name: "BadForm", Symbol: "b", Exponents: map[string]int{"length": 1}, Forms: []int{0, 5}},
			{Name: "EmptyRelation", Symbol: "e", Exponents: map[string]int{"time": 1},
				Derivatives: []schema.RelationDef{{Other: "", Result: ""}}},
		},
		Units: []schema.UnitDef{
			{Name: "ZeroFactor", Symbol: "z", System: schema.SystemOther, Factor: 0},
			{Name: "BadSystem", Symbol: "b", System: "metric", Factor: 1},
			{Name: "NoSystem", Symbol: "n", Factor: 1},
		},
	}

	diags := &schema.Diagnostics{}
	schema.ValidateFields(c, diags)

	var messages []string
	for _, d := range diags.Items() {
		require.Equal(t, schema.SeverityError, d.Severity)
		messages = append(messages, d.Message)
	}
	expectFragments := []string{
		"missing name",
		"missing symbol",
		"must not declare its own exponents",
		"must not declare relationships",
		"vector form 0 out of range",
		"vector form 5 out of range",
		"missing other/result",
		"factor must be non-zero",
		"unrecognized unit system",
		"missing system tag",
	}
	for _, frag := range expectFragments {
		found := false
		for _, m := range messages {
			if strings.Contains(m, frag) {
				found = true
				break
			}
		}
		assert.True(t, found, "no diagnostic mentioning %q in %v", frag, messages)
	}
}
