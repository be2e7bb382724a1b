package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads one or more catalog documents and merges them into a single
// Catalog. Format is dispatched on file extension (.toml, .json, .yaml,
// .yml). Parse failures, schema-version mismatches and duplicate entry
// names are collected as diagnostics; loading never stops at the first
// problem.
func Load(paths ...string) (*Catalog, *Diagnostics) {
	diags := &Diagnostics{}
	merged := &Catalog{}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			diags.Errorf(KindSchema, path, "cannot read catalog file: %v", err)
			continue
		}
		doc, ok := Parse(path, data, diags)
		if !ok {
			continue
		}
		mergeCatalog(merged, doc, path, diags)
	}

	ValidateFields(merged, diags)
	return merged, diags
}

// Parse decodes a single catalog document. The path is used for format
// dispatch and diagnostics only.
func Parse(path string, data []byte, diags *Diagnostics) (*Catalog, bool) {
	var doc Catalog
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		diags.Add(Diagnostic{
			Severity:    SeverityError,
			Kind:        KindSchema,
			Entry:       path,
			Message:     "unsupported catalog format",
			Suggestions: []string{"use a .toml, .json, .yaml or .yml file"},
		})
		return nil, false
	}
	if err != nil {
		diags.Errorf(KindSchema, path, "cannot parse catalog: %v", err)
		return nil, false
	}

	if !checkSchemaVersion(doc.SchemaVersion, path, diags) {
		return nil, false
	}
	return &doc, true
}

// checkSchemaVersion gates the document against SupportedSchema.
func checkSchemaVersion(version, path string, diags *Diagnostics) bool {
	if version == "" {
		diags.Add(Diagnostic{
			Severity:    SeverityError,
			Kind:        KindSchema,
			Entry:       path,
			Message:     "missing schema_version",
			Suggestions: []string{`add schema_version = "1.0.0"`},
		})
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		diags.Errorf(KindSchema, path, "invalid schema_version %q: %v", version, err)
		return false
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		// SupportedSchema is a compile-time constant; this cannot happen
		// outside a bad edit to this package.
		diags.Errorf(KindSchema, path, "invalid supported-schema constraint %q: %v", SupportedSchema, err)
		return false
	}
	if !constraint.Check(v) {
		diags.Errorf(KindSchema, path, "schema_version %s outside supported range %s", version, SupportedSchema)
		return false
	}
	return true
}

// mergeCatalog folds doc into dst. Duplicate dimension or unit names
// across documents are conflicts: there is exactly one canonical shape per
// name, never a silent merge of two definitions.
func mergeCatalog(dst, doc *Catalog, path string, diags *Diagnostics) {
	if dst.SchemaVersion == "" {
		dst.SchemaVersion = doc.SchemaVersion
	}
	for _, d := range doc.Dimensions {
		if _, exists := dst.Dimension(d.Name); exists {
			diags.Errorf(KindConflict, d.Name, "dimension declared more than once (duplicate in %s)", path)
			continue
		}
		dst.Dimensions = append(dst.Dimensions, d)
	}
	for _, u := range doc.Units {
		if _, exists := dst.Unit(u.Name); exists {
			diags.Errorf(KindConflict, u.Name, "unit declared more than once (duplicate in %s)", path)
			continue
		}
		dst.Units = append(dst.Units, u)
	}
}

// ValidateFields performs the purely structural checks that need no
// algebra: required fields present, forms in range, relation fields
// non-empty, unit factors usable. Cross-entry and exponent checks belong
// to the algebra and synth packages.
func ValidateFields(c *Catalog, diags *Diagnostics) {
	for i := range c.Dimensions {
		d := &c.Dimensions[i]
		if d.Name == "" {
			diags.Errorf(KindSchema, "(unnamed dimension)", "dimension missing name")
			continue
		}
		if d.Symbol == "" && d.AliasOf == "" {
			diags.Errorf(KindSchema, d.Name, "dimension missing symbol")
		}
		if d.AliasOf != "" && len(d.Exponents) > 0 {
			diags.Errorf(KindSchema, d.Name, "alias dimension must not declare its own exponents (inherits from %s)", d.AliasOf)
		}
		if d.AliasOf != "" && (len(d.Integrals)+len(d.Derivatives)+len(d.DotProducts)+len(d.CrossProducts)) > 0 {
			diags.Errorf(KindSchema, d.Name, "alias dimension must not declare relationships (declare them on %s)", d.AliasOf)
		}
		for _, f := range d.Forms {
			if f < 1 || f > 4 {
				diags.Errorf(KindSchema, d.Name, "vector form %d out of range (1..4)", f)
			}
		}
		validateRelations(d.Name, "integral", d.Integrals, diags)
		validateRelations(d.Name, "derivative", d.Derivatives, diags)
		validateRelations(d.Name, "dot product", d.DotProducts, diags)
		validateRelations(d.Name, "cross product", d.CrossProducts, diags)
	}

	for i := range c.Units {
		u := &c.Units[i]
		if u.Name == "" {
			diags.Errorf(KindSchema, "(unnamed unit)", "unit missing name")
			continue
		}
		if u.Symbol == "" {
			diags.Errorf(KindSchema, u.Name, "unit missing symbol")
		}
		if u.Factor == 0 {
			diags.Errorf(KindSchema, u.Name, "unit conversion factor must be non-zero")
		}
		switch u.System {
		case SystemSIBase, SystemSIDerived, SystemImperial, SystemUSCustomary, SystemCGS, SystemOther:
		case "":
			diags.Errorf(KindSchema, u.Name, "unit missing system tag")
		default:
			diags.Add(Diagnostic{
				Severity:    SeverityError,
				Kind:        KindSchema,
				Entry:       u.Name,
				Message:     "unrecognized unit system " + u.System,
				Suggestions: []string{"one of: si-base, si-derived, imperial, us-customary, cgs, other"},
			})
		}
	}
}

func validateRelations(dim, label string, rels []RelationDef, diags *Diagnostics) {
	for _, r := range rels {
		if r.Other == "" || r.Result == "" {
			diags.Errorf(KindSchema, dim, "%s relation missing other/result dimension name", label)
		}
	}
}
