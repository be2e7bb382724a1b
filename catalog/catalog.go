// Package catalog ships the default SI metadata catalog. The document is
// embedded in the binary so `mensura generate` works out of the box with
// no metadata files on disk; user catalogs extend or replace it.
package catalog

import (
	_ "embed"

	"github.com/mensura/mensura/codegen"
	"github.com/mensura/mensura/errors"
	"github.com/mensura/mensura/schema"
)

//go:embed si.toml
var siTOML []byte

// Filename is the name the embedded document reports in diagnostics.
const Filename = "si.toml"

// Source returns a copy of the raw embedded catalog document, for
// `mensura catalog --export` style inspection.
func Source() []byte {
	return append([]byte(nil), siTOML...)
}

// Default parses and field-validates the embedded SI catalog. An error
// here means the shipped document is broken, not user input.
func Default() (*schema.Catalog, error) {
	diags := &schema.Diagnostics{}
	c, ok := schema.Parse(Filename, siTOML, diags)
	if ok {
		schema.ValidateFields(c, diags)
	}
	if err := diags.Err(); err != nil {
		return nil, errors.Wrap(err, "embedded SI catalog")
	}
	return c, nil
}

// DefaultResolved runs full resolution (registry, unit table, operator
// graph) over the embedded catalog.
func DefaultResolved() (*codegen.Resolved, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	diags := &schema.Diagnostics{}
	r := codegen.Resolve(c, diags)
	if err := diags.Err(); err != nil {
		return nil, errors.Wrap(err, "embedded SI catalog")
	}
	return r, nil
}
