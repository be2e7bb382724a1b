package codegen

import (
	"github.com/mensura/mensura/algebra"
	"github.com/mensura/mensura/logger"
	"github.com/mensura/mensura/schema"
	"github.com/mensura/mensura/synth"
	"github.com/mensura/mensura/units"
)

// Resolved bundles the outputs of a full resolution pass over a catalog:
// the dimension registry, the unit table and the operator graph.
type Resolved struct {
	Catalog  *schema.Catalog
	Registry *algebra.Registry
	Units    *units.Table
	Graph    *synth.Graph
}

// Resolve runs the two-phase resolution over a loaded catalog: register
// every dimension, then resolve aliases, units and relationships. Every
// inconsistency is collected into diags; the Resolved graph is only sound
// when diags.Err() is nil.
func Resolve(c *schema.Catalog, diags *schema.Diagnostics) *Resolved {
	reg := algebra.Build(c, diags)
	table := units.Resolve(c, reg, diags)
	graph := synth.Expand(reg, diags)

	logger.Logger.Debugw("catalog resolved",
		"dimensions", len(reg.Names()),
		"operators", len(graph.Operators()),
	)

	return &Resolved{Catalog: c, Registry: reg, Units: table, Graph: graph}
}

// Run loads catalog files, resolves them and emits source files in
// memory. The returned diagnostics carry every finding of the run; files
// are nil whenever diagnostics contain errors. Generation is all-or-
// nothing — no partial output is ever produced.
func Run(paths []string, opts Options) ([]File, *schema.Diagnostics, error) {
	cat, diags := schema.Load(paths...)
	return run(cat, diags, opts)
}

// RunCatalog is Run over an already-loaded catalog (the embedded default
// catalog, or a programmatically built one).
func RunCatalog(c *schema.Catalog, opts Options) ([]File, *schema.Diagnostics, error) {
	diags := &schema.Diagnostics{}
	schema.ValidateFields(c, diags)
	return run(c, diags, opts)
}

func run(c *schema.Catalog, diags *schema.Diagnostics, opts Options) ([]File, *schema.Diagnostics, error) {
	resolved := Resolve(c, diags)
	if err := diags.Err(); err != nil {
		return nil, diags, err
	}

	files, err := NewGenerator(resolved.Registry, resolved.Units, resolved.Graph, opts).Generate()
	if err != nil {
		return nil, diags, err
	}

	logger.Logger.Infow("generation complete", "files", len(files))
	return files, diags, nil
}
