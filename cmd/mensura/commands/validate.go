package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mensura/mensura/catalog"
	"github.com/mensura/mensura/codegen"
	"github.com/mensura/mensura/errors"
	"github.com/mensura/mensura/schema"
)

// ValidateCmd represents the validate command
var ValidateCmd = &cobra.Command{
	Use:   "validate [catalog files...]",
	Short: "Check catalog files without generating",
	Long: `Run the full resolution pipeline over catalog files and report
every schema, algebra, conflict and reference finding in one pass.
Without arguments the embedded SI catalog is checked.

The exit status is non-zero when any error-severity finding exists;
warnings alone pass.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	c, diags := loadForInspection(args)
	if c != nil && !diags.HasErrors() {
		codegen.Resolve(c, diags)
	}

	errs, warns := renderDiagnostics(diags)
	if errs > 0 {
		pterm.Error.Printfln("catalog invalid: %d error(s), %d warning(s)", errs, warns)
		return errors.Wrapf(errors.ErrSchema, "%d validation error(s)", errs)
	}

	pterm.Success.Printfln("catalog valid: %d dimension(s), %d unit(s), %d warning(s)",
		len(c.Dimensions), len(c.Units), warns)
	return nil
}

// loadForInspection loads either the named catalog files or the embedded
// SI document, collecting findings instead of failing fast.
func loadForInspection(paths []string) (*schema.Catalog, *schema.Diagnostics) {
	if len(paths) > 0 {
		return schema.Load(paths...)
	}
	diags := &schema.Diagnostics{}
	c, ok := schema.Parse(catalog.Filename, catalog.Source(), diags)
	if !ok {
		return nil, diags
	}
	schema.ValidateFields(c, diags)
	return c, diags
}
