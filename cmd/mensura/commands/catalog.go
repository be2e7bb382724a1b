package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mensura/mensura/catalog"
	"github.com/mensura/mensura/codegen"
	"github.com/mensura/mensura/errors"
)

var catalogExport bool

// CatalogCmd represents the catalog command
var CatalogCmd = &cobra.Command{
	Use:   "catalog [catalog files...]",
	Short: "Inspect a resolved catalog",
	Long: `Show the dimensions, exponent vectors, units and synthesized
operators of a catalog. Without arguments the embedded SI catalog is
shown.

Examples:
  mensura catalog                  # Summary of the embedded SI catalog
  mensura catalog units.toml       # Summary of a custom catalog
  mensura catalog --export         # Print the embedded SI document
  mensura catalog --json           # Machine-readable summary`,
	RunE: runCatalog,
}

func init() {
	CatalogCmd.Flags().BoolVar(&catalogExport, "export", false, "Print the embedded SI catalog document and exit")
}

// dimensionSummary is the per-dimension slice of the JSON summary.
type dimensionSummary struct {
	Name    string   `json:"name"`
	Symbol  string   `json:"symbol,omitempty"`
	Vector  string   `json:"vector"`
	AliasOf string   `json:"alias_of,omitempty"`
	Forms   []int    `json:"forms,omitempty"`
	Units   []string `json:"units,omitempty"`
}

type catalogSummary struct {
	Dimensions []dimensionSummary `json:"dimensions"`
	Operators  []string           `json:"operators"`
	Units      int                `json:"units"`
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if catalogExport {
		_, err := os.Stdout.Write(catalog.Source())
		return err
	}

	c, diags := loadForInspection(args)
	if c == nil || diags.HasErrors() {
		errs, _ := renderDiagnostics(diags)
		return errors.Wrapf(errors.ErrSchema, "%d validation error(s)", errs)
	}
	r := codegen.Resolve(c, diags)
	if diags.HasErrors() {
		errs, _ := renderDiagnostics(diags)
		return errors.Wrapf(errors.ErrSchema, "%d validation error(s)", errs)
	}

	summary := summarize(r)
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	renderSummary(summary)
	return nil
}

func summarize(r *codegen.Resolved) catalogSummary {
	var s catalogSummary
	for _, name := range r.Registry.Names() {
		dim, _ := r.Registry.ByName(name)
		d := dimensionSummary{
			Name:    dim.Name,
			Symbol:  dim.Symbol,
			Vector:  dim.Exponents.String(),
			AliasOf: dim.AliasOf,
			Forms:   dim.Forms,
		}
		for _, u := range r.Units.ForDimension(name) {
			d.Units = append(d.Units, u.Name)
		}
		s.Dimensions = append(s.Dimensions, d)
		s.Units += len(d.Units)
	}
	for _, op := range r.Graph.Operators() {
		s.Operators = append(s.Operators, op.String())
	}
	return s
}

func renderSummary(s catalogSummary) {
	rows := pterm.TableData{{"Dimension", "Symbol", "Vector", "Forms", "Units"}}
	for _, d := range s.Dimensions {
		vector := d.Vector
		if d.AliasOf != "" {
			vector = fmt.Sprintf("= %s", d.AliasOf)
		}
		rows = append(rows, []string{
			d.Name,
			d.Symbol,
			vector,
			fmt.Sprint(d.Forms),
			fmt.Sprint(len(d.Units)),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Info.Printfln("%d dimension(s), %d unit(s), %d synthesized operator(s)",
		len(s.Dimensions), s.Units, len(s.Operators))
}
