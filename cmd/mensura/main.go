package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mensura/mensura/cmd/mensura/commands"
	"github.com/mensura/mensura/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mensura",
	Short: "mensura - dimensional-algebra code generator for units of measure",
	Long: `mensura generates strongly-typed quantity code from declarative
dimension and unit metadata.

A catalog declares dimensions (exponent vectors over the seven base
dimensions), units with conversion factors, and the physical
relationships between dimensions (integrals, derivatives, dot and cross
products). mensura validates the catalog against the dimension algebra
and emits one Go file per dimension with type-safe operators, unit
factories and conversions.

Available commands:
  generate - Validate a catalog and emit quantity code
  validate - Check catalog files without generating
  catalog  - Inspect a resolved catalog
  version  - Show version information

Examples:
  mensura generate                        # Embedded SI catalog -> ./quantities
  mensura generate -m units.toml -o gen   # Custom catalog
  mensura validate units.toml extra.toml  # Report every inconsistency
  mensura catalog                         # Dimension and operator summary`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.CatalogCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
