package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mensura/mensura/catalog"
	"github.com/mensura/mensura/codegen"
	"github.com/mensura/mensura/config"
	"github.com/mensura/mensura/errors"
	"github.com/mensura/mensura/logger"
	"github.com/mensura/mensura/schema"
)

var (
	generateMetadata []string
	generateOut      string
	generatePackage  string
	generateWatch    bool
	generateConfigF  string
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Validate a catalog and emit quantity code",
	Long: `Generate strongly-typed quantity code from a metadata catalog.

Without --metadata the embedded SI catalog is used. Generation is
all-or-nothing: every inconsistency in the catalog is reported in one
pass and no files are written unless the whole catalog resolves.

Examples:
  mensura generate                          # Embedded SI catalog
  mensura generate -m units.toml            # Custom catalog
  mensura generate -m a.toml -m b.toml      # Merged catalogs
  mensura generate -m units.toml --watch    # Regenerate on change`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringSliceVarP(&generateMetadata, "metadata", "m", nil, "Catalog file(s); repeatable (default: embedded SI catalog)")
	GenerateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output directory (default: quantities)")
	GenerateCmd.Flags().StringVarP(&generatePackage, "package", "p", "", "Package name of the generated files (default: quantities)")
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Watch catalog files and regenerate on change")
	GenerateCmd.Flags().StringVar(&generateConfigF, "config", "", "Config file (default: ./mensura.toml if present)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := codegen.Options{PackageName: cfg.Generate.Package}
	paths := cfg.Catalog.Paths

	if err := generateOnce(paths, cfg.Generate.Out, opts); err != nil && !cfg.Generate.Watch {
		return err
	}

	if !cfg.Generate.Watch {
		return nil
	}
	if len(paths) == 0 {
		return errors.New("--watch requires --metadata: the embedded catalog never changes")
	}
	return watchAndRegenerate(cfg, paths, opts)
}

// loadConfig resolves config from file and environment, then applies
// command-line flag overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if generateConfigF != "" {
		cfg, err = config.LoadFromFile(generateConfigF)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("metadata") {
		cfg.Catalog.Paths = generateMetadata
	}
	if cmd.Flags().Changed("out") {
		cfg.Generate.Out = generateOut
	}
	if cmd.Flags().Changed("package") {
		cfg.Generate.Package = generatePackage
	}
	if cmd.Flags().Changed("watch") {
		cfg.Generate.Watch = generateWatch
	}
	return cfg, nil
}

// generateOnce runs the whole pipeline: load, resolve, emit, write.
func generateOnce(paths []string, outDir string, opts codegen.Options) error {
	start := time.Now()

	var files []codegen.File
	var diags *schema.Diagnostics
	var err error
	if len(paths) == 0 {
		var c *schema.Catalog
		c, err = catalog.Default()
		if err != nil {
			return err
		}
		files, diags, err = codegen.RunCatalog(c, opts)
	} else {
		files, diags, err = codegen.Run(paths, opts)
	}

	errs, warns := renderDiagnostics(diags)
	if err != nil {
		pterm.Error.Printfln("generation failed: %d error(s), %d warning(s)", errs, warns)
		return err
	}

	if err := codegen.WriteFiles(outDir, files); err != nil {
		return err
	}

	logger.Logger.Debugw("generation pass finished",
		"files", len(files),
		"out", outDir,
		"duration", time.Since(start))
	pterm.Success.Printfln("Generated %d files in %s", len(files), filepath.Clean(outDir))
	return nil
}

// watchAndRegenerate blocks, regenerating after every debounced catalog
// change until interrupted.
func watchAndRegenerate(cfg *config.Config, paths []string, opts codegen.Options) error {
	debounce := time.Duration(cfg.Generate.WatchDebounceMs) * time.Millisecond
	w, err := config.NewWatcher(paths, debounce)
	if err != nil {
		return err
	}
	defer w.Stop()

	w.OnChange(func() error {
		// A broken edit keeps the previous output in place; the next good
		// save regenerates.
		return generateOnce(paths, cfg.Generate.Out, opts)
	})
	w.Start()
	pterm.Info.Printfln("Watching %d catalog file(s); press Ctrl-C to stop", len(paths))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Fprintln(os.Stderr)
	logger.Logger.Infow("watch stopped")
	return nil
}
