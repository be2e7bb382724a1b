package commands

import (
	"fmt"
	"os"

	"github.com/mensura/mensura/logger"
	"github.com/mensura/mensura/schema"
)

// renderDiagnostics prints every collected finding to stderr, colored for
// terminals and plain under --json.
func renderDiagnostics(diags *schema.Diagnostics) (errs, warns int) {
	for _, d := range diags.Items() {
		if d.Severity == schema.SeverityError {
			errs++
		} else {
			warns++
		}
		if logger.JSONOutput {
			fmt.Fprintln(os.Stderr, d.RenderPlain())
		} else {
			fmt.Fprintln(os.Stderr, d.RenderTerminal())
		}
	}
	return errs, warns
}
