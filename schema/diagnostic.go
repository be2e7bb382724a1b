package schema

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/mensura/mensura/errors"
)

// Severity indicates how a diagnostic affects the generation run.
type Severity string

const (
	SeverityError   Severity = "error"   // Generation must fail
	SeverityWarning Severity = "warning" // Reported, generation continues
)

// Kind categorizes diagnostics for programmatic handling and maps each to
// its sentinel error class.
type Kind string

const (
	KindSchema    Kind = "schema"    // Malformed metadata entry
	KindAlgebra   Kind = "algebra"   // Exponent arithmetic violation
	KindConflict  Kind = "conflict"  // Duplicate or contradictory declarations
	KindReference Kind = "reference" // Named entry absent from the catalog
)

func (k Kind) sentinel() error {
	switch k {
	case KindAlgebra:
		return errors.ErrAlgebra
	case KindConflict:
		return errors.ErrConflict
	case KindReference:
		return errors.ErrUnresolved
	default:
		return errors.ErrSchema
	}
}

// Diagnostic is one collected finding against the metadata. Entry names
// the offending metadata entry (dimension, unit or relation signature).
type Diagnostic struct {
	Severity    Severity
	Kind        Kind
	Entry       string
	Message     string
	Suggestions []string
}

// Error implements the error interface. The diagnostic unwraps to the
// sentinel for its kind so errors.Is works across the pipeline.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Entry, d.Message)
}

// Unwrap maps the diagnostic onto its sentinel error class.
func (d Diagnostic) Unwrap() error {
	return d.Kind.sentinel()
}

// RenderPlain formats the diagnostic for logs and JSON-adjacent output.
func (d Diagnostic) RenderPlain() string {
	msg := fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Kind, d.Entry, d.Message)
	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (suggestions: %s)", strings.Join(d.Suggestions, ", "))
	}
	return msg
}

// RenderTerminal formats the diagnostic with pterm colors for CLI output.
func (d Diagnostic) RenderTerminal() string {
	var head string
	switch d.Severity {
	case SeverityError:
		head = pterm.Red(fmt.Sprintf("error[%s]", d.Kind))
	default:
		head = pterm.Yellow(fmt.Sprintf("warning[%s]", d.Kind))
	}
	out := fmt.Sprintf("%s %s: %s", head, pterm.Bold.Sprint(d.Entry), d.Message)
	for _, s := range d.Suggestions {
		out += fmt.Sprintf("\n  %s %s", pterm.Green("hint:"), s)
	}
	return out
}

// Diagnostics accumulates findings across the whole generation pass.
// Nothing short-circuits: a single run reports every inconsistency so the
// metadata can be corrected in bulk.
type Diagnostics struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (ds *Diagnostics) Add(d Diagnostic) {
	ds.items = append(ds.items, d)
}

// Errorf records an error-severity diagnostic.
func (ds *Diagnostics) Errorf(kind Kind, entry, format string, args ...interface{}) {
	ds.Add(Diagnostic{
		Severity: SeverityError,
		Kind:     kind,
		Entry:    entry,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf records a warning-severity diagnostic.
func (ds *Diagnostics) Warnf(kind Kind, entry, format string, args ...interface{}) {
	ds.Add(Diagnostic{
		Severity: SeverityWarning,
		Kind:     kind,
		Entry:    entry,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Merge appends every diagnostic from other.
func (ds *Diagnostics) Merge(other *Diagnostics) {
	if other != nil {
		ds.items = append(ds.items, other.items...)
	}
}

// Items returns the collected diagnostics in insertion order.
func (ds *Diagnostics) Items() []Diagnostic {
	return ds.items
}

// HasErrors reports whether any error-severity diagnostic was collected.
func (ds *Diagnostics) HasErrors() bool {
	for _, d := range ds.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err returns nil when no error-severity diagnostics were collected,
// otherwise a joined error carrying every error-severity diagnostic.
// Warnings never fail the run.
func (ds *Diagnostics) Err() error {
	var errs []error
	for _, d := range ds.items {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Wrapf(errors.Join(errs...), "catalog validation failed with %d error(s)", len(errs))
}
