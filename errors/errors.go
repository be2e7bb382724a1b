// Package errors provides error handling for mensura.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing diagnostics
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := resolve(); err != nil {
//	    return errors.Wrap(err, "failed to resolve catalog")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrDomain) {
//	    // handle rejected construction
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Join         = crdb.Join
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Assertions
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors for the generation pipeline and the generated runtime.
// Use these with errors.Is() for type-safe error checking; wrap them with
// errors.Wrap() to add context while preserving the type.
var (
	// ErrSchema indicates malformed metadata: unrecognized base-dimension
	// key, missing required unit fields, unparseable catalog document.
	ErrSchema = New("schema error")

	// ErrAlgebra indicates a declared relationship whose result exponents
	// do not match the operator applied to its operands.
	ErrAlgebra = New("algebraic inconsistency")

	// ErrConflict indicates two declarations implying different results
	// for the same operator signature, or duplicate entry names.
	ErrConflict = New("conflicting declaration")

	// ErrUnresolved indicates a reference to a dimension or unit that is
	// not declared anywhere in the catalog.
	ErrUnresolved = New("unresolved reference")

	// ErrDomain indicates a runtime domain violation: a value rejected by
	// a physical constraint (negative absolute temperature, zero
	// denominator). The only error class deferred to runtime.
	ErrDomain = New("domain violation")
)

// IsGenerationError reports whether err belongs to any of the
// generation-time error classes (everything except ErrDomain).
func IsGenerationError(err error) bool {
	return IsAny(err, ErrSchema, ErrAlgebra, ErrConflict, ErrUnresolved)
}

// IsDomainError reports whether err is or wraps ErrDomain.
func IsDomainError(err error) bool {
	return Is(err, ErrDomain)
}
