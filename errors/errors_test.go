package errors

import (
	"testing"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrSchema, ErrAlgebra, ErrConflict, ErrUnresolved, ErrDomain}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && Is(a, b) {
				t.Errorf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrAlgebra, "Force * Length declared to yield Power")
	if !Is(err, ErrAlgebra) {
		t.Error("wrapped error lost ErrAlgebra identity")
	}
	if !IsGenerationError(err) {
		t.Error("ErrAlgebra should be a generation error")
	}
	if IsDomainError(err) {
		t.Error("ErrAlgebra should not be a domain error")
	}
}

func TestDomainErrorClassification(t *testing.T) {
	err := Wrapf(ErrDomain, "temperature %g K below absolute zero", -3.0)
	if !IsDomainError(err) {
		t.Error("wrapped ErrDomain not recognized")
	}
	if IsGenerationError(err) {
		t.Error("ErrDomain must not classify as a generation error")
	}
}
