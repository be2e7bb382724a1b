package util

import "testing"

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Force":             "force",
		"SpecificGravity":   "specific_gravity",
		"AmountOfSubstance": "amount_of_substance",
		"SIUnit":            "si_unit",
		"Dimensionless":     "dimensionless",
	}
	for in, want := range cases {
		if got := ToSnakeCase(in); got != want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToPascalCase(t *testing.T) {
	cases := map[string]string{
		"specific_gravity": "SpecificGravity",
		"pound-force":      "PoundForce",
		"meter":            "Meter",
	}
	for in, want := range cases {
		if got := ToPascalCase(in); got != want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}
