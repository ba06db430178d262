package units

import (
	"math"
	"testing"

	"github.com/ltan01/perturbopy/internal/apperr"
)

func closeTo(got, want float64) bool {
	if want == 0 {
		return math.Abs(got) < 1e-12
	}
	return math.Abs(got-want)/math.Abs(want) < 1e-5
}

func TestConversionFactor(t *testing.T) {
	cases := []struct {
		from, to string
		want     float64
	}{
		{"bohr", "bohr", 1},
		{"bohr", "nm", 5.29177249e-2},
		{"cm", "fm", 1e13},
		{"fm", "cm", 1e-13},
		{"meV", "Ha", 3.674930882447527e-05},
		{"Ry", "Ha", 0.5},
		{"Ha", "eV", 27.211386},
		{"eV", "meV", 1e3},
		{"K", "K", 1},
		{"fs", "s", 1e-15},
	}
	for _, tc := range cases {
		got, err := ConversionFactor(tc.from, tc.to)
		if err != nil {
			t.Fatalf("ConversionFactor(%q, %q) failed: %v", tc.from, tc.to, err)
		}
		if !closeTo(got, tc.want) {
			t.Errorf("ConversionFactor(%q, %q) = %g, want %g", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestConversionFactorRejectsCrossFamily(t *testing.T) {
	if _, err := ConversionFactor("eV", "nm"); !apperr.IsConfig(err) {
		t.Fatalf("expected ConfigurationError for eV -> nm, got %v", err)
	}
}

func TestConversionFactorRejectsUnknownUnit(t *testing.T) {
	if _, err := ConversionFactor("parsec", "nm"); !apperr.IsConfig(err) {
		t.Fatalf("expected ConfigurationError for unknown unit, got %v", err)
	}
}

func TestStandardizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"rydberg", "Ry"},
		{"hartree", "Ha"},
		{"kelvin", "K"},
		{"meV", "meV"},
		{" eV ", "eV"},
		{"nm", "nm"},
		{"a.u.", "bohr"},
	}
	for _, tc := range cases {
		got, err := StandardizeName(tc.in)
		if err != nil {
			t.Fatalf("StandardizeName(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("StandardizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHbar(t *testing.T) {
	got, err := Hbar("eV*fs")
	if err != nil {
		t.Fatalf("Hbar failed: %v", err)
	}
	if !closeTo(got, 0.65821) {
		t.Errorf("Hbar(eV*fs) = %g, want ~0.65821", got)
	}
}

func TestHbarRejectsMalformedUnits(t *testing.T) {
	if _, err := Hbar("eV"); !apperr.IsConfig(err) {
		t.Fatalf("expected ConfigurationError for non-compound hbar units, got %v", err)
	}
}
