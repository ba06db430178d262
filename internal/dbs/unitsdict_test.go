package dbs

import (
	"math"
	"testing"

	"github.com/ltan01/perturbopy/internal/apperr"
)

func TestUnitsDictStandardizesKnownUnits(t *testing.T) {
	d := NewUnitsDict[float64]("rydberg")
	if d.Units() != "Ry" {
		t.Errorf("Units() = %q, want Ry", d.Units())
	}
}

func TestUnitsDictKeepsUnknownUnits(t *testing.T) {
	d := NewUnitsDict[float64]("crystal")
	if d.Units() != "crystal" {
		t.Errorf("Units() = %q, want crystal kept verbatim", d.Units())
	}
}

func TestUnitsDictSetGetKeys(t *testing.T) {
	d := NewUnitsDict[[]float64]("meV")
	d.Set(3, []float64{1, 2})
	d.Set(1, []float64{3, 4})

	if got := d.Keys(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("Keys() = %v, want [1 3]", got)
	}
	v, ok := d.Get(3)
	if !ok || v[1] != 2 {
		t.Errorf("Get(3) = %v, %v", v, ok)
	}
	if _, ok := d.Get(7); ok {
		t.Error("Get(7) should miss")
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
}

func TestConvertScalars(t *testing.T) {
	d := UnitsDictFromMap("Ry", map[int]float64{1: 1.0, 2: 0.5})
	if err := Convert(d, "Ha", ScaleScalar); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if d.Units() != "Ha" {
		t.Errorf("Units() = %q, want Ha", d.Units())
	}
	v, _ := d.Get(1)
	if math.Abs(v-0.5) > 1e-12 {
		t.Errorf("converted value = %g, want 0.5", v)
	}
}

func TestConvertBandArrays(t *testing.T) {
	d := UnitsDictFromMap("eV", map[int]map[int][]float64{
		1: {1: {1, 2}, 2: {3, 4}},
	})
	if err := Convert(d, "meV", ScaleBandArrays); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	bands, _ := d.Get(1)
	if bands[2][1] != 4000 {
		t.Errorf("converted leaf = %g, want 4000", bands[2][1])
	}
}

func TestConvertRejectsUnknownTarget(t *testing.T) {
	d := UnitsDictFromMap("eV", map[int]float64{1: 1})
	if err := Convert(d, "bogus", ScaleScalar); !apperr.IsConfig(err) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if d.Units() != "eV" {
		t.Errorf("failed conversion must not change units, got %q", d.Units())
	}
}
