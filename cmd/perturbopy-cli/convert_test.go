package cmd

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ltan01/perturbopy/internal/logging"
	"github.com/ltan01/perturbopy/internal/spins"
)

const fixtureDoc = `
input parameters:
  prefix: si
  calc mode: spins
basic data:
  alat: 10.26
  alat units: bohr
  lattice vectors:
    - [1.0, 0.0, 0.0]
    - [0.0, 1.0, 0.0]
    - [0.0, 0.0, 1.0]
  reciprocal lattice vectors:
    - [1.0, 0.0, 0.0]
    - [0.0, 1.0, 0.0]
    - [0.0, 0.0, 1.0]
spins:
  k-point coordinate units: crystal
  k-point coordinates:
    - [0.0, 0.0, 0.0]
    - [0.5, 0.5, 0.5]
  number of k-points: 2
  number of bands: 1
  number of configurations: 1
  number of phonon modes: 1
  energy units: eV
  temperature units: K
  chemical potential units: eV
  Im(Sigma) units: meV
  energy:
    band index:
      1: [1.5, 2.5]
  configuration index:
    1:
      temperature: 300.0
      chemical potential: 6.5
      band index:
        1:
          Im(Sigma):
            total: [10.0, 20.0]
            phonon mode:
              1: [10.0, 20.0]
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "si_spins.yml")
	if err := os.WriteFile(path, []byte(fixtureDoc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func loadFixture(t *testing.T) *spins.Results {
	t.Helper()
	var log logging.Logger
	res, err := loadAndReshape(writeFixture(t), "quiet", &log)
	if err != nil {
		t.Fatalf("loadAndReshape failed: %v", err)
	}
	return res
}

func TestLoadAndReshapeFixture(t *testing.T) {
	res := loadFixture(t)
	if res.Prefix() != "si" || res.NumKPoints() != 2 || res.NumBands() != 1 {
		t.Fatalf("unexpected dimensions: prefix=%q kpt=%d bands=%d",
			res.Prefix(), res.NumKPoints(), res.NumBands())
	}
}

func TestConvertEnergies(t *testing.T) {
	res := loadFixture(t)
	if err := convertEnergies(res, "eV"); err != nil {
		t.Fatalf("convertEnergies failed: %v", err)
	}

	if got := res.Imsigma().Units(); got != "eV" {
		t.Errorf("Imsigma units = %q, want eV", got)
	}
	cfg, _ := res.Imsigma().Get(1)
	if math.Abs(cfg[1][0]-0.01) > 1e-12 {
		t.Errorf("converted Im(Sigma) leaf = %g, want 0.01", cfg[1][0])
	}

	// band energies were already in eV: unchanged
	b, _ := res.Bands().Get(1)
	if b[0] != 1.5 {
		t.Errorf("band energy = %g, want 1.5", b[0])
	}
}

func TestConvertEnergiesRejectsUnknownTarget(t *testing.T) {
	res := loadFixture(t)
	if err := convertEnergies(res, "furlong"); err == nil {
		t.Fatal("expected error for unknown target unit")
	}
}

func TestBuildConvertedDoc(t *testing.T) {
	res := loadFixture(t)
	doc := buildConvertedDoc(res)

	serial, _ := doc["serial number"].(string)
	if len(serial) != len("urn:uuid:")+36 || serial[:9] != "urn:uuid:" {
		t.Errorf("serial number = %q", serial)
	}
	if doc["prefix"] != "si" || doc["calc mode"] != "spins" {
		t.Errorf("identity fields = %v / %v", doc["prefix"], doc["calc mode"])
	}

	se, ok := doc["self-energies"].(map[string]any)
	if !ok {
		t.Fatal("missing self-energies block")
	}
	// 10 output names + the units tag
	if len(se) != 11 {
		t.Errorf("self-energies has %d entries, want 11", len(se))
	}
	if se["units"] != "meV" {
		t.Errorf("self-energy units = %v, want meV", se["units"])
	}
}

func TestBuildSummary(t *testing.T) {
	res := loadFixture(t)
	sum := buildSummary(res)

	if sum.CalcMode != "spins" || sum.NKPoints != 2 || sum.NModes != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.SigmaUnits != "meV" || sum.CoordUnits != "crystal" {
		t.Errorf("units: sigma=%q coord=%q", sum.SigmaUnits, sum.CoordUnits)
	}
	cond, ok := sum.Configurations[1]
	if !ok || cond.Temperature != 300 || cond.ChemicalPotential != 6.5 {
		t.Errorf("configuration 1 = %+v (present=%v)", cond, ok)
	}
}
