// Package units standardizes physical unit names and computes conversion
// factors for the unit families that appear in Perturbo postprocessing
// output: energy, length, time and temperature.
//
// A unit name is an optional SI prefix followed by a unit symbol ("meV",
// "fs", "nm") or a spelled-out alias ("rydberg", "bohr", "kelvin").
// Conversion across families is an error.
package units

import (
	"strings"

	"github.com/ltan01/perturbopy/internal/apperr"
)

// Family identifies the dimension a unit measures.
type Family int

const (
	Energy Family = iota
	Length
	Time
	Temperature
)

func (f Family) String() string {
	switch f {
	case Energy:
		return "energy"
	case Length:
		return "length"
	case Time:
		return "time"
	case Temperature:
		return "temperature"
	}
	return "unknown"
}

// hbarJs is the reduced Planck constant in J*s.
const hbarJs = 1.0545718e-34

// electronVolt in joules (CODATA 2018 exact).
const electronVoltJ = 1.602176634e-19

type symbol struct {
	family Family
	// factor converts one of this unit into the family base
	// (eV for energy, m for length, s for time, K for temperature).
	factor float64
	canon  string
}

// Base symbols, keyed case-sensitively.
var symbols = map[string]symbol{
	"eV": {Energy, 1.0, "eV"},
	"Ry": {Energy, 13.605693122994, "Ry"},
	"Ha": {Energy, 27.211386245988, "Ha"},
	"J":  {Energy, 1.0 / electronVoltJ, "J"},

	"m":        {Length, 1.0, "m"},
	"bohr":     {Length, 5.29177249e-11, "bohr"},
	"angstrom": {Length, 1e-10, "angstrom"},

	"s": {Time, 1.0, "s"},

	"K": {Temperature, 1.0, "K"},
}

// Spelled-out aliases, matched case-insensitively.
var aliases = map[string]string{
	"electronvolt": "eV",
	"ev":           "eV",
	"rydberg":      "Ry",
	"ry":           "Ry",
	"hartree":      "Ha",
	"ha":           "Ha",
	"joule":        "J",
	"meter":        "m",
	"metre":        "m",
	"ang":          "angstrom",
	"a.u.":         "bohr",
	"au":           "bohr",
	"second":       "s",
	"sec":          "s",
	"kelvin":       "K",
	"k":            "K",
}

// SI prefixes, longest first so "mu" wins over "m".
var prefixes = []struct {
	name   string
	factor float64
}{
	{"mu", 1e-6},
	{"µ", 1e-6},
	{"y", 1e-24},
	{"z", 1e-21},
	{"a", 1e-18},
	{"f", 1e-15},
	{"p", 1e-12},
	{"n", 1e-9},
	{"u", 1e-6},
	{"m", 1e-3},
	{"c", 1e-2},
	{"d", 1e-1},
	{"k", 1e3},
	{"M", 1e6},
	{"G", 1e9},
	{"T", 1e12},
}

func lookup(name string) (symbol, bool) {
	if s, ok := symbols[name]; ok {
		return s, true
	}
	if canon, ok := aliases[strings.ToLower(name)]; ok {
		s := symbols[canon]
		return s, true
	}
	return symbol{}, false
}

// parse resolves a unit name into its family, its factor relative to the
// family base, and its canonical spelling.
func parse(name string) (symbol, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return symbol{}, apperr.Config("empty unit name")
	}

	if s, ok := lookup(trimmed); ok {
		return s, nil
	}

	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(trimmed, p.name)
		if !ok || rest == "" {
			continue
		}
		if s, found := lookup(rest); found {
			return symbol{
				family: s.family,
				factor: s.factor * p.factor,
				canon:  p.name + s.canon,
			}, nil
		}
	}

	return symbol{}, apperr.Configf("unit %q is not defined in the registry", name)
}

// StandardizeName folds a unit name to its canonical spelling, e.g.
// "mev" is not recognized but "meV", "rydberg" and "kelvin" are, returning
// "meV", "Ry" and "K" respectively.
func StandardizeName(name string) (string, error) {
	s, err := parse(name)
	if err != nil {
		return "", err
	}
	return s.canon, nil
}

// ConversionFactor returns the multiplicative factor that converts a
// quantity expressed in from-units into to-units. The two units must
// belong to the same family.
func ConversionFactor(from, to string) (float64, error) {
	fs, err := parse(from)
	if err != nil {
		return 0, err
	}
	ts, err := parse(to)
	if err != nil {
		return 0, err
	}
	if fs.family != ts.family {
		return 0, apperr.Configf("cannot convert %s (%s) to %s (%s)",
			from, fs.family, to, ts.family)
	}
	return fs.factor / ts.factor, nil
}

// Hbar returns the reduced Planck constant in the requested compound unit,
// written as "<energy>*<time>", e.g. "eV*fs".
func Hbar(name string) (float64, error) {
	parts := strings.Split(name, "*")
	if len(parts) != 2 {
		return 0, apperr.Configf("hbar units must be of the form energy*time, got %q", name)
	}
	ef, err := ConversionFactor("J", parts[0])
	if err != nil {
		return 0, err
	}
	tf, err := ConversionFactor("s", parts[1])
	if err != nil {
		return 0, err
	}
	return hbarJs * ef * tf, nil
}
