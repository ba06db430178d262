package dbs

import (
	"math"
	"strings"

	"github.com/ltan01/perturbopy/internal/apperr"
	"github.com/ltan01/perturbopy/internal/lattice"
)

// Coordinate-system names accepted for reciprocal-space points.
const (
	UnitsCrystal   = "crystal"
	UnitsCartesian = "cartesian"
)

var coordAliases = map[string]string{
	"crystal":    UnitsCrystal,
	"cryst":      UnitsCrystal,
	"frac":       UnitsCrystal,
	"fractional": UnitsCrystal,
	"reduced":    UnitsCrystal,
	"cartesian":  UnitsCartesian,
	"cart":       UnitsCartesian,
}

// StandardizeCoordName folds a coordinate-system name ("cryst", "frac",
// "cart", …) to "crystal" or "cartesian".
func StandardizeCoordName(name string) (string, error) {
	if canon, ok := coordAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canon, nil
	}
	return "", apperr.Configf("unknown coordinate units %q", name)
}

// High-symmetry points of the FCC Brillouin zone, in crystal coordinates.
var specialRecipPoints = map[string]lattice.Vec3{
	"gamma": {0, 0, 0},
	"X":     {0.5, 0, 0.5},
	"L":     {0.5, 0.5, 0.5},
	"W":     {0.5, 0.25, 0.75},
	"K":     {0.375, 0.375, 0.75},
}

// pointMatchTol is the absolute tolerance for point and path lookups.
const pointMatchTol = 1e-10

// RecipPtDB is a set of reciprocal-space points stored in both crystal and
// cartesian coordinates, with an arbitrary per-point path coordinate for
// plotting and a label table for high-symmetry points.
type RecipPtDB struct {
	PointsCart  []lattice.Vec3
	PointsCryst []lattice.Vec3

	unitName string

	Path      []float64
	PathUnits string

	Labels map[string]lattice.Vec3
}

// NewRecipPtDB builds a database from points already available in both
// coordinate systems. When path is nil, a 0..N-1 ramp is used. When labels
// is nil, the standard FCC special points are installed.
func NewRecipPtDB(cart, cryst []lattice.Vec3, unitName string, path []float64, pathUnits string, labels map[string]lattice.Vec3) (*RecipPtDB, error) {
	canon, err := StandardizeCoordName(unitName)
	if err != nil {
		return nil, err
	}
	if len(cart) != len(cryst) {
		return nil, apperr.Configf("cartesian and crystal point counts differ: %d vs %d",
			len(cart), len(cryst))
	}

	if path == nil {
		path = make([]float64, len(cart))
		for i := range path {
			path[i] = float64(i)
		}
	}
	if pathUnits == "" {
		pathUnits = "arbitrary"
	}
	if labels == nil {
		labels = make(map[string]lattice.Vec3, len(specialRecipPoints))
		for name, p := range specialRecipPoints {
			labels[name] = p
		}
	}

	return &RecipPtDB{
		PointsCart:  cart,
		PointsCryst: cryst,
		unitName:    canon,
		Path:        path,
		PathUnits:   pathUnits,
		Labels:      labels,
	}, nil
}

// RecipPtFromLattice builds a database from one set of raw points, the
// coordinate system they are expressed in, and the lattice vectors. The
// missing representation is derived via the crystal <-> cartesian
// conversion.
func RecipPtFromLattice(raw [][]float64, unitName string, lat, recip lattice.Mat3) (*RecipPtDB, error) {
	canon, err := StandardizeCoordName(unitName)
	if err != nil {
		return nil, err
	}
	points, err := lattice.ReshapePoints(raw)
	if err != nil {
		return nil, err
	}

	var cart, cryst []lattice.Vec3
	switch canon {
	case UnitsCartesian:
		cart = points
		cryst = lattice.CrystToCart(points, lat, recip, false, false)
	case UnitsCrystal:
		cryst = points
		cart = lattice.CrystToCart(points, lat, recip, true, false)
	}

	return NewRecipPtDB(cart, cryst, canon, nil, "", nil)
}

// NPts returns the number of stored points.
func (db *RecipPtDB) NPts() int { return len(db.PointsCart) }

// Units returns the active coordinate system, "crystal" or "cartesian".
func (db *RecipPtDB) Units() string { return db.unitName }

// SetUnits switches the active coordinate system used by Points and the
// query methods.
func (db *RecipPtDB) SetUnits(name string) error {
	canon, err := StandardizeCoordName(name)
	if err != nil {
		return err
	}
	db.unitName = canon
	return nil
}

// Points returns the stored points in the active coordinate system.
func (db *RecipPtDB) Points() []lattice.Vec3 {
	if db.unitName == UnitsCartesian {
		return db.PointsCart
	}
	return db.PointsCryst
}

// ScalePath linearly rescales the path coordinates onto [rangeMin, rangeMax].
func (db *RecipPtDB) ScalePath(rangeMin, rangeMax float64) {
	if len(db.Path) == 0 {
		return
	}
	lo, hi := db.Path[0], db.Path[0]
	for _, v := range db.Path {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		return
	}
	for i, v := range db.Path {
		db.Path[i] = (v-lo)/span*(rangeMax-rangeMin) + rangeMin
	}
}

// Distances returns the distance from every stored point to p, measured in
// the active coordinate system.
func (db *RecipPtDB) Distances(p lattice.Vec3) []float64 {
	return lattice.Distances(db.Points(), p)
}

// Where returns the indices of stored points matching p. With nearest true
// the closest point is reported when there is no exact match.
func (db *RecipPtDB) Where(p lattice.Vec3, nearest bool) []int {
	return lattice.Where(db.Points(), p, nearest, pointMatchTol)
}

// PointToPath returns the path coordinates of the stored points matching p.
func (db *RecipPtDB) PointToPath(p lattice.Vec3, nearest bool) ([]float64, error) {
	idx := db.Where(p, nearest)
	if len(idx) == 0 {
		return nil, apperr.Configf("point %v is not in the database", p)
	}
	coords := make([]float64, len(idx))
	for i, j := range idx {
		coords[i] = db.Path[j]
	}
	return coords, nil
}

// PathToPoint returns the stored point whose path coordinate matches path.
// With nearest true the point with the closest path coordinate is returned
// when there is no exact match.
func (db *RecipPtDB) PathToPoint(path float64, nearest bool) (lattice.Vec3, error) {
	best, bestDist := -1, math.Inf(1)
	for i, v := range db.Path {
		d := math.Abs(v - path)
		if d <= pointMatchTol {
			return db.Points()[i], nil
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if nearest && best >= 0 {
		return db.Points()[best], nil
	}
	return lattice.Vec3{}, apperr.Configf("path coordinate %g is not in the path list", path)
}

// AddLabels merges the given label table into the database's labels.
func (db *RecipPtDB) AddLabels(labels map[string]lattice.Vec3) {
	for name, p := range labels {
		db.Labels[name] = p
	}
}

// RemoveLabels deletes the named labels.
func (db *RecipPtDB) RemoveLabels(names []string) {
	for _, name := range names {
		delete(db.Labels, name)
	}
}
