// Package lattice provides the small amount of 3x3 vector algebra needed to
// move reciprocal-space points between crystal and cartesian coordinates.
//
// Conventions follow Perturbo: lat holds the lattice vectors [a1 a2 a3] as
// rows in units of alat, recip holds the reciprocal lattice vectors
// [b1 b2 b3] as rows in units of 2pi/alat, so that a_i . b_j = delta_ij.
package lattice

import (
	"math"

	"github.com/ltan01/perturbopy/internal/apperr"
)

// Vec3 is a point or vector in three dimensions.
type Vec3 [3]float64

// Mat3 holds three basis vectors as rows.
type Mat3 [3]Vec3

// Dot returns the scalar product of two vectors.
func Dot(a, b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Norm returns the Euclidean length of v.
func Norm(v Vec3) float64 { return math.Sqrt(Dot(v, v)) }

// Sub returns a - b.
func Sub(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// ReshapePoints normalizes a raw coordinate listing into a point slice.
// Accepted shapes: N rows of 3 coordinates, 3 rows of N coordinates
// (transposed on the way in), or a single flat triple. A 3x3 input is
// interpreted as three points.
func ReshapePoints(raw [][]float64) ([]Vec3, error) {
	if len(raw) == 0 {
		return nil, apperr.Config("empty point list")
	}

	if len(raw) == 3 && len(raw[0]) != 3 {
		// 3xN column layout
		n := len(raw[0])
		for _, row := range raw {
			if len(row) != n {
				return nil, apperr.Config("ragged 3xN point list")
			}
		}
		pts := make([]Vec3, n)
		for i := 0; i < n; i++ {
			pts[i] = Vec3{raw[0][i], raw[1][i], raw[2][i]}
		}
		return pts, nil
	}

	pts := make([]Vec3, len(raw))
	for i, row := range raw {
		if len(row) != 3 {
			return nil, apperr.Configf("point %d has %d coordinates, want 3", i, len(row))
		}
		pts[i] = Vec3{row[0], row[1], row[2]}
	}
	return pts, nil
}

// CrystToCart converts points between crystal and cartesian coordinates.
// With forward true the conversion is crystal -> cartesian; with forward
// false it is cartesian -> crystal. realSpace selects whether the points
// live in the direct lattice or in reciprocal space.
//
// The backward conversion exploits the duality a_i . b_j = delta_ij instead
// of inverting a matrix: crystal coordinates of a reciprocal-space vector k
// are a_i . k, and of a real-space vector r are b_i . r.
func CrystToCart(points []Vec3, lat, recip Mat3, forward, realSpace bool) []Vec3 {
	basis, dual := recip, lat
	if realSpace {
		basis, dual = lat, recip
	}

	out := make([]Vec3, len(points))
	for n, p := range points {
		if forward {
			var cart Vec3
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					cart[j] += p[i] * basis[i][j]
				}
			}
			out[n] = cart
		} else {
			out[n] = Vec3{Dot(dual[0], p), Dot(dual[1], p), Dot(dual[2], p)}
		}
	}
	return out
}

// Distances returns the Euclidean distance from each entry of points to p.
func Distances(points []Vec3, p Vec3) []float64 {
	d := make([]float64, len(points))
	for i, q := range points {
		d[i] = Norm(Sub(q, p))
	}
	return d
}

// Where returns the indices of points matching p within atol. When no point
// matches and nearest is true, the indices of the closest point(s) are
// returned instead; otherwise the result is empty.
func Where(points []Vec3, p Vec3, nearest bool, atol float64) []int {
	var idx []int
	for i, q := range points {
		if Norm(Sub(q, p)) <= atol {
			idx = append(idx, i)
		}
	}
	if len(idx) > 0 || !nearest {
		return idx
	}

	d := Distances(points, p)
	min := math.Inf(1)
	for _, v := range d {
		if v < min {
			min = v
		}
	}
	for i, v := range d {
		if math.Abs(v-min) <= atol || v == min {
			idx = append(idx, i)
		}
	}
	return idx
}
