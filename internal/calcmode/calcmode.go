// Package calcmode owns the common metadata of one Perturbo calculation:
// the calculation-mode tag, the prefix, and the lattice, read from the
// document's "input parameters" and "basic data" blocks. The remaining
// per-mode result sections are held for a mode-specific reshaper to take
// and drain.
package calcmode

import (
	"github.com/ltan01/perturbopy/internal/apperr"
	"github.com/ltan01/perturbopy/internal/epio"
	"github.com/ltan01/perturbopy/internal/lattice"
)

type CalcMode struct {
	tag    string
	prefix string

	alat      float64
	alatUnits string
	lat       lattice.Mat3
	recipLat  lattice.Mat3

	sections map[string]any
}

// FromDoc extracts the calculation metadata from a loaded Perturbo output
// document. The extraction is destructive: consumed blocks are removed from
// doc, and doc's leftover sections are owned by the returned CalcMode.
func FromDoc(doc map[string]any) (*CalcMode, error) {
	params, err := epio.TakeMap(doc, "input parameters", "")
	if err != nil {
		return nil, err
	}
	tag, err := epio.TakeString(params, "calc mode", "input parameters")
	if err != nil {
		return nil, err
	}
	var prefix string
	if _, ok := params["prefix"]; ok {
		if prefix, err = epio.TakeString(params, "prefix", "input parameters"); err != nil {
			return nil, err
		}
	}

	basic, err := epio.TakeMap(doc, "basic data", "")
	if err != nil {
		return nil, err
	}
	alat, err := epio.TakeFloat(basic, "alat", "basic data")
	if err != nil {
		return nil, err
	}
	alatUnits, err := epio.TakeString(basic, "alat units", "basic data")
	if err != nil {
		return nil, err
	}
	lat, err := takeMat3(basic, "lattice vectors")
	if err != nil {
		return nil, err
	}
	recip, err := takeMat3(basic, "reciprocal lattice vectors")
	if err != nil {
		return nil, err
	}

	return &CalcMode{
		tag:       tag,
		prefix:    prefix,
		alat:      alat,
		alatUnits: alatUnits,
		lat:       lat,
		recipLat:  recip,
		sections:  doc,
	}, nil
}

func takeMat3(basic map[string]any, key string) (lattice.Mat3, error) {
	rows, err := epio.TakePointList(basic, key, "basic data")
	if err != nil {
		return lattice.Mat3{}, err
	}
	if len(rows) != 3 {
		return lattice.Mat3{}, apperr.Configf("basic data.%s: expected 3 vectors, got %d", key, len(rows))
	}
	var m lattice.Mat3
	for i, row := range rows {
		if len(row) != 3 {
			return lattice.Mat3{}, apperr.Configf("basic data.%s: vector %d has %d components", key, i, len(row))
		}
		m[i] = lattice.Vec3{row[0], row[1], row[2]}
	}
	return m, nil
}

// CalcMode returns the calculation-mode tag, e.g. "spins" or "spins-pp".
func (c *CalcMode) CalcMode() string { return c.tag }

// Prefix returns the calculation prefix (material name), possibly empty.
func (c *CalcMode) Prefix() string { return c.prefix }

// Alat returns the lattice parameter and its unit.
func (c *CalcMode) Alat() (float64, string) { return c.alat, c.alatUnits }

// Lat returns the lattice vectors [a1 a2 a3] as rows, in units of alat.
func (c *CalcMode) Lat() lattice.Mat3 { return c.lat }

// RecipLat returns the reciprocal lattice vectors [b1 b2 b3] as rows, in
// units of 2pi/alat.
func (c *CalcMode) RecipLat() lattice.Mat3 { return c.recipLat }

// TakeSection removes and returns the named result section. A reshaper
// calls this once; a second call fails with a MissingKeyError.
func (c *CalcMode) TakeSection(name string) (map[string]any, error) {
	return epio.TakeMap(c.sections, name, "")
}
