// Package dbs holds the unit-aware data containers produced by
// postprocessing: UnitsDict, an integer-keyed mapping tagged with a physical
// unit, and RecipPtDB, a queryable set of reciprocal-space points.
package dbs

import (
	"sort"

	"github.com/ltan01/perturbopy/internal/units"
)

// UnitsDict associates a physical unit string with an integer-keyed mapping
// of physical quantities. The value type is one nesting level of the output
// data model: a scalar, an array over k-points, or a further map of those.
type UnitsDict[V any] struct {
	unitName string
	items    map[int]V
}

// NewUnitsDict creates an empty dictionary tagged with the given unit.
// The unit name is folded to its canonical spelling when the registry knows
// it; unknown names are kept verbatim.
func NewUnitsDict[V any](unitName string) *UnitsDict[V] {
	return &UnitsDict[V]{
		unitName: standardizeOrKeep(unitName),
		items:    make(map[int]V),
	}
}

// UnitsDictFromMap creates a dictionary tagged with the given unit and
// seeded with the entries of m. The map is adopted, not copied.
func UnitsDictFromMap[V any](unitName string, m map[int]V) *UnitsDict[V] {
	if m == nil {
		m = make(map[int]V)
	}
	return &UnitsDict[V]{unitName: standardizeOrKeep(unitName), items: m}
}

func standardizeOrKeep(name string) string {
	if canon, err := units.StandardizeName(name); err == nil {
		return canon
	}
	return name
}

// Units returns the declared unit string.
func (d *UnitsDict[V]) Units() string { return d.unitName }

// Set stores v under key k.
func (d *UnitsDict[V]) Set(k int, v V) { d.items[k] = v }

// Get looks up the value stored under key k.
func (d *UnitsDict[V]) Get(k int) (V, bool) {
	v, ok := d.items[k]
	return v, ok
}

// Len returns the number of stored entries.
func (d *UnitsDict[V]) Len() int { return len(d.items) }

// Keys returns the stored keys in ascending order.
func (d *UnitsDict[V]) Keys() []int {
	keys := make([]int, 0, len(d.items))
	for k := range d.items {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Apply replaces every value with fn(value).
func (d *UnitsDict[V]) Apply(fn func(V) V) {
	for k, v := range d.items {
		d.items[k] = fn(v)
	}
}

// Convert rescales every entry of d into target units, using scale to apply
// the numeric factor at the dictionary's nesting level. The declared unit is
// updated to the canonical spelling of target.
func Convert[V any](d *UnitsDict[V], target string, scale func(V, float64) V) error {
	factor, err := units.ConversionFactor(d.unitName, target)
	if err != nil {
		return err
	}
	canon, err := units.StandardizeName(target)
	if err != nil {
		return err
	}
	d.Apply(func(v V) V { return scale(v, factor) })
	d.unitName = canon
	return nil
}

// Scaling helpers for the nesting levels used by the reshaper outputs.

// ScaleScalar multiplies a scalar quantity by f.
func ScaleScalar(v float64, f float64) float64 { return v * f }

// ScaleArray returns a scaled copy of a per-k-point array.
func ScaleArray(v []float64, f float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * f
	}
	return out
}

// ScaleBandArrays returns a scaled copy of a band -> array mapping.
func ScaleBandArrays(m map[int][]float64, f float64) map[int][]float64 {
	out := make(map[int][]float64, len(m))
	for b, arr := range m {
		out[b] = ScaleArray(arr, f)
	}
	return out
}

// ScaleModeBandArrays returns a scaled copy of a mode -> band -> array mapping.
func ScaleModeBandArrays(m map[int]map[int][]float64, f float64) map[int]map[int][]float64 {
	out := make(map[int]map[int][]float64, len(m))
	for mode, bands := range m {
		out[mode] = ScaleBandArrays(bands, f)
	}
	return out
}
