// Package spins reshapes the results of a Perturbo spin-resolved self-energy
// calculation into unit-aware containers indexed by configuration, phonon
// mode and band.
//
// The input is the loosely-typed nested mapping of the "spins" section of a
// loaded output document. Construction drains it: every consumed key is
// removed as it is read, so a missing key fails fast with the dotted path
// and a drained mapping cannot be reshaped twice. All outputs are read-only
// after construction.
package spins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ltan01/perturbopy/internal/apperr"
	"github.com/ltan01/perturbopy/internal/calcmode"
	"github.com/ltan01/perturbopy/internal/dbs"
	"github.com/ltan01/perturbopy/internal/epio"
)

// ModeTag is the calculation-mode name this reshaper accepts. The tag in
// "input parameters" may carry a suffix after a dash ("spins-pp"); only the
// first segment is compared.
const ModeTag = "spins"

// Results holds the reshaped output of one spins calculation.
type Results struct {
	prefix string

	kpt     *dbs.RecipPtDB
	bands   *dbs.UnitsDict[[]float64]
	temper  *dbs.UnitsDict[float64]
	chemPot *dbs.UnitsDict[float64]

	plain map[string]*dbs.UnitsDict[map[int][]float64]
	mode  map[string]*dbs.UnitsDict[map[int]map[int][]float64]

	nKpt, nBands, nConfigs, nModes int
}

// New builds the reshaped data model from one calculation. The calculation's
// "spins" section is taken from cm and fully drained; cm must not be reused
// for a second reshaping.
func New(cm *calcmode.CalcMode) (*Results, error) {
	tag := cm.CalcMode()
	if base, _, _ := strings.Cut(tag, "-"); base != ModeTag {
		return nil, apperr.Configf("calculation mode %q is not a %s calculation", tag, ModeTag)
	}

	raw, err := cm.TakeSection(ModeTag)
	if err != nil {
		return nil, err
	}

	coordUnits, err := epio.TakeString(raw, "k-point coordinate units", ModeTag)
	if err != nil {
		return nil, err
	}
	nKpt, err := epio.TakeInt(raw, "number of k-points", ModeTag)
	if err != nil {
		return nil, err
	}
	nBands, err := epio.TakeInt(raw, "number of bands", ModeTag)
	if err != nil {
		return nil, err
	}
	nConfigs, err := epio.TakeInt(raw, "number of configurations", ModeTag)
	if err != nil {
		return nil, err
	}
	nModes, err := epio.TakeInt(raw, "number of phonon modes", ModeTag)
	if err != nil {
		return nil, err
	}
	energyUnits, err := epio.TakeString(raw, "energy units", ModeTag)
	if err != nil {
		return nil, err
	}
	temperUnits, err := epio.TakeString(raw, "temperature units", ModeTag)
	if err != nil {
		return nil, err
	}
	chemPotUnits, err := epio.TakeString(raw, "chemical potential units", ModeTag)
	if err != nil {
		return nil, err
	}
	sigmaUnits, err := epio.TakeString(raw, "Im(Sigma) units", ModeTag)
	if err != nil {
		return nil, err
	}

	coords, err := epio.TakePointList(raw, "k-point coordinates", ModeTag)
	if err != nil {
		return nil, err
	}
	kpt, err := dbs.RecipPtFromLattice(coords, coordUnits, cm.Lat(), cm.RecipLat())
	if err != nil {
		return nil, err
	}
	if kpt.NPts() != nKpt {
		return nil, apperr.Configf("%s: %d k-point coordinates but %d declared",
			ModeTag, kpt.NPts(), nKpt)
	}

	r := &Results{
		prefix:   cm.Prefix(),
		kpt:      kpt,
		temper:   dbs.NewUnitsDict[float64](temperUnits),
		chemPot:  dbs.NewUnitsDict[float64](chemPotUnits),
		plain:    make(map[string]*dbs.UnitsDict[map[int][]float64], len(plainFields)),
		mode:     make(map[string]*dbs.UnitsDict[map[int]map[int][]float64], len(modeFields)),
		nKpt:     nKpt,
		nBands:   nBands,
		nConfigs: nConfigs,
		nModes:   nModes,
	}
	for _, f := range plainFields {
		r.plain[f.name] = dbs.NewUnitsDict[map[int][]float64](sigmaUnits)
	}
	for _, f := range modeFields {
		r.mode[f.name] = dbs.NewUnitsDict[map[int]map[int][]float64](sigmaUnits)
	}

	if err := r.takeBandEnergies(raw, energyUnits); err != nil {
		return nil, err
	}

	configs, err := epio.TakeIndexMap(raw, "configuration index", ModeTag)
	if err != nil {
		return nil, err
	}
	for _, c := range sortedKeys(configs) {
		if err := r.takeConfiguration(c, configs[c]); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Results) takeBandEnergies(raw map[string]any, energyUnits string) error {
	energy, err := epio.TakeMap(raw, "energy", ModeTag)
	if err != nil {
		return err
	}
	path := epio.JoinPath(ModeTag, "energy")
	byBand, err := epio.TakeIndexMap(energy, "band index", path)
	if err != nil {
		return err
	}

	r.bands = dbs.NewUnitsDict[[]float64](energyUnits)
	for b, v := range byBand {
		arr, ok := epio.AsFloatArray(v)
		if !ok {
			return apperr.Configf("%s.band index.%d: expected numeric array", path, b)
		}
		if len(arr) != r.nKpt {
			return apperr.Configf("%s.band index.%d: array length %d, want %d k-points",
				path, b, len(arr), r.nKpt)
		}
		r.bands.Set(b, arr)
	}
	return nil
}

func (r *Results) takeConfiguration(c int, v any) error {
	path := fmt.Sprintf("%s.configuration index.%d", ModeTag, c)
	cfg, err := epio.AsMap(v)
	if err != nil {
		return apperr.Configf("%s: %v", path, err)
	}

	temperature, err := epio.TakeFloat(cfg, "temperature", path)
	if err != nil {
		return err
	}
	chemPot, err := epio.TakeFloat(cfg, "chemical potential", path)
	if err != nil {
		return err
	}
	r.temper.Set(c, temperature)
	r.chemPot.Set(c, chemPot)

	byBand, err := epio.TakeIndexMap(cfg, "band index", path)
	if err != nil {
		return err
	}

	// Pre-allocate every declared mode so a configuration whose bands never
	// reference some mode still exposes the mode key.
	for _, f := range modeFields {
		perMode := make(map[int]map[int][]float64, r.nModes)
		for m := 1; m <= r.nModes; m++ {
			perMode[m] = make(map[int][]float64)
		}
		r.mode[f.name].Set(c, perMode)
	}
	for _, f := range plainFields {
		r.plain[f.name].Set(c, make(map[int][]float64, len(byBand)))
	}

	for _, b := range sortedKeys(byBand) {
		if err := r.takeBand(c, b, byBand[b], path); err != nil {
			return err
		}
	}
	return nil
}

func (r *Results) takeBand(c, b int, v any, cfgPath string) error {
	path := fmt.Sprintf("%s.band index.%d", cfgPath, b)
	band, err := epio.AsMap(v)
	if err != nil {
		return apperr.Configf("%s: %v", path, err)
	}
	sigma, err := epio.TakeMap(band, "Im(Sigma)", path)
	if err != nil {
		return err
	}
	sigmaPath := epio.JoinPath(path, "Im(Sigma)")

	total, err := epio.TakeFloatArray(sigma, sourceTotal, sigmaPath)
	if err != nil {
		return err
	}
	if len(total) != r.nKpt {
		return apperr.Configf("%s.%s: array length %d, want %d k-points",
			sigmaPath, sourceTotal, len(total), r.nKpt)
	}

	byMode, err := epio.TakeIndexMap(sigma, sourcePhononMode, sigmaPath)
	if err != nil {
		return err
	}
	modePath := epio.JoinPath(sigmaPath, sourcePhononMode)
	modeArrs := make(map[int][]float64, r.nModes)
	for m := 1; m <= r.nModes; m++ {
		mv, ok := byMode[m]
		if !ok {
			return apperr.MissingKey(fmt.Sprintf("%s.%d", modePath, m))
		}
		arr, ok := epio.AsFloatArray(mv)
		if !ok {
			return apperr.Configf("%s.%d: expected numeric array", modePath, m)
		}
		if len(arr) != r.nKpt {
			return apperr.Configf("%s.%d: array length %d, want %d k-points",
				modePath, m, len(arr), r.nKpt)
		}
		modeArrs[m] = arr
	}

	// Each source is taken exactly once above; the field tables decide which
	// outputs it lands in.
	plainSources := map[string][]float64{sourceTotal: total}
	for _, f := range plainFields {
		src, ok := plainSources[f.source]
		if !ok {
			return apperr.Configf("%s: output %s reads unknown source %q",
				sigmaPath, f.name, f.source)
		}
		cfgMap, _ := r.plain[f.name].Get(c)
		cfgMap[b] = copyArray(src)
	}

	modeSources := map[string]map[int][]float64{sourcePhononMode: modeArrs}
	for _, f := range modeFields {
		src, ok := modeSources[f.source]
		if !ok {
			return apperr.Configf("%s: output %s reads unknown source %q",
				sigmaPath, f.name, f.source)
		}
		perMode, _ := r.mode[f.name].Get(c)
		for m, arr := range src {
			perMode[m][b] = copyArray(arr)
		}
	}
	return nil
}

func copyArray(a []float64) []float64 {
	out := make([]float64, len(a))
	copy(out, a)
	return out
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Prefix returns the calculation prefix carried over from the input
// parameters.
func (r *Results) Prefix() string { return r.prefix }

// Kpt returns the reciprocal-point database over the calculation's k-points.
func (r *Results) Kpt() *dbs.RecipPtDB { return r.kpt }

// Bands returns band index -> band energies over k-points.
func (r *Results) Bands() *dbs.UnitsDict[[]float64] { return r.bands }

// Temper returns configuration index -> temperature.
func (r *Results) Temper() *dbs.UnitsDict[float64] { return r.temper }

// ChemPot returns configuration index -> chemical potential.
func (r *Results) ChemPot() *dbs.UnitsDict[float64] { return r.chemPot }

// NumKPoints returns the declared k-point count N; every leaf array of the
// self-energy outputs has exactly this length.
func (r *Results) NumKPoints() int { return r.nKpt }

// NumBands returns the declared band count.
func (r *Results) NumBands() int { return r.nBands }

// NumConfigurations returns the declared configuration count.
func (r *Results) NumConfigurations() int { return r.nConfigs }

// NumModes returns the declared phonon-mode count.
func (r *Results) NumModes() int { return r.nModes }

// Imsigma returns configuration -> band -> Im(Sigma) over k-points.
func (r *Results) Imsigma() *dbs.UnitsDict[map[int][]float64] { return r.plain[FieldImsigma] }

// ImsigmaFlip returns the spin-flip channel (currently aliased to the total,
// see plainFields).
func (r *Results) ImsigmaFlip() *dbs.UnitsDict[map[int][]float64] { return r.plain[FieldImsigmaFlip] }

// ImsigmaFlipF returns the f spin-flip channel.
func (r *Results) ImsigmaFlipF() *dbs.UnitsDict[map[int][]float64] { return r.plain[FieldImsigmaFlipF] }

// ImsigmaFlipG returns the g spin-flip channel.
func (r *Results) ImsigmaFlipG() *dbs.UnitsDict[map[int][]float64] { return r.plain[FieldImsigmaFlipG] }

// ImsigmaFlipIntra returns the intra-band spin-flip channel.
func (r *Results) ImsigmaFlipIntra() *dbs.UnitsDict[map[int][]float64] {
	return r.plain[FieldImsigmaFlipIntra]
}

// ImsigmaMode returns configuration -> phonon mode -> band -> Im(Sigma).
func (r *Results) ImsigmaMode() *dbs.UnitsDict[map[int]map[int][]float64] {
	return r.mode[FieldImsigmaMode]
}

// ImsigmaFlipMode returns the mode-resolved spin-flip channel.
func (r *Results) ImsigmaFlipMode() *dbs.UnitsDict[map[int]map[int][]float64] {
	return r.mode[FieldImsigmaFlipMode]
}

// ImsigmaFlipFMode returns the mode-resolved f spin-flip channel.
func (r *Results) ImsigmaFlipFMode() *dbs.UnitsDict[map[int]map[int][]float64] {
	return r.mode[FieldImsigmaFlipFMode]
}

// ImsigmaFlipGMode returns the mode-resolved g spin-flip channel.
func (r *Results) ImsigmaFlipGMode() *dbs.UnitsDict[map[int]map[int][]float64] {
	return r.mode[FieldImsigmaFlipGMode]
}

// ImsigmaFlipIntraMode returns the mode-resolved intra-band spin-flip channel.
func (r *Results) ImsigmaFlipIntraMode() *dbs.UnitsDict[map[int]map[int][]float64] {
	return r.mode[FieldImsigmaFlipIntraMode]
}

// PlainSelfEnergies returns every config -> band output by name. The
// returned map is shared and must be treated as read-only.
func (r *Results) PlainSelfEnergies() map[string]*dbs.UnitsDict[map[int][]float64] {
	return r.plain
}

// ModeSelfEnergies returns every config -> mode -> band output by name. The
// returned map is shared and must be treated as read-only.
func (r *Results) ModeSelfEnergies() map[string]*dbs.UnitsDict[map[int]map[int][]float64] {
	return r.mode
}
