package spins

// Self-energy output names. Each name is one unit-tagged dictionary on
// Results, populated from the per-band "Im(Sigma)" block of the input.
const (
	FieldImsigma          = "imsigma"
	FieldImsigmaFlip      = "imsigma_flip"
	FieldImsigmaFlipF     = "imsigma_flip_f"
	FieldImsigmaFlipG     = "imsigma_flip_g"
	FieldImsigmaFlipIntra = "imsigma_flip_intra"

	FieldImsigmaMode          = "imsigma_mode"
	FieldImsigmaFlipMode      = "imsigma_flip_mode"
	FieldImsigmaFlipFMode     = "imsigma_flip_f_mode"
	FieldImsigmaFlipGMode     = "imsigma_flip_g_mode"
	FieldImsigmaFlipIntraMode = "imsigma_flip_intra_mode"
)

// sourceTotal and sourcePhononMode are the two per-band keys the output
// format provides under "Im(Sigma)".
const (
	sourceTotal      = "total"
	sourcePhononMode = "phonon mode"
)

// selfEnergyField binds one output dictionary to the raw field it copies.
type selfEnergyField struct {
	name   string
	source string
}

// plainFields declares the config -> band outputs. The flip-channel outputs
// deliberately alias the "total" field: the current output-file format does
// not carry a distinct spin-flip-resolved breakdown, so all four flip
// variants are populated from the same source as imsigma. Keeping the
// aliasing in this table (rather than inlined per output) makes it auditable
// and easy to retarget once the format grows real flip channels.
var plainFields = []selfEnergyField{
	{FieldImsigma, sourceTotal},
	{FieldImsigmaFlip, sourceTotal},
	{FieldImsigmaFlipF, sourceTotal},
	{FieldImsigmaFlipG, sourceTotal},
	{FieldImsigmaFlipIntra, sourceTotal},
}

// modeFields declares the config -> mode -> band outputs. The same aliasing
// applies: every mode-resolved variant reads "phonon mode".
var modeFields = []selfEnergyField{
	{FieldImsigmaMode, sourcePhononMode},
	{FieldImsigmaFlipMode, sourcePhononMode},
	{FieldImsigmaFlipFMode, sourcePhononMode},
	{FieldImsigmaFlipGMode, sourcePhononMode},
	{FieldImsigmaFlipIntraMode, sourcePhononMode},
}
