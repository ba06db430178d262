package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ltan01/perturbopy/internal/apperr"
	"github.com/ltan01/perturbopy/internal/dbs"
	"github.com/ltan01/perturbopy/internal/epio"
	"github.com/ltan01/perturbopy/internal/logging"
	"github.com/ltan01/perturbopy/internal/spins"
	"github.com/ltan01/perturbopy/internal/ui"
)

var (
	convertInput       string
	convertOutput      string
	convertUnits       string
	convertLogLevel    string
	convertInteractive bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Reshape a spins output file and rescale its energies",
	Long:  "Reads a Perturbo spins YAML output file, reshapes it, converts every energy-tagged quantity (band energies, chemical potentials, self-energies) to the requested units, and writes the result as YAML.",
	RunE:  runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	level := strings.ToLower(strings.TrimSpace(viper.GetString("convert.log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		// ok
	default:
		return apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}

	inputPath := viper.GetString("convert.input")
	if inputPath == "" {
		return apperr.User("--input is required")
	}

	target := strings.TrimSpace(viper.GetString("convert.units"))
	interactive := viper.GetBool("convert.interactive")
	if interactive && cmd.Flags().Changed("units") {
		return apperr.User("--interactive cannot be used with --units")
	}
	if !interactive && target == "" {
		return apperr.User("either --units or --interactive is required")
	}

	var log logging.Logger
	if level == "debug" {
		log.SetWriter(cmd.ErrOrStderr())
	}

	res, err := loadAndReshape(inputPath, level, &log)
	if err != nil {
		return err
	}

	if interactive {
		target, err = selectEnergyUnits(res.Imsigma().Units())
		if err != nil {
			return err
		}
	}

	if err := convertEnergies(res, target); err != nil {
		return err
	}
	log.Logf(spins.ModeTag, "converted energy quantities to %s", res.Imsigma().Units())

	outputPath := viper.GetString("convert.output")
	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		outputPath = base + "_" + res.Imsigma().Units() + ".yml"
	}
	outputDir := filepath.Dir(outputPath)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(filepath.Clean(outputDir), 0o755); err != nil {
			return err
		}
	}

	if err := epio.WriteYAML(outputPath, buildConvertedDoc(res)); err != nil {
		return err
	}

	if level != "quiet" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", ui.GetCheckMark(), ui.Highlight.Render(outputPath))
	}
	return nil
}

// selectEnergyUnits prompts for the target energy unit. A deliberate abort
// maps to apperr.ErrCancelled so main can exit cleanly.
func selectEnergyUnits(current string) (string, error) {
	choice := ""
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Target energy units").
			Description(fmt.Sprintf("Self-energies are currently in %s.", current)).
			Options(
				huh.NewOption("eV", "eV"),
				huh.NewOption("meV", "meV"),
				huh.NewOption("Rydberg (Ry)", "Ry"),
				huh.NewOption("Hartree (Ha)", "Ha"),
			).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", apperr.ErrCancelled
		}
		return "", err
	}
	return choice, nil
}

// convertEnergies rescales every energy-tagged dictionary in the reshaped
// results to the target unit. Temperatures keep their own unit family.
func convertEnergies(res *spins.Results, target string) error {
	if err := dbs.Convert(res.Bands(), target, dbs.ScaleArray); err != nil {
		return err
	}
	if err := dbs.Convert(res.ChemPot(), target, dbs.ScaleScalar); err != nil {
		return err
	}
	for _, d := range res.PlainSelfEnergies() {
		if err := dbs.Convert(d, target, dbs.ScaleBandArrays); err != nil {
			return err
		}
	}
	for _, d := range res.ModeSelfEnergies() {
		if err := dbs.Convert(d, target, dbs.ScaleModeBandArrays); err != nil {
			return err
		}
	}
	return nil
}

// buildConvertedDoc flattens the reshaped results back into a plain document
// for YAML output, preserving the integer configuration and band keys.
func buildConvertedDoc(res *spins.Results) map[string]any {
	kpt := res.Kpt()
	points := make([][]float64, kpt.NPts())
	for i, p := range kpt.Points() {
		points[i] = []float64{p[0], p[1], p[2]}
	}

	bands := map[string]any{"units": res.Bands().Units()}
	bandIdx := map[int]any{}
	for _, b := range res.Bands().Keys() {
		arr, _ := res.Bands().Get(b)
		bandIdx[b] = arr
	}
	bands["index"] = bandIdx

	configs := map[int]any{}
	for _, c := range res.Temper().Keys() {
		t, _ := res.Temper().Get(c)
		mu, _ := res.ChemPot().Get(c)
		configs[c] = map[string]any{
			"temperature":        t,
			"chemical potential": mu,
		}
	}

	doc := map[string]any{
		"serial number": "urn:uuid:" + uuid.New().String(),
		"prefix":        res.Prefix(),
		"calc mode":     spins.ModeTag,
		"k-points": map[string]any{
			"units":  kpt.Units(),
			"points": points,
		},
		"band energies":      bands,
		"temperatures":       map[string]any{"units": res.Temper().Units()},
		"chemical potential": map[string]any{"units": res.ChemPot().Units()},
		"configurations":     configs,
	}

	selfEnergies := map[string]any{"units": res.Imsigma().Units()}
	for name, d := range res.PlainSelfEnergies() {
		perConfig := map[int]any{}
		for _, c := range d.Keys() {
			perBand, _ := d.Get(c)
			perConfig[c] = perBand
		}
		selfEnergies[name] = perConfig
	}
	for name, d := range res.ModeSelfEnergies() {
		perConfig := map[int]any{}
		for _, c := range d.Keys() {
			modes, _ := d.Get(c)
			perConfig[c] = modes
		}
		selfEnergies[name] = perConfig
	}
	doc["self-energies"] = selfEnergies

	return doc
}

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "Path to Perturbo spins YAML output file (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file path (default derives from the input name and target units)")
	convertCmd.Flags().StringVarP(&convertUnits, "units", "u", "", "Target energy units, e.g. eV, meV, Ry, Ha")
	convertCmd.Flags().StringVar(&convertLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	convertCmd.Flags().BoolVar(&convertInteractive, "interactive", false, "Pick the target units interactively (cannot be used with --units)")

	// Bind all flags to viper for config file support
	viper.BindPFlag("convert.input", convertCmd.Flags().Lookup("input"))
	viper.BindPFlag("convert.output", convertCmd.Flags().Lookup("output"))
	viper.BindPFlag("convert.units", convertCmd.Flags().Lookup("units"))
	viper.BindPFlag("convert.log-level", convertCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("convert.interactive", convertCmd.Flags().Lookup("interactive"))
}
