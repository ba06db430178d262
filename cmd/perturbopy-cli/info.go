package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ltan01/perturbopy/internal/apperr"
	"github.com/ltan01/perturbopy/internal/calcmode"
	"github.com/ltan01/perturbopy/internal/epio"
	"github.com/ltan01/perturbopy/internal/logging"
	"github.com/ltan01/perturbopy/internal/spins"
	"github.com/ltan01/perturbopy/internal/ui"
)

var (
	infoInput        string
	infoLogLevel     string
	infoPlainSummary bool
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize a spins calculation output file",
	Long:  "Reads a Perturbo spins YAML output file, reshapes it, and prints the calculation dimensions and operating conditions.",
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	// Resolve effective log level (from config, env, or flag).
	level := strings.ToLower(strings.TrimSpace(viper.GetString("info.log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		// ok
	default:
		return apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
	quiet := level == "quiet"

	inputPath := viper.GetString("info.input")
	if inputPath == "" {
		return apperr.User("--input is required")
	}

	var log logging.Logger
	if level == "debug" {
		log.SetWriter(cmd.ErrOrStderr())
	}

	res, err := loadAndReshape(inputPath, level, &log)
	if err != nil {
		return err
	}

	if infoPlainSummary {
		// Machine-readable single-line summary (no styling)
		fmt.Fprintf(cmd.OutOrStdout(), "Prefix: %s | Calc mode: %s | K-points: %d | Bands: %d | Configurations: %d | Modes: %d\n",
			res.Prefix(), spins.ModeTag, res.NumKPoints(), res.NumBands(), res.NumConfigurations(), res.NumModes())
		return nil
	}

	summaryUI := ui.NewSummaryUI(cmd.OutOrStdout(), quiet)
	summaryUI.PrintSummary(buildSummary(res))
	return nil
}

// loadAndReshape runs the three processing phases shared by info and convert,
// with a step-progress display at the standard log level.
func loadAndReshape(path, level string, log *logging.Logger) (*spins.Results, error) {
	showProgress := level == "standard"

	var tracker *ui.ProgressTracker
	if showProgress {
		tracker = ui.NewProgressTracker("Reading "+path, []string{
			"Loading document",
			"Extracting calculation metadata",
			"Reshaping spins data",
		})
		tracker.Start()
	}

	fail := func(step int, err error) (*spins.Results, error) {
		if tracker != nil {
			tracker.UpdateStep(step, ui.StatusFailed, err.Error())
			tracker.Complete(err)
		}
		return nil, err
	}

	if tracker != nil {
		tracker.UpdateStep(0, ui.StatusRunning, "")
	}
	log.Logf(spins.ModeTag, "loading %s", path)
	doc, err := epio.LoadYAML(path)
	if err != nil {
		return fail(0, err)
	}
	if tracker != nil {
		tracker.UpdateStep(0, ui.StatusComplete, "")
		tracker.UpdateStep(1, ui.StatusRunning, "")
	}

	cm, err := calcmode.FromDoc(doc)
	if err != nil {
		return fail(1, err)
	}
	log.Logf(cm.CalcMode(), "prefix=%s", cm.Prefix())
	if tracker != nil {
		tracker.UpdateStep(1, ui.StatusComplete, "")
		tracker.UpdateStep(2, ui.StatusRunning, "")
	}

	res, err := spins.New(cm)
	if err != nil {
		return fail(2, err)
	}
	log.Logf(cm.CalcMode(), "reshaped %d k-points, %d bands, %d configurations",
		res.NumKPoints(), res.NumBands(), res.NumConfigurations())
	if tracker != nil {
		tracker.UpdateStep(2, ui.StatusComplete, "")
		tracker.Complete(nil)
		fmt.Fprintln(os.Stdout)
	}

	return res, nil
}

func buildSummary(res *spins.Results) ui.SpinsSummary {
	sum := ui.SpinsSummary{
		Prefix:           res.Prefix(),
		CalcMode:         spins.ModeTag,
		NKPoints:         res.NumKPoints(),
		NBands:           res.NumBands(),
		NConfigurations:  res.NumConfigurations(),
		NModes:           res.NumModes(),
		CoordUnits:       res.Kpt().Units(),
		EnergyUnits:      res.Bands().Units(),
		TemperatureUnits: res.Temper().Units(),
		ChemPotUnits:     res.ChemPot().Units(),
		SigmaUnits:       res.Imsigma().Units(),
		Configurations:   make(map[int]ui.ConfigCondition),
	}
	for _, c := range res.Temper().Keys() {
		t, _ := res.Temper().Get(c)
		mu, _ := res.ChemPot().Get(c)
		sum.Configurations[c] = ui.ConfigCondition{Temperature: t, ChemicalPotential: mu}
	}
	return sum
}

func init() {
	infoCmd.Flags().StringVarP(&infoInput, "input", "i", "", "Path to Perturbo spins YAML output file (required)")
	infoCmd.Flags().StringVar(&infoLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	infoCmd.Flags().BoolVar(&infoPlainSummary, "plain-summary", false, "Print a single-line plain summary (no styling)")

	// Bind all flags to viper for config file support
	viper.BindPFlag("info.input", infoCmd.Flags().Lookup("input"))
	viper.BindPFlag("info.log-level", infoCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("info.plain-summary", infoCmd.Flags().Lookup("plain-summary"))
}
