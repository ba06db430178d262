package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// SpinsSummary mirrors the reshaped spins data model without importing the
// spins package, to keep ui free of domain dependencies.
type SpinsSummary struct {
	Prefix   string
	CalcMode string

	NKPoints        int
	NBands          int
	NConfigurations int
	NModes          int

	CoordUnits       string
	EnergyUnits      string
	TemperatureUnits string
	ChemPotUnits     string
	SigmaUnits       string

	// Configurations maps configuration index to its operating condition.
	Configurations map[int]ConfigCondition
}

// ConfigCondition is one (temperature, chemical potential) operating point.
type ConfigCondition struct {
	Temperature       float64
	ChemicalPotential float64
}

// SummaryUI renders spins calculation summaries.
type SummaryUI struct {
	writer io.Writer
	quiet  bool
}

// NewSummaryUI creates a new UI handler for the info command.
func NewSummaryUI(w io.Writer, quiet bool) *SummaryUI {
	return &SummaryUI{writer: w, quiet: quiet}
}

// PrintSummary renders a boxed overview of one reshaped calculation.
func (s *SummaryUI) PrintSummary(sum SpinsSummary) {
	if s.quiet {
		return
	}
	fmt.Fprintln(s.writer, RenderSummary(sum))
}

// RenderSummary builds the styled summary text.
func RenderSummary(sum SpinsSummary) string {
	var out strings.Builder

	title := "Spin-resolved Self-energy"
	if sum.Prefix != "" {
		title += "  " + Highlight.Render(sum.Prefix)
	}
	out.WriteString(Title.Render(title))
	out.WriteString("\n\n")

	out.WriteString(SectionHeader.Render("Calculation"))
	out.WriteString("\n")
	out.WriteString("  " + FormatKeyValue("calc mode", sum.CalcMode) + "\n")
	out.WriteString("  " + FormatKeyValue("k-points", fmt.Sprintf("%d (%s)", sum.NKPoints, sum.CoordUnits)) + "\n")
	out.WriteString("  " + FormatKeyValue("bands", fmt.Sprintf("%d (%s)", sum.NBands, sum.EnergyUnits)) + "\n")
	out.WriteString("  " + FormatKeyValue("phonon modes", fmt.Sprintf("%d", sum.NModes)) + "\n")
	out.WriteString("  " + FormatKeyValue("Im(Sigma) units", sum.SigmaUnits) + "\n")

	out.WriteString("\n")
	out.WriteString(SectionHeader.Render(fmt.Sprintf("Configurations (%d)", sum.NConfigurations)))
	out.WriteString("\n")

	idx := make([]int, 0, len(sum.Configurations))
	for c := range sum.Configurations {
		idx = append(idx, c)
	}
	sort.Ints(idx)
	for _, c := range idx {
		cond := sum.Configurations[c]
		line := fmt.Sprintf("%s %d:  T = %g %s,  µ = %g %s",
			GetBullet(), c,
			cond.Temperature, sum.TemperatureUnits,
			cond.ChemicalPotential, sum.ChemPotUnits)
		out.WriteString("  " + line + "\n")
	}

	return Box.Render(strings.TrimRight(out.String(), "\n"))
}
