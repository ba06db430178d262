package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestColorAppliesANSICodes(t *testing.T) {
	Init(false)
	got := Color("hello", FgGreen)
	want := FgGreen + "hello" + Reset
	if got != want {
		t.Fatalf("Color() = %q, want %q", got, want)
	}
}

func TestColorDisabled(t *testing.T) {
	Init(true)
	defer Init(false)
	got := Color("hello", FgRed)
	if got != "hello" {
		t.Fatalf("Color() with color disabled = %q, want %q", got, "hello")
	}
}

func TestFormatKeyValue(t *testing.T) {
	got := FormatKeyValue("bands", "8")
	if !strings.Contains(got, "bands") || !strings.Contains(got, "8") {
		t.Fatalf("FormatKeyValue() = %q, missing key or value", got)
	}
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		status  string
		message string
	}{
		{"success", "done"},
		{"error", "failed"},
		{"warning", "careful"},
		{"info", "note"},
		{"other", "plain"},
	}
	for _, tt := range tests {
		got := FormatStatus(tt.status, tt.message)
		if !strings.Contains(got, tt.message) {
			t.Errorf("FormatStatus(%q) = %q, missing message", tt.status, got)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	tests := []struct {
		name string
		sum  SpinsSummary
		want []string // Strings that should appear in output
	}{
		{
			name: "single configuration",
			sum: SpinsSummary{
				Prefix:           "si",
				CalcMode:         "spins",
				NKPoints:         3,
				NBands:           2,
				NConfigurations:  1,
				NModes:           6,
				CoordUnits:       "crystal",
				EnergyUnits:      "eV",
				TemperatureUnits: "K",
				ChemPotUnits:     "eV",
				SigmaUnits:       "meV",
				Configurations: map[int]ConfigCondition{
					1: {Temperature: 300, ChemicalPotential: 6.5},
				},
			},
			want: []string{"si", "spins", "3 (crystal)", "2 (eV)", "meV", "Configurations (1)", "300", "6.5"},
		},
		{
			name: "multiple configurations listed in index order",
			sum: SpinsSummary{
				CalcMode:        "spins",
				NConfigurations: 2,
				Configurations: map[int]ConfigCondition{
					2: {Temperature: 400},
					1: {Temperature: 200},
				},
			},
			want: []string{"Configurations (2)", "200", "400"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderSummary(tt.sum)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("RenderSummary() missing %q in output:\n%s", w, got)
				}
			}
		})
	}
}

func TestSummaryUI_QuietSuppressesOutput(t *testing.T) {
	var buf bytes.Buffer
	ui := NewSummaryUI(&buf, true)
	ui.PrintSummary(SpinsSummary{CalcMode: "spins"})
	if buf.Len() != 0 {
		t.Fatalf("expected no output in quiet mode, got %q", buf.String())
	}
}

func TestProgressModel_UpdateSteps(t *testing.T) {
	m := NewProgressModel("Reading", []string{"load", "reshape"})

	updated, _ := m.Update(ProgressMsg{StepIndex: 0, Status: StatusComplete})
	m = updated.(ProgressModel)
	if m.steps[0].Status != StatusComplete {
		t.Fatalf("expected first step complete, got %v", m.steps[0].Status)
	}

	updated, _ = m.Update(ProgressMsg{StepIndex: 5, Status: StatusFailed})
	m = updated.(ProgressModel)
	for _, s := range m.steps {
		if s.Status == StatusFailed {
			t.Fatalf("out-of-range index must not modify steps")
		}
	}

	updated, _ = m.Update(DoneMsg{})
	m = updated.(ProgressModel)
	if !m.done {
		t.Fatalf("expected done after DoneMsg")
	}
}

func TestProgressModel_ViewShowsSteps(t *testing.T) {
	m := NewProgressModel("Reading", []string{"load", "reshape"})
	updated, _ := m.Update(ProgressMsg{StepIndex: 0, Status: StatusComplete})
	m = updated.(ProgressModel)

	view := m.render()
	if !strings.Contains(view, "load") || !strings.Contains(view, "reshape") {
		t.Fatalf("view missing step names:\n%s", view)
	}
}
