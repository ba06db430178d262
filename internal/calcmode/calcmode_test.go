package calcmode

import (
	"errors"
	"testing"

	"github.com/ltan01/perturbopy/internal/apperr"
	"github.com/ltan01/perturbopy/internal/lattice"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"input parameters": map[string]any{
			"calc mode": "spins",
			"prefix":    "si",
		},
		"basic data": map[string]any{
			"alat":       10.264,
			"alat units": "bohr",
			"lattice vectors": []any{
				[]any{-0.5, 0.0, 0.5},
				[]any{0.0, 0.5, 0.5},
				[]any{-0.5, 0.5, 0.0},
			},
			"reciprocal lattice vectors": []any{
				[]any{-1.0, -1.0, 1.0},
				[]any{1.0, 1.0, 1.0},
				[]any{-1.0, 1.0, -1.0},
			},
		},
		"spins": map[string]any{
			"number of bands": 2,
		},
	}
}

func TestFromDoc(t *testing.T) {
	cm, err := FromDoc(sampleDoc())
	if err != nil {
		t.Fatalf("FromDoc() error: %v", err)
	}
	if cm.CalcMode() != "spins" {
		t.Errorf("CalcMode() = %q, want %q", cm.CalcMode(), "spins")
	}
	if cm.Prefix() != "si" {
		t.Errorf("Prefix() = %q, want %q", cm.Prefix(), "si")
	}
	alat, units := cm.Alat()
	if alat != 10.264 || units != "bohr" {
		t.Errorf("Alat() = %v %q, want 10.264 bohr", alat, units)
	}
	wantLat := lattice.Mat3{
		{-0.5, 0.0, 0.5},
		{0.0, 0.5, 0.5},
		{-0.5, 0.5, 0.0},
	}
	if cm.Lat() != wantLat {
		t.Errorf("Lat() = %v, want %v", cm.Lat(), wantLat)
	}
	if cm.RecipLat()[0] != (lattice.Vec3{-1, -1, 1}) {
		t.Errorf("RecipLat() first row = %v", cm.RecipLat()[0])
	}
}

func TestFromDoc_PrefixOptional(t *testing.T) {
	doc := sampleDoc()
	delete(doc["input parameters"].(map[string]any), "prefix")

	cm, err := FromDoc(doc)
	if err != nil {
		t.Fatalf("FromDoc() error: %v", err)
	}
	if cm.Prefix() != "" {
		t.Errorf("Prefix() = %q, want empty", cm.Prefix())
	}
}

func TestFromDoc_MissingCalcMode(t *testing.T) {
	doc := sampleDoc()
	delete(doc["input parameters"].(map[string]any), "calc mode")

	_, err := FromDoc(doc)
	var mk *apperr.MissingKeyError
	if !errors.As(err, &mk) {
		t.Fatalf("expected MissingKeyError, got %v", err)
	}
	if mk.Path != "input parameters.calc mode" {
		t.Errorf("Path = %q, want %q", mk.Path, "input parameters.calc mode")
	}
}

func TestFromDoc_MissingBasicData(t *testing.T) {
	doc := sampleDoc()
	delete(doc, "basic data")

	_, err := FromDoc(doc)
	if !apperr.IsMissingKey(err) {
		t.Fatalf("expected MissingKeyError, got %v", err)
	}
}

func TestFromDoc_BadLatticeShape(t *testing.T) {
	doc := sampleDoc()
	doc["basic data"].(map[string]any)["lattice vectors"] = []any{
		[]any{1.0, 0.0, 0.0},
		[]any{0.0, 1.0, 0.0},
	}

	_, err := FromDoc(doc)
	if !apperr.IsConfig(err) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestTakeSection_Drains(t *testing.T) {
	cm, err := FromDoc(sampleDoc())
	if err != nil {
		t.Fatalf("FromDoc() error: %v", err)
	}

	sec, err := cm.TakeSection("spins")
	if err != nil {
		t.Fatalf("TakeSection() error: %v", err)
	}
	if _, ok := sec["number of bands"]; !ok {
		t.Fatalf("section missing expected key")
	}

	if _, err := cm.TakeSection("spins"); !apperr.IsMissingKey(err) {
		t.Fatalf("second TakeSection must fail with MissingKeyError, got %v", err)
	}
}
