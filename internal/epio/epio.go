// Package epio reads and writes the YAML documents produced by Perturbo
// postprocessing runs. Loading yields the loosely-typed nested mapping that
// the calcmode and spins packages consume and drain.
package epio

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

// LoadYAML reads a Perturbo output document into a nested mapping.
//
// YAML mappings with non-string keys (Perturbo indexes bands, modes and
// configurations with integer keys) decode to map[any]any; those are left
// as decoded and normalized lazily by the consumers. Only the top level is
// forced to string keys here.
func LoadYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	switch m := doc.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("decoding %s: document root is %T, want a mapping", path, doc)
	}
}

// WriteYAML marshals doc and writes it to path.
func WriteYAML(path string, doc any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
