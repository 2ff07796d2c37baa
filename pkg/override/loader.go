// Package override loads manual record-to-image pins from a YAML file.
//
// Pins exist for the cases automatic matching cannot settle, e.g. two
// politicians whose names normalize to the same key, or a portrait
// filed under a nickname the records do not carry:
//
//	overrides:
//	  - name: Some Politician
//	    image: Some_Politician_official.png
package override

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Tanfilov/democrac-server/pkg/matcher"
)

type yamlOverride struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

type yamlOverridesFile struct {
	Overrides []yamlOverride `yaml:"overrides"`
}

// Loader handles loading override files.
type Loader struct{}

// NewLoader creates a loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses override YAML bytes into a map keyed by the normalized
// record name. Entries with an empty name or image are rejected, as are
// two entries whose names normalize to the same key.
func (l *Loader) Load(data []byte) (map[string]string, error) {
	var yamlFile yamlOverridesFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	overrides := make(map[string]string, len(yamlFile.Overrides))
	for i, ov := range yamlFile.Overrides {
		if ov.Name == "" {
			return nil, fmt.Errorf("override %d: missing name", i)
		}
		if ov.Image == "" {
			return nil, fmt.Errorf("override %d (%s): missing image", i, ov.Name)
		}

		key := matcher.Normalize(ov.Name)
		if _, exists := overrides[key]; exists {
			return nil, fmt.Errorf("override %d (%s): duplicate normalized name %q", i, ov.Name, key)
		}
		overrides[key] = ov.Image
	}

	return overrides, nil
}

// LoadFile loads overrides from a YAML file path.
func (l *Loader) LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.Load(data)
}
