// Package expected loads application metadata and expected field values
// from YAML or XLSX worksheets.
package expected

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/copperworks/labelcheck/internal/model"
)

// Entry pairs an application with the values its labels must match.
// Values is nil for label-only entries.
type Entry struct {
	ApplicationID   string                `yaml:"id"`
	ApplicationName string                `yaml:"name"`
	Images          []string              `yaml:"images"`
	Values          *model.ExpectedValues `yaml:"expected"`
}

type yamlFile struct {
	Applications []Entry `yaml:"applications"`
}

// LoadYAML reads entries from a YAML file.
func LoadYAML(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "expected: read %s", path)
	}

	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "expected: parse %s", path)
	}

	if err := validate(f.Applications); err != nil {
		return nil, err
	}
	return f.Applications, nil
}

// ByID indexes entries by application ID.
func ByID(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.ApplicationID] = e
	}
	return m
}

func validate(entries []Entry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		id := strings.TrimSpace(e.ApplicationID)
		if id == "" {
			return eris.New("expected: entry with empty application id")
		}
		if seen[id] {
			return eris.Errorf("expected: duplicate application id %q", id)
		}
		seen[id] = true
	}
	return nil
}
