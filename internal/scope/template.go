// Package scope implements the declarative documentation scope: which code
// patterns, change categories, and magnitudes should cause each documentation
// section to be revisited, and the filter that scores changed files against
// that scope.
package scope

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// UpdateTriggers declares the code-change signals a section reacts to.
type UpdateTriggers struct {
	CodePatterns  []string `yaml:"code_patterns,omitempty"`
	ChangeTypes   []string `yaml:"change_types,omitempty"`
	MinMagnitude  float64  `yaml:"min_magnitude,omitempty"`
	RelevantTerms []string `yaml:"relevant_terms,omitempty"`
}

// Section is one documented section inside a scoped document.
type Section struct {
	Description string         `yaml:"description,omitempty"`
	Themes      []string       `yaml:"themes,omitempty"`
	Triggers    UpdateTriggers `yaml:"update_triggers"`
}

// DocScope maps one documentation file and its sections.
type DocScope struct {
	Path     string             `yaml:"path,omitempty"`
	Sections map[string]Section `yaml:"sections"`
}

// Template is the in-memory representation of a scope template file.
type Template struct {
	Docs map[string]DocScope `yaml:"docs"`
}

// Load reads and parses a scope template.
//
// A missing file is not an error to callers that want fail-open behavior;
// they should check os.IsNotExist on the wrapped error.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read scope template %s: %w", path, err)
	}
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("invalid scope template %s: %w", path, err)
	}
	return &t, nil
}

// Save writes the template as YAML.
func (t *Template) Save(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write scope template %s: %w", path, err)
	}
	return nil
}

// DocKeys returns the template's document keys in sorted order.
func (t *Template) DocKeys() []string {
	keys := make([]string, 0, len(t.Docs))
	for k := range t.Docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SectionNames returns the sorted section names of one document.
func (d DocScope) SectionNames() []string {
	names := make([]string, 0, len(d.Sections))
	for n := range d.Sections {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SectionCount returns the total number of sections across all documents.
func (t *Template) SectionCount() int {
	n := 0
	for _, d := range t.Docs {
		n += len(d.Sections)
	}
	return n
}
