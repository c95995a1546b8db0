package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the on-disk YAML shape of a schema file.
type document struct {
	RecordTypes []*RecordTypeSpec `yaml:"record_types"`
	Aggregates  []AggregateSpec   `yaml:"aggregates,omitempty"`
}

// Load reads and validates a schema from a YAML file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	s, err := New(doc.RecordTypes, doc.Aggregates)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return s, nil
}

// Save writes the schema to a YAML file.
func Save(s *Schema, path string) error {
	doc := document{RecordTypes: s.types, Aggregates: s.aggregates}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
