package dataflow

import (
	"encoding/json"
	"fmt"
	"os"
)

// FieldMapping ties one named field to a source and destination cell.
// UseInT2020 marks fields included in the T2020 flat export.
type FieldMapping struct {
	FieldName       string `json:"fieldName"`
	SourceCell      string `json:"sourceCell"`
	DestinationCell string `json:"destinationCell"`
	UseInT2020      bool   `json:"useInT2020"`
}

// MappingConfig is the persisted wizard output: where to read, where to
// write, and the per-field cell mapping.
type MappingConfig struct {
	SourceFilePath      string         `json:"sourceFilePath"`
	DestinationFilePath string         `json:"destinationFilePath"`
	SourceSheet         string         `json:"sourceSheet"`
	DestinationSheet    string         `json:"destinationSheet"`
	Mappings            []FieldMapping `json:"mappings"`
}

// LoadConfig reads and validates a mapping config file.
func LoadConfig(path string) (*MappingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping config: %w", err)
	}
	var cfg MappingConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing mapping config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mapping config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config as indented JSON.
func (c *MappingConfig) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding mapping config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing mapping config: %w", err)
	}
	return nil
}

// Validate checks paths, duplicate field names, and every cell address.
func (c *MappingConfig) Validate() error {
	if c.SourceFilePath == "" {
		return fmt.Errorf("sourceFilePath is required")
	}
	if c.DestinationFilePath == "" {
		return fmt.Errorf("destinationFilePath is required")
	}
	if len(c.Mappings) == 0 {
		return fmt.Errorf("at least one field mapping is required")
	}
	seen := make(map[string]bool, len(c.Mappings))
	for i, m := range c.Mappings {
		if m.FieldName == "" {
			return fmt.Errorf("mapping %d: fieldName is required", i)
		}
		if seen[m.FieldName] {
			return fmt.Errorf("duplicate field name %q", m.FieldName)
		}
		seen[m.FieldName] = true
		if _, err := ParseCellAddress(m.SourceCell); err != nil {
			return fmt.Errorf("field %q: source cell: %w", m.FieldName, err)
		}
		if _, err := ParseCellAddress(m.DestinationCell); err != nil {
			return fmt.Errorf("field %q: destination cell: %w", m.FieldName, err)
		}
	}
	return nil
}

// FieldNames lists the mapped field names in mapping order.
func (c *MappingConfig) FieldNames() []string {
	names := make([]string, 0, len(c.Mappings))
	for _, m := range c.Mappings {
		names = append(names, m.FieldName)
	}
	return names
}
