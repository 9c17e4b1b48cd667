package dataflow

import (
	"fmt"
)

// Result holds the values moved by one processing pass.
type Result struct {
	// Fields lists every mapped field with its source value, in mapping
	// order.
	Fields []FieldValue
	// T2020Fields is the subset flagged for the T2020 flat export.
	T2020Fields []FieldValue
}

// Process copies every mapped cell from the source sheet to the
// destination sheet and saves the destination. Cell addresses were
// validated with the config, so parse failures here are programmer error.
func Process(cfg *MappingConfig) (*Result, error) {
	source, err := OpenSheet(cfg.SourceFilePath, cfg.SourceSheet)
	if err != nil {
		return nil, fmt.Errorf("source workbook: %w", err)
	}
	dest, err := OpenSheet(cfg.DestinationFilePath, cfg.DestinationSheet)
	if err != nil {
		return nil, fmt.Errorf("destination workbook: %w", err)
	}

	result := &Result{}
	for _, m := range cfg.Mappings {
		srcAddr, err := ParseCellAddress(m.SourceCell)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", m.FieldName, err)
		}
		dstAddr, err := ParseCellAddress(m.DestinationCell)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", m.FieldName, err)
		}

		value := source.Cell(srcAddr)
		dest.SetCell(dstAddr, value)

		fv := FieldValue{Name: m.FieldName, Value: value}
		result.Fields = append(result.Fields, fv)
		if m.UseInT2020 {
			result.T2020Fields = append(result.T2020Fields, fv)
		}
	}

	if err := dest.Save(); err != nil {
		return nil, fmt.Errorf("destination workbook: %w", err)
	}
	return result, nil
}

// SelectFields filters the result's fields down to the named subset,
// preserving mapping order. An empty selection keeps everything.
func (r *Result) SelectFields(names []string) []FieldValue {
	if len(names) == 0 {
		return r.Fields
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []FieldValue
	for _, f := range r.Fields {
		if wanted[f.Name] {
			out = append(out, f)
		}
	}
	return out
}
