package dataflow

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/atorrance/taskwell/internal/domain"
)

// FieldValue is one mapped field with the value read from the source sheet.
type FieldValue struct {
	Name  string
	Value string
}

type jsonField struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type xmlField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlExport struct {
	XMLName xml.Name   `xml:"export"`
	Fields  []xmlField `xml:"field"`
}

// RenderExport serializes the fields in the requested flat format. Field
// order is preserved in every format.
func RenderExport(fields []FieldValue, format domain.ExportFormat) (string, error) {
	switch format {
	case domain.FormatCSV:
		return renderDelimited(fields, ',')
	case domain.FormatTSV:
		return renderDelimited(fields, '\t')
	case domain.FormatJSON:
		out := make([]jsonField, 0, len(fields))
		for _, f := range fields {
			out = append(out, jsonField{Field: f.Name, Value: f.Value})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding json export: %w", err)
		}
		return string(data) + "\n", nil
	case domain.FormatXML:
		doc := xmlExport{}
		for _, f := range fields {
			doc.Fields = append(doc.Fields, xmlField{Name: f.Name, Value: f.Value})
		}
		data, err := xml.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding xml export: %w", err)
		}
		return xml.Header + string(data) + "\n", nil
	case domain.FormatTXT:
		var b strings.Builder
		for _, f := range fields {
			fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Value)
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

func renderDelimited(fields []FieldValue, comma rune) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma

	header := make([]string, 0, len(fields))
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		header = append(header, f.Name)
		values = append(values, f.Value)
	}
	if err := w.WriteAll([][]string{header, values}); err != nil {
		return "", fmt.Errorf("encoding delimited export: %w", err)
	}
	return buf.String(), nil
}
