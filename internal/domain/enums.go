package domain

import "fmt"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

// ParsePriority converts a user-supplied string into a Priority.
func ParsePriority(s string) (Priority, error) {
	if !ValidPriorities[s] {
		return "", fmt.Errorf("invalid priority %q (expected low, medium or high)", s)
	}
	return Priority(s), nil
}

type NotesType string

const (
	NotesGeneral NotesType = "general"
	NotesMeeting NotesType = "meeting"
	NotesStatus  NotesType = "status"
)

// ValidNotesTypes is the canonical set of accepted notes type strings.
var ValidNotesTypes = map[string]bool{
	"general": true, "meeting": true, "status": true,
}

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatTSV  ExportFormat = "tsv"
	FormatJSON ExportFormat = "json"
	FormatXML  ExportFormat = "xml"
	FormatTXT  ExportFormat = "txt"
)

// ValidExportFormats is the canonical set of accepted flat-export formats.
var ValidExportFormats = map[string]bool{
	"csv": true, "tsv": true, "json": true, "xml": true, "txt": true,
}

// ParseExportFormat converts a user-supplied string into an ExportFormat.
func ParseExportFormat(s string) (ExportFormat, error) {
	if !ValidExportFormats[s] {
		return "", fmt.Errorf("invalid format %q (expected csv, tsv, json, xml or txt)", s)
	}
	return ExportFormat(s), nil
}
