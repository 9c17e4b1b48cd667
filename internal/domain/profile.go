package domain

import "time"

// ExportProfile is a named, reusable flat-export preset: which mapped
// fields to emit and in which format. Usage is counted so frequently used
// profiles surface first.
type ExportProfile struct {
	ID        string
	Name      string
	Format    ExportFormat
	Fields    []string
	UseCount  int
	LastUsed  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SelectsField reports whether the profile includes the named field. An
// empty field list selects everything.
func (p *ExportProfile) SelectsField(name string) bool {
	if len(p.Fields) == 0 {
		return true
	}
	for _, f := range p.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// FlowRun records one execution of the data-flow processor.
type FlowRun struct {
	ID         string
	ProfileID  *string
	ConfigPath string
	OutputPath string
	Format     string
	FieldCount int
	Succeeded  bool
	Message    string
	StartedAt  time.Time
	FinishedAt time.Time
}
