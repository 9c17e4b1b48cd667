package dataflow

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Grid is an in-memory sheet of cells, loaded from and saved to a
// delimited text file. Rows are ragged on load and squared off on save.
type Grid struct {
	rows  [][]string
	path  string
	comma rune
}

// OpenSheet loads a grid. When path is a directory the sheet name selects
// a .csv or .tsv file inside it; otherwise the path itself is the sheet
// and the name is informational. A missing file is an empty grid.
func OpenSheet(path, sheet string) (*Grid, error) {
	resolved, err := resolveSheetPath(path, sheet)
	if err != nil {
		return nil, err
	}
	g := &Grid{path: resolved, comma: delimiterFor(resolved)}

	f, err := os.Open(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		return g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening sheet: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = g.comma
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", resolved, err)
	}
	g.rows = rows
	return g, nil
}

func resolveSheetPath(path, sheet string) (string, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		if sheet == "" {
			return "", fmt.Errorf("sheet name required for workbook directory %s", path)
		}
		for _, ext := range []string{".csv", ".tsv"} {
			candidate := filepath.Join(path, sheet+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		return filepath.Join(path, sheet+".csv"), nil
	}
	return path, nil
}

func delimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// Cell returns the value at addr, or empty for cells outside the grid.
func (g *Grid) Cell(addr CellAddress) string {
	if addr.Row >= len(g.rows) {
		return ""
	}
	row := g.rows[addr.Row]
	if addr.Col >= len(row) {
		return ""
	}
	return row[addr.Col]
}

// SetCell writes value at addr, growing the grid as needed.
func (g *Grid) SetCell(addr CellAddress, value string) {
	for len(g.rows) <= addr.Row {
		g.rows = append(g.rows, nil)
	}
	for len(g.rows[addr.Row]) <= addr.Col {
		g.rows[addr.Row] = append(g.rows[addr.Row], "")
	}
	g.rows[addr.Row][addr.Col] = value
}

// Save writes the grid back to its file, padding rows to a uniform width.
func (g *Grid) Save() error {
	width := 0
	for _, row := range g.rows {
		if len(row) > width {
			width = len(row)
		}
	}
	squared := make([][]string, len(g.rows))
	for i, row := range g.rows {
		padded := make([]string, width)
		copy(padded, row)
		squared[i] = padded
	}

	if err := os.MkdirAll(filepath.Dir(g.path), 0755); err != nil {
		return fmt.Errorf("creating sheet directory: %w", err)
	}
	f, err := os.Create(g.path)
	if err != nil {
		return fmt.Errorf("creating sheet file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = g.comma
	if err := w.WriteAll(squared); err != nil {
		return fmt.Errorf("writing sheet %s: %w", g.path, err)
	}
	return nil
}

// Path returns the resolved file the grid reads and writes.
func (g *Grid) Path() string { return g.path }
