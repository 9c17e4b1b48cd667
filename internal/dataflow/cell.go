// Package dataflow moves values between spreadsheet-style grids by cell
// address: a mapping config names source and destination cells per field,
// a processor copies the values across, and an export profile can emit the
// mapped fields as a flat file.
package dataflow

import (
	"fmt"
	"strings"
)

// CellAddress is a parsed A1-style reference, zero-based.
type CellAddress struct {
	Row int
	Col int
}

// ParseCellAddress parses an A1-style reference such as "B12" or "AA3".
func ParseCellAddress(s string) (CellAddress, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == "" {
		return CellAddress{}, fmt.Errorf("empty cell address")
	}

	split := 0
	for split < len(upper) && upper[split] >= 'A' && upper[split] <= 'Z' {
		split++
	}
	if split == 0 || split == len(upper) {
		return CellAddress{}, fmt.Errorf("invalid cell address %q", s)
	}

	col := 0
	for _, c := range upper[:split] {
		col = col*26 + int(c-'A') + 1
	}

	row := 0
	for _, c := range upper[split:] {
		if c < '0' || c > '9' {
			return CellAddress{}, fmt.Errorf("invalid cell address %q", s)
		}
		row = row*10 + int(c-'0')
	}
	if row == 0 {
		return CellAddress{}, fmt.Errorf("invalid cell address %q: rows start at 1", s)
	}

	return CellAddress{Row: row - 1, Col: col - 1}, nil
}

// String renders the address back in A1 notation.
func (a CellAddress) String() string {
	col := a.Col + 1
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return fmt.Sprintf("%s%d", letters, a.Row+1)
}
