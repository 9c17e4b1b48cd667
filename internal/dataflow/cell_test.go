package dataflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellAddress(t *testing.T) {
	cases := []struct {
		in   string
		row  int
		col  int
	}{
		{"A1", 0, 0},
		{"B3", 2, 1},
		{"Z10", 9, 25},
		{"AA1", 0, 26},
		{"AB12", 11, 27},
		{" c4 ", 3, 2}, // lowercase and whitespace tolerated
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			addr, err := ParseCellAddress(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.row, addr.Row)
			assert.Equal(t, tc.col, addr.Col)
		})
	}
}

func TestParseCellAddress_Invalid(t *testing.T) {
	for _, in := range []string{"", "12", "AB", "A0", "A1B", "-B2"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCellAddress(in)
			assert.Error(t, err)
		})
	}
}

func TestCellAddress_RoundTrip(t *testing.T) {
	for _, in := range []string{"A1", "B3", "Z10", "AA1", "AZ99", "BA7"} {
		addr, err := ParseCellAddress(in)
		require.NoError(t, err)
		assert.Equal(t, in, addr.String())
	}
}
