package dataflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSourceSheet(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "source.csv")
	content := "Acme Corp,2025,\nignored,12000,approved\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T, dir string) *MappingConfig {
	t.Helper()
	return &MappingConfig{
		SourceFilePath:      writeSourceSheet(t, dir),
		DestinationFilePath: filepath.Join(dir, "dest.csv"),
		SourceSheet:         "Input",
		DestinationSheet:    "Output",
		Mappings: []FieldMapping{
			{FieldName: "company", SourceCell: "A1", DestinationCell: "B2", UseInT2020: true},
			{FieldName: "budget", SourceCell: "B2", DestinationCell: "C3", UseInT2020: true},
			{FieldName: "status", SourceCell: "C2", DestinationCell: "A1"},
		},
	}
}

func TestProcess_CopiesCellsAndCollectsFields(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	result, err := Process(cfg)
	require.NoError(t, err)

	require.Len(t, result.Fields, 3)
	assert.Equal(t, FieldValue{Name: "company", Value: "Acme Corp"}, result.Fields[0])
	assert.Equal(t, FieldValue{Name: "budget", Value: "12000"}, result.Fields[1])
	assert.Equal(t, FieldValue{Name: "status", Value: "approved"}, result.Fields[2])

	require.Len(t, result.T2020Fields, 2, "only flagged fields join the T2020 set")

	dest, err := OpenSheet(cfg.DestinationFilePath, "")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", dest.Cell(mustAddr(t, "B2")))
	assert.Equal(t, "12000", dest.Cell(mustAddr(t, "C3")))
	assert.Equal(t, "approved", dest.Cell(mustAddr(t, "A1")))
}

func TestProcess_MissingSourceCellIsEmpty(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	cfg.Mappings = []FieldMapping{
		{FieldName: "ghost", SourceCell: "Z99", DestinationCell: "A1"},
	}

	result, err := Process(cfg)
	require.NoError(t, err)
	assert.Equal(t, "", result.Fields[0].Value, "out-of-range reads are empty, not errors")
}

func TestSelectFields(t *testing.T) {
	r := &Result{Fields: []FieldValue{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "2"},
		{Name: "c", Value: "3"},
	}}

	assert.Len(t, r.SelectFields(nil), 3, "empty selection keeps everything")

	selected := r.SelectFields([]string{"c", "a"})
	require.Len(t, selected, 2)
	assert.Equal(t, "a", selected[0].Name, "mapping order wins over selection order")
	assert.Equal(t, "c", selected[1].Name)
}

func TestGrid_SetCellGrows(t *testing.T) {
	g := &Grid{path: filepath.Join(t.TempDir(), "g.csv"), comma: ','}
	g.SetCell(mustAddr(t, "C3"), "x")
	assert.Equal(t, "x", g.Cell(mustAddr(t, "C3")))
	assert.Equal(t, "", g.Cell(mustAddr(t, "A1")))

	require.NoError(t, g.Save())
	loaded, err := OpenSheet(g.Path(), "")
	require.NoError(t, err)
	assert.Equal(t, "x", loaded.Cell(mustAddr(t, "C3")))
}

func TestOpenSheet_DirectoryWithSheetName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Input.csv"), []byte("v\n"), 0644))

	g, err := OpenSheet(dir, "Input")
	require.NoError(t, err)
	assert.Equal(t, "v", g.Cell(mustAddr(t, "A1")))

	_, err = OpenSheet(dir, "")
	assert.Error(t, err, "directories need a sheet name")
}

func TestOpenSheet_TSVDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n"), 0644))

	g, err := OpenSheet(path, "")
	require.NoError(t, err)
	assert.Equal(t, "b", g.Cell(mustAddr(t, "B1")))
}

func mustAddr(t *testing.T, s string) CellAddress {
	t.Helper()
	addr, err := ParseCellAddress(s)
	require.NoError(t, err)
	return addr
}
