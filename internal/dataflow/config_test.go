package dataflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *MappingConfig {
	return &MappingConfig{
		SourceFilePath:      "in.csv",
		DestinationFilePath: "out.csv",
		Mappings: []FieldMapping{
			{FieldName: "company", SourceCell: "A1", DestinationCell: "B2"},
			{FieldName: "budget", SourceCell: "B2", DestinationCell: "C3", UseInT2020: true},
		},
	}
}

func TestMappingConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	t.Run("missing source path", func(t *testing.T) {
		cfg := validConfig()
		cfg.SourceFilePath = ""
		assert.ErrorContains(t, cfg.Validate(), "sourceFilePath")
	})

	t.Run("missing destination path", func(t *testing.T) {
		cfg := validConfig()
		cfg.DestinationFilePath = ""
		assert.ErrorContains(t, cfg.Validate(), "destinationFilePath")
	})

	t.Run("no mappings", func(t *testing.T) {
		cfg := validConfig()
		cfg.Mappings = nil
		assert.ErrorContains(t, cfg.Validate(), "at least one")
	})

	t.Run("duplicate field name", func(t *testing.T) {
		cfg := validConfig()
		cfg.Mappings = append(cfg.Mappings, FieldMapping{FieldName: "company", SourceCell: "D1", DestinationCell: "D2"})
		assert.ErrorContains(t, cfg.Validate(), "duplicate field name")
	})

	t.Run("bad cell address", func(t *testing.T) {
		cfg := validConfig()
		cfg.Mappings[0].SourceCell = "1A"
		assert.ErrorContains(t, cfg.Validate(), "source cell")
	})
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	cfg := validConfig()
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, []string{"company", "budget"}, loaded.FieldNames())
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "parsing mapping config")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"sourceFilePath":"a","destinationFilePath":"b","mappings":[]}`), 0644))
	_, err = LoadConfig(invalid)
	assert.ErrorContains(t, err, "at least one")
}
