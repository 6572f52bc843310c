package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineSettings_ApplyDefaults(t *testing.T) {
	settings := &PipelineSettings{InputDir: "notes", Extension: "txt"}
	settings.ApplyDefaults()

	assert.Equal(t, ".txt", settings.Extension)
	assert.Equal(t, DefaultMinTermLength, settings.MinTermLength)
	assert.Equal(t, DefaultMinFrequency, settings.MinFrequency)
	assert.Equal(t, DefaultMaxTerms, settings.MaxTerms)
	assert.Equal(t, DefaultWorkers, settings.Workers)
	assert.NotEmpty(t, settings.Stopwords)
	assert.Empty(t, settings.Validate())
}

func TestPipelineSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings PipelineSettings
		want     int
	}{
		{"valid", PipelineSettings{InputDir: "x", MinTermLength: 4, MinFrequency: 2, MaxTerms: 20, Workers: 1}, 0},
		{"missing dir", PipelineSettings{MinTermLength: 4, MinFrequency: 2, MaxTerms: 20, Workers: 1}, 1},
		{"negative thresholds", PipelineSettings{InputDir: "x", MinTermLength: -1, MinFrequency: -2, MaxTerms: -3, Workers: -4}, 4},
		{"blank stopword", PipelineSettings{InputDir: "x", MinTermLength: 4, MinFrequency: 2, MaxTerms: 20, Workers: 1, ExtraStopwords: []string{" "}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.settings.Validate(), tt.want)
		})
	}
}

func TestPipelineSettings_IsStopword(t *testing.T) {
	settings := NewPipelineSettings("notes")
	settings.ExtraStopwords = []string{"Obsidian"}
	require.NoError(t, settings.Prepare())

	assert.True(t, settings.IsStopword("para"))
	assert.True(t, settings.IsStopword("which"))
	assert.True(t, settings.IsStopword("ideas"))
	assert.True(t, settings.IsStopword("obsidian"))
	assert.False(t, settings.IsStopword("sistema"))
}

func TestPipelineSettings_PrepareRejectsInvalid(t *testing.T) {
	settings := &PipelineSettings{MinFrequency: -1}
	err := settings.Prepare()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input_dir is required")
	assert.Contains(t, err.Error(), "min_frequency")
}

func TestPipelineSettings_Clone(t *testing.T) {
	settings := NewPipelineSettings("notes")
	clone := settings.Clone()
	clone.Stopwords[0] = "changed"
	clone.MaxTerms = 3

	assert.NotEqual(t, "changed", settings.Stopwords[0])
	assert.Equal(t, DefaultMaxTerms, settings.MaxTerms)
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"input_dir":"vault","min_frequency":3}`), 0o600))
	yamlPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("input_dir: vault\nmax_terms: 5\nextra_stopwords: [nota]\n"), 0o600))

	fromJSON, err := LoadSettings(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "vault", fromJSON.InputDir)
	assert.Equal(t, 3, fromJSON.MinFrequency)
	assert.Equal(t, DefaultMaxTerms, fromJSON.MaxTerms)

	fromYAML, err := LoadSettings(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 5, fromYAML.MaxTerms)
	assert.Equal(t, []string{"nota"}, fromYAML.ExtraStopwords)
	assert.True(t, fromYAML.IsStopword("nota"))

	_, err = LoadSettings(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestExportSettings_Defaults(t *testing.T) {
	settings := NewExportSettings()
	assert.Equal(t, "📝 Idea", settings.Columns.Title)
	assert.Equal(t, "🔗 Conexiones", settings.Columns.Connections)
	assert.Equal(t, DefaultSlugLength, settings.SlugLength)
	assert.Empty(t, settings.Validate())

	settings.IDPrefix = "a/b"
	assert.Len(t, settings.Validate(), 1)
}
