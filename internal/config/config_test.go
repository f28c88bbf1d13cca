package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/roach88/popcharts/internal/chart"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "popcharts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, Validate(cfg))
	assert.Len(t, cfg.Countries, 10)
	assert.Equal(t, "us", cfg.Countries[0].FilePrefix())
	assert.Equal(t, "uk", cfg.Countries[5].FilePrefix())
	assert.Equal(t, "China", cfg.Countries[1].FilePrefix())
	assert.Len(t, cfg.Years, 16)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
input: /data/pop.csv
output_dir: /tmp/out
marker: s
countries:
  - name: Japan
    slug: jp
    color: "#112233"
  - name: Brazil
    color: olive
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/pop.csv", cfg.Input)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, chart.MarkerSquare, cfg.ChartMarker())
	require.Len(t, cfg.Countries, 2)
	assert.Equal(t, "Japan", cfg.Countries[0].Name)
	assert.Equal(t, "Brazil", cfg.Countries[1].Name)
	// untouched keys keep their defaults
	assert.Equal(t, "..", cfg.MissingToken)
	assert.Equal(t, Default().Indicators, cfg.Indicators)
	assert.Equal(t, "Top Ten Economies", cfg.SummarySuffix)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"unknown key", "inputs: x.csv\n", "invalid YAML"},
		{"bad match mode", "match: fuzzy\n", "schema violation"},
		{"bad marker", "marker: '*'\n", "schema violation"},
		{"empty years", "years: []\n", "schema violation"},
		{"empty countries", "countries: []\n", "schema violation"},
		{"zero width", "width_in: 0\n", "schema violation"},
		{"country without color", "countries:\n  - name: Japan\n", "schema violation"},
		{"long delimiter", "delimiter: ';;'\n", "schema violation"},
		{"unknown color", "countries:\n  - name: Japan\n    color: blurple\n", `unknown color "blurple"`},
		{"duplicate country", "countries:\n  - {name: Japan, color: red}\n  - {name: Japan, color: blue}\n", `"Japan" listed twice`},
		{"duplicate prefix", "countries:\n  - {name: United States, slug: us, color: red}\n  - {name: us, color: blue}\n", `share file prefix "us"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
			assert.Contains(t, err.Error(), tt.contains)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "cannot read file")
}

func TestValidate_DefaultsLabel(t *testing.T) {
	cfg := Default()
	cfg.Countries[1].Color = "nope"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config <defaults>")
}

func TestRenderer_Size(t *testing.T) {
	cfg := Default()
	cfg.WidthIn = 8
	cfg.HeightIn = 4.5

	r := cfg.Renderer()

	assert.Equal(t, 8*vg.Inch, r.Width)
	assert.Equal(t, vg.Length(4.5)*vg.Inch, r.Height)
}

func TestTableOptions_Count(t *testing.T) {
	// one option per source setting plus one per indicator
	assert.Len(t, Default().TableOptions(), 9)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# nothing to override\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
