// Package config loads and validates the report configuration.
//
// A configuration is optional: Default returns the ten-country report the
// tool was built for, and a YAML file only needs the keys it overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/roach88/popcharts/internal/chart"
	"github.com/roach88/popcharts/internal/indicator"
	"github.com/roach88/popcharts/internal/table"
)

// Config is the full report configuration.
type Config struct {
	Input         string     `yaml:"input" json:"input"`
	OutputDir     string     `yaml:"output_dir" json:"output_dir"`
	MissingToken  string     `yaml:"missing_token" json:"missing_token"`
	Delimiter     string     `yaml:"delimiter" json:"delimiter"`
	Years         []string   `yaml:"years" json:"years"`
	Match         string     `yaml:"match" json:"match"`
	Marker        string     `yaml:"marker" json:"marker"`
	WidthIn       float64    `yaml:"width_in" json:"width_in"`
	HeightIn      float64    `yaml:"height_in" json:"height_in"`
	SummarySuffix string     `yaml:"summary_suffix" json:"summary_suffix"`
	Indicators    Indicators `yaml:"indicators" json:"indicators"`
	Countries     []Country  `yaml:"countries" json:"countries"`
}

// Indicators holds the source series name of each indicator.
type Indicators struct {
	Birth  string `yaml:"birth" json:"birth"`
	Death  string `yaml:"death" json:"death"`
	Over65 string `yaml:"over65" json:"over65"`
	Growth string `yaml:"growth" json:"growth"`
	Total  string `yaml:"total" json:"total"`
}

// Country is one charted country. Slug is the file name prefix; when empty
// the country name is used as is.
type Country struct {
	Name  string `yaml:"name" json:"name"`
	Slug  string `yaml:"slug,omitempty" json:"slug,omitempty"`
	Color string `yaml:"color" json:"color"`
}

// FilePrefix returns the slug, or the name when no slug is configured.
func (c Country) FilePrefix() string {
	if c.Slug != "" {
		return c.Slug
	}
	return c.Name
}

// Error reports an unusable configuration.
type Error struct {
	Path    string // config file, empty for built-in defaults
	Message string
	Err     error
}

func (e *Error) Error() string {
	src := e.Path
	if src == "" {
		src = "<defaults>"
	}
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", src, e.Message, e.Err)
	}
	return fmt.Sprintf("config %s: %s", src, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsConfigError returns true if err wraps a *Error.
func IsConfigError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}

// Default returns the built-in report: the ten largest economies, in GDP
// order, with their summary chart colors.
func Default() *Config {
	return &Config{
		Input:         "data/worldPopulationData.csv",
		OutputDir:     "images",
		MissingToken:  table.DefaultMissingToken,
		Delimiter:     ",",
		Years:         append([]string(nil), table.DefaultYears...),
		Match:         string(table.MatchName),
		Marker:        string(chart.MarkerCircle),
		WidthIn:       10,
		HeightIn:      6,
		SummarySuffix: "Top Ten Economies",
		Indicators: Indicators{
			Birth:  table.DefaultSeriesNames[indicator.Birth],
			Death:  table.DefaultSeriesNames[indicator.Death],
			Over65: table.DefaultSeriesNames[indicator.Over65],
			Growth: table.DefaultSeriesNames[indicator.Growth],
			Total:  table.DefaultSeriesNames[indicator.Total],
		},
		Countries: []Country{
			{Name: "United States", Slug: "us", Color: "blue"},
			{Name: "China", Color: "red"},
			{Name: "Germany", Color: "gold"},
			{Name: "Japan", Color: "purple"},
			{Name: "India", Color: "yellow"},
			{Name: "United Kingdom", Slug: "uk", Color: "black"},
			{Name: "France", Color: "orange"},
			{Name: "Italy", Color: "chartreuse"},
			{Name: "Brazil", Color: "olive"},
			{Name: "Canada", Color: "salmon"},
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "cannot read file", Err: err}
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Path: path, Message: "invalid YAML", Err: err}
	}

	if err := Validate(cfg); err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against the schema and the cross-field rules.
func Validate(cfg *Config) error {
	if err := validateSchema(cfg); err != nil {
		return &Error{Message: "schema violation", Err: err}
	}

	if utf8.RuneCountInString(cfg.Delimiter) != 1 {
		return &Error{Message: fmt.Sprintf("delimiter %q must be a single character", cfg.Delimiter)}
	}

	names := make(map[string]bool, len(cfg.Countries))
	prefixes := make(map[string]string, len(cfg.Countries))
	for _, c := range cfg.Countries {
		if names[c.Name] {
			return &Error{Message: fmt.Sprintf("country %q listed twice", c.Name)}
		}
		names[c.Name] = true

		prefix := c.FilePrefix()
		if other, ok := prefixes[prefix]; ok {
			return &Error{Message: fmt.Sprintf("countries %q and %q share file prefix %q", other, c.Name, prefix)}
		}
		prefixes[prefix] = c.Name

		if _, err := chart.ParseColor(c.Color); err != nil {
			return &Error{Message: fmt.Sprintf("country %q", c.Name), Err: err}
		}
	}
	return nil
}

// TableOptions converts the source settings into table load options.
func (c *Config) TableOptions() []table.Option {
	delim, _ := utf8.DecodeRuneInString(c.Delimiter)
	return []table.Option{
		table.WithYears(c.Years...),
		table.WithMissingToken(c.MissingToken),
		table.WithDelimiter(delim),
		table.WithMatch(table.MatchMode(c.Match)),
		table.WithSeriesName(indicator.Birth, c.Indicators.Birth),
		table.WithSeriesName(indicator.Death, c.Indicators.Death),
		table.WithSeriesName(indicator.Over65, c.Indicators.Over65),
		table.WithSeriesName(indicator.Growth, c.Indicators.Growth),
		table.WithSeriesName(indicator.Total, c.Indicators.Total),
	}
}

// Renderer returns a chart renderer of the configured size.
func (c *Config) Renderer() *chart.Renderer {
	r := chart.NewRenderer()
	r.Width = vgInches(c.WidthIn)
	r.Height = vgInches(c.HeightIn)
	return r
}

func vgInches(in float64) vg.Length {
	return vg.Length(in) * vg.Inch
}

// ChartMarker returns the configured marker. Validate guarantees it parses.
func (c *Config) ChartMarker() chart.Marker {
	m, err := chart.ParseMarker(c.Marker)
	if err != nil {
		return chart.MarkerCircle
	}
	return m
}
