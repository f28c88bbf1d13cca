package table

import (
	"fmt"

	"github.com/roach88/popcharts/internal/indicator"
)

// Fixed identifier column names applied to every source.
const (
	ColCountry     = "country"
	ColCountryCode = "country_code"
	ColSeries      = "series"
	ColSeriesCode  = "series_code"
)

// RowsPerCountry is the number of indicator rows each country must have.
const RowsPerCountry = 5

// DefaultMissingToken marks an absent value in the source.
const DefaultMissingToken = ".."

// DefaultYears are the year columns of the World Bank population export.
var DefaultYears = []string{
	"1960", "1965", "1970", "1975", "1980", "1985", "1990", "1995", "2000",
	"2005", "2010", "2015", "2020", "2022", "2023", "2024",
}

// DefaultSeriesNames maps each indicator to the series name used in the
// World Bank export.
var DefaultSeriesNames = map[indicator.Indicator]string{
	indicator.Birth:  "Birth rate, crude (per 1,000 people)",
	indicator.Death:  "Death rate, crude (per 1,000 people)",
	indicator.Over65: "Population ages 65 and above, total",
	indicator.Growth: "Population growth (annual %)",
	indicator.Total:  "Population, total",
}

// MatchMode selects how Extract assigns a country's rows to indicators.
type MatchMode string

const (
	// MatchName assigns rows by their series name.
	MatchName MatchMode = "name"
	// MatchPosition assigns rows by their order: birth, death, over65,
	// growth, total.
	MatchPosition MatchMode = "position"
)

// Schema describes the source layout and how rows map to indicators.
type Schema struct {
	Years        []string
	MissingToken string
	Delimiter    rune
	Match        MatchMode
	SeriesNames  map[indicator.Indicator]string
}

// DefaultSchema returns the layout of the World Bank population export.
func DefaultSchema() Schema {
	names := make(map[indicator.Indicator]string, len(DefaultSeriesNames))
	for k, v := range DefaultSeriesNames {
		names[k] = v
	}
	return Schema{
		Years:        append([]string(nil), DefaultYears...),
		MissingToken: DefaultMissingToken,
		Delimiter:    ',',
		Match:        MatchName,
		SeriesNames:  names,
	}
}

// Columns returns the full declared column list.
func (s Schema) Columns() []string {
	cols := []string{ColCountry, ColCountryCode, ColSeries, ColSeriesCode}
	return append(cols, s.Years...)
}

func (s Schema) validate() error {
	if len(s.Years) == 0 {
		return fmt.Errorf("schema declares no year columns")
	}
	seen := make(map[string]bool, len(s.Years))
	for _, y := range s.Years {
		if y == "" {
			return fmt.Errorf("schema declares an empty year column")
		}
		if seen[y] {
			return fmt.Errorf("schema declares year %q twice", y)
		}
		seen[y] = true
	}
	switch s.Match {
	case MatchName:
		for _, ind := range indicator.All {
			if s.SeriesNames[ind] == "" {
				return fmt.Errorf("no series name for indicator %s", ind)
			}
		}
	case MatchPosition:
	default:
		return fmt.Errorf("unknown match mode %q", s.Match)
	}
	return nil
}

// Option adjusts the Schema used by Load.
type Option func(*Schema)

// WithYears sets the declared year columns.
func WithYears(years ...string) Option {
	return func(s *Schema) {
		s.Years = append([]string(nil), years...)
	}
}

// WithMissingToken sets the token that marks an absent value.
func WithMissingToken(token string) Option {
	return func(s *Schema) {
		s.MissingToken = token
	}
}

// WithDelimiter sets the field delimiter for delimited text sources.
func WithDelimiter(delimiter rune) Option {
	return func(s *Schema) {
		s.Delimiter = delimiter
	}
}

// WithMatch sets how rows are assigned to indicators.
func WithMatch(mode MatchMode) Option {
	return func(s *Schema) {
		s.Match = mode
	}
}

// WithSeriesName overrides the series name matched for one indicator.
func WithSeriesName(ind indicator.Indicator, name string) Option {
	return func(s *Schema) {
		if s.SeriesNames == nil {
			s.SeriesNames = make(map[indicator.Indicator]string)
		}
		s.SeriesNames[ind] = name
	}
}
