package table

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/roach88/popcharts/internal/indicator"
)

// Extract returns the indicator record for country.
//
// The country must have exactly RowsPerCountry rows. Under MatchName each
// row is assigned by its series name and every indicator must be matched
// exactly once. Under MatchPosition rows are assigned in source order:
// birth, death, over65, growth, total.
func (t *Table) Extract(country string) (*indicator.CountrySeries, error) {
	n := 0
	for _, c := range t.df.Col(ColCountry).Records() {
		if c == country {
			n++
		}
	}
	if n == 0 {
		return nil, &NotFoundError{Country: country}
	}
	if n != RowsPerCountry {
		return nil, &NotFoundError{Country: country, Rows: n}
	}

	sub := t.df.Filter(dataframe.F{
		Colname:    ColCountry,
		Comparator: series.Eq,
		Comparando: country,
	})
	if sub.Err != nil {
		return nil, fmt.Errorf("extract %q: %w", country, sub.Err)
	}
	sub = sub.Drop(ColCountry)
	if sub.Err != nil {
		return nil, fmt.Errorf("extract %q: %w", country, sub.Err)
	}

	names := sub.Col(ColSeries).Records()
	values := make([][]float64, sub.Nrow())
	for i := range values {
		values[i] = make([]float64, len(t.schema.Years))
	}
	for j, year := range t.schema.Years {
		col := sub.Col(year).Float()
		for i, v := range col {
			values[i][j] = v
		}
	}

	order, err := t.assign(country, names)
	if err != nil {
		return nil, err
	}

	cs := &indicator.CountrySeries{Country: country}
	for row, ind := range order {
		cs.Set(ind, indicator.NewSeries(ind.String(), t.schema.Years, values[row]))
	}
	return cs, nil
}

// assign maps each row index to its indicator.
func (t *Table) assign(country string, names []string) ([]indicator.Indicator, error) {
	if t.schema.Match == MatchPosition {
		return append([]indicator.Indicator(nil), indicator.All...), nil
	}

	byName := make(map[string]indicator.Indicator, len(t.schema.SeriesNames))
	for ind, name := range t.schema.SeriesNames {
		byName[name] = ind
	}

	order := make([]indicator.Indicator, len(names))
	seen := make(map[indicator.Indicator]bool, len(names))
	for i, name := range names {
		ind, ok := byName[name]
		if !ok || seen[ind] {
			continue
		}
		seen[ind] = true
		order[i] = ind
	}

	var missing []string
	for _, ind := range indicator.All {
		if !seen[ind] {
			missing = append(missing, ind.String())
		}
	}
	if len(missing) > 0 {
		return nil, &NotFoundError{Country: country, Rows: len(names), Missing: missing}
	}
	return order, nil
}
