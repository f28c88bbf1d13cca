package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/popcharts/internal/testutil"
)

func TestScale_DividesPresentValues(t *testing.T) {
	s := NewSeries("over65", []string{"1960", "2020"}, []float64{30_000_000, 180_000_000})

	scaled := Scale(s)

	require.Equal(t, s.Years, scaled.Years)
	for i, year := range s.Years {
		assert.Equal(t, s.Values[i]/Million, scaled.Values[i], "year %s", year)
	}
	assert.Equal(t, 30.0, scaled.Values[0])
	assert.Equal(t, 180.0, scaled.Values[1])
}

func TestScale_AbsentStaysAbsent(t *testing.T) {
	s := NewSeries("total", []string{"1960", "1965", "1970"}, []float64{1e6, math.NaN(), 3e6})

	scaled := Scale(s)

	assert.Equal(t, 1.0, scaled.Values[0])
	assert.True(t, math.IsNaN(scaled.Values[1]))
	assert.Equal(t, 3.0, scaled.Values[2])
	assert.Equal(t, 2, testutil.Present(scaled.Values))
}

func TestScale_DoesNotMutateInput(t *testing.T) {
	s := NewSeries("total", []string{"1960"}, []float64{5e6})

	_ = Scale(s)

	assert.Equal(t, 5e6, s.Values[0])
}

func TestNewSeries_PadsMissingValues(t *testing.T) {
	s := NewSeries("birth", []string{"1960", "1965"}, []float64{20})

	require.Len(t, s.Values, 2)
	assert.Equal(t, 20.0, s.Values[0])
	assert.True(t, math.IsNaN(s.Values[1]))
	assert.Equal(t, 1, testutil.Present(s.Values))
}

func TestCountrySeries_RowsFixedOrder(t *testing.T) {
	years := []string{"1960"}
	cs := &CountrySeries{Country: "Japan"}
	for i, ind := range All {
		cs.Set(ind, NewSeries(ind.String(), years, []float64{float64(i)}))
	}

	rows := cs.Rows()

	require.Len(t, rows, 5)
	for i, row := range rows {
		assert.Equal(t, All[i].String(), row.Name)
		assert.Equal(t, float64(i), row.Values[0])
	}
}

func TestParse(t *testing.T) {
	for _, ind := range All {
		got, err := Parse(ind.String())
		require.NoError(t, err)
		assert.Equal(t, ind, got)
	}

	_, err := Parse("fertility")
	assert.Error(t, err)
	assert.Equal(t, "indicator(9)", Indicator(9).String())
}

func TestIndicator_MarshalText(t *testing.T) {
	for _, ind := range All {
		text, err := ind.MarshalText()
		require.NoError(t, err)
		back, err := Parse(string(text))
		require.NoError(t, err)
		assert.Equal(t, ind, back)
	}
}
