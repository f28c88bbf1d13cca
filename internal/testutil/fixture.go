package testutil

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"testing"
)

// TopTen is the default country list in configuration order.
var TopTen = []string{
	"United States", "China", "Germany", "Japan", "India",
	"United Kingdom", "France", "Italy", "Brazil", "Canada",
}

// Years is the default year column list.
var Years = []string{
	"1960", "1965", "1970", "1975", "1980", "1985", "1990", "1995", "2000",
	"2005", "2010", "2015", "2020", "2022", "2023", "2024",
}

// SeriesNames are the World Bank series names in fixed indicator order.
var SeriesNames = []string{
	"Birth rate, crude (per 1,000 people)",
	"Death rate, crude (per 1,000 people)",
	"Population ages 65 and above, total",
	"Population growth (annual %)",
	"Population, total",
}

var seriesCodes = []string{
	"SP.DYN.CBRT.IN", "SP.DYN.CDRT.IN", "SP.POP.65UP.TO", "SP.POP.GROW", "SP.POP.TOTL",
}

// Row is one source line: identifiers plus one cell per year.
type Row struct {
	Country    string
	Code       string
	Series     string
	SeriesCode string
	Cells      []string
}

// IndicatorRows builds the five indicator rows for a country in fixed
// order. Values are synthetic and depend only on the country index and the
// year position.
func IndicatorRows(country string, idx int, years []string) []Row {
	rows := make([]Row, len(SeriesNames))
	for k := range SeriesNames {
		cells := make([]string, len(years))
		for j := range years {
			cells[j] = strconv.FormatFloat(SyntheticValue(idx, k, j), 'f', -1, 64)
		}
		rows[k] = Row{
			Country:    country,
			Code:       strconv.Itoa(idx),
			Series:     SeriesNames[k],
			SeriesCode: seriesCodes[k],
			Cells:      cells,
		}
	}
	return rows
}

// SyntheticValue returns the value IndicatorRows writes for country index
// c, indicator k and year position j.
func SyntheticValue(c, k, j int) float64 {
	switch k {
	case 0:
		return float64(40 - c - j)
	case 1:
		return float64(20 - j/2)
	case 2:
		return float64((c + 1) * (j + 1) * 1_000_000)
	case 3:
		return float64(c) + 0.5
	default:
		return float64((c + 1) * 100_000_000)
	}
}

// WorldRows builds IndicatorRows for every country in order.
func WorldRows(countries []string, years []string) []Row {
	var rows []Row
	for i, c := range countries {
		rows = append(rows, IndicatorRows(c, i, years)...)
	}
	return rows
}

// WriteCSV writes rows under a World Bank style header line to path.
func WriteCSV(t testing.TB, path string, years []string, rows []Row) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Country Name", "Country Code", "Series Name", "Series Code"}
	for _, y := range years {
		header = append(header, y+" [YR"+y+"]")
	}
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, r := range rows {
		rec := append([]string{r.Country, r.Code, r.Series, r.SeriesCode}, r.Cells...)
		if err := w.Write(rec); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush %s: %v", path, err)
	}
}

// WriteWorldCSV writes the ten-country fixture to path and returns it.
func WriteWorldCSV(t testing.TB, path string) string {
	t.Helper()
	WriteCSV(t, path, Years, WorldRows(TopTen, Years))
	return path
}

// Present counts the values that are not NaN.
func Present(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}
