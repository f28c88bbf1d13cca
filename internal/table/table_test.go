package table

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/roach88/popcharts/internal/testutil"
)

func loadWorld(t *testing.T, opts ...Option) *Table {
	t.Helper()
	path := testutil.WriteWorldCSV(t, filepath.Join(t.TempDir(), "world.csv"))
	tbl, err := Load(path, opts...)
	require.NoError(t, err)
	return tbl
}

func TestLoad_DropsCodeColumns(t *testing.T) {
	tbl := loadWorld(t)

	cols := tbl.Columns()
	assert.Equal(t, append([]string{ColCountry, ColSeries}, DefaultYears...), cols)
	assert.Equal(t, len(testutil.TopTen)*RowsPerCountry, tbl.Nrow())
	assert.Equal(t, testutil.TopTen, tbl.Countries())
}

func TestLoad_Idempotent(t *testing.T) {
	path := testutil.WriteWorldCSV(t, filepath.Join(t.TempDir(), "world.csv"))

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, first.df.Records(), second.df.Records())
}

func TestLoad_MissingTokenIsAbsent(t *testing.T) {
	dir := t.TempDir()
	rows := testutil.IndicatorRows("Japan", 0, DefaultYears)
	rows[0].Cells[1] = ".."
	rows[4].Cells[2] = ""
	path := filepath.Join(dir, "japan.csv")
	testutil.WriteCSV(t, path, DefaultYears, rows)

	tbl, err := Load(path)
	require.NoError(t, err)
	cs, err := tbl.Extract("Japan")
	require.NoError(t, err)

	assert.True(t, math.IsNaN(cs.Birth.Values[1]))
	assert.True(t, math.IsNaN(cs.Total.Values[2]))
	assert.Equal(t, len(DefaultYears)-1, testutil.Present(cs.Birth.Values))
}

func TestLoad_CustomMissingToken(t *testing.T) {
	dir := t.TempDir()
	rows := testutil.IndicatorRows("Japan", 0, DefaultYears)
	rows[0].Cells[0] = "n/a"
	path := filepath.Join(dir, "japan.csv")
	testutil.WriteCSV(t, path, DefaultYears, rows)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, IsLoadError(err))

	tbl, err := Load(path, WithMissingToken("n/a"))
	require.NoError(t, err)
	cs, err := tbl.Extract("Japan")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(cs.Birth.Values[0]))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		return p
	}

	tests := []struct {
		name     string
		path     string
		opts     []Option
		contains string
	}{
		{
			name:     "missing file",
			path:     filepath.Join(dir, "nope.csv"),
			contains: "file not found",
		},
		{
			name:     "directory",
			path:     dir,
			contains: "is a directory",
		},
		{
			name:     "header only",
			path:     writeFile("header.csv", "a,b,c,d,1960\n"),
			opts:     []Option{WithYears("1960")},
			contains: "no data rows",
		},
		{
			name:     "column count mismatch",
			path:     writeFile("short.csv", "a,b,c,d,1960,1965\nJapan,JPN,s,S,1\n"),
			opts:     []Option{WithYears("1960", "1965")},
			contains: "expected 6 columns, found 5",
		},
		{
			name:     "not a number",
			path:     writeFile("nan.csv", "a,b,c,d,1960\nJapan,JPN,s,S,abc\n"),
			opts:     []Option{WithYears("1960")},
			contains: `column 1960: value "abc" is not a number`,
		},
		{
			name:     "bad quoting",
			path:     writeFile("quote.csv", "a,b,c,d,1960\n\"Japan,JPN,s,S,1\n"),
			opts:     []Option{WithYears("1960")},
			contains: "malformed delimited text",
		},
		{
			name:     "invalid schema",
			path:     writeFile("ok.csv", "a,b,c,d,1960\nJapan,JPN,s,S,1\n"),
			opts:     []Option{WithYears()},
			contains: "invalid schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, tt.opts...)
			require.Error(t, err)
			assert.True(t, IsLoadError(err), "expected LoadError, got %T", err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestLoad_ReportsLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	content := "a,b,c,d,1960\nJapan,JPN,s,S,1\nJapan,JPN,s,S,x\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path, WithYears("1960"))
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 3, le.Line)
}

func TestLoad_Delimiter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "semi.txt")
	content := "header\n" +
		"Japan;JPN;Birth rate, crude (per 1,000 people);B;10\n" +
		"Japan;JPN;Death rate, crude (per 1,000 people);D;9\n" +
		"Japan;JPN;Population ages 65 and above, total;O;..\n" +
		"Japan;JPN;Population growth (annual %);G;0.1\n" +
		"Japan;JPN;Population, total;T;1000000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tbl, err := Load(path, WithYears("2024"), WithDelimiter(';'))
	require.NoError(t, err)
	cs, err := tbl.Extract("Japan")
	require.NoError(t, err)

	assert.Equal(t, 10.0, cs.Birth.Values[0])
	assert.Equal(t, 9.0, cs.Death.Values[0])
	assert.Equal(t, 0, testutil.Present(cs.Over65.Values))
	assert.Equal(t, 0.1, cs.Growth.Values[0])
	assert.Equal(t, 1e6, cs.Total.Values[0])
}

func TestLoad_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.xlsx")
	years := []string{"1960", "2020"}

	f := excelize.NewFile()
	header := []interface{}{"Country Name", "Country Code", "Series Name", "Series Code", "1960", "2020"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, r := range testutil.IndicatorRows("Brazil", 8, years) {
		row := []interface{}{r.Country, r.Code, r.Series, r.SeriesCode, r.Cells[0], r.Cells[1]}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := Load(path, WithYears(years...))
	require.NoError(t, err)

	cs, err := tbl.Extract("Brazil")
	require.NoError(t, err)
	assert.Equal(t, testutil.SyntheticValue(8, 0, 1), cs.Birth.Values[1])
	assert.Equal(t, testutil.SyntheticValue(8, 4, 0), cs.Total.Values[0])
}

func TestLoad_XLS(t *testing.T) {
	// Written with ROW records, so each row's last column is one past its
	// final cell. The over-65 row stops after 1960.
	tbl, err := Load(filepath.Join("testdata", "japan.xls"), WithYears("1960", "2020"))
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.Nrow())

	cs, err := tbl.Extract("Japan")
	require.NoError(t, err)
	assert.Equal(t, []float64{17.2, 6.8}, cs.Birth.Values)
	assert.Equal(t, []float64{7.6, 11.1}, cs.Death.Values)
	assert.Equal(t, 5_398_000.0, cs.Over65.Values[0])
	assert.True(t, math.IsNaN(cs.Over65.Values[1]))
	assert.True(t, math.IsNaN(cs.Growth.Values[0]))
	assert.Equal(t, -0.3, cs.Growth.Values[1])
	assert.Equal(t, []float64{93_216_000, 126_261_000}, cs.Total.Values)
}

func TestLoad_XLSXFormattedNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatted.xlsx")

	f := excelize.NewFile()
	header := []interface{}{"Country Name", "Country Code", "Series Name", "Series Code", "2020"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, r := range testutil.IndicatorRows("India", 4, []string{"2020"}) {
		value, err := strconv.ParseFloat(r.Cells[0], 64)
		require.NoError(t, err)
		row := []interface{}{r.Country, r.Code, r.Series, r.SeriesCode, value}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "E2", "E6", thousands))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := Load(path, WithYears("2020"))
	require.NoError(t, err)

	cs, err := tbl.Extract("India")
	require.NoError(t, err)
	assert.Equal(t, testutil.SyntheticValue(4, 4, 0), cs.Total.Values[0])
	assert.Equal(t, testutil.SyntheticValue(4, 2, 0), cs.Over65.Values[0])
	assert.Equal(t, testutil.SyntheticValue(4, 3, 0), cs.Growth.Values[0])
}

func TestNormalizeRow(t *testing.T) {
	tests := []struct {
		name    string
		rec     []string
		ragged  bool
		want    []string
		wantErr bool
	}{
		{
			name: "exact width",
			rec:  []string{" a ", "b", "1"},
			want: []string{"a", "b", "1"},
		},
		{
			name:   "ragged short row is padded",
			rec:    []string{"a", "b"},
			ragged: true,
			want:   []string{"a", "b", ""},
		},
		{
			name:   "ragged trailing empty cells are dropped",
			rec:    []string{"a", "b", "1", "", " "},
			ragged: true,
			want:   []string{"a", "b", "1"},
		},
		{
			name:    "ragged extra value",
			rec:     []string{"a", "b", "1", "2"},
			ragged:  true,
			wantErr: true,
		},
		{
			name:    "delimited short row",
			rec:     []string{"a", "b"},
			wantErr: true,
		},
		{
			name:    "delimited trailing empty cell",
			rec:     []string{"a", "b", "1", ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeRow(tt.rec, 3, tt.ragged)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
