package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is the loaded indicator table. It is read-only after Load.
type Table struct {
	path   string
	schema Schema
	df     dataframe.DataFrame
}

// Load reads the table at path. The first line is skipped and the schema's
// column names are applied. Loading the same file twice yields equal tables.
func Load(path string, opts ...Option) (*Table, error) {
	schema := DefaultSchema()
	for _, opt := range opts {
		opt(&schema)
	}
	if err := schema.validate(); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid schema", Err: err}
	}

	src, err := readSource(path, schema.Delimiter)
	if err != nil {
		return nil, err
	}
	if len(src.records) < 2 {
		return nil, &LoadError{Path: path, Message: "no data rows"}
	}

	columns := schema.Columns()
	records := make([][]string, 0, len(src.records))
	records = append(records, columns)
	for i, rec := range src.records[1:] {
		line := i + 2
		row, err := normalizeRow(rec, len(columns), src.ragged)
		if err != nil {
			return nil, &LoadError{Path: path, Line: line, Message: err.Error()}
		}
		for j, cell := range row[4:] {
			if isMissing(cell, schema.MissingToken) {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				return nil, &LoadError{
					Path:    path,
					Line:    line,
					Message: fmt.Sprintf("column %s: value %q is not a number", schema.Years[j], cell),
				}
			}
		}
		records = append(records, row)
	}

	types := map[string]series.Type{
		ColCountry:     series.String,
		ColCountryCode: series.String,
		ColSeries:      series.String,
		ColSeriesCode:  series.String,
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.Float),
		dataframe.WithTypes(types),
		dataframe.NaNValues([]string{schema.MissingToken, ""}),
	)
	if df.Err != nil {
		return nil, &LoadError{Path: path, Message: "cannot build table", Err: df.Err}
	}

	df = df.Drop([]string{ColCountryCode, ColSeriesCode})
	if df.Err != nil {
		return nil, &LoadError{Path: path, Message: "cannot drop code columns", Err: df.Err}
	}

	return &Table{path: path, schema: schema, df: df}, nil
}

// normalizeRow trims every cell and checks the column count. Ragged rows
// from spreadsheets lose trailing empty cells and are then padded with
// empty (absent) cells.
func normalizeRow(rec []string, width int, ragged bool) ([]string, error) {
	if ragged {
		rec = trimTrailingEmpty(rec)
	}
	if len(rec) > width || (len(rec) < width && !ragged) {
		return nil, fmt.Errorf("expected %d columns, found %d", width, len(rec))
	}
	row := make([]string, width)
	for i, cell := range rec {
		row[i] = strings.TrimSpace(cell)
	}
	return row, nil
}

func isMissing(cell, token string) bool {
	return cell == "" || cell == token
}

// Path returns the file the table was loaded from.
func (t *Table) Path() string {
	return t.path
}

// Years returns the year labels in column order.
func (t *Table) Years() []string {
	return append([]string(nil), t.schema.Years...)
}

// Nrow returns the number of data rows.
func (t *Table) Nrow() int {
	return t.df.Nrow()
}

// Columns returns the retained column names.
func (t *Table) Columns() []string {
	return t.df.Names()
}

// Countries returns the distinct country names in source order.
func (t *Table) Countries() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range t.df.Col(ColCountry).Records() {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
