// Package table loads the wide-format indicator table and extracts
// per-country indicator records from it.
//
// The source layout is one row per (country, series) pair followed by one
// column per year label:
//
//	country, country_code, series, series_code, 1960, 1965, ..., 2024
//
// The first line of the source is always skipped and the column names
// above are applied instead. Cells equal to the missing-value token (".."
// by default) or empty are absent. The code columns are dropped at load
// time; the series column is kept so that Extract can assign rows to
// indicators by name.
//
// Supported sources are delimited text (.csv, .txt), .xlsx and .xls. For
// spreadsheets the first sheet is read.
package table
