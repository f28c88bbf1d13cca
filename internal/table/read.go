package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anrid/xls"
	"github.com/xuri/excelize/v2"
)

// source is the raw cell grid read from a file, first line included.
type source struct {
	records [][]string
	// ragged is true when trailing empty cells may have been trimmed by
	// the reader, so short rows are padded rather than rejected.
	ragged bool
}

// readSource dispatches on the file extension.
func readSource(path string, delimiter rune) (*source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Path: path, Message: "file not found", Err: err}
		}
		return nil, &LoadError{Path: path, Message: "cannot access file", Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Message: "is a directory"}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".xls":
		return readXLS(path)
	default:
		return readDelimited(path, delimiter)
	}
}

func readDelimited(path string, delimiter rune) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot open file", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1 // column counts are checked against the schema

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &LoadError{Path: path, Line: line, Message: "malformed delimited text", Err: err}
		}
		records = append(records, rec)
	}
	return &source{records: records}, nil
}

func readXLSX(path string) (*source, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot open workbook", Err: err}
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Path: path, Message: "workbook has no sheets"}
	}

	rows, err := wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("cannot read sheet %q", sheets[0]), Err: err}
	}
	return &source{records: dropBlankRows(rows), ragged: true}, nil
}

func readXLS(path string) (*source, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot open workbook", Err: err}
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, &LoadError{Path: path, Message: "workbook has no sheets"}
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		// LastCol is one past the last cell when the file carries ROW
		// records and the last cell itself otherwise.
		var cols []string
		for j := 0; j <= row.LastCol(); j++ {
			cols = append(cols, row.Col(j))
		}
		rows = append(rows, cols)
	}
	return &source{records: dropBlankRows(rows), ragged: true}, nil
}

// trimTrailingEmpty drops empty cells from the end of a spreadsheet row.
func trimTrailingEmpty(cols []string) []string {
	n := len(cols)
	for n > 0 && strings.TrimSpace(cols[n-1]) == "" {
		n--
	}
	return cols[:n]
}

// dropBlankRows removes rows whose cells are all empty, matching the
// delimited reader which skips empty lines.
func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}
