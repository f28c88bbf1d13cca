package table

import (
	"errors"
	"fmt"
	"strings"
)

// LoadError reports a missing, unreadable or malformed source file.
type LoadError struct {
	Path    string
	Line    int // 1-based source line, 0 when not tied to a line
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", loc, e.Message, e.Err)
	}
	return fmt.Sprintf("load %s: %s", loc, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a country that is absent from the table or whose
// rows do not form a complete indicator record.
type NotFoundError struct {
	Country string
	Rows    int      // rows matched for Country
	Missing []string // indicator keys that could not be assigned
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Rows == 0:
		return fmt.Sprintf("country %q not found in table", e.Country)
	case len(e.Missing) > 0:
		return fmt.Sprintf("country %q: missing indicators: %s", e.Country, strings.Join(e.Missing, ", "))
	default:
		return fmt.Sprintf("country %q: expected %d indicator rows, found %d", e.Country, RowsPerCountry, e.Rows)
	}
}

// IsLoadError returns true if err wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// IsNotFound returns true if err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
