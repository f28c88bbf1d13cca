package chart

import (
	"errors"
	"fmt"
)

// ErrCanvasClosed is returned when a closed Canvas is used.
var ErrCanvasClosed = errors.New("chart: canvas closed")

// RenderError reports a chart that could not be drawn or written.
type RenderError struct {
	Path string
	Op   string // "draw", "encode", "create", "write" or "close"
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// IsRenderError returns true if err wraps a *RenderError.
func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}
