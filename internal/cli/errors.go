package cli

import (
	"fmt"
	"os"

	"github.com/roach88/popcharts/internal/chart"
	"github.com/roach88/popcharts/internal/config"
	"github.com/roach88/popcharts/internal/table"
)

// Error codes for CLI output.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeLoadFailed  = "E004" // Table could not be loaded
	ErrCodeNotFound    = "E005" // Country, path or run not found
	ErrCodeWriteFailed = "E007" // Chart file write error
	ErrCodeConfig      = "E008" // Invalid configuration
)

// classify maps a pipeline error to its CLI error code and exit code.
func classify(err error) (string, int) {
	switch {
	case config.IsConfigError(err):
		return ErrCodeConfig, ExitCommandError
	case table.IsLoadError(err):
		return ErrCodeLoadFailed, ExitFailure
	case table.IsNotFound(err):
		return ErrCodeNotFound, ExitFailure
	case chart.IsRenderError(err):
		return ErrCodeWriteFailed, ExitFailure
	}
	return ErrCodeGeneric, ExitFailure
}

// fail reports err through the formatter and returns the matching ExitError.
func fail(f *OutputFormatter, err error) error {
	code, exit := classify(err)
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(exit, code, err)
}

// failPath reports a missing path as a command error.
func failPath(f *OutputFormatter, what, path string) error {
	msg := fmt.Sprintf("%s not found: %s", what, path)
	_ = f.Error(ErrCodeNotFound, msg, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeNotFound, msg))
}

// loadConfig reads the config file, or returns the defaults when path is
// empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
