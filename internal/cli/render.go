package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/popcharts/internal/report"
	"github.com/roach88/popcharts/internal/store"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Config   string
	Input    string
	Output   string
	Manifest string
	Country  string

	// RunIDs allows overriding the manifest run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs report.RunIDGenerator
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every chart",
		Long: `Load the population table and render every configured chart as PNG.

The output directory must already exist. Existing files are overwritten.
With --manifest the run and each chart written are logged to a SQLite
database, created if it doesn't exist.

Example:
  popcharts render
  popcharts render --config report.yaml --out ./images
  popcharts render --country Japan --manifest ./runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "YAML config file (defaults built in)")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input table, overrides config")
	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "output directory, overrides config")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "SQLite run manifest (optional)")
	cmd.Flags().StringVar(&opts.Country, "country", "", "render only this country's charts")

	return cmd
}

func runRender(opts *RenderOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return fail(formatter, err)
	}
	if opts.Input != "" {
		cfg.Input = opts.Input
	}
	if opts.Output != "" {
		cfg.OutputDir = opts.Output
	}
	if !dirExists(cfg.OutputDir) {
		return failPath(formatter, "output directory", cfg.OutputDir)
	}

	runOpts := []report.Option{
		report.WithLogger(logger),
		report.WithRunIDGenerator(opts.RunIDs),
	}
	if opts.Manifest != "" {
		logger.Debug("opening manifest", "path", opts.Manifest)
		st, err := store.Open(opts.Manifest)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open manifest", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing manifest", "error", closeErr)
			}
		}()
		runOpts = append(runOpts, report.WithRecorder(st))
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := report.New(cfg, runOpts...)
	var sum *report.Summary
	if opts.Country != "" {
		sum, err = runner.RunCountry(ctx, opts.Country)
	} else {
		sum, err = runner.Run(ctx)
	}
	if err != nil {
		logger.Error("render failed", slog.Any("error", err))
		return fail(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.SuccessRun(sum.RunID, sum)
	}
	msg := fmt.Sprintf("Wrote %d charts to %s", len(sum.Charts), sum.OutputDir)
	if sum.RunID != "" {
		msg += fmt.Sprintf(" (run %s)", sum.RunID)
	}
	return formatter.Success(msg)
}
