package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/popcharts/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Manifest string
	Run      string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded render runs",
		Long: `List the runs recorded in a manifest, newest first.
With --run, list the charts that run wrote.

Example:
  popcharts runs --manifest ./runs.db
  popcharts runs --manifest ./runs.db --run 0190d6c4-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "SQLite run manifest (required)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show the charts of one run")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

// RunDetail is one run with its charts.
type RunDetail struct {
	Run    store.Run     `json:"run"`
	Charts []store.Chart `json:"charts"`
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	// Don't create an empty manifest just to list it
	if !fileExists(opts.Manifest) {
		return failPath(formatter, "manifest", opts.Manifest)
	}
	st, err := store.Open(opts.Manifest)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open manifest", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if opts.Run != "" {
		run, err := st.ReadRun(ctx, opts.Run)
		if errors.Is(err, sql.ErrNoRows) {
			return failPath(formatter, "run", opts.Run)
		}
		if err != nil {
			return fail(formatter, err)
		}
		charts, err := st.ReadCharts(ctx, opts.Run)
		if err != nil {
			return fail(formatter, err)
		}
		if formatter.Format == "json" {
			return formatter.SuccessRun(run.ID, RunDetail{Run: run, Charts: charts})
		}
		fmt.Fprintf(formatter.Writer, "run %s %s (%d charts)\n", run.ID, run.Status, len(charts))
		for _, c := range charts {
			fmt.Fprintf(formatter.Writer, "%d\t%s\t%d\t%s\n", c.Seq, c.Path, c.Bytes, short(c.SHA256))
		}
		return nil
	}

	runs, err := st.ReadRuns(ctx)
	if err != nil {
		return fail(formatter, err)
	}
	if formatter.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		return formatter.Success("No runs recorded")
	}
	for _, r := range runs {
		fmt.Fprintf(formatter.Writer, "%s\t%s\t%s\t%d\n",
			r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.Status, r.Charts)
	}
	return nil
}

func short(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
