package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/popcharts/internal/report"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
	Config string
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "List the charts a render would write",
		Long: `List every chart file and title in render order without reading data.

Text output is one "file<TAB>title" line per chart.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "YAML config file (defaults built in)")

	return cmd
}

func runPlan(opts *PlanOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return fail(formatter, err)
	}

	plan := report.Plan(cfg)
	formatter.VerboseLog("%d countries, %d charts", len(cfg.Countries), len(plan))

	if formatter.Format == "json" {
		return formatter.Success(plan)
	}
	for _, ch := range plan {
		fmt.Fprintf(formatter.Writer, "%s\t%s\n", ch.File, ch.Title)
	}
	return nil
}
