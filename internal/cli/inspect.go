package cli

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/popcharts/internal/indicator"
	"github.com/roach88/popcharts/internal/table"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Config string
	Input  string
	Dump   bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <country>",
		Short: "Print one country's indicators",
		Long: `Load the table and print the five indicator series of one country,
one row per year. Absent values print as "..".

Example:
  popcharts inspect Japan
  popcharts inspect "United States" --dump`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "YAML config file (defaults built in)")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input table, overrides config")
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "print a Go value dump of the extracted record")

	return cmd
}

// InspectResult is the JSON form of one country's record. Absent values
// are null.
type InspectResult struct {
	Country    string               `json:"country"`
	Years      []string             `json:"years"`
	Indicators []InspectedIndicator `json:"indicators"`
}

// InspectedIndicator is one series of an InspectResult.
type InspectedIndicator struct {
	Key    indicator.Indicator `json:"key"`
	Values []*float64          `json:"values"`
}

var dumper = spew.ConfigState{Indent: "  ", DisableMethods: true, DisablePointerAddresses: true, SortKeys: true}

func runInspect(opts *InspectOptions, country string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return fail(formatter, err)
	}
	if opts.Input != "" {
		cfg.Input = opts.Input
	}
	if !fileExists(cfg.Input) {
		return failPath(formatter, "input", cfg.Input)
	}

	t, err := table.Load(cfg.Input, cfg.TableOptions()...)
	if err != nil {
		return fail(formatter, err)
	}
	formatter.VerboseLog("loaded %d rows from %s", t.Nrow(), t.Path())

	cs, err := t.Extract(country)
	if err != nil {
		return fail(formatter, err)
	}

	if opts.Dump {
		dumper.Fdump(formatter.Writer, cs)
		return nil
	}
	if formatter.Format == "json" {
		return formatter.Success(inspectResult(cs, t.Years()))
	}
	return writeIndicators(formatter.Writer, cs, t.Years())
}

func inspectResult(cs *indicator.CountrySeries, years []string) InspectResult {
	res := InspectResult{Country: cs.Country, Years: years}
	for _, ind := range indicator.All {
		s := cs.Get(ind)
		ii := InspectedIndicator{Key: ind, Values: make([]*float64, len(s.Values))}
		for i, v := range s.Values {
			if !math.IsNaN(v) {
				ii.Values[i] = &v
			}
		}
		res.Indicators = append(res.Indicators, ii)
	}
	return res
}

// writeIndicators prints a year-by-indicator grid with English digit
// grouping.
func writeIndicators(w io.Writer, cs *indicator.CountrySeries, years []string) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(w, cs.Country)
	fmt.Fprint(tw, "year\t")
	for _, ind := range indicator.All {
		fmt.Fprintf(tw, "%s\t", ind)
	}
	fmt.Fprintln(tw)

	for i, year := range years {
		fmt.Fprintf(tw, "%s\t", year)
		for _, ind := range indicator.All {
			v := cs.Get(ind).Values[i]
			switch {
			case math.IsNaN(v):
				fmt.Fprint(tw, "..\t")
			case ind == indicator.Over65 || ind == indicator.Total:
				fmt.Fprint(tw, p.Sprintf("%.0f", v)+"\t")
			default:
				fmt.Fprint(tw, p.Sprintf("%.2f", v)+"\t")
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
