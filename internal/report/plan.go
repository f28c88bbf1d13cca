package report

import (
	"fmt"
	"path/filepath"

	"github.com/roach88/popcharts/internal/config"
	"github.com/roach88/popcharts/internal/indicator"
)

// Kind names a chart type. Per-country kinds are also the file name
// suffix; summary kinds are the whole file name stem.
type Kind string

const (
	KindBirthDeath  Kind = "BirthDeathRate"
	KindTotalOver65 Kind = "TotalandOver65"
	KindGrowth      Kind = "GrowthPercent"

	KindSumBirth  Kind = "sumBirthRates"
	KindSumDeath  Kind = "sumDeathRate"
	KindSumOver65 Kind = "sumOver65"
	KindSumGrowth Kind = "sumGrowthPercent"
	KindSumTotal  Kind = "sumTotalPopulation"
)

// XLabel is the x axis label of every chart.
const XLabel = "Year"

// PlannedLine is one line of a planned chart.
type PlannedLine struct {
	Label     string              `json:"label"`
	Color     string              `json:"color"`
	Country   string              `json:"country"`
	Indicator indicator.Indicator `json:"indicator"`
	Scaled    bool                `json:"scaled,omitempty"`
}

// Chart is one planned output file. Country is empty for summary charts.
type Chart struct {
	Seq     int           `json:"seq"`
	Kind    Kind          `json:"kind"`
	Country string        `json:"country,omitempty"`
	File    string        `json:"file"`
	Title   string        `json:"title"`
	YLabel  string        `json:"y_label"`
	Lines   []PlannedLine `json:"lines"`
}

// Summary reports whether the chart overlays all countries.
func (c Chart) Summary() bool {
	return c.Country == ""
}

// Path joins the chart file name onto dir.
func (c Chart) Path(dir string) string {
	return filepath.Join(dir, c.File)
}

type countryChart struct {
	kind   Kind
	title  string
	ylabel string
	lines  []lineDef
}

type lineDef struct {
	label  string
	color  string
	ind    indicator.Indicator
	scaled bool
}

var countryCharts = []countryChart{
	{
		kind:   KindBirthDeath,
		title:  "Birth and Death Rates per 1000",
		ylabel: "Rate/1000",
		lines: []lineDef{
			{label: "Births", color: "darkorange", ind: indicator.Birth},
			{label: "Deaths", color: "blue", ind: indicator.Death},
		},
	},
	{
		kind:   KindTotalOver65,
		title:  "Total Population and Over 65",
		ylabel: "Population in Millions",
		lines: []lineDef{
			{label: "Over 65", color: "black", ind: indicator.Over65, scaled: true},
			{label: "Total", color: "blue", ind: indicator.Total, scaled: true},
		},
	},
	{
		kind:   KindGrowth,
		title:  "Growth in Percent",
		ylabel: "Percent of Growth",
		lines: []lineDef{
			{label: "Growth", color: "black", ind: indicator.Growth},
		},
	},
}

type summaryChart struct {
	kind   Kind
	title  string
	ylabel string
	ind    indicator.Indicator
	scaled bool
}

// Over-65 is overlaid unscaled, so its axis reads plain population.
var summaryCharts = []summaryChart{
	{kind: KindSumBirth, title: "Birth Rates per 1000", ylabel: "Rate/1000", ind: indicator.Birth},
	{kind: KindSumDeath, title: "Death Rates per 1000", ylabel: "Rate/1000", ind: indicator.Death},
	{kind: KindSumOver65, title: "Population over 65", ylabel: "Population", ind: indicator.Over65},
	{kind: KindSumGrowth, title: "Growth in Percent", ylabel: "Percent of Growth", ind: indicator.Growth},
	{kind: KindSumTotal, title: "Total Population", ylabel: "Population in Millions", ind: indicator.Total, scaled: true},
}

// Plan lists every chart the configuration produces, in render order.
// Seq starts at 1.
func Plan(cfg *config.Config) []Chart {
	var out []Chart
	for _, def := range countryCharts {
		for _, c := range cfg.Countries {
			out = append(out, planCountry(def, c))
		}
	}
	out = append(out, planSummaries(cfg)...)
	for i := range out {
		out[i].Seq = i + 1
	}
	return out
}

// PlanCountry lists the three per-country charts for one configured country.
func PlanCountry(cfg *config.Config, name string) ([]Chart, error) {
	for _, c := range cfg.Countries {
		if c.Name != name {
			continue
		}
		out := make([]Chart, 0, len(countryCharts))
		for i, def := range countryCharts {
			ch := planCountry(def, c)
			ch.Seq = i + 1
			out = append(out, ch)
		}
		return out, nil
	}
	return nil, &config.Error{Message: fmt.Sprintf("country %q is not configured", name)}
}

func planCountry(def countryChart, c config.Country) Chart {
	ch := Chart{
		Kind:    def.kind,
		Country: c.Name,
		File:    c.FilePrefix() + string(def.kind) + ".png",
		Title:   fmt.Sprintf("%s (%s)", def.title, c.Name),
		YLabel:  def.ylabel,
	}
	for _, l := range def.lines {
		ch.Lines = append(ch.Lines, PlannedLine{
			Label:     l.label,
			Color:     l.color,
			Country:   c.Name,
			Indicator: l.ind,
			Scaled:    l.scaled,
		})
	}
	return ch
}

func planSummaries(cfg *config.Config) []Chart {
	out := make([]Chart, 0, len(summaryCharts))
	for _, def := range summaryCharts {
		ch := Chart{
			Kind:   def.kind,
			File:   string(def.kind) + ".png",
			Title:  fmt.Sprintf("%s (%s)", def.title, cfg.SummarySuffix),
			YLabel: def.ylabel,
		}
		for _, c := range cfg.Countries {
			ch.Lines = append(ch.Lines, PlannedLine{
				Label:     c.Name,
				Color:     c.Color,
				Country:   c.Name,
				Indicator: def.ind,
				Scaled:    def.scaled,
			})
		}
		out = append(out, ch)
	}
	return out
}
