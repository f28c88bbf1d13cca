package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/roach88/popcharts/internal/chart"
	"github.com/roach88/popcharts/internal/config"
	"github.com/roach88/popcharts/internal/indicator"
	"github.com/roach88/popcharts/internal/store"
	"github.com/roach88/popcharts/internal/table"
)

// Recorder logs runs and the charts they write. *store.Store implements it.
type Recorder interface {
	WriteRun(ctx context.Context, run store.Run) error
	WriteChart(ctx context.Context, c store.Chart) error
	FinishRun(ctx context.Context, runID, status string, finishedAt time.Time) error
}

// Clock supplies manifest timestamps.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Option configures a Runner.
type Option func(*Runner)

// WithRecorder records every run in the manifest.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithRunIDGenerator overrides the UUIDv7 run ID generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(r *Runner) {
		if g != nil {
			r.ids = g
		}
	}
}

// WithClock overrides the wall clock used for manifest timestamps.
func WithClock(c Clock) Option {
	return func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// Runner executes a planned report.
type Runner struct {
	cfg      *config.Config
	renderer *chart.Renderer
	recorder Recorder
	ids      RunIDGenerator
	clock    Clock
	log      *slog.Logger
}

// New creates a Runner for cfg. The configuration is assumed valid.
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		renderer: cfg.Renderer(),
		ids:      UUIDv7Generator{},
		clock:    wallClock{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Written describes one chart file produced by a run.
type Written struct {
	Seq     int    `json:"seq"`
	Kind    Kind   `json:"kind"`
	Country string `json:"country,omitempty"`
	Path    string `json:"path"`
	Bytes   int64  `json:"bytes"`
	SHA256  string `json:"sha256"`
}

// Summary is the outcome of a run. On failure it holds the charts written
// before the error.
type Summary struct {
	RunID     string    `json:"run_id,omitempty"`
	Input     string    `json:"input"`
	OutputDir string    `json:"output_dir"`
	Charts    []Written `json:"charts"`
}

// Run renders the full report: every per-country chart, then the summaries.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	return r.execute(ctx, r.cfg.Countries, Plan(r.cfg))
}

// RunCountry renders the three per-country charts for one configured
// country.
func (r *Runner) RunCountry(ctx context.Context, name string) (*Summary, error) {
	plan, err := PlanCountry(r.cfg, name)
	if err != nil {
		return nil, err
	}
	for _, c := range r.cfg.Countries {
		if c.Name == name {
			return r.execute(ctx, []config.Country{c}, plan)
		}
	}
	return nil, &config.Error{Message: fmt.Sprintf("country %q is not configured", name)}
}

func (r *Runner) execute(ctx context.Context, countries []config.Country, plan []Chart) (sum *Summary, err error) {
	t, err := table.Load(r.cfg.Input, r.cfg.TableOptions()...)
	if err != nil {
		return nil, err
	}
	r.log.Info("table loaded",
		"path", t.Path(),
		"rows", t.Nrow(),
		"countries", len(t.Countries()),
	)

	// Every country is extracted before the first chart is written.
	data := make(map[string]*indicator.CountrySeries, len(countries))
	for _, c := range countries {
		cs, err := t.Extract(c.Name)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", c.Name, err)
		}
		data[c.Name] = cs
		r.log.Debug("country extracted", "country", c.Name)
	}

	sum = &Summary{Input: r.cfg.Input, OutputDir: r.cfg.OutputDir}

	if r.recorder != nil {
		id, serr := r.startRun(ctx, len(countries))
		if serr != nil {
			return nil, serr
		}
		sum.RunID = id
		defer func() {
			status := store.StatusOK
			if err != nil {
				status = store.StatusFailed
			}
			ferr := r.recorder.FinishRun(context.WithoutCancel(ctx), id, status, r.clock.Now())
			if ferr != nil && err == nil {
				err = fmt.Errorf("finish run %s: %w", id, ferr)
			}
		}()
	}

	for _, ch := range plan {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		spec, err := r.buildSpec(ch, t.Years(), data)
		if err != nil {
			return sum, fmt.Errorf("chart %s: %w", ch.File, err)
		}
		res, err := r.renderer.Render(spec, ch.Path(r.cfg.OutputDir))
		if err != nil {
			return sum, fmt.Errorf("chart %s: %w", ch.File, err)
		}

		w := Written{
			Seq:     ch.Seq,
			Kind:    ch.Kind,
			Country: ch.Country,
			Path:    res.Path,
			Bytes:   res.Bytes,
			SHA256:  res.SHA256,
		}
		sum.Charts = append(sum.Charts, w)
		r.log.Info("chart written", "file", res.Path, "bytes", res.Bytes)

		if r.recorder != nil {
			if err := r.recorder.WriteChart(ctx, store.Chart{
				RunID:   sum.RunID,
				Seq:     w.Seq,
				Kind:    string(w.Kind),
				Country: w.Country,
				Path:    w.Path,
				Bytes:   w.Bytes,
				SHA256:  w.SHA256,
			}); err != nil {
				return sum, fmt.Errorf("record chart %s: %w", ch.File, err)
			}
		}
	}

	r.log.Info("report complete", "charts", len(sum.Charts), "output_dir", r.cfg.OutputDir)
	return sum, nil
}

func (r *Runner) startRun(ctx context.Context, countries int) (string, error) {
	digest, err := fileSHA256(r.cfg.Input)
	if err != nil {
		return "", fmt.Errorf("hash input: %w", err)
	}
	run := store.Run{
		ID:          r.ids.Generate(),
		StartedAt:   r.clock.Now(),
		InputPath:   r.cfg.Input,
		InputSHA256: digest,
		OutputDir:   r.cfg.OutputDir,
		Countries:   countries,
	}
	if err := r.recorder.WriteRun(ctx, run); err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	r.log.Debug("run recorded", "run_id", run.ID)
	return run.ID, nil
}

// buildSpec resolves a planned chart against the extracted data.
func (r *Runner) buildSpec(ch Chart, years []string, data map[string]*indicator.CountrySeries) (chart.Spec, error) {
	spec := chart.Spec{
		Title:  ch.Title,
		XLabel: XLabel,
		YLabel: ch.YLabel,
		Years:  years,
		Marker: r.cfg.ChartMarker(),
	}
	for _, l := range ch.Lines {
		cs, ok := data[l.Country]
		if !ok {
			return chart.Spec{}, fmt.Errorf("no data for %q", l.Country)
		}
		col, err := chart.ParseColor(l.Color)
		if err != nil {
			return chart.Spec{}, err
		}
		s := cs.Get(l.Indicator)
		if l.Scaled {
			s = indicator.Scale(s)
		}
		spec.Lines = append(spec.Lines, chart.Line{Label: l.Label, Color: col, Series: s})
	}
	return spec, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
