package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ReadRuns returns every run, newest first, with its chart count.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ReadRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.started_at, r.finished_at, r.input_path, r.input_sha256,
		       r.output_dir, r.countries, r.status, COUNT(c.seq)
		FROM runs r
		LEFT JOIN charts c ON c.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC, r.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.started_at, r.finished_at, r.input_path, r.input_sha256,
		       r.output_dir, r.countries, r.status, COUNT(c.seq)
		FROM runs r
		LEFT JOIN charts c ON c.run_id = r.id
		WHERE r.id = ?
		GROUP BY r.id
	`, id)
	return scanRun(row)
}

// ReadCharts returns the charts of a run in render order.
//
// Returns an empty slice (not nil) if the run wrote no charts.
func (s *Store) ReadCharts(ctx context.Context, runID string) ([]Chart, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, kind, country, path, bytes, sha256
		FROM charts
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query charts: %w", err)
	}
	defer rows.Close()

	charts := []Chart{}
	for rows.Next() {
		var c Chart
		if err := rows.Scan(&c.RunID, &c.Seq, &c.Kind, &c.Country, &c.Path, &c.Bytes, &c.SHA256); err != nil {
			return nil, fmt.Errorf("scan chart: %w", err)
		}
		charts = append(charts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate charts: %w", err)
	}
	return charts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run      Run
		started  string
		finished sql.NullString
	)
	if err := sc.Scan(
		&run.ID, &started, &finished, &run.InputPath, &run.InputSHA256,
		&run.OutputDir, &run.Countries, &run.Status, &run.Charts,
	); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	t, err := time.Parse(timeLayout, started)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	run.StartedAt = t

	if finished.Valid {
		ft, err := time.Parse(timeLayout, finished.String)
		if err != nil {
			return Run{}, fmt.Errorf("parse finished_at: %w", err)
		}
		run.FinishedAt = &ft
	}
	return run, nil
}
