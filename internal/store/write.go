package store

import (
	"context"
	"fmt"
	"time"
)

// timeLayout keeps a fixed fraction width so stored timestamps sort
// lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// WriteRun inserts a run record with status "running".
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, started_at, input_path, input_sha256, output_dir, countries, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.InputPath,
		run.InputSHA256,
		run.OutputDir,
		run.Countries,
		StatusRunning,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteChart records a written chart. The run must exist.
// Writing the same (run_id, seq) twice replaces the earlier row.
func (s *Store) WriteChart(ctx context.Context, c Chart) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO charts
		(run_id, seq, kind, country, path, bytes, sha256)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO UPDATE SET
			kind = excluded.kind,
			country = excluded.country,
			path = excluded.path,
			bytes = excluded.bytes,
			sha256 = excluded.sha256
	`,
		c.RunID,
		c.Seq,
		c.Kind,
		c.Country,
		c.Path,
		c.Bytes,
		c.SHA256,
	)
	if err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

// FinishRun sets the final status and finish time of a run.
func (s *Store) FinishRun(ctx context.Context, runID, status string, finishedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, finished_at = ? WHERE id = ?
	`, status, finishedAt.UTC().Format(timeLayout), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run: run %q not found", runID)
	}
	return nil
}
