package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

var testStart = time.Date(2024, 2, 11, 9, 0, 0, 0, time.UTC)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun writes a run with minimal required fields.
func createTestRun(t *testing.T, s *Store, id string, started time.Time) Run {
	t.Helper()
	run := Run{
		ID:          id,
		StartedAt:   started,
		InputPath:   "data/worldPopulationData.csv",
		InputSHA256: "input-hash",
		OutputDir:   "images",
		Countries:   10,
	}
	if err := s.WriteRun(context.Background(), run); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	return run
}

// createTestChart builds a chart record for a run.
func createTestChart(runID string, seq int, path string) Chart {
	return Chart{
		RunID:   runID,
		Seq:     seq,
		Kind:    "BirthDeathRate",
		Country: "United States",
		Path:    path,
		Bytes:   1234,
		SHA256:  "chart-hash",
	}
}
