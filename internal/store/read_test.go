package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestReadRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ReadRuns(context.Background())
	if err != nil {
		t.Fatalf("ReadRuns() failed: %v", err)
	}
	if runs == nil || len(runs) != 0 {
		t.Errorf("ReadRuns() = %v, want empty non-nil slice", runs)
	}
}

func TestReadRuns_NewestFirstWithCounts(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	createTestRun(t, s, "run-a", testStart)
	createTestRun(t, s, "run-b", testStart.Add(time.Minute))
	// sub-second start times must still sort correctly
	createTestRun(t, s, "run-c", testStart.Add(time.Minute+500*time.Millisecond))

	for i := 1; i <= 3; i++ {
		if err := s.WriteChart(ctx, createTestChart("run-b", i, fmt.Sprintf("images/%d.png", i))); err != nil {
			t.Fatalf("WriteChart() failed: %v", err)
		}
	}

	runs, err := s.ReadRuns(ctx)
	if err != nil {
		t.Fatalf("ReadRuns() failed: %v", err)
	}

	want := []struct {
		id     string
		charts int
	}{{"run-c", 0}, {"run-b", 3}, {"run-a", 0}}
	if len(runs) != len(want) {
		t.Fatalf("len(runs) = %d, want %d", len(runs), len(want))
	}
	for i, w := range want {
		if runs[i].ID != w.id || runs[i].Charts != w.charts {
			t.Errorf("runs[%d] = (%s, %d), want (%s, %d)", i, runs[i].ID, runs[i].Charts, w.id, w.charts)
		}
	}
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "ghost")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("ReadRun() error = %v, want sql.ErrNoRows", err)
	}
}

func TestReadCharts_Order(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	createTestRun(t, s, "run-1", testStart)

	for _, seq := range []int{3, 1, 2} {
		if err := s.WriteChart(ctx, createTestChart("run-1", seq, fmt.Sprintf("images/%d.png", seq))); err != nil {
			t.Fatalf("WriteChart() failed: %v", err)
		}
	}

	charts, err := s.ReadCharts(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadCharts() failed: %v", err)
	}
	for i, c := range charts {
		if c.Seq != i+1 {
			t.Errorf("charts[%d].Seq = %d, want %d", i, c.Seq, i+1)
		}
	}

	empty, err := s.ReadCharts(ctx, "ghost")
	if err != nil {
		t.Fatalf("ReadCharts() failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("ReadCharts(ghost) = %v, want empty non-nil slice", empty)
	}
}
