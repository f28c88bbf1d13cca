package store

import "time"

// Run statuses.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

// Run is one invocation of the report driver.
type Run struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	InputPath   string     `json:"input_path"`
	InputSHA256 string     `json:"input_sha256"`
	OutputDir   string     `json:"output_dir"`
	Countries   int        `json:"countries"`
	Status      string     `json:"status"`
	Charts      int        `json:"charts"` // filled by ReadRuns
}

// Chart is one image file written by a run.
type Chart struct {
	RunID   string `json:"run_id"`
	Seq     int    `json:"seq"`
	Kind    string `json:"kind"`
	Country string `json:"country,omitempty"`
	Path    string `json:"path"`
	Bytes   int64  `json:"bytes"`
	SHA256  string `json:"sha256"`
}
