// Package store provides the SQLite-backed run manifest.
//
// Every render run is recorded with the input it read and every chart file
// it wrote, so a later run can tell which images are stale and what
// produced them:
//   - Runs: one row per invocation of the report driver
//   - Charts: one row per written image, ordered by seq within a run
//
// # Ordering
//
// Charts are ordered by (run_id, seq); seq is assigned by the driver in
// render order. Runs are listed newest first by started_at, then id.
//
// # Database Configuration
//
//   - WAL mode: readers do not block the writer
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: charts must reference an existing run
package store
