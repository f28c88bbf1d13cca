package testutil

// FixedRunIDGenerator returns the same run ID every time.
//
// This makes manifest rows and golden output deterministic across test runs.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a generator that always returns id.
// If id is empty, Generate() returns "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run ID.
//
// Implements report.RunIDGenerator.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}
