// Package probe generates synthetic medal datasets and verifies a running
// dashboard server against the dashboard invariants.
package probe

import "time"

// Output formats for generated datasets.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// GenerateConfig holds configuration for dataset generation.
type GenerateConfig struct {
	Path    string // Output file
	Format  string // csv or sqlite
	Table   string // SQLite table name
	Rows    int    // Athlete rows to generate, with and without medals
	Sports  int    // Number of distinct sports, capped at the built-in list
	Seed    uint64 // Random seed; the same seed yields the same dataset
	Workers int    // Concurrent row generators
}

// VerifyConfig holds configuration for server verification.
type VerifyConfig struct {
	BaseURL  string        // Base URL of the service
	Timeout  time.Duration // HTTP request timeout
	Workers  int           // Concurrent sport checks
	DataPath string        // Optional local dataset to compare against
	Source   string        // Local dataset source: csv or sqlite
	Table    string        // Local SQLite table
	Selector bool          // Also exercise the selector transition
}

// Sports mirrors GET /api/sports.
type Sports struct {
	Options  []string `json:"options"`
	Selected string   `json:"selected"`
}

// Failure is one violated check.
type Failure struct {
	Sport  string `json:"sport"`
	Check  string `json:"check"`
	Detail string `json:"detail"`
}

// Report holds verification results.
type Report struct {
	BaseURL   string        `json:"baseUrl"`
	Options   int           `json:"options"`
	Checked   int           `json:"checked"`
	Empty     int           `json:"empty"`
	Compared  bool          `json:"compared"`
	Failures  []Failure     `json:"failures"`
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}
