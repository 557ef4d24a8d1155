package storage

import (
	"github.com/apotema/pzspec/internal/config"
	"github.com/apotema/pzspec/pkg/runner"
)

// RunMeta contains metadata about a test run
type RunMeta struct {
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// Failure records one failed test with its registration site.
type Failure struct {
	TestName string `json:"test_name"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
	Resolved bool   `json:"resolved,omitempty"` // toggled from the failures viewer
}

// RunOutput is the complete persisted result of one run
type RunOutput struct {
	Meta    RunMeta   `json:"meta"`
	Details []Failure `json:"details"`
}

// Storage persists and loads test run results (e.g. for the failures viewer).
type Storage interface {
	Save(sum runner.Summary, failures []Failure) error
	Load() (*RunOutput, error)
	// SaveOutput writes the full output (e.g. after resolve toggles).
	SaveOutput(output *RunOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
