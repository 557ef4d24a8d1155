package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apotema/pzspec/pkg/runner"
)

// Save writes a run summary and its failures to the configured JSON
// output file.
func (s *JSONStorage) Save(sum runner.Summary, failures []Failure) error {
	output := RunOutput{
		Meta: RunMeta{
			TotalTests:      sum.Total(),
			PassedTests:     sum.Passed,
			FailedTests:     sum.Failed,
			Duration:        sum.Duration.String(),
			DurationSeconds: sum.Duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}
	return s.SaveOutput(&output)
}

// Load reads the last test results from the configured JSON output file.
func (s *JSONStorage) Load() (*RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *RunOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
