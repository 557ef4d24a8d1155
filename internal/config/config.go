package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	SnapshotDir    string
	HistoryDBFile  string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags after parsing. The core never parses
// CLI syntax itself; commands translate these into a selection.Spec.
type Flags struct {
	Target          string // file:line argument
	Pattern         string
	Regex           bool
	Tags            string
	ExcludeTags     string
	FailFast        bool
	UpdateSnapshots bool
	Quiet           bool
}

// fileConfig mirrors the optional pzspec.yaml.
type fileConfig struct {
	ProjectPath string `yaml:"project_path"`
	OutputDir   string `yaml:"output_dir"`
	SnapshotDir string `yaml:"snapshot_dir"`
}

// New creates a Config with defaults, then applies the optional .env
// file, PZSPEC_* environment variables and the optional pzspec.yaml.
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		SnapshotDir:    DefaultSnapshotDir,
		HistoryDBFile:  DefaultHistoryDBFile,
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))

	if v := os.Getenv(EnvProjectPath); v != "" {
		cfg.ProjectPath = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputJSONDir = v
	}
	if v := os.Getenv(EnvSnapshotDir); v != "" {
		cfg.SnapshotDir = v
	}

	if err := cfg.loadFile(filepath.Join(cfg.ProjectPath, DefaultConfigFile)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	return cfg
}

// loadFile applies settings from a YAML config file if it exists.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if fc.ProjectPath != "" {
		c.ProjectPath = fc.ProjectPath
	}
	if fc.OutputDir != "" {
		c.OutputJSONDir = fc.OutputDir
	}
	if fc.SnapshotDir != "" {
		c.SnapshotDir = fc.SnapshotDir
	}
	return nil
}

// GetOutputPath returns the absolute path to the results JSON file, so
// run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetSnapshotPath returns the snapshot directory path.
func (c *Config) GetSnapshotPath() string {
	return filepath.Join(c.ProjectPath, c.SnapshotDir)
}

// GetHistoryPath returns the run-history database path.
func (c *Config) GetHistoryPath() string {
	return filepath.Join(c.ProjectPath, c.OutputJSONDir, c.HistoryDBFile)
}

// IncludeTagList returns the parsed --tags values.
func (c *Config) IncludeTagList() []string {
	return splitTags(c.Flags.Tags)
}

// ExcludeTagList returns the parsed --exclude-tags values.
func (c *Config) ExcludeTagList() []string {
	return splitTags(c.Flags.ExcludeTags)
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
