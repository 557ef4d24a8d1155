package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultSnapshotDir is the default snapshot directory
	DefaultSnapshotDir = "__snapshots__"
	// DefaultHistoryDBFile is the default run-history database file
	DefaultHistoryDBFile = "history.db"
	// DefaultConfigFile is the optional YAML config file name
	DefaultConfigFile = "pzspec.yaml"
)

// Environment variable names honored after .env loading.
const (
	EnvOutputDir   = "PZSPEC_OUTPUT_DIR"
	EnvSnapshotDir = "PZSPEC_SNAPSHOT_DIR"
	EnvProjectPath = "PZSPEC_PROJECT_PATH"
)
