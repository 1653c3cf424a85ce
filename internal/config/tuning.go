// Package config loads the replay pipeline's tuning parameters from JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TuningConfig represents the root configuration for tuning parameters.
// All fields are optional pointers so a partial JSON file only overrides
// what it names; the Get* methods supply defaults for everything else.
type TuningConfig struct {
	// Tracker params
	SentinelCoord  *float64 `json:"sentinel_coord,omitempty"`
	MaxBatchPoints *int     `json:"max_batch_points,omitempty"`

	// Persistence params
	PersistTracks *bool   `json:"persist_tracks,omitempty"`
	DBPath        *string `json:"db_path,omitempty"`

	// Replay params
	LogEveryFrames *int `json:"log_every_frames,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and stay under the size cap. Fields omitted from
// the JSON retain their defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *TuningConfig) Validate() error {
	if c.SentinelCoord != nil && *c.SentinelCoord <= 0 {
		return fmt.Errorf("sentinel_coord must be positive, got %f", *c.SentinelCoord)
	}
	if c.MaxBatchPoints != nil && *c.MaxBatchPoints < 1 {
		return fmt.Errorf("max_batch_points must be at least 1, got %d", *c.MaxBatchPoints)
	}
	if c.LogEveryFrames != nil && *c.LogEveryFrames < 0 {
		return fmt.Errorf("log_every_frames must be non-negative, got %d", *c.LogEveryFrames)
	}
	if c.DBPath != nil && *c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty when set")
	}
	return nil
}

// GetSentinelCoord returns the sentinel_coord value or the default.
func (c *TuningConfig) GetSentinelCoord() float64 {
	if c.SentinelCoord == nil {
		return 1e7
	}
	return *c.SentinelCoord
}

// GetMaxBatchPoints returns the max_batch_points value or the default.
func (c *TuningConfig) GetMaxBatchPoints() int {
	if c.MaxBatchPoints == nil {
		return 10000
	}
	return *c.MaxBatchPoints
}

// GetPersistTracks returns the persist_tracks value or the default.
func (c *TuningConfig) GetPersistTracks() bool {
	if c.PersistTracks == nil {
		return false
	}
	return *c.PersistTracks
}

// GetDBPath returns the db_path value or the default.
func (c *TuningConfig) GetDBPath() string {
	if c.DBPath == nil {
		return "pointtrack.db"
	}
	return *c.DBPath
}

// GetLogEveryFrames returns the log_every_frames value or the default.
// Zero disables periodic progress logging.
func (c *TuningConfig) GetLogEveryFrames() int {
	if c.LogEveryFrames == nil {
		return 0
	}
	return *c.LogEveryFrames
}
