// Package config loads crowd synthesis configuration from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crowd-dynamics/crowdsynth/internal/schema"
)

// CrowdConfig is the on-disk configuration for agent synthesis. Statistics
// omitted from the file fall back to the packaged defaults, so partial
// configs are safe.
type CrowdConfig struct {
	// Statistics overrides entries of the crowd statistics table.
	Statistics map[string]float64 `json:"statistics,omitempty"`

	// DatabasePath points at the baseline anthropometric sqlite dataset.
	DatabasePath *string `json:"database_path,omitempty"`

	// Seed fixes the random source for reproducible crowds.
	Seed *uint64 `json:"seed,omitempty"`
}

// LoadCrowdConfig loads a CrowdConfig from a JSON file. The file must have a
// .json extension and stay under the max file size.
func LoadCrowdConfig(path string) (*CrowdConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
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

	var cfg CrowdConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// EffectiveStatistics merges the config's overrides over the packaged
// defaults, yielding a complete statistics table.
func (c *CrowdConfig) EffectiveStatistics() map[string]float64 {
	stats := DefaultStatistics()
	for key, value := range c.Statistics {
		stats[key] = value
	}
	return stats
}

// DefaultStatistics returns a complete crowd statistics table with
// population-plausible values (lengths in cm, weights in kg). Every key of
// schema.RequiredCrowdStatKeys is present, so the result always passes crowd
// store validation.
func DefaultStatistics() map[string]float64 {
	return map[string]float64{
		schema.StatMaleProportion:       0.5,
		schema.StatPedestrianProportion: 0.8,
		schema.StatBikeProportion:       0.2,

		"male_bideltoid_breadth_mean":    49.0,
		"male_bideltoid_breadth_std_dev": 2.7,
		"male_bideltoid_breadth_min":     38.0,
		"male_bideltoid_breadth_max":     61.0,
		"male_chest_depth_mean":          25.0,
		"male_chest_depth_std_dev":       2.3,
		"male_chest_depth_min":           16.0,
		"male_chest_depth_max":           36.0,
		"male_height_mean":               175.5,
		"male_height_std_dev":            6.9,
		"male_height_min":                150.0,
		"male_height_max":                205.0,

		"female_bideltoid_breadth_mean":    43.5,
		"female_bideltoid_breadth_std_dev": 2.5,
		"female_bideltoid_breadth_min":     34.0,
		"female_bideltoid_breadth_max":     55.0,
		"female_chest_depth_mean":          23.0,
		"female_chest_depth_std_dev":       2.5,
		"female_chest_depth_min":           14.0,
		"female_chest_depth_max":           35.0,
		"female_height_mean":               162.9,
		"female_height_std_dev":            6.4,
		"female_height_min":                140.0,
		"female_height_max":                190.0,

		"pedestrian_weight_mean":    75.0,
		"pedestrian_weight_std_dev": 15.0,
		"pedestrian_weight_min":     40.0,
		"pedestrian_weight_max":     150.0,

		"bike_weight_mean":    15.0,
		"bike_weight_std_dev": 3.0,
		"bike_weight_min":     8.0,
		"bike_weight_max":     25.0,

		"wheel_width_mean":    4.5,
		"wheel_width_std_dev": 0.5,
		"wheel_width_min":     3.0,
		"wheel_width_max":     6.0,

		"total_length_mean":    175.0,
		"total_length_std_dev": 10.0,
		"total_length_min":     150.0,
		"total_length_max":     200.0,

		"handlebar_length_mean":    60.0,
		"handlebar_length_std_dev": 5.0,
		"handlebar_length_min":     40.0,
		"handlebar_length_max":     80.0,

		"top_tube_length_mean":    55.0,
		"top_tube_length_std_dev": 3.0,
		"top_tube_length_min":     45.0,
		"top_tube_length_max":     65.0,
	}
}
