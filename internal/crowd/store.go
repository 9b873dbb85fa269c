package crowd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crowd-dynamics/crowdsynth/internal/anthro"
	"github.com/crowd-dynamics/crowdsynth/internal/schema"
)

// CrowdMeasures holds the population-level inputs to agent synthesis: the
// baseline anthropometric dataset, an optional custom dataset, and a flat
// table of distribution parameters keyed by prefixed statistic names.
// Like AgentMeasures it is validated once at construction: a non-empty
// statistics table must be complete against the schema registry.
type CrowdMeasures struct {
	defaultDatabase anthro.Table
	customDatabase  anthro.Table
	agentStatistics map[string]float64
}

// NewCrowdMeasures builds a crowd store. baseline provides the default
// dataset and is loaded exactly once here; a nil baseline leaves the default
// database empty, which is fine for statistics-only synthesis. statistics
// may be nil or empty; when non-empty it must carry every key in
// schema.RequiredCrowdStatKeys.
func NewCrowdMeasures(baseline anthro.Source, custom anthro.Table, statistics map[string]float64) (*CrowdMeasures, error) {
	var defaultDB anthro.Table
	if baseline != nil {
		var err error
		defaultDB, err = baseline.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load baseline dataset: %w", err)
		}
	}
	if defaultDB == nil {
		defaultDB = make(anthro.Table)
	}
	if custom == nil {
		custom = make(anthro.Table)
	}

	stats := make(map[string]float64, len(statistics))
	for key, value := range statistics {
		stats[key] = value
	}

	if len(stats) > 0 {
		var missing []string
		for key := range schema.RequiredCrowdStatKeys() {
			if _, ok := stats[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return nil, fmt.Errorf("%w: statistics table incomplete, missing %s",
				ErrMissingStatistic, strings.Join(missing, ", "))
		}
	}

	return &CrowdMeasures{
		defaultDatabase: defaultDB,
		customDatabase:  custom,
		agentStatistics: stats,
	}, nil
}

// Baseline returns the default anthropometric dataset. It is shared,
// read-only reference data; callers must not modify it.
func (cm *CrowdMeasures) Baseline() anthro.Table {
	return cm.defaultDatabase
}

// Custom returns the custom dataset, if any.
func (cm *CrowdMeasures) Custom() anthro.Table {
	return cm.customDatabase
}

// HasStatistics reports whether a statistics table was supplied.
func (cm *CrowdMeasures) HasStatistics() bool {
	return len(cm.agentStatistics) > 0
}

// Statistic returns the named crowd-level statistic.
func (cm *CrowdMeasures) Statistic(key string) (float64, error) {
	value, ok := cm.agentStatistics[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingStatistic, key)
	}
	return value, nil
}
