// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config holds the apkstudy run configuration: where the
// pre-extracted dataset lives, where result tables go, and which
// matching policy a run uses.
package config

// StudyConfig is the full run configuration, loaded from apkstudy.yaml.
type StudyConfig struct {
	// Dataset locates the static inputs produced by the external
	// extraction tooling.
	Dataset DatasetConfig `yaml:"dataset" validate:"required"`

	// ResultsDir is the root directory all output tables are
	// written under.
	ResultsDir string `yaml:"results_dir" validate:"required"`

	// Match selects the library-matching policy.
	Match MatchConfig `yaml:"match"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
}

// DatasetConfig locates the pipeline's static input files.
type DatasetConfig struct {
	// Registry is the application registry CSV (apps_baseline.csv).
	Registry string `yaml:"registry" validate:"required"`

	// ClassesDir holds per-app class lists (<SHA256>.txt).
	ClassesDir string `yaml:"classes_dir" validate:"required"`

	// PrefixesDir holds per-app prefix inventories
	// (<SHA256>.txt and <SHA256>_counts.csv).
	PrefixesDir string `yaml:"prefixes_dir" validate:"required"`

	// Dictionary is the known-library prefix list (.lst).
	Dictionary string `yaml:"dictionary" validate:"required"`
}

// MatchConfig selects the matching policy preset.
type MatchConfig struct {
	// Policy is one of exact, d3, longest.
	Policy string `yaml:"policy" validate:"required,oneof=exact d3 longest"`
}

// LogConfig configures the logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`

	// Dir enables file logging when set.
	Dir string `yaml:"dir"`
}

// DefaultConfig returns the configuration written on first run.
//
// The defaults mirror the dataset layout the extraction tooling
// produces, relative to the working directory.
func DefaultConfig() StudyConfig {
	return StudyConfig{
		Dataset: DatasetConfig{
			Registry:    "results/baseline/apps_baseline.csv",
			ClassesDir:  "results/classes",
			PrefixesDir: "results/prefixes",
			Dictionary:  "data/androlibzoo/AndroLibZoo.lst",
		},
		ResultsDir: "results",
		Match: MatchConfig{
			Policy: "longest",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
