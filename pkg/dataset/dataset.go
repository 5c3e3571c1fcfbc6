// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package dataset reads and writes the flat tabular files the pipeline
// exchanges with its out-of-scope collaborators: the application registry,
// per-application prefix inventories, raw class-name lists, and the CSV
// report tables every stage emits.
//
// All entities are derived per run from static input files; nothing here
// holds persistent mutable state. Error handling follows the pipeline's
// taxonomy: a missing required file or a broken schema is fatal, a single
// malformed row is skipped.
package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Region is one of the two enumerated distribution-market labels
// used for comparison.
type Region string

const (
	// RegionRU is the Russian distribution set.
	RegionRU Region = "ru"

	// RegionEU is the European distribution set.
	RegionEU Region = "eu"
)

// ErrSchema indicates a required column is absent from an input table.
//
// Schema mismatches are detected at load time, before any per-application
// processing begins, and abort the run.
var ErrSchema = errors.New("input schema mismatch")

// Application is one row of the application registry.
//
// Applications are identified by their content hash (SHA256), treated as
// an opaque unique identifier. PairID groups exactly one application per
// region into a comparison unit; Package is the app's own first-party
// namespace and may be empty when manifest extraction failed.
type Application struct {
	SHA256   string
	Region   Region
	Category string
	PairID   string
	AppName  string
	APKPath  string
	Package  string
}

// registryColumns are the columns the registry must provide.
var registryColumns = []string{"sha256", "region", "category", "pair_id", "app_name", "apk_path", "package"}

// checkColumns verifies that every required column is present in header.
//
// The missing columns are reported sorted so the error message is stable.
func checkColumns(header []string, required []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, col := range required {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing columns %v", ErrSchema, missing)
	}
	return nil
}
