// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"fmt"
	"strings"
)

// LoadRegistry reads the application registry (apps_baseline.csv).
//
// The registry must carry the columns sha256, region, category, pair_id,
// app_name, apk_path and package; anything missing is a schema mismatch
// and fails before any per-application processing starts. Rows without a
// sha256 are skipped. SHA256 identifiers are upper-cased on ingest so
// downstream file lookups are case-stable.
func LoadRegistry(path string) ([]Application, error) {
	header, rows, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("registry %s: %w: empty table", path, ErrSchema)
	}
	if err := checkColumns(header, registryColumns); err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}

	apps := make([]Application, 0, len(rows))
	for _, row := range rows {
		sha := strings.ToUpper(strings.TrimSpace(row["sha256"]))
		if sha == "" {
			continue
		}
		apps = append(apps, Application{
			SHA256:   sha,
			Region:   Region(strings.TrimSpace(row["region"])),
			Category: strings.TrimSpace(row["category"]),
			PairID:   strings.TrimSpace(row["pair_id"]),
			AppName:  strings.TrimSpace(row["app_name"]),
			APKPath:  strings.TrimSpace(row["apk_path"]),
			Package:  strings.TrimSpace(row["package"]),
		})
	}
	return apps, nil
}
