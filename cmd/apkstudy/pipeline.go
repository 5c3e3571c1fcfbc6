// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/JK8789/thesis-apk-study/pkg/dataset"
	"github.com/JK8789/thesis-apk-study/pkg/library"
)

// policyOutDir maps a policy to its output directory under the
// results root. Each policy keeps its own directory so reruns under a
// different policy never clobber earlier tables.
func policyOutDir(pol library.Policy) string {
	switch pol.Name {
	case "exact":
		return filepath.Join(cfg.ResultsDir, "libs")
	case "d3":
		return filepath.Join(cfg.ResultsDir, "libs_d3")
	default:
		return filepath.Join(cfg.ResultsDir, "libs_"+pol.Name)
	}
}

// countsPath locates one application's prefix inventory CSV.
func countsPath(sha string) string {
	return filepath.Join(cfg.Dataset.PrefixesDir, sha+"_counts.csv")
}

// runMatching loads the registry and dictionary and produces one
// AppResult per registered application. A missing per-app counts file
// is a hard failure naming the application; the loaders already skip
// malformed individual rows.
func runMatching(pol library.Policy) ([]*library.AppResult, error) {
	apps, err := dataset.LoadRegistry(cfg.Dataset.Registry)
	if err != nil {
		return nil, err
	}
	dict, err := library.LoadDictionary(cfg.Dataset.Dictionary)
	if err != nil {
		return nil, err
	}
	logger.Info("matching inputs loaded",
		"apps", len(apps),
		"dictionary_prefixes", dict.Len(),
		"policy", pol.Name)

	agg := library.NewAggregator(dict, pol)
	results := make([]*library.AppResult, 0, len(apps))
	for _, app := range apps {
		rows, err := dataset.LoadPrefixCounts(countsPath(app.SHA256))
		if err != nil {
			return nil, fmt.Errorf("prefix counts for %s (%s, %s): %w",
				app.AppName, app.SHA256, app.Region, err)
		}
		results = append(results, agg.Analyze(app, rows))
	}
	return results, nil
}
