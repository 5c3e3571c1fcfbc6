// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JK8789/thesis-apk-study/pkg/dataset"
	"github.com/JK8789/thesis-apk-study/pkg/library"
	"github.com/JK8789/thesis-apk-study/pkg/report"
)

// runTaxonomy classifies every library prefix observed by the current
// policy's match run into a functional type and writes the taxonomy
// table. It reads the match outputs rather than re-running matching,
// so the taxonomy always describes exactly what the tables contain.
func runTaxonomy(cmd *cobra.Command, args []string) {
	log := logger.With("stage", "taxonomy")

	pol, err := library.ParsePolicy(cfg.Match.Policy)
	if err != nil {
		fatal("selecting policy", err)
	}
	outDir := policyOutDir(pol)

	prefixes := make(map[string]struct{})
	if err := collectColumn(filepath.Join(outDir, "libs_per_app_long.csv"),
		"library_prefix", prefixes); err != nil {
		fatal("reading matched libraries (run 'apkstudy match' first)", err)
	}
	// Deep hits extend the taxonomy with keyword-flagged prefixes the
	// dictionary may not know.
	if err := collectColumn(filepath.Join(outDir, "keyword_deep_hits.csv"),
		"prefix", prefixes); err != nil {
		fatal("reading keyword deep hits", err)
	}

	all := make([]string, 0, len(prefixes))
	for p := range prefixes {
		all = append(all, p)
	}
	taxonomy := report.BuildTaxonomy(all)

	rows := make([][]string, 0, len(taxonomy))
	for _, t := range taxonomy {
		rows = append(rows, []string{t.Prefix, t.TypeAuto})
	}
	outPath := filepath.Join(cfg.ResultsDir, "meta", "library_taxonomy_auto.csv")
	if err := dataset.WriteTable(outPath, []string{"prefix", "type_auto"}, rows); err != nil {
		fatal("writing taxonomy", err)
	}
	log.Info("taxonomy written", "prefixes", len(rows), "out", outPath)
}

// collectColumn accumulates one column's non-empty values into a set.
func collectColumn(path, column string, into map[string]struct{}) error {
	_, rows, err := dataset.ReadTable(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		v := strings.TrimSpace(row[column])
		if v == "" {
			continue
		}
		into[v] = struct{}{}
	}
	return nil
}
