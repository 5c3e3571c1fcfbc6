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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JK8789/thesis-apk-study/pkg/dataset"
	"github.com/JK8789/thesis-apk-study/pkg/library"
	"github.com/JK8789/thesis-apk-study/pkg/report"
)

func runMatch(cmd *cobra.Command, args []string) {
	log := logger.With("stage", "match")

	pol, err := library.ParsePolicy(cfg.Match.Policy)
	if err != nil {
		fatal("selecting policy", err)
	}

	results, err := runMatching(pol)
	if err != nil {
		fatal("matching", err)
	}

	outDir := policyOutDir(pol)
	if err := writeMatchTables(outDir, pol, results); err != nil {
		fatal("writing match tables", err)
	}
	log.Info("matching complete", "policy", pol.Name, "apps", len(results), "out", outDir)
}

// writeMatchTables writes every table the match stage produces for
// one policy run.
func writeMatchTables(outDir string, pol library.Policy, results []*library.AppResult) error {
	if err := writePerAppLong(outDir, results); err != nil {
		return err
	}
	if err := writeMatchStats(outDir, results); err != nil {
		return err
	}
	if err := writeRegionSummary(outDir, pol, results); err != nil {
		return err
	}
	if err := writePairDiffs(outDir, results); err != nil {
		return err
	}
	if err := writeDeepHits(outDir, results); err != nil {
		return err
	}
	if pol.UnmatchedDetail {
		if err := writeUnmatched(outDir, pol, results); err != nil {
			return err
		}
	}
	return nil
}

func appColumns(app dataset.Application) []string {
	return []string{
		app.SHA256, string(app.Region), app.Category,
		app.PairID, app.AppName, app.Package,
	}
}

var appColumnNames = []string{"sha256", "region", "category", "pair_id", "app_name", "package"}

func writePerAppLong(outDir string, results []*library.AppResult) error {
	header := append(append([]string{}, appColumnNames...),
		"library_prefix", "depth", "class_count")

	var rows [][]string
	for _, res := range results {
		for _, k := range res.Kept {
			rows = append(rows, append(appColumns(res.App),
				k.Prefix, strconv.Itoa(k.Depth), strconv.Itoa(k.ClassCount)))
		}
	}
	return dataset.WriteTable(filepath.Join(outDir, "libs_per_app_long.csv"), header, rows)
}

func writeMatchStats(outDir string, results []*library.AppResult) error {
	header := append(append([]string{}, appColumnNames...),
		"considered", "excluded_platform", "excluded_first_party",
		"candidate", "matched", "unmatched", "kept", "match_rate")

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		s := res.Stats
		rows = append(rows, append(appColumns(res.App),
			strconv.Itoa(s.Considered),
			strconv.Itoa(s.ExcludedPlatform),
			strconv.Itoa(s.ExcludedFirstParty),
			strconv.Itoa(s.Candidate),
			strconv.Itoa(s.Matched),
			strconv.Itoa(s.Unmatched),
			strconv.Itoa(s.Kept),
			fmt.Sprintf("%.4f", s.MatchRate)))
	}
	return dataset.WriteTable(filepath.Join(outDir, "libs_match_stats.csv"), header, rows)
}

func writeRegionSummary(outDir string, pol library.Policy, results []*library.AppResult) error {
	presence := report.BuildRegionPresence(results, pol.RegionTop)
	rows := make([][]string, 0, len(presence))
	for _, p := range presence {
		rows = append(rows, []string{string(p.Region), p.Prefix, strconv.Itoa(p.AppCount)})
	}
	return dataset.WriteTable(filepath.Join(outDir, "libs_summary_region.csv"),
		[]string{"region", "library_prefix", "apps_with_library"}, rows)
}

func writePairDiffs(outDir string, results []*library.AppResult) error {
	diffs := report.BuildPairDiffs(results)
	rows := make([][]string, 0, len(diffs))
	for _, d := range diffs {
		rows = append(rows, []string{
			d.PairID,
			strconv.Itoa(d.RUOnly),
			strconv.Itoa(d.EUOnly),
			strconv.Itoa(d.Intersection),
			d.RUOnlyLibs,
			d.EUOnlyLibs,
		})
	}
	return dataset.WriteTable(filepath.Join(outDir, "pairs_libs_diff.csv"),
		[]string{"pair_id", "ru_only", "eu_only", "intersection", "ru_only_libs", "eu_only_libs"},
		rows)
}

func writeDeepHits(outDir string, results []*library.AppResult) error {
	header := append(append([]string{}, appColumnNames...),
		"prefix", "depth", "class_count", "in_dictionary")

	var rows [][]string
	for _, res := range results {
		for _, h := range res.DeepHits {
			rows = append(rows, append(appColumns(res.App),
				h.Prefix, strconv.Itoa(h.Depth), strconv.Itoa(h.ClassCount),
				strconv.FormatBool(h.InDictionary)))
		}
	}
	return dataset.WriteTable(filepath.Join(outDir, "keyword_deep_hits.csv"), header, rows)
}

// writeUnmatched writes the dictionary-gap tables: the per-app top
// unmatched prefixes and their region-level rollup.
func writeUnmatched(outDir string, pol library.Policy, results []*library.AppResult) error {
	var perApp [][]string
	for _, res := range results {
		for _, u := range res.Unmatched {
			perApp = append(perApp, []string{
				res.App.SHA256, string(res.App.Region),
				u.Prefix, strconv.Itoa(u.ClassCount),
			})
		}
	}
	perAppPath := filepath.Join(outDir, "unmatched_prefixes_per_app.csv")
	if err := dataset.WriteTable(perAppPath,
		[]string{"sha256", "region", "prefix", "class_count"}, perApp); err != nil {
		return err
	}

	presence := report.BuildUnmatchedPresence(results, pol.UnmatchedRegionTop)
	rows := make([][]string, 0, len(presence))
	for _, p := range presence {
		rows = append(rows, []string{string(p.Region), p.Prefix, strconv.Itoa(p.AppCount)})
	}
	return dataset.WriteTable(filepath.Join(outDir, "unmatched_summary_region.csv"),
		[]string{"region", "prefix", "apps_with_prefix"}, rows)
}
