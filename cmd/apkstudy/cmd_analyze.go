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

// runAnalyze recomputes matching under the current policy and writes
// the comparative tables: per-type library counts, region summaries,
// pairwise deltas, the RU/EU presence pivots and the per-category
// breakdown. Recomputing keeps the command self-contained; the inputs
// are static so results are identical to the match run's.
func runAnalyze(cmd *cobra.Command, args []string) {
	log := logger.With("stage", "analyze")

	pol, err := library.ParsePolicy(cfg.Match.Policy)
	if err != nil {
		fatal("selecting policy", err)
	}
	results, err := runMatching(pol)
	if err != nil {
		fatal("matching", err)
	}

	outDir := filepath.Join(cfg.ResultsDir, "analysis_"+pol.Name)
	if err := writeAnalysisTables(outDir, results); err != nil {
		fatal("writing analysis tables", err)
	}
	log.Info("analysis complete", "policy", pol.Name, "apps", len(results), "out", outDir)
}

func writeAnalysisTables(outDir string, results []*library.AppResult) error {
	appCounts := report.BuildAppTypeCounts(results)

	if err := writeTypesPerApp(outDir, appCounts); err != nil {
		return err
	}
	if err := writeTypesRegionSummary(outDir, appCounts); err != nil {
		return err
	}
	if err := writeTypesPairDeltas(outDir, appCounts); err != nil {
		return err
	}
	if err := writePresencePivots(outDir, results); err != nil {
		return err
	}
	return writeCategoryPresence(outDir, results)
}

func writeTypesPerApp(outDir string, appCounts []report.AppTypeCounts) error {
	labels := report.TypeLabels()
	header := append(append([]string{}, appColumnNames...), labels...)

	rows := make([][]string, 0, len(appCounts))
	for _, ac := range appCounts {
		row := appColumns(ac.App)
		for _, label := range labels {
			row = append(row, strconv.Itoa(ac.Counts[label]))
		}
		rows = append(rows, row)
	}
	return dataset.WriteTable(filepath.Join(outDir, "library_types_per_app.csv"), header, rows)
}

func writeTypesRegionSummary(outDir string, appCounts []report.AppTypeCounts) error {
	summary := report.BuildRegionTypeSummary(appCounts)
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{
			string(s.Region), s.Type,
			fmt.Sprintf("%.4f", s.Mean),
			fmt.Sprintf("%.4f", s.Median),
		})
	}
	return dataset.WriteTable(filepath.Join(outDir, "library_types_region_summary.csv"),
		[]string{"region", "library_type", "mean_per_app", "median_per_app"}, rows)
}

func writeTypesPairDeltas(outDir string, appCounts []report.AppTypeCounts) error {
	labels := report.TypeLabels()
	header := append([]string{"pair_id"}, prefixed("delta_", labels)...)

	deltas := report.BuildPairTypeDeltas(appCounts)
	rows := make([][]string, 0, len(deltas))
	for _, d := range deltas {
		row := []string{d.PairID}
		for _, label := range labels {
			row = append(row, fmt.Sprintf("%.0f", d.Deltas[label]))
		}
		rows = append(rows, row)
	}
	return dataset.WriteTable(filepath.Join(outDir, "library_types_pair_deltas.csv"), header, rows)
}

func writePresencePivots(outDir string, results []*library.AppResult) error {
	pivot := report.BuildPresencePivot(results)

	header := []string{"library_prefix", "ru_apps", "eu_apps", "ru_minus_eu", "eu_minus_ru"}
	toRows := func(pivot []report.PresencePivot) [][]string {
		rows := make([][]string, 0, len(pivot))
		for _, p := range pivot {
			rows = append(rows, []string{
				p.Prefix,
				strconv.Itoa(p.RU), strconv.Itoa(p.EU),
				strconv.Itoa(p.RUMinusEU), strconv.Itoa(p.EUMinusRU),
			})
		}
		return rows
	}

	ruPath := filepath.Join(outDir, "libs_ru_more.csv")
	if err := dataset.WriteTable(ruPath, header, toRows(report.SortByRUMore(pivot))); err != nil {
		return err
	}
	euPath := filepath.Join(outDir, "libs_eu_more.csv")
	return dataset.WriteTable(euPath, header, toRows(report.SortByEUMore(pivot)))
}

func writeCategoryPresence(outDir string, results []*library.AppResult) error {
	presence := report.BuildCategoryPresence(results)
	rows := make([][]string, 0, len(presence))
	for _, p := range presence {
		rows = append(rows, []string{
			string(p.Region), p.Category, p.Prefix, strconv.Itoa(p.AppCount),
		})
	}
	return dataset.WriteTable(filepath.Join(outDir, "libs_by_category_region.csv"),
		[]string{"region", "category", "library_prefix", "apps_with_library"}, rows)
}

func prefixed(pre string, labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, pre+l)
	}
	return out
}
