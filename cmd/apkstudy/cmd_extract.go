// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JK8789/thesis-apk-study/pkg/dataset"
	"github.com/JK8789/thesis-apk-study/pkg/prefix"
)

var prefixStatsColumns = []string{
	"sha256", "classes_total", "classes_platform", "prefixes_total",
	"unique_d2", "unique_d3", "unique_d4", "first_party_guess_prefix",
	"top_prefix_d3", "top_prefix_d3_count", "obfuscation_score_d3",
}

// prefixStatsRow builds one application's prefix_stats.csv row in
// prefixStatsColumns order.
func prefixStatsRow(sha string, classesTotal, platform int, inv *prefix.Inventory) []string {
	topD3, topD3Count := inv.TopDepth3()
	return []string{
		sha,
		strconv.Itoa(classesTotal),
		strconv.Itoa(platform),
		strconv.Itoa(len(inv.Counts)),
		strconv.Itoa(inv.UniqueAtDepth(2)),
		strconv.Itoa(inv.UniqueAtDepth(3)),
		strconv.Itoa(inv.UniqueAtDepth(4)),
		inv.FirstPartyGuess(),
		topD3,
		strconv.Itoa(topD3Count),
		fmt.Sprintf("%.4f", inv.ObfuscationScore()),
	}
}

func runExtract(cmd *cobra.Command, args []string) {
	log := logger.With("stage", "extract")

	pattern := filepath.Join(cfg.Dataset.ClassesDir, "*.txt")
	files, err := filepath.Glob(pattern)
	if err != nil {
		fatal("listing class lists", err)
	}
	if len(files) == 0 {
		fatal("no class lists found", fmt.Errorf("no *.txt files under %s", cfg.Dataset.ClassesDir))
	}
	sort.Strings(files)

	if err := os.MkdirAll(cfg.Dataset.PrefixesDir, 0o755); err != nil {
		fatal("creating prefixes dir", err)
	}

	statsRows := make([][]string, 0, len(files))
	for _, path := range files {
		sha := strings.ToUpper(strings.TrimSuffix(filepath.Base(path), ".txt"))

		classes, err := dataset.LoadClassList(path)
		if err != nil {
			fatal("reading class list", err)
		}

		kept := classes[:0:0]
		platform := 0
		for _, c := range classes {
			if prefix.IsPlatform(c) {
				platform++
				continue
			}
			kept = append(kept, c)
		}

		inv := prefix.Build(kept)
		if err := writePrefixList(sha, inv); err != nil {
			fatal("writing prefix list", err)
		}
		if err := writePrefixCounts(sha, inv); err != nil {
			fatal("writing prefix counts", err)
		}

		statsRows = append(statsRows, prefixStatsRow(sha, len(classes), platform, inv))
		log.Debug("inventory built",
			"sha256", sha,
			"classes", len(classes),
			"platform_excluded", platform,
			"prefixes", len(inv.Counts))
	}

	statsPath := filepath.Join(cfg.Dataset.PrefixesDir, "prefix_stats.csv")
	if err := dataset.WriteTable(statsPath, prefixStatsColumns, statsRows); err != nil {
		fatal("writing prefix stats", err)
	}
	log.Info("prefix extraction complete", "apps", len(files), "stats", statsPath)
}

// writePrefixList writes the sorted unique-prefix text file,
// <SHA256>.txt, one prefix per line.
func writePrefixList(sha string, inv *prefix.Inventory) error {
	path := filepath.Join(cfg.Dataset.PrefixesDir, sha+".txt")
	prefixes := inv.SortedPrefixes()

	var b strings.Builder
	for _, p := range prefixes {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// writePrefixCounts writes <SHA256>_counts.csv ordered by descending
// class count, the form the match stage consumes.
func writePrefixCounts(sha string, inv *prefix.Inventory) error {
	path := filepath.Join(cfg.Dataset.PrefixesDir, sha+"_counts.csv")
	counts := inv.SortedCounts()

	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			sha, c.Prefix, strconv.Itoa(c.Depth), strconv.Itoa(c.ClassCount),
		})
	}
	return dataset.WriteTable(path, []string{"sha256", "prefix", "depth", "class_count"}, rows)
}
