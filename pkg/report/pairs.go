// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"sort"
	"strings"

	"github.com/JK8789/thesis-apk-study/pkg/dataset"
	"github.com/JK8789/thesis-apk-study/pkg/library"
)

// maxDiffList bounds the exclusive-library lists in the pairwise table
// so one SDK-heavy app cannot blow up the CSV.
const maxDiffList = 80

// PairDiff is one row of the pairwise library-difference table: the
// symmetric set difference of kept libraries between the two regions
// of one comparison pair.
type PairDiff struct {
	PairID       string
	RUOnly       int
	EUOnly       int
	Intersection int

	// RUOnlyLibs and EUOnlyLibs are sorted, semicolon-joined and
	// bounded to maxDiffList entries.
	RUOnlyLibs string
	EUOnlyLibs string
}

// BuildPairDiffs computes the pairwise diff rows, sorted by pair id.
//
// A pair is usable only when exactly one application exists per region
// for its pair_id. Anything else (one app total, two apps in the same
// region, an empty pair_id) is degraded input and is silently excluded
// from the pairwise output; the per-application outputs still include
// those applications.
func BuildPairDiffs(results []*library.AppResult) []PairDiff {
	type bucket struct {
		ru []map[string]struct{}
		eu []map[string]struct{}
	}
	pairs := make(map[string]*bucket)
	for _, res := range results {
		pid := res.App.PairID
		if pid == "" {
			continue
		}
		b := pairs[pid]
		if b == nil {
			b = &bucket{}
			pairs[pid] = b
		}
		switch res.App.Region {
		case dataset.RegionRU:
			b.ru = append(b.ru, res.KeptSet())
		case dataset.RegionEU:
			b.eu = append(b.eu, res.KeptSet())
		}
	}

	pids := make([]string, 0, len(pairs))
	for pid := range pairs {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	var out []PairDiff
	for _, pid := range pids {
		b := pairs[pid]
		if len(b.ru) != 1 || len(b.eu) != 1 {
			continue
		}
		ru, eu := b.ru[0], b.eu[0]

		ruOnly := setDifference(ru, eu)
		euOnly := setDifference(eu, ru)
		inter := 0
		for p := range ru {
			if _, ok := eu[p]; ok {
				inter++
			}
		}

		out = append(out, PairDiff{
			PairID:       pid,
			RUOnly:       len(ruOnly),
			EUOnly:       len(euOnly),
			Intersection: inter,
			RUOnlyLibs:   joinBounded(ruOnly, maxDiffList),
			EUOnlyLibs:   joinBounded(euOnly, maxDiffList),
		})
	}
	return out
}

// setDifference returns the members of a that are not in b.
func setDifference(a, b map[string]struct{}) []string {
	var out []string
	for p := range a {
		if _, ok := b[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// joinBounded sorts the entries, truncates to limit, and joins them
// with semicolons.
func joinBounded(entries []string, limit int) string {
	sort.Strings(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return strings.Join(entries, ";")
}
