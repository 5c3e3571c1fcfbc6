// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package report rolls per-application matching results up into the
// comparative tables the study is built on: region-level library
// presence, pairwise region-vs-region set differences, keyword-based
// library taxonomy, and per-type count tables.
//
// All rollups are explicit accumulator values computed from the full
// slice of per-application results; nothing here keeps module-level
// state between calls.
package report

import (
	"sort"

	"github.com/JK8789/thesis-apk-study/pkg/dataset"
	"github.com/JK8789/thesis-apk-study/pkg/library"
)

// RegionPresence is one row of the region library-presence summary:
// how many distinct applications in a region carry a kept library.
type RegionPresence struct {
	Region   dataset.Region
	Prefix   string
	AppCount int
}

// BuildRegionPresence counts, per region, how many distinct
// applications carry each kept library prefix. Rows are grouped by
// region (ru first, then eu), ordered by descending app count then
// prefix, and bounded to the top N per region (0 = unbounded).
func BuildRegionPresence(results []*library.AppResult, topN int) []RegionPresence {
	counts := make(map[dataset.Region]map[string]int)
	for _, res := range results {
		region := res.App.Region
		if counts[region] == nil {
			counts[region] = make(map[string]int)
		}
		for _, k := range res.Kept {
			counts[region][k.Prefix]++
		}
	}

	var out []RegionPresence
	for _, region := range []dataset.Region{dataset.RegionRU, dataset.RegionEU} {
		byPrefix := counts[region]
		rows := make([]RegionPresence, 0, len(byPrefix))
		for p, n := range byPrefix {
			rows = append(rows, RegionPresence{Region: region, Prefix: p, AppCount: n})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].AppCount != rows[j].AppCount {
				return rows[i].AppCount > rows[j].AppCount
			}
			return rows[i].Prefix < rows[j].Prefix
		})
		if topN > 0 && len(rows) > topN {
			rows = rows[:topN]
		}
		out = append(out, rows...)
	}
	return out
}

// UnmatchedPresence is one row of the region unmatched-prefix
// summary: how many applications in a region carry a candidate
// prefix the dictionary does not know.
type UnmatchedPresence struct {
	Region   dataset.Region
	Prefix   string
	AppCount int
}

// BuildUnmatchedPresence counts, per region, how many applications
// report each unmatched candidate prefix. The table surfaces
// region-specific SDKs missing from the dictionary. Rows are grouped
// by region (ru first, then eu), ordered by descending app count then
// prefix, bounded to the top N per region (0 = unbounded).
func BuildUnmatchedPresence(results []*library.AppResult, topN int) []UnmatchedPresence {
	counts := make(map[dataset.Region]map[string]int)
	for _, res := range results {
		region := res.App.Region
		if counts[region] == nil {
			counts[region] = make(map[string]int)
		}
		seen := make(map[string]struct{}, len(res.Unmatched))
		for _, u := range res.Unmatched {
			if _, dup := seen[u.Prefix]; dup {
				continue
			}
			seen[u.Prefix] = struct{}{}
			counts[region][u.Prefix]++
		}
	}

	var out []UnmatchedPresence
	for _, region := range []dataset.Region{dataset.RegionRU, dataset.RegionEU} {
		byPrefix := counts[region]
		rows := make([]UnmatchedPresence, 0, len(byPrefix))
		for p, n := range byPrefix {
			rows = append(rows, UnmatchedPresence{Region: region, Prefix: p, AppCount: n})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].AppCount != rows[j].AppCount {
				return rows[i].AppCount > rows[j].AppCount
			}
			return rows[i].Prefix < rows[j].Prefix
		})
		if topN > 0 && len(rows) > topN {
			rows = rows[:topN]
		}
		out = append(out, rows...)
	}
	return out
}

// PresencePivot is one row of the two-region presence pivot.
type PresencePivot struct {
	Prefix    string
	RU        int
	EU        int
	RUMinusEU int
	EUMinusRU int
}

// BuildPresencePivot pivots region presence into one row per library
// with both regions' app counts and their differences. The caller
// sorts by whichever delta the output table wants.
func BuildPresencePivot(results []*library.AppResult) []PresencePivot {
	ru := make(map[string]int)
	eu := make(map[string]int)
	for _, res := range results {
		for _, k := range res.Kept {
			switch res.App.Region {
			case dataset.RegionRU:
				ru[k.Prefix]++
			case dataset.RegionEU:
				eu[k.Prefix]++
			}
		}
	}

	seen := make(map[string]struct{}, len(ru)+len(eu))
	for p := range ru {
		seen[p] = struct{}{}
	}
	for p := range eu {
		seen[p] = struct{}{}
	}

	out := make([]PresencePivot, 0, len(seen))
	for p := range seen {
		out = append(out, PresencePivot{
			Prefix:    p,
			RU:        ru[p],
			EU:        eu[p],
			RUMinusEU: ru[p] - eu[p],
			EUMinusRU: eu[p] - ru[p],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// SortByRUMore orders a pivot copy by descending RU-minus-EU, then
// prefix, the "libraries more common in RU" view.
func SortByRUMore(pivot []PresencePivot) []PresencePivot {
	out := make([]PresencePivot, len(pivot))
	copy(out, pivot)
	sort.Slice(out, func(i, j int) bool {
		if out[i].RUMinusEU != out[j].RUMinusEU {
			return out[i].RUMinusEU > out[j].RUMinusEU
		}
		return out[i].Prefix < out[j].Prefix
	})
	return out
}

// SortByEUMore orders a pivot copy by descending EU-minus-RU, then
// prefix.
func SortByEUMore(pivot []PresencePivot) []PresencePivot {
	out := make([]PresencePivot, len(pivot))
	copy(out, pivot)
	sort.Slice(out, func(i, j int) bool {
		if out[i].EUMinusRU != out[j].EUMinusRU {
			return out[i].EUMinusRU > out[j].EUMinusRU
		}
		return out[i].Prefix < out[j].Prefix
	})
	return out
}

// CategoryPresence is one row of the per (region, category) presence
// table.
type CategoryPresence struct {
	Region   dataset.Region
	Category string
	Prefix   string
	AppCount int
}

// BuildCategoryPresence counts distinct applications per
// (region, category, library). Rows come back sorted by region,
// category, then descending count and prefix.
func BuildCategoryPresence(results []*library.AppResult) []CategoryPresence {
	type key struct {
		region   dataset.Region
		category string
		prefix   string
	}
	counts := make(map[key]int)
	for _, res := range results {
		for _, k := range res.Kept {
			counts[key{res.App.Region, res.App.Category, k.Prefix}]++
		}
	}

	out := make([]CategoryPresence, 0, len(counts))
	for k, n := range counts {
		out = append(out, CategoryPresence{
			Region:   k.region,
			Category: k.category,
			Prefix:   k.prefix,
			AppCount: n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].AppCount != out[j].AppCount {
			return out[i].AppCount > out[j].AppCount
		}
		return out[i].Prefix < out[j].Prefix
	})
	return out
}
