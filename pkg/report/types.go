// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"sort"

	"github.com/JK8789/thesis-apk-study/pkg/dataset"
	"github.com/JK8789/thesis-apk-study/pkg/library"
)

// AppTypeCounts is one application's distinct-prefix count per
// taxonomy type, over the union of its kept libraries and keyword
// deep hits.
type AppTypeCounts struct {
	App    dataset.Application
	Counts map[string]int
}

// BuildAppTypeCounts tags each application's kept libraries and deep
// hits with the taxonomy and counts distinct prefixes per type. Rows
// come back in the order of the input results.
func BuildAppTypeCounts(results []*library.AppResult) []AppTypeCounts {
	out := make([]AppTypeCounts, 0, len(results))
	for _, res := range results {
		prefixes := make(map[string]struct{}, len(res.Kept)+len(res.DeepHits))
		for _, k := range res.Kept {
			prefixes[k.Prefix] = struct{}{}
		}
		for _, h := range res.DeepHits {
			prefixes[h.Prefix] = struct{}{}
		}

		counts := make(map[string]int)
		for p := range prefixes {
			counts[Classify(p)]++
		}
		out = append(out, AppTypeCounts{App: res.App, Counts: counts})
	}
	return out
}

// RegionTypeSummary is the per-region mean and median of one type's
// per-application counts.
type RegionTypeSummary struct {
	Region dataset.Region
	Type   string
	Mean   float64
	Median float64
}

// BuildRegionTypeSummary summarizes per-type counts per region. Every
// application in the region contributes a value for every type (0 when
// the type is absent), so means are comparable across regions. Rows
// are ordered by region (ru, eu) then type.
func BuildRegionTypeSummary(appCounts []AppTypeCounts) []RegionTypeSummary {
	byRegion := make(map[dataset.Region][]AppTypeCounts)
	for _, ac := range appCounts {
		byRegion[ac.App.Region] = append(byRegion[ac.App.Region], ac)
	}

	labels := TypeLabels()
	var out []RegionTypeSummary
	for _, region := range []dataset.Region{dataset.RegionRU, dataset.RegionEU} {
		apps := byRegion[region]
		if len(apps) == 0 {
			continue
		}
		for _, label := range labels {
			values := make([]float64, 0, len(apps))
			for _, ac := range apps {
				values = append(values, float64(ac.Counts[label]))
			}
			out = append(out, RegionTypeSummary{
				Region: region,
				Type:   label,
				Mean:   mean(values),
				Median: median(values),
			})
		}
	}
	return out
}

// PairTypeDelta is the RU-minus-EU per-type count difference for one
// comparison pair.
type PairTypeDelta struct {
	PairID string
	Deltas map[string]float64
}

// BuildPairTypeDeltas computes RU-minus-EU deltas per type for every
// usable pair (exactly one application per region), sorted by pair id.
func BuildPairTypeDeltas(appCounts []AppTypeCounts) []PairTypeDelta {
	type bucket struct {
		ru []AppTypeCounts
		eu []AppTypeCounts
	}
	pairs := make(map[string]*bucket)
	for _, ac := range appCounts {
		pid := ac.App.PairID
		if pid == "" {
			continue
		}
		b := pairs[pid]
		if b == nil {
			b = &bucket{}
			pairs[pid] = b
		}
		switch ac.App.Region {
		case dataset.RegionRU:
			b.ru = append(b.ru, ac)
		case dataset.RegionEU:
			b.eu = append(b.eu, ac)
		}
	}

	pids := make([]string, 0, len(pairs))
	for pid := range pairs {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	labels := TypeLabels()
	var out []PairTypeDelta
	for _, pid := range pids {
		b := pairs[pid]
		if len(b.ru) != 1 || len(b.eu) != 1 {
			continue
		}
		deltas := make(map[string]float64, len(labels))
		for _, label := range labels {
			deltas[label] = float64(b.ru[0].Counts[label]) - float64(b.eu[0].Counts[label])
		}
		out = append(out, PairTypeDelta{PairID: pid, Deltas: deltas})
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
