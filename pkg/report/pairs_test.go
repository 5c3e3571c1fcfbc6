// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JK8789/thesis-apk-study/pkg/dataset"
	"github.com/JK8789/thesis-apk-study/pkg/library"
)

func appResult(sha string, region dataset.Region, pairID string, kept ...string) *library.AppResult {
	res := &library.AppResult{
		App: dataset.Application{
			SHA256: sha,
			Region: region,
			PairID: pairID,
		},
	}
	for _, p := range kept {
		res.Kept = append(res.Kept, library.KeptLibrary{Prefix: p, ClassCount: 1})
	}
	return res
}

func TestBuildPairDiffs(t *testing.T) {
	results := []*library.AppResult{
		appResult("A1", dataset.RegionRU, "p01", "com.vk.superapp", "ru.sber.pay", "com.facebook.ads"),
		appResult("A2", dataset.RegionEU, "p01", "com.stripe.android", "com.facebook.ads"),
	}

	diffs := BuildPairDiffs(results)
	require.Len(t, diffs, 1)

	d := diffs[0]
	assert.Equal(t, "p01", d.PairID)
	assert.Equal(t, 2, d.RUOnly)
	assert.Equal(t, 1, d.EUOnly)
	assert.Equal(t, 1, d.Intersection)
	assert.Equal(t, "com.vk.superapp;ru.sber.pay", d.RUOnlyLibs)
	assert.Equal(t, "com.stripe.android", d.EUOnlyLibs)
}

func TestBuildPairDiffs_SkipRules(t *testing.T) {
	results := []*library.AppResult{
		// p01: two apps in the same region -> skipped
		appResult("B1", dataset.RegionRU, "p01", "com.a.b"),
		appResult("B2", dataset.RegionRU, "p01", "com.c.d"),
		// p02: only one app -> skipped
		appResult("B3", dataset.RegionEU, "p02", "com.e.f"),
		// p03: usable
		appResult("B4", dataset.RegionRU, "p03", "com.g.h"),
		appResult("B5", dataset.RegionEU, "p03", "com.g.h"),
		// empty pair id -> skipped
		appResult("B6", dataset.RegionRU, "", "com.i.j"),
	}

	diffs := BuildPairDiffs(results)
	require.Len(t, diffs, 1)
	assert.Equal(t, "p03", diffs[0].PairID)
	assert.Equal(t, 0, diffs[0].RUOnly)
	assert.Equal(t, 0, diffs[0].EUOnly)
	assert.Equal(t, 1, diffs[0].Intersection)
}

func TestBuildPairDiffs_BoundedLists(t *testing.T) {
	var ruLibs []string
	for i := 0; i < 100; i++ {
		ruLibs = append(ruLibs, fmt.Sprintf("com.vendor%03d.sdk", i))
	}
	results := []*library.AppResult{
		appResult("C1", dataset.RegionRU, "p01", ruLibs...),
		appResult("C2", dataset.RegionEU, "p01"),
	}

	diffs := BuildPairDiffs(results)
	require.Len(t, diffs, 1)

	assert.Equal(t, 100, diffs[0].RUOnly, "count reflects the full set")
	entries := strings.Split(diffs[0].RUOnlyLibs, ";")
	assert.Len(t, entries, 80, "list is bounded to 80 entries")
	assert.Equal(t, "com.vendor000.sdk", entries[0], "list is sorted")
}

func TestBuildPairDiffs_SortedByPairID(t *testing.T) {
	results := []*library.AppResult{
		appResult("D1", dataset.RegionRU, "p02", "com.a.b"),
		appResult("D2", dataset.RegionEU, "p02", "com.a.b"),
		appResult("D3", dataset.RegionRU, "p01", "com.a.b"),
		appResult("D4", dataset.RegionEU, "p01", "com.a.b"),
	}

	diffs := BuildPairDiffs(results)
	require.Len(t, diffs, 2)
	assert.Equal(t, "p01", diffs[0].PairID)
	assert.Equal(t, "p02", diffs[1].PairID)
}
