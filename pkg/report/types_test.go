// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JK8789/thesis-apk-study/pkg/dataset"
	"github.com/JK8789/thesis-apk-study/pkg/library"
)

func TestBuildAppTypeCounts(t *testing.T) {
	res := appResult("A1", dataset.RegionRU, "p01",
		"com.stripe.android",      // payments
		"com.paypal.checkout",     // payments
		"org.greenrobot.eventbus", // other
	)
	// A deep hit duplicating a kept library must not double-count.
	res.DeepHits = []library.DeepHit{
		{Prefix: "com.stripe.android", Depth: 3, InDictionary: true},
		{Prefix: "com.shady.kit.tracker", Depth: 4}, // analytics
	}

	counts := BuildAppTypeCounts([]*library.AppResult{res})
	require.Len(t, counts, 1)

	assert.Equal(t, 2, counts[0].Counts["payments"])
	assert.Equal(t, 1, counts[0].Counts["analytics"])
	assert.Equal(t, 1, counts[0].Counts[TypeOther])
}

func TestBuildRegionTypeSummary(t *testing.T) {
	r1 := appResult("A1", dataset.RegionRU, "p01", "com.stripe.android")
	r2 := appResult("A2", dataset.RegionRU, "p02",
		"com.stripe.android", "com.paypal.checkout", "com.adyen.checkout")
	r3 := appResult("A3", dataset.RegionEU, "p01")

	summary := BuildRegionTypeSummary(BuildAppTypeCounts([]*library.AppResult{r1, r2, r3}))

	var ruPayments, euPayments *RegionTypeSummary
	for i := range summary {
		row := &summary[i]
		if row.Type == "payments" {
			switch row.Region {
			case dataset.RegionRU:
				ruPayments = row
			case dataset.RegionEU:
				euPayments = row
			}
		}
	}

	require.NotNil(t, ruPayments)
	assert.InDelta(t, 2.0, ruPayments.Mean, 1e-9, "(1+3)/2")
	assert.InDelta(t, 2.0, ruPayments.Median, 1e-9)

	require.NotNil(t, euPayments)
	assert.InDelta(t, 0.0, euPayments.Mean, 1e-9, "apps without the type count as 0")
}

func TestBuildPairTypeDeltas(t *testing.T) {
	r1 := appResult("A1", dataset.RegionRU, "p01", "com.stripe.android", "com.paypal.checkout")
	r2 := appResult("A2", dataset.RegionEU, "p01", "com.stripe.android")
	// p02 has only one side: skipped.
	r3 := appResult("A3", dataset.RegionRU, "p02", "com.stripe.android")

	deltas := BuildPairTypeDeltas(BuildAppTypeCounts([]*library.AppResult{r1, r2, r3}))
	require.Len(t, deltas, 1)

	assert.Equal(t, "p01", deltas[0].PairID)
	assert.InDelta(t, 1.0, deltas[0].Deltas["payments"], 1e-9)
	assert.InDelta(t, 0.0, deltas[0].Deltas["ads"], 1e-9)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"single", []float64{7}, 7},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, median(tt.values), 1e-9)
		})
	}
}
