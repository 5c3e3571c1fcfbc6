// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package library

import (
	"sort"
	"strings"

	"github.com/JK8789/thesis-apk-study/pkg/dataset"
	"github.com/JK8789/thesis-apk-study/pkg/prefix"
)

// deepHitKeywords flag candidate prefixes that look like advertising,
// payment, tracking, crash-reporting or fraud SDKs regardless of
// whether the dictionary knows them. The scan surfaces undocumented
// SDKs the static dictionary has not yet catalogued.
var deepHitKeywords = []string{
	"ads", "ad", "pay", "payment", "tracker", "analytics",
	"push", "crash", "fraud", "anti", "risk",
}

// deepHitMinDepth is the shallowest depth scanned for keyword hits;
// below that the tokens are too generic to be meaningful.
const deepHitMinDepth = 4

// KeptLibrary is one reported library for an application: a matched
// prefix that survived overlap resolution, with the class count
// aggregated from all rows rolled into it.
type KeptLibrary struct {
	Prefix     string
	Depth      int
	ClassCount int
}

// DeepHit is a keyword-flagged candidate prefix at depth >= 4,
// reported whether or not it matched the dictionary.
type DeepHit struct {
	Prefix       string
	Depth        int
	ClassCount   int
	InDictionary bool
}

// UnmatchedPrefix is a candidate prefix the dictionary knows nothing
// about, kept for later region-specific SDK discovery.
type UnmatchedPrefix struct {
	Prefix     string
	ClassCount int
}

// MatchStats are the per-application diagnostics.
type MatchStats struct {
	// Considered counts the inventory rows within the policy's
	// depth range (platform and first-party rows included).
	Considered int

	// ExcludedPlatform and ExcludedFirstParty count rows removed
	// before matching.
	ExcludedPlatform   int
	ExcludedFirstParty int

	// Candidate = Considered - both exclusions.
	Candidate int

	// Matched counts dictionary hits; Unmatched the rest.
	Matched   int
	Unmatched int

	// Kept counts libraries surviving overlap resolution.
	Kept int

	// MatchRate is Matched / Candidate, defined as 0 when
	// Candidate is 0.
	MatchRate float64
}

// AppResult is the matching outcome for one application.
type AppResult struct {
	App       dataset.Application
	Kept      []KeptLibrary
	Stats     MatchStats
	DeepHits  []DeepHit
	Unmatched []UnmatchedPrefix
}

// KeptSet returns the kept library prefixes as a set, the form the
// region/pair rollups consume.
func (r *AppResult) KeptSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.Kept))
	for _, k := range r.Kept {
		set[k.Prefix] = struct{}{}
	}
	return set
}

// Aggregator drives filtering, matching and overlap resolution for one
// application at a time. It is stateless across applications: the
// dictionary and policy are shared read-only, and each Analyze call
// works purely on its own inputs.
type Aggregator struct {
	dict   *Dictionary
	policy Policy
}

// NewAggregator builds an aggregator over a loaded dictionary and a
// matching policy.
func NewAggregator(dict *Dictionary, policy Policy) *Aggregator {
	return &Aggregator{dict: dict, policy: policy}
}

// Policy returns the aggregator's matching policy.
func (a *Aggregator) Policy() Policy {
	return a.policy
}

// Analyze computes the matching outcome for one application from its
// prefix inventory rows.
func (a *Aggregator) Analyze(app dataset.Application, rows []dataset.PrefixCount) *AppResult {
	fp := NewFirstPartyResolver(app.Package)

	stats := MatchStats{}
	var matched []string
	matchedClassSum := make(map[string]int)
	var deepHits []DeepHit
	var unmatched []UnmatchedPrefix

	for _, row := range rows {
		if row.Depth < a.policy.MinDepth || row.Depth > a.policy.MaxDepth {
			continue
		}
		stats.Considered++

		if prefix.IsPlatform(row.Prefix) {
			stats.ExcludedPlatform++
			continue
		}
		if fp.IsFirstParty(row.Prefix) {
			stats.ExcludedFirstParty++
			continue
		}

		stats.Candidate++

		if row.Depth >= deepHitMinDepth {
			if kw := matchKeyword(row.Prefix); kw {
				deepHits = append(deepHits, DeepHit{
					Prefix:       row.Prefix,
					Depth:        row.Depth,
					ClassCount:   row.ClassCount,
					InDictionary: a.dict.Contains(row.Prefix),
				})
			}
		}

		if a.dict.Contains(row.Prefix) {
			stats.Matched++
			matched = append(matched, row.Prefix)
			matchedClassSum[row.Prefix] += row.ClassCount
		} else {
			stats.Unmatched++
			if a.policy.UnmatchedDetail {
				unmatched = append(unmatched, UnmatchedPrefix{
					Prefix:     row.Prefix,
					ClassCount: row.ClassCount,
				})
			}
		}
	}

	if stats.Candidate > 0 {
		stats.MatchRate = float64(stats.Matched) / float64(stats.Candidate)
	}

	var keptPrefixes []string
	switch a.policy.Strategy {
	case KeepLongest:
		keptPrefixes = KeepLongestMatches(matched)
	default:
		keptPrefixes = sortKeepAll(matched, matchedClassSum)
	}
	stats.Kept = len(keptPrefixes)

	kept := make([]KeptLibrary, 0, len(keptPrefixes))
	for _, p := range keptPrefixes {
		kept = append(kept, KeptLibrary{
			Prefix:     p,
			Depth:      prefix.Depth(p),
			ClassCount: matchedClassSum[p],
		})
	}

	sortDeepHits(deepHits)
	unmatched = topUnmatched(unmatched, a.policy.UnmatchedTop)

	return &AppResult{
		App:       app,
		Kept:      kept,
		Stats:     stats,
		DeepHits:  deepHits,
		Unmatched: unmatched,
	}
}

// matchKeyword reports whether the lowercased prefix contains any of
// the suspicious tokens.
func matchKeyword(p string) bool {
	low := strings.ToLower(p)
	for _, kw := range deepHitKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// sortKeepAll orders keep-all results by descending aggregated class
// count, then ascending prefix, the order the long tables are written.
func sortKeepAll(matched []string, classSum map[string]int) []string {
	out := make([]string, len(matched))
	copy(out, matched)
	sort.Slice(out, func(i, j int) bool {
		ci, cj := classSum[out[i]], classSum[out[j]]
		if ci != cj {
			return ci > cj
		}
		return out[i] < out[j]
	})
	return out
}

// sortDeepHits orders deep hits by descending class count, then prefix.
func sortDeepHits(hits []DeepHit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].ClassCount != hits[j].ClassCount {
			return hits[i].ClassCount > hits[j].ClassCount
		}
		return hits[i].Prefix < hits[j].Prefix
	})
}

// topUnmatched keeps the top-N unmatched prefixes by class count.
// A zero or negative limit keeps everything that was collected.
func topUnmatched(unmatched []UnmatchedPrefix, limit int) []UnmatchedPrefix {
	sort.Slice(unmatched, func(i, j int) bool {
		if unmatched[i].ClassCount != unmatched[j].ClassCount {
			return unmatched[i].ClassCount > unmatched[j].ClassCount
		}
		return unmatched[i].Prefix < unmatched[j].Prefix
	})
	if limit > 0 && len(unmatched) > limit {
		unmatched = unmatched[:limit]
	}
	return unmatched
}
