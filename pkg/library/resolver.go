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

	"github.com/JK8789/thesis-apk-study/pkg/prefix"
)

// KeepLongestMatches collapses a set of matched prefixes to the most
// specific non-overlapping subset.
//
// Deeper prefixes encode more specific functional modules (an ads
// sub-module of a larger SDK); reporting both the coarse SDK root and
// its specific sub-module would double-count the same library. The
// result is an antichain over the dot-hierarchy: no kept prefix is a
// dot-ancestor of another. Ties in depth between unrelated prefixes are
// never merged; only true ancestor/descendant relationships trigger
// suppression.
//
// The result is deterministic for any input ordering and idempotent:
// resolving an already-resolved set returns it unchanged.
func KeepLongestMatches(matched []string) []string {
	candidates := make([]string, len(matched))
	copy(candidates, matched)

	// Depth descending, then lexical ascending for a deterministic
	// tie-break.
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := prefix.Depth(candidates[i]), prefix.Depth(candidates[j])
		if di != dj {
			return di > dj
		}
		return candidates[i] < candidates[j]
	})

	kept := make([]string, 0, len(candidates))
	keptSet := make(map[string]struct{}, len(candidates))

	for _, p := range candidates {
		if _, dup := keptSet[p]; dup {
			continue
		}
		// If any already-kept prefix is a proper descendant of p,
		// then p is too generic: a more specific match already
		// covers it. Example: kept has com.vk.superapp.miniappsads,
		// candidate is com.vk.superapp -> drop the candidate.
		redundant := false
		for k := range keptSet {
			if strings.HasPrefix(k, p+".") {
				redundant = true
				break
			}
		}
		if redundant {
			continue
		}
		kept = append(kept, p)
		keptSet[p] = struct{}{}
	}

	// Candidates were visited deepest-first, so kept is already in
	// (depth desc, name asc) order, the stable output order.
	return kept
}
