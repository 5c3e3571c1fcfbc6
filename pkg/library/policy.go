// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package library

import "fmt"

// Strategy selects how overlapping dictionary matches are resolved.
type Strategy int

const (
	// KeepAll keeps every dictionary hit within the depth range.
	KeepAll Strategy = iota

	// KeepLongest collapses matches to the most specific
	// non-overlapping subset (longest-match resolution).
	KeepLongest
)

// String returns the human-readable name of the strategy.
func (s Strategy) String() string {
	switch s {
	case KeepAll:
		return "keep-all"
	case KeepLongest:
		return "keep-longest"
	default:
		return "unknown"
	}
}

// Policy is the single configurable matching policy: a depth range plus
// an overlap-resolution strategy. The three historical matcher variants
// are presets of this one contract rather than separate code paths.
type Policy struct {
	// Name identifies the policy in logs and output paths.
	Name string

	// MinDepth and MaxDepth bound the prefix depths considered.
	MinDepth int
	MaxDepth int

	// Strategy resolves overlapping matches.
	Strategy Strategy

	// UnmatchedDetail enables per-app unmatched-prefix reporting,
	// used to discover SDKs the dictionary has not yet catalogued.
	UnmatchedDetail bool

	// RegionTop bounds the per-region library-presence summary.
	RegionTop int

	// UnmatchedTop bounds the per-app unmatched-prefix report.
	UnmatchedTop int

	// UnmatchedRegionTop bounds the per-region unmatched-prefix
	// rollup, independently of RegionTop.
	UnmatchedRegionTop int
}

// ExactPolicy matches every dictionary hit at depths 3..6.
func ExactPolicy() Policy {
	return Policy{
		Name:               "exact",
		MinDepth:           3,
		MaxDepth:           6,
		Strategy:           KeepAll,
		UnmatchedDetail:    true,
		RegionTop:          200,
		UnmatchedTop:       200,
		UnmatchedRegionTop: 300,
	}
}

// DepthThreePolicy matches at depth 3 only, avoiding denominator
// explosion and overly generic matches.
func DepthThreePolicy() Policy {
	return Policy{
		Name:               "d3",
		MinDepth:           3,
		MaxDepth:           3,
		Strategy:           KeepAll,
		UnmatchedDetail:    true,
		RegionTop:          300,
		UnmatchedTop:       200,
		UnmatchedRegionTop: 300,
	}
}

// LongestPolicy matches at depths 3..6 and keeps only the most
// specific non-overlapping matches. Some ecosystems hide functional
// modules deeper than depth 3 (e.g. com.vk.superapp.miniappsads);
// this policy reports those without double-counting their SDK roots.
func LongestPolicy() Policy {
	return Policy{
		Name:      "longest",
		MinDepth:  3,
		MaxDepth:  6,
		Strategy:  KeepLongest,
		RegionTop: 400,
	}
}

// ParsePolicy resolves a policy preset by name.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "exact":
		return ExactPolicy(), nil
	case "d3":
		return DepthThreePolicy(), nil
	case "longest":
		return LongestPolicy(), nil
	default:
		return Policy{}, fmt.Errorf("unknown matching policy %q (want exact, d3 or longest)", name)
	}
}
