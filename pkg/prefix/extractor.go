// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package prefix turns flat lists of fully-qualified class names into
// package-name prefix inventories.
//
// Library matching works on package prefixes, not full class names:
// a prefix at a useful depth is a stable proxy for library identity,
// and keeping per-prefix class counts lets later stages estimate
// confidence, detect obfuscation, and quantify unknown surface.
package prefix

import (
	"sort"
	"strings"
)

const (
	// MinDepth is the shallowest prefix emitted for a class name.
	MinDepth = 2

	// MaxDepth is the deepest prefix emitted for a class name.
	MaxDepth = 6
)

// Depth returns the number of dot-separated segments in a prefix.
func Depth(prefix string) int {
	return strings.Count(prefix, ".") + 1
}

// Expand returns every truncation of a class name from MinDepth up to
// min(MaxDepth, total segments). A class with fewer than MinDepth
// segments yields nothing.
func Expand(class string) []string {
	parts := strings.Split(class, ".")
	if len(parts) < MinDepth {
		return nil
	}
	lim := MaxDepth
	if len(parts) < lim {
		lim = len(parts)
	}
	out := make([]string, 0, lim-MinDepth+1)
	for d := MinDepth; d <= lim; d++ {
		out = append(out, strings.Join(parts[:d], "."))
	}
	return out
}

// Inventory is the prefix inventory of one application: per-prefix class
// counts, plus the same counts bucketed by depth for the first-party
// guess and obfuscation heuristics.
type Inventory struct {
	// Classes is the number of non-platform class names ingested.
	Classes int

	// Counts maps each prefix to the number of classes that begin
	// with it (one increment per class, not per occurrence).
	Counts map[string]int

	// ByDepth maps depth to the prefix counts at that depth.
	ByDepth map[int]map[string]int
}

// Build accumulates the prefix inventory for a list of non-platform
// class names. Platform classes must be filtered out beforehand; Build
// does not re-check them.
func Build(classes []string) *Inventory {
	inv := &Inventory{
		Classes: len(classes),
		Counts:  make(map[string]int),
		ByDepth: make(map[int]map[string]int),
	}
	for _, c := range classes {
		for _, p := range Expand(c) {
			inv.Counts[p]++
			d := Depth(p)
			if inv.ByDepth[d] == nil {
				inv.ByDepth[d] = make(map[string]int)
			}
			inv.ByDepth[d][p]++
		}
	}
	return inv
}

// UniqueAtDepth returns the number of distinct prefixes at a depth.
func (inv *Inventory) UniqueAtDepth(d int) int {
	return len(inv.ByDepth[d])
}

// topAtDepth returns the highest-count prefix at a depth and its count.
// Ties break lexicographically so reruns are byte-identical.
func (inv *Inventory) topAtDepth(d int) (string, int) {
	var top string
	var topCount int
	for p, cnt := range inv.ByDepth[d] {
		if cnt > topCount || (cnt == topCount && (top == "" || p < top)) {
			top, topCount = p, cnt
		}
	}
	return top, topCount
}

// FirstPartyGuess returns the most probable first-party namespace:
// the depth-3 prefix with the highest class count, falling back to the
// highest-count depth-2 prefix when no depth-3 prefixes exist.
func (inv *Inventory) FirstPartyGuess() string {
	if top, _ := inv.topAtDepth(3); top != "" {
		return top
	}
	top, _ := inv.topAtDepth(2)
	return top
}

// TopDepth3 returns the highest-count depth-3 prefix and its class count.
func (inv *Inventory) TopDepth3() (string, int) {
	return inv.topAtDepth(3)
}

// ObfuscationScore estimates identifier renaming as the fraction of
// depth-3 class occurrences whose prefix consists of three segments of
// at most 2 characters each (a.b.c style). Returns 0 when the app has
// no depth-3 prefixes.
func (inv *Inventory) ObfuscationScore() float64 {
	d3 := inv.ByDepth[3]
	if len(d3) == 0 {
		return 0.0
	}
	total := 0
	obfuscated := 0
	for p, cnt := range d3 {
		total += cnt
		toks := strings.Split(p, ".")
		if len(toks) != 3 {
			continue
		}
		short := true
		for _, t := range toks {
			if len(t) > 2 {
				short = false
				break
			}
		}
		if short {
			obfuscated += cnt
		}
	}
	if total == 0 {
		return 0.0
	}
	return float64(obfuscated) / float64(total)
}

// Count pairs a prefix with its class count for ordered output.
type Count struct {
	Prefix     string
	Depth      int
	ClassCount int
}

// SortedCounts returns all prefixes ordered by descending class count,
// then ascending prefix, the order the inventory CSVs are written in.
func (inv *Inventory) SortedCounts() []Count {
	out := make([]Count, 0, len(inv.Counts))
	for p, cnt := range inv.Counts {
		out = append(out, Count{Prefix: p, Depth: Depth(p), ClassCount: cnt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClassCount != out[j].ClassCount {
			return out[i].ClassCount > out[j].ClassCount
		}
		return out[i].Prefix < out[j].Prefix
	})
	return out
}

// SortedPrefixes returns all unique prefixes in lexical order, the
// order the unique-prefix text files are written in.
func (inv *Inventory) SortedPrefixes() []string {
	out := make([]string, 0, len(inv.Counts))
	for p := range inv.Counts {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
