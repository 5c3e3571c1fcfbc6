// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package library identifies third-party libraries inside an
// application's package-prefix inventory.
//
// The pipeline is: filter out platform and first-party prefixes, match
// the survivors against a dictionary of known library prefixes, then
// optionally collapse overlapping matches to the most specific
// non-overlapping subset (longest-match resolution). Matching against
// the dictionary is always exact string equality on the full
// depth-qualified prefix, never hierarchical containment: a prefix must
// literally appear in the dictionary at the depth it was generated to
// count as matched.
package library

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Dictionary is an immutable set of known third-party library package
// prefixes, loaded once per run and shared read-only across all
// applications processed in that run.
type Dictionary struct {
	prefixes map[string]struct{}
}

// LoadDictionary reads a newline-delimited prefix list. Lines starting
// with '#' and blank lines are ignored; the only normalization is
// whitespace trimming.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read library dictionary %s: %w", path, err)
	}
	defer f.Close()

	d := &Dictionary{prefixes: make(map[string]struct{})}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		p := strings.TrimSpace(scanner.Text())
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		d.prefixes[p] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan library dictionary %s: %w", path, err)
	}
	return d, nil
}

// NewDictionary builds a dictionary from an in-memory prefix list.
func NewDictionary(prefixes ...string) *Dictionary {
	d := &Dictionary{prefixes: make(map[string]struct{}, len(prefixes))}
	for _, p := range prefixes {
		d.prefixes[p] = struct{}{}
	}
	return d
}

// Contains reports whether the exact prefix is in the dictionary.
func (d *Dictionary) Contains(prefix string) bool {
	_, ok := d.prefixes[prefix]
	return ok
}

// Len returns the number of prefixes in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.prefixes)
}
