// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PrefixCount is one row of a per-application prefix inventory:
// a package-name prefix, its segment depth, and the number of classes
// in the owning application that begin with it.
type PrefixCount struct {
	Prefix     string
	Depth      int
	ClassCount int
}

// LoadPrefixCounts reads one application's prefix inventory CSV.
//
// Required columns: prefix, depth, class_count. A file that cannot be
// opened is a fatal missing-input condition for the caller; individual
// rows with an empty prefix or an unparsable depth/class_count are
// recovered locally by skipping just that row. A missing depth is
// derived from the prefix itself.
func LoadPrefixCounts(path string) ([]PrefixCount, error) {
	header, rows, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	if err := checkColumns(header, []string{"prefix", "depth", "class_count"}); err != nil {
		return nil, fmt.Errorf("prefix counts %s: %w", path, err)
	}

	out := make([]PrefixCount, 0, len(rows))
	for _, row := range rows {
		prefix := strings.TrimSpace(row["prefix"])
		if prefix == "" {
			continue
		}

		depth := 0
		if raw := strings.TrimSpace(row["depth"]); raw != "" {
			d, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			depth = d
		}
		if depth == 0 {
			depth = strings.Count(prefix, ".") + 1
		}

		count := 0
		if raw := strings.TrimSpace(row["class_count"]); raw != "" {
			c, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			count = c
		}

		out = append(out, PrefixCount{Prefix: prefix, Depth: depth, ClassCount: count})
	}
	return out, nil
}

// LoadClassList reads a raw class-name list: one fully-qualified,
// dot-separated class name per line. Blank lines are skipped.
func LoadClassList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read class list %s: %w", path, err)
	}
	defer f.Close()

	var classes []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		c := strings.TrimSpace(scanner.Text())
		if c == "" {
			continue
		}
		classes = append(classes, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan class list %s: %w", path, err)
	}
	return classes, nil
}
