// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sniffDelimiter picks the field delimiter for a tabular input file.
//
// The upstream extraction tooling emits comma CSVs, but some registry
// exports arrive tab-separated. A file is treated as TSV only when the
// sampled head contains tabs and no commas, mirroring how the rest of
// the toolchain reads these files.
func sniffDelimiter(data []byte) rune {
	sample := string(data)
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	if strings.ContainsRune(sample, '\t') && !strings.ContainsRune(sample, ',') {
		return '\t'
	}
	return ','
}

// ReadTable reads a delimited file into a header slice and row maps.
//
// The delimiter is sniffed from the file head (comma or tab). Rows with
// a different field count than the header are returned as-is by the csv
// package only when they parse; short rows leave missing columns empty.
func ReadTable(path string) (header []string, rows []map[string]string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read table %s: %w", path, err)
	}

	r := csv.NewReader(strings.NewReader(string(data)))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	header = records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows = make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// WriteTable writes a CSV file with a fixed header row.
//
// The file is written to a temp sibling first and renamed into place so
// a crashed run never leaves a truncated table behind. Parent directories
// are created as needed.
func WriteTable(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", path, err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
