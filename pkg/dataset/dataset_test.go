// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"mixed prefers comma", "a,b\tc\n", ','},
		{"empty", "", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sniffDelimiter([]byte(tt.data)))
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	path := writeFile(t, "apps_baseline.csv",
		"region,category,pair_id,app_name,apk_path,sha256,package\n"+
			"ru,bank,p01,OzonBank,apks/a.apk,abcd01,ru.ozon.app\n"+
			"eu,bank,p01,Revolut,apks/b.apk,ABCD02,com.revolut.revolut\n"+
			"ru,social,p02,NoHash,apks/c.apk,,ru.some.app\n")

	apps, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, apps, 2, "row without sha256 must be skipped")

	assert.Equal(t, "ABCD01", apps[0].SHA256, "sha256 upper-cased on ingest")
	assert.Equal(t, RegionRU, apps[0].Region)
	assert.Equal(t, "p01", apps[0].PairID)
	assert.Equal(t, "ru.ozon.app", apps[0].Package)
	assert.Equal(t, RegionEU, apps[1].Region)
}

func TestLoadRegistry_TabDelimited(t *testing.T) {
	path := writeFile(t, "apps_baseline.tsv",
		"region\tcategory\tpair_id\tapp_name\tapk_path\tsha256\tpackage\n"+
			"ru\tbank\tp01\tApp\tapks/a.apk\taaaa\tru.example.app\n")

	apps, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "AAAA", apps[0].SHA256)
}

func TestLoadRegistry_SchemaMismatch(t *testing.T) {
	path := writeFile(t, "apps_baseline.csv",
		"region,category,app_name\nru,bank,App\n")

	_, err := LoadRegistry(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "pair_id")
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadPrefixCounts(t *testing.T) {
	path := writeFile(t, "AAAA_counts.csv",
		"sha256,prefix,depth,class_count\n"+
			"AAAA,com.vk.superapp,3,120\n"+
			"AAAA,,3,5\n"+ // empty prefix: skipped
			"AAAA,com.bad.depth,x,5\n"+ // unparsable depth: skipped
			"AAAA,com.bad.count,3,abc\n"+ // unparsable count: skipped
			"AAAA,com.derive.depth,,7\n") // depth derived from prefix

	rows, err := LoadPrefixCounts(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, PrefixCount{Prefix: "com.vk.superapp", Depth: 3, ClassCount: 120}, rows[0])
	assert.Equal(t, PrefixCount{Prefix: "com.derive.depth", Depth: 3, ClassCount: 7}, rows[1])
}

func TestLoadPrefixCounts_SchemaMismatch(t *testing.T) {
	path := writeFile(t, "bad.csv", "prefix,count\ncom.a.b,3\n")
	_, err := LoadPrefixCounts(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestWriteTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "libs.csv")

	err := WriteTable(path,
		[]string{"region", "library_prefix", "apps_with_library"},
		[][]string{
			{"ru", "com.vk.superapp", "12"},
			{"eu", "com.stripe.android", "9"},
		})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"region,library_prefix,apps_with_library\n"+
			"ru,com.vk.superapp,12\n"+
			"eu,com.stripe.android,9\n",
		string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away")
}

func TestLoadClassList(t *testing.T) {
	path := writeFile(t, "AAAA.txt",
		"com.vk.superapp.miniappsads.Loader\n\ncom.vk.superapp.core.Init\n  \n")

	classes, err := LoadClassList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"com.vk.superapp.miniappsads.Loader",
		"com.vk.superapp.core.Init",
	}, classes)
}
