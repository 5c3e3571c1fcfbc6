// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package library

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestKeepLongestMatches(t *testing.T) {
	tests := []struct {
		name    string
		matched []string
		want    []string
	}{
		{
			name:    "ancestor suppressed by specific match",
			matched: []string{"com.vk.superapp", "com.vk.superapp.miniappsads"},
			want:    []string{"com.vk.superapp.miniappsads"},
		},
		{
			name:    "unrelated prefixes at the same depth all kept",
			matched: []string{"com.facebook.ads", "com.vk.superapp", "org.greenrobot.eventbus"},
			want:    []string{"com.facebook.ads", "com.vk.superapp", "org.greenrobot.eventbus"},
		},
		{
			name: "chain collapses to the deepest",
			matched: []string{
				"com.vk.superapp",
				"com.vk.superapp.ads",
				"com.vk.superapp.ads.internal",
			},
			want: []string{"com.vk.superapp.ads.internal"},
		},
		{
			name: "two branches under one root both kept, root dropped",
			matched: []string{
				"com.vk.superapp",
				"com.vk.superapp.ads",
				"com.vk.superapp.core",
			},
			want: []string{"com.vk.superapp.ads", "com.vk.superapp.core"},
		},
		{
			name:    "string prefix without dot boundary is not an ancestor",
			matched: []string{"com.vk.super", "com.vk.superapp"},
			want:    []string{"com.vk.super", "com.vk.superapp"},
		},
		{
			name:    "duplicates collapse",
			matched: []string{"com.vk.superapp", "com.vk.superapp"},
			want:    []string{"com.vk.superapp"},
		},
		{
			name:    "empty input",
			matched: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeepLongestMatches(tt.matched)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("KeepLongestMatches(%v) = %v, want %v", tt.matched, got, tt.want)
			}
		})
	}
}

// No two kept prefixes may be in a dot-ancestor relationship.
func TestKeepLongestMatches_Antichain(t *testing.T) {
	matched := []string{
		"com.vk.superapp",
		"com.vk.superapp.miniappsads",
		"com.vk.superapp.miniappsads.internal",
		"com.facebook",
		"com.facebook.ads",
		"org.greenrobot.eventbus",
		"ru.yandex.metrica.push",
		"ru.yandex.metrica",
	}

	kept := KeepLongestMatches(matched)
	for i, a := range kept {
		for j, b := range kept {
			if i == j {
				continue
			}
			if strings.HasPrefix(b, a+".") {
				t.Errorf("antichain violated: %q is an ancestor of %q", a, b)
			}
		}
	}
}

func TestKeepLongestMatches_Idempotent(t *testing.T) {
	matched := []string{
		"com.vk.superapp",
		"com.vk.superapp.miniappsads",
		"com.facebook.ads",
	}

	once := KeepLongestMatches(matched)
	twice := KeepLongestMatches(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("resolver not idempotent: %v then %v", once, twice)
	}
}

func TestKeepLongestMatches_OrderIndependent(t *testing.T) {
	matched := []string{
		"com.vk.superapp",
		"com.vk.superapp.miniappsads",
		"com.vk.superapp.core",
		"com.facebook.ads",
		"org.greenrobot.eventbus",
	}

	want := KeepLongestMatches(matched)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]string, len(matched))
		copy(shuffled, matched)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := KeepLongestMatches(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("input order changed the result: %v vs %v", got, want)
		}
	}
}

func TestKeepLongestMatches_StableOutputOrder(t *testing.T) {
	kept := KeepLongestMatches([]string{
		"org.greenrobot.eventbus",
		"com.facebook.ads.internal",
		"com.appsflyer.sdk",
	})

	// Depth descending, then lexical ascending.
	want := []string{
		"com.facebook.ads.internal",
		"com.appsflyer.sdk",
		"org.greenrobot.eventbus",
	}
	if !reflect.DeepEqual(kept, want) {
		t.Errorf("output order = %v, want %v", kept, want)
	}
}
