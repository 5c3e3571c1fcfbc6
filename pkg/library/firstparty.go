// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package library

import "strings"

// root2Exceptions are two-segment ecosystem roots that are never used
// for first-party exclusion. These belong to very large platform
// vendors; excluding everything under them would suppress unrelated
// third-party code shipped under the same vendor umbrella (an app
// packaged as com.google.android must not hide com.google.firebase).
var root2Exceptions = map[string]struct{}{
	"com.google":   {},
	"com.android":  {},
	"org.telegram": {},
}

// FirstPartyResolver decides whether a candidate prefix belongs to the
// application itself rather than to a third party.
//
// The rule is two-tier: exact-package exclusion alone under-excludes
// code the developer ships under a broader organizational namespace,
// but naively excluding any two-segment root would also suppress
// legitimate third-party libraries published under widely-shared vendor
// roots. Hence the conservative root2 tier with its exception set.
type FirstPartyResolver struct {
	pkg   string
	root2 string
}

// NewFirstPartyResolver builds a resolver for one application's own
// package name. An empty package disables the exact-package tier; the
// root2 tier still applies when the package has at least two segments.
func NewFirstPartyResolver(pkg string) *FirstPartyResolver {
	pkg = strings.TrimSpace(pkg)
	root2 := pkg
	if parts := strings.Split(pkg, "."); len(parts) >= 2 {
		root2 = parts[0] + "." + parts[1]
	}
	return &FirstPartyResolver{pkg: pkg, root2: root2}
}

// IsFirstParty classifies a candidate prefix.
//
// Order matters:
//  1. Exact package, or a subpackage of it.
//  2. The two-segment organizational root (only when it really has two
//     segments and is not a protected ecosystem root).
func (r *FirstPartyResolver) IsFirstParty(prefix string) bool {
	if r.pkg != "" {
		if prefix == r.pkg || strings.HasPrefix(prefix, r.pkg+".") {
			return true
		}
	}

	if r.root2 != "" && strings.Count(r.root2, ".") == 1 {
		if _, protected := root2Exceptions[r.root2]; !protected {
			if prefix == r.root2 || strings.HasPrefix(prefix, r.root2+".") {
				return true
			}
		}
	}

	return false
}
