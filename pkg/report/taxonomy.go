// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"sort"
	"strings"
)

// TypeOther is the fallback taxonomy label.
const TypeOther = "other"

// TaxonomyRule tags a prefix with a type when any of its tokens appear
// as a substring of the lowercased prefix.
type TaxonomyRule struct {
	Label  string
	Tokens []string
}

// taxonomyRules is an explicit ordered rule list; the first matching
// rule wins. Keyword classification is inherently ambiguous, so the
// order is part of the contract: anti-fraud vendors are checked before
// payments (a fraud-prevention SDK often mentions "pay"), payments
// before ads, and specific vendor anchors before generic tokens like
// "analytics". Edit with care; reordering rules changes labels.
var taxonomyRules = []TaxonomyRule{
	{
		Label: "anti_fraud",
		Tokens: []string{
			"geetest", "captcha", "recaptcha", "seon", "fraud",
			"risk", "threat", "fingerprint",
		},
	},
	{
		// Vendor-anchored payment names.
		Label:  "payments",
		Tokens: []string{"stripe", "paypal", "adyen", "braintree", "klarna"},
	},
	{
		// Structural payment patterns, safer than a raw "pay"
		// substring.
		Label: "payments",
		Tokens: []string{
			"payment", "payments", "billing", "vkpay", "sbpay",
			"samsungpay", ".pay.", ".paylib", "googlepay", "applepay",
			".paylibrary.", "pay.",
		},
	},
	{
		// Ads requires structure or known vendors; a raw "ad"
		// substring would tag half the ecosystem.
		Label: "ads",
		Tokens: []string{
			".ads.", "admob", "doubleclick", "applovin", "ironsource",
			"adcolony", "unity3d.ads", "facebook.ads", "adservice",
			"yandex.mobile.ads", "miniappsads", "google.android.gms.ads",
		},
	},
	{
		Label: "analytics",
		Tokens: []string{
			"adjust.sdk", "appmetrica", "firebase.analytics", "amplitude",
			"mixpanel", "my.tracker", "flurry", "segment", "analytics",
			"tracker",
		},
	},
	{
		Label:  "push",
		Tokens: []string{"firebase.messaging", "push", "onesignal", "pushwoosh"},
	},
	{
		Label: "crash",
		Tokens: []string{
			"sentry", "bugsnag", "crashlytics", "crash",
			"firebase.crashlytics",
		},
	},
	{
		Label: "networking",
		Tokens: []string{
			"okhttp", "network", "retrofit", "cronet", "org.chromium.net",
		},
	},
}

// TypeLabels returns every label the rule list can produce, sorted,
// with TypeOther last. This fixes the column order of the per-type
// tables.
func TypeLabels() []string {
	seen := make(map[string]struct{})
	for _, r := range taxonomyRules {
		seen[r.Label] = struct{}{}
	}
	labels := make([]string, 0, len(seen)+1)
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return append(labels, TypeOther)
}

// Classify returns the taxonomy label for a library prefix.
func Classify(prefix string) string {
	p := strings.ToLower(prefix)
	for _, rule := range taxonomyRules {
		for _, tok := range rule.Tokens {
			if strings.Contains(p, tok) {
				return rule.Label
			}
		}
	}
	return TypeOther
}

// TaxonomyRow pairs a prefix with its automatic type label.
type TaxonomyRow struct {
	Prefix   string
	TypeAuto string
}

// BuildTaxonomy classifies the union of the given prefixes and returns
// one row per distinct prefix, sorted.
func BuildTaxonomy(prefixes []string) []TaxonomyRow {
	seen := make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		seen[p] = struct{}{}
	}

	uniq := make([]string, 0, len(seen))
	for p := range seen {
		uniq = append(uniq, p)
	}
	sort.Strings(uniq)

	out := make([]TaxonomyRow, 0, len(uniq))
	for _, p := range uniq {
		out = append(out, TaxonomyRow{Prefix: p, TypeAuto: Classify(p)})
	}
	return out
}
