// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		requested string
		want      string
	}{
		{"exact match passes through", "AI Ethics", "", "AI Ethics"},
		{"trend substring", "latest ai trends and news", "", CategoryAITrends},
		{"deep learning stuff", "deep learning stuff", "", CategoryDeepLearning},
		{"machine wins over learn", "machine learning research", "", CategoryMachineLearning},
		{"ethics", "the ethics of ai", "", CategoryAIEthics},
		{"applications", "practical AI applications", "", CategoryAIApplications},
		{"bare learn falls to deep learning", "e-learning", "", CategoryDeepLearning},
		{"no match uses requested", "quantum computing", CategoryAIEthics, CategoryAIEthics},
		{"no match, bad requested", "quantum computing", "nonsense", CategoryAITrends},
		{"empty everything", "", "", CategoryAITrends},
		{"whitespace trimmed", "  Deep Learning  ", "", CategoryDeepLearning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCategory(tt.raw, tt.requested)
			if got != tt.want {
				t.Errorf("NormalizeCategory(%q, %q) = %q, want %q", tt.raw, tt.requested, got, tt.want)
			}
		})
	}
}

func TestNormalizeCategoryAlwaysKnown(t *testing.T) {
	inputs := []string{"", "x", "trendy deep ethics", "AI Trends", "learnings"}
	for _, in := range inputs {
		if got := NormalizeCategory(in, ""); !IsKnownCategory(got) {
			t.Errorf("NormalizeCategory(%q) = %q, not in the closed set", in, got)
		}
	}
}
