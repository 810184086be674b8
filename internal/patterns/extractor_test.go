// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"reflect"
	"testing"
)

func newTestExtractor() *Extractor {
	return NewExtractor(NewLibrary())
}

func TestExtractCategories(t *testing.T) {
	extractor := newTestExtractor()

	tests := []struct {
		name        string
		text        string
		category    string
		wantSubcats []string
	}{
		{
			name:        "temporal acute",
			text:        "Patient reports sudden sharp pain",
			category:    CategoryTemporal,
			wantSubcats: []string{"acute"},
		},
		{
			name:        "temporal chronic",
			text:        "ongoing fatigue for months",
			category:    CategoryTemporal,
			wantSubcats: []string{"chronic"},
		},
		{
			name:        "severity severe",
			text:        "intense and unbearable discomfort",
			category:    CategorySeverity,
			wantSubcats: []string{"severe"},
		},
		{
			name:        "quality pain descriptors",
			text:        "a sharp, burning sensation",
			category:    CategoryQuality,
			wantSubcats: []string{"pain"},
		},
		{
			name:        "condition diagnostic",
			text:        "diagnosed with hypertension last year",
			category:    CategoryCondition,
			wantSubcats: []string{"diagnostic"},
		},
		{
			name:        "risk factor lifestyle",
			text:        "patient history includes smoking",
			category:    CategoryRiskFactor,
			wantSubcats: []string{"lifestyle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := extractor.Extract(tt.text)
			got := Subcategories(results, tt.category)
			if !reflect.DeepEqual(got, tt.wantSubcats) {
				t.Errorf("Extract(%q)[%s] subcategories = %v, want %v",
					tt.text, tt.category, got, tt.wantSubcats)
			}
		})
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	extractor := newTestExtractor()

	lower := extractor.Extract("sudden sharp pain")
	upper := extractor.Extract("SUDDEN SHARP PAIN")
	if !reflect.DeepEqual(lower, upper) {
		t.Errorf("case-insensitive extraction mismatch: %v vs %v", lower, upper)
	}
}

func TestExtractEmptyText(t *testing.T) {
	extractor := newTestExtractor()

	for _, text := range []string{"", "   ", "\n\t"} {
		results := extractor.Extract(text)
		if len(results) != 0 {
			t.Errorf("Extract(%q) = %v, want empty", text, results)
		}
	}
}

func TestExtractNoMatches(t *testing.T) {
	extractor := newTestExtractor()

	results := extractor.Extract("the quick brown fox")
	if len(results) != 0 {
		t.Errorf("Extract returned %v for non-medical text, want empty", results)
	}
}

func TestExtractDeterministic(t *testing.T) {
	extractor := newTestExtractor()
	text := "sudden intense burning pain, diagnosed with diabetes, history of smoking"

	first := extractor.Extract(text)
	for i := 0; i < 10; i++ {
		if got := extractor.Extract(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Extract not deterministic on run %d: %v vs %v", i, got, first)
		}
	}
}

func TestMatchCounts(t *testing.T) {
	extractor := newTestExtractor()
	results := extractor.Extract("sudden sharp stabbing pain")

	// "sudden" in temporal/acute, "sharp" and "stabbing" in quality/pain.
	if got := MatchedTermCount(results); got != 3 {
		t.Errorf("MatchedTermCount = %d, want 3", got)
	}
	if got := MatchCount(results); got != 2 {
		t.Errorf("MatchCount = %d, want 2", got)
	}
}
