// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package contradiction

import (
	"reflect"
	"testing"
	"time"
)

func newTestChecker() *Checker {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewChecker()
	c.now = func() time.Time { return fixed }
	return c
}

func TestSplitComponents(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no connectives",
			text: "patient reports mild headache",
			want: []string{"patient reports mild headache"},
		},
		{
			name: "connective opens new component",
			text: "pain is both acute and chronic",
			want: []string{"pain is both acute", "and chronic"},
		},
		{
			name: "leading connective stays attached",
			text: "if symptoms persist then call a doctor",
			want: []string{"if symptoms persist", "then call a doctor"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitComponents(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitComponents(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFindContradictions(t *testing.T) {
	checker := newTestChecker()

	tests := []struct {
		name      string
		text      string
		wantKinds []Kind
	}{
		{
			name:      "temporal opposites",
			text:      "pain is both acute and chronic",
			wantKinds: []Kind{KindTemporal},
		},
		{
			name:      "severity opposites",
			text:      "mild discomfort but therefore severe distress",
			wantKinds: []Kind{KindSeverity},
		},
		{
			name:      "symptom pair",
			text:      "presenting fever and hypothermia",
			wantKinds: []Kind{KindSymptom},
		},
		{
			name:      "condition pair",
			text:      "hypertension while hypotension persists",
			wantKinds: []Kind{KindCondition},
		},
		{
			name:      "logical negation",
			text:      "patient has fever and patient has no fever",
			wantKinds: []Kind{KindLogicalNegation},
		},
		{
			name:      "clean statement",
			text:      "patient reports mild headache, no other symptoms",
			wantKinds: nil,
		},
		{
			name:      "single component never pairwise",
			text:      "acute chronic confusion in one clause",
			wantKinds: nil,
		},
		{
			name:      "empty",
			text:      "",
			wantKinds: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := checker.FindContradictions(tt.text, nil)
			var kinds []Kind
			for _, c := range found {
				kinds = append(kinds, c.Kind)
			}
			if !reflect.DeepEqual(kinds, tt.wantKinds) {
				t.Errorf("FindContradictions(%q) kinds = %v, want %v", tt.text, kinds, tt.wantKinds)
			}
		})
	}
}

func TestOppositeDirectionInsensitive(t *testing.T) {
	checker := newTestChecker()

	forward := checker.FindContradictions("acute flare and chronic history", nil)
	reverse := checker.FindContradictions("chronic history and acute flare", nil)
	if len(forward) != 1 || len(reverse) != 1 {
		t.Fatalf("expected one temporal contradiction each way, got %d and %d",
			len(forward), len(reverse))
	}
	if forward[0].Kind != KindTemporal || reverse[0].Kind != KindTemporal {
		t.Errorf("kinds = %s and %s, want temporal both ways", forward[0].Kind, reverse[0].Kind)
	}
}

func TestTruthConflict(t *testing.T) {
	checker := newTestChecker()

	truths := []string{"condition is chronic", "patient tolerates aspirin"}
	found := checker.FindContradictions("onset was acute", truths)
	if len(found) != 1 {
		t.Fatalf("got %d contradictions, want 1", len(found))
	}
	if found[0].Kind != KindTruthConflict {
		t.Errorf("Kind = %s, want truth_conflict", found[0].Kind)
	}
	if found[0].Right != "condition is chronic" {
		t.Errorf("Right = %q, want the conflicting truth", found[0].Right)
	}
}

func TestHasContradictionAgreesWithFind(t *testing.T) {
	checker := newTestChecker()

	texts := []string{
		"pain is both acute and chronic",
		"patient reports mild headache, no other symptoms",
		"presenting fever and hypothermia",
		"",
	}
	for _, text := range texts {
		find := len(checker.FindContradictions(text, nil)) > 0
		has := checker.HasContradiction(text, nil)
		if find != has {
			t.Errorf("HasContradiction(%q) = %v, FindContradictions non-empty = %v", text, has, find)
		}
	}
}

func TestFixedClockTimestamps(t *testing.T) {
	checker := newTestChecker()

	first := checker.FindContradictions("pain is both acute and chronic", nil)
	second := checker.FindContradictions("pain is both acute and chronic", nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results with a fixed clock differ: %v vs %v", first, second)
	}
}
