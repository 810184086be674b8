// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package contradiction detects logical and medical inconsistencies inside a
// statement and between a statement and previously accepted truths.
package contradiction

import (
	"strings"
	"time"
)

// Kind identifies which predicate flagged a contradiction.
type Kind string

const (
	KindLogicalNegation Kind = "logical_negation"
	KindTemporal        Kind = "temporal"
	KindSeverity        Kind = "severity"
	KindSymptom         Kind = "symptom"
	KindCondition       Kind = "condition"
	KindTruthConflict   Kind = "truth_conflict"
)

// Contradiction records one detected inconsistency between two text
// fragments (or between the statement and an accepted truth).
type Contradiction struct {
	Kind       Kind      `json:"kind" yaml:"kind"`
	Left       string    `json:"left" yaml:"left"`
	Right      string    `json:"right" yaml:"right"`
	DetectedAt time.Time `json:"detected_at" yaml:"detected_at"`
}

// Connective words that delimit logical components. A new component starts
// whenever one of these is seen and the current component is non-empty; the
// connective stays attached to the component it opens.
var connectives = map[string]bool{
	"and": true, "or": true, "not": true, "if": true, "then": true,
	"because": true, "therefore": true, "implies": true, "since": true,
	"while": true,
}

// Negation words used by the logical-negation predicate.
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "without": true,
}

// oppositePair is one entry in a direction-insensitive opposite table.
type oppositePair struct {
	left, right string
}

var temporalOpposites = []oppositePair{
	{"acute", "chronic"},
	{"sudden", "persistent"},
	{"new onset", "long-term"},
}

var severityOpposites = []oppositePair{
	{"mild", "severe"},
	{"minimal", "extreme"},
	{"light", "critical"},
}

// contradictoryEntities lists symptom and condition pairs that cannot
// coexist in one coherent statement. Hand-authored, not a clinical ontology.
var contradictorySymptoms = []oppositePair{
	{"bradycardia", "tachycardia"},
	{"fever", "hypothermia"},
	{"constipation", "diarrhea"},
	{"insomnia", "hypersomnia"},
}

var contradictoryConditions = []oppositePair{
	{"hypertension", "hypotension"},
	{"hyperglycemia", "hypoglycemia"},
	{"hyperthyroidism", "hypothyroidism"},
	{"dehydration", "overhydration"},
}

// Checker finds contradictions. It holds no mutable state and is safe for
// concurrent use; accepted truths are supplied per call by the session.
type Checker struct {
	now func() time.Time
}

// NewChecker creates a checker. The clock is fixed so results for identical
// input differ only in timestamps; tests may override it.
func NewChecker() *Checker {
	return &Checker{now: time.Now}
}

// FindContradictions returns every contradiction found in the statement and
// against the supplied truths. Empty or single-component statements yield an
// empty result for the pairwise predicates.
func (c *Checker) FindContradictions(text string, knownTruths []string) []Contradiction {
	return c.scan(text, knownTruths, false)
}

// HasContradiction is the short-circuiting variant used by the legality
// gate: it stops at the first contradiction. Both variants share the same
// predicates so they can never diverge.
func (c *Checker) HasContradiction(text string, knownTruths []string) bool {
	return len(c.scan(text, knownTruths, true)) > 0
}

func (c *Checker) scan(text string, knownTruths []string, firstOnly bool) []Contradiction {
	var found []Contradiction
	components := SplitComponents(text)

	// Pairwise predicates over statement components.
	for i := 0; i < len(components); i++ {
		for j := i + 1; j < len(components); j++ {
			for _, kind := range c.comparePair(components[i], components[j]) {
				found = append(found, c.record(kind, components[i], components[j]))
				if firstOnly {
					return found
				}
			}
		}
	}

	// Whole statement against accepted truths.
	for _, truth := range knownTruths {
		if len(c.comparePair(text, truth)) > 0 {
			found = append(found, c.record(KindTruthConflict, text, truth))
			if firstOnly {
				return found
			}
		}
	}

	return found
}

// comparePair applies every pairwise predicate to two fragments and returns
// the kinds that fire, in fixed predicate order.
func (c *Checker) comparePair(left, right string) []Kind {
	var kinds []Kind
	if negationConflict(left, right) {
		kinds = append(kinds, KindLogicalNegation)
	}
	if oppositeConflict(left, right, temporalOpposites) {
		kinds = append(kinds, KindTemporal)
	}
	if oppositeConflict(left, right, severityOpposites) {
		kinds = append(kinds, KindSeverity)
	}
	if oppositeConflict(left, right, contradictorySymptoms) {
		kinds = append(kinds, KindSymptom)
	}
	if oppositeConflict(left, right, contradictoryConditions) {
		kinds = append(kinds, KindCondition)
	}
	return kinds
}

func (c *Checker) record(kind Kind, left, right string) Contradiction {
	return Contradiction{Kind: kind, Left: left, Right: right, DetectedAt: c.now()}
}

// SplitComponents tokenizes a statement into logical components at
// connective boundaries. A maximal run of words between connectives is one
// component; the connective itself opens the following component.
func SplitComponents(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	var components []string
	var current []string

	for _, word := range words {
		if connectives[trimWord(word)] && len(current) > 0 {
			components = append(components, strings.Join(current, " "))
			current = []string{word}
			continue
		}
		current = append(current, word)
	}
	if len(current) > 0 {
		components = append(components, strings.Join(current, " "))
	}
	return components
}

// negationConflict reports whether exactly one fragment is negated and the
// two share at least one term once negation words are removed.
func negationConflict(left, right string) bool {
	leftWords := strings.Fields(strings.ToLower(left))
	rightWords := strings.Fields(strings.ToLower(right))

	leftNegated := containsNegation(leftWords)
	rightNegated := containsNegation(rightWords)
	if leftNegated == rightNegated {
		return false
	}

	remaining := make(map[string]bool)
	for _, w := range leftWords {
		w = trimWord(w)
		if w != "" && !negations[w] {
			remaining[w] = true
		}
	}
	for _, w := range rightWords {
		w = trimWord(w)
		if w != "" && !negations[w] && remaining[w] {
			return true
		}
	}
	return false
}

// oppositeConflict reports whether the two fragments land on opposite sides
// of the table, in either direction.
func oppositeConflict(left, right string, table []oppositePair) bool {
	l := strings.ToLower(left)
	r := strings.ToLower(right)
	for _, pair := range table {
		if strings.Contains(l, pair.left) && strings.Contains(r, pair.right) {
			return true
		}
		if strings.Contains(l, pair.right) && strings.Contains(r, pair.left) {
			return true
		}
	}
	return false
}

func containsNegation(words []string) bool {
	for _, w := range words {
		if negations[trimWord(w)] {
			return true
		}
	}
	return false
}

// trimWord strips surrounding punctuation so "pain," matches "pain".
func trimWord(w string) string {
	return strings.Trim(w, ".,;:!?()'\"")
}
