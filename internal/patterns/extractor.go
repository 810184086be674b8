// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"sort"
	"strings"
)

// Match records one matched subcategory within a category, together with
// every trigger phrase that was found in the text.
type Match struct {
	Category     string   `json:"category" yaml:"category"`
	Subcategory  string   `json:"subcategory" yaml:"subcategory"`
	MatchedTerms []string `json:"matched_terms" yaml:"matched_terms"`
}

// Extractor scans free text against a shared Library. It holds no per-call
// state and is safe for concurrent use.
type Extractor struct {
	library *Library
}

// NewExtractor creates an extractor bound to the given library.
func NewExtractor(library *Library) *Extractor {
	return &Extractor{library: library}
}

// Extract returns every category/subcategory match in the text, keyed by
// category. Matching is case-insensitive substring containment; absence of
// matches yields an empty map, never an error.
func (e *Extractor) Extract(text string) map[string][]Match {
	results := make(map[string][]Match)
	if strings.TrimSpace(text) == "" {
		return results
	}
	lower := strings.ToLower(text)

	for category, subcategories := range e.library.Symptom {
		if matches := scanGroup(lower, category, subcategories); len(matches) > 0 {
			results[category] = matches
		}
	}
	for category, subcategories := range e.library.FlatGroups() {
		if matches := scanGroup(lower, category, subcategories); len(matches) > 0 {
			results[category] = matches
		}
	}
	return results
}

// MatchedTermCount returns the total number of matched trigger phrases
// across all categories. Used by the confidence scorer.
func MatchedTermCount(results map[string][]Match) int {
	count := 0
	for _, matches := range results {
		for _, m := range matches {
			count += len(m.MatchedTerms)
		}
	}
	return count
}

// MatchCount returns the number of matched subcategories across all
// categories.
func MatchCount(results map[string][]Match) int {
	count := 0
	for _, matches := range results {
		count += len(matches)
	}
	return count
}

// Subcategories returns the matched subcategory names for one category, in
// the order they were produced.
func Subcategories(results map[string][]Match, category string) []string {
	var names []string
	for _, m := range results[category] {
		names = append(names, m.Subcategory)
	}
	return names
}

// scanGroup checks each subcategory's phrases against the lower-cased text
// and keeps every phrase that occurs. Subcategories are visited in sorted
// order so repeated calls produce identical results.
func scanGroup(lower, category string, subcategories map[string][]string) []Match {
	var matches []Match
	for _, subcategory := range sortedKeys(subcategories) {
		var found []string
		for _, phrase := range subcategories[subcategory] {
			if strings.Contains(lower, phrase) {
				found = append(found, phrase)
			}
		}
		if len(found) > 0 {
			matches = append(matches, Match{
				Category:     category,
				Subcategory:  subcategory,
				MatchedTerms: found,
			})
		}
	}
	return matches
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
