// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package emergency implements the fast keyword scan that gates every other
// analysis stage. It runs first in the pipeline; a hit short-circuits
// principle and contradiction evaluation entirely.
package emergency

import (
	"strings"

	"medgate/internal/patterns"
)

// RequiredActions is the fixed action list attached to every emergency
// verdict.
var RequiredActions = []string{
	"Seek immediate medical attention",
	"Contact emergency services",
	"Do not rely on automated guidance",
}

// Detector scans text for emergency trigger keywords.
type Detector struct {
	keywords []string
}

// NewDetector creates a detector over the library's emergency keyword set.
func NewDetector(library *patterns.Library) *Detector {
	return &Detector{keywords: library.EmergencyKeywords}
}

// IsEmergency reports whether any emergency keyword occurs in the text as a
// case-insensitive substring.
func (d *Detector) IsEmergency(text string) bool {
	return len(d.MatchedKeywords(text)) > 0
}

// MatchedKeywords returns every emergency keyword found in the text, in
// keyword-set order.
func (d *Detector) MatchedKeywords(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var matched []string
	for _, keyword := range d.keywords {
		if strings.Contains(lower, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}
