// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package risk

import (
	"fmt"

	"medgate/internal/emergency"
	"medgate/internal/patterns"
)

// Level is the four-tier risk classification driving monitoring and action
// requirements.
type Level int

const (
	Low Level = iota
	Moderate
	High
	Critical
)

// String returns the lower-case level name used in output and config.
func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Moderate:
		return "moderate"
	case High:
		return "high"
	case Critical:
		return "critical"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// RequiresMonitoring reports whether the level calls for ongoing monitoring.
func (l Level) RequiresMonitoring() bool {
	return l >= Moderate
}

// RequiresImmediateAction reports whether the level calls for immediate
// action.
func (l Level) RequiresImmediateAction() bool {
	return l >= High
}

// RequiresEmergencyServices reports whether the level mandates contacting
// emergency services. Only Critical does.
func (l Level) RequiresEmergencyServices() bool {
	return l == Critical
}

// Assessment is the result of one risk evaluation.
type Assessment struct {
	Level Level `json:"level" yaml:"level"`
	// Factors explains the classification: the matched emergency or
	// severity terms first, then any risk-factor indicator matches.
	Factors []string `json:"factors,omitempty" yaml:"factors,omitempty"`
}

// Assessor classifies statement risk from emergency hits, severity pattern
// matches, and risk-factor matches.
type Assessor struct {
	detector  *emergency.Detector
	extractor *patterns.Extractor
}

// NewAssessor creates an assessor sharing the given detector and extractor.
func NewAssessor(detector *emergency.Detector, extractor *patterns.Extractor) *Assessor {
	return &Assessor{detector: detector, extractor: extractor}
}

// Assess classifies the text. The precedence chain is strict: emergency
// beats severe beats moderate beats the Low default; only the first matching
// branch sets the level. Risk-factor matches are appended as explanatory
// factors but never change the level.
func (a *Assessor) Assess(text string, context map[string]string) Assessment {
	extracted := a.extractor.Extract(text)

	explanatory := riskFactors(extracted)
	if hint := context["severity"]; hint != "" {
		explanatory = append(explanatory, "context:severity:"+hint)
	}

	if matched := a.detector.MatchedKeywords(text); len(matched) > 0 {
		return Assessment{
			Level:   Critical,
			Factors: append(prefixed("emergency", matched), explanatory...),
		}
	}

	severity := severityTerms(extracted)
	if terms := severity["severe"]; len(terms) > 0 {
		return Assessment{
			Level:   High,
			Factors: append(prefixed("severity", terms), explanatory...),
		}
	}
	if terms := severity["moderate"]; len(terms) > 0 {
		return Assessment{
			Level:   Moderate,
			Factors: append(prefixed("severity", terms), explanatory...),
		}
	}

	return Assessment{Level: Low, Factors: explanatory}
}

// severityTerms maps matched severity subcategory -> matched terms.
func severityTerms(extracted map[string][]patterns.Match) map[string][]string {
	terms := make(map[string][]string)
	for _, m := range extracted[patterns.CategorySeverity] {
		terms[m.Subcategory] = append(terms[m.Subcategory], m.MatchedTerms...)
	}
	return terms
}

// riskFactors flattens risk-factor matches into explanatory factor strings.
func riskFactors(extracted map[string][]patterns.Match) []string {
	var factors []string
	for _, m := range extracted[patterns.CategoryRiskFactor] {
		for _, term := range m.MatchedTerms {
			factors = append(factors, fmt.Sprintf("risk_factor:%s:%s", m.Subcategory, term))
		}
	}
	return factors
}

func prefixed(kind string, terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, fmt.Sprintf("%s:%s", kind, t))
	}
	return out
}
