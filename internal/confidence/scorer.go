// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package confidence computes the weighted composite confidence score over
// the accumulated outputs of the other analyzers.
package confidence

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"medgate/internal/risk"
)

// Level buckets the overall score for display.
type Level string

const (
	VeryLow  Level = "very_low"
	Low      Level = "low"
	Moderate Level = "moderate"
	High     Level = "high"
	VeryHigh Level = "very_high"
)

// neutralScore is substituted for any sub-component whose input data is
// missing, so sparse inputs degrade gracefully instead of erroring.
const neutralScore = 0.5

// Factor names. Weights across factors sum to 1.0.
const (
	FactorMedicalContext     = "medical_context"
	FactorLogicalStructure   = "logical_structure"
	FactorEvidenceSupport    = "evidence_support"
	FactorConsistency        = "consistency"
	FactorSeverityAssessment = "severity_assessment"
)

// component identifies one sub-component evaluator. The set is closed:
// scoring dispatches over this enumeration, so adding an evaluator is a
// compile-checked change.
type component int

const (
	componentTerminology component = iota
	componentPatternMatch
	componentContextRelevance
	componentSyntax
	componentCoherence
	componentCompleteness
	componentSymptomClarity
	componentConditionCorrelation
	componentTemporalRelationship
	componentInternalConsistency
	componentKnowledgeAlignment
	componentSeverityClarity
	componentUrgencyRecognition
	componentRiskAssessment
)

// factorSpec fixes one factor's weight and its weighted sub-components.
type factorSpec struct {
	weight     float64
	components []weightedComponent
}

type weightedComponent struct {
	component component
	weight    float64
}

// factorTable is the static scoring schema. Sub-component weights sum to 1.0
// within each factor.
var factorTable = map[string]factorSpec{
	FactorMedicalContext: {0.25, []weightedComponent{
		{componentTerminology, 0.4},
		{componentPatternMatch, 0.3},
		{componentContextRelevance, 0.3},
	}},
	FactorLogicalStructure: {0.20, []weightedComponent{
		{componentSyntax, 0.3},
		{componentCoherence, 0.4},
		{componentCompleteness, 0.3},
	}},
	FactorEvidenceSupport: {0.25, []weightedComponent{
		{componentSymptomClarity, 0.35},
		{componentConditionCorrelation, 0.35},
		{componentTemporalRelationship, 0.30},
	}},
	FactorConsistency: {0.15, []weightedComponent{
		{componentInternalConsistency, 0.5},
		{componentKnowledgeAlignment, 0.5},
	}},
	FactorSeverityAssessment: {0.15, []weightedComponent{
		{componentSeverityClarity, 0.4},
		{componentUrgencyRecognition, 0.3},
		{componentRiskAssessment, 0.3},
	}},
}

// Data carries the analyzer outputs the scorer reads. Zero values mean the
// corresponding stage produced nothing; boolean Known* fields distinguish
// "stage ran and found nothing" from "stage missing" so absent stages score
// neutral.
type Data struct {
	MatchedTermCount   int
	PatternMatchCount  int
	HasContext         bool
	ComponentCount     int
	WordCount          int
	ContradictionCount int
	TruthConflictCount int
	SymptomMatched     bool
	ConditionMatched   bool
	TemporalMatched    bool
	SeverityMatched    bool
	Emergency          bool
	RiskKnown          bool
	RiskLevel          risk.Level
}

// Result is the scored confidence outcome.
type Result struct {
	Overall          float64            `json:"overall" yaml:"overall"`
	PerFactor        map[string]float64 `json:"per_factor" yaml:"per_factor"`
	Level            Level              `json:"level" yaml:"level"`
	ReliabilityFlags []string           `json:"reliability_flags,omitempty" yaml:"reliability_flags,omitempty"`
}

// Config holds the tunable normalization constants. The defaults reproduce
// the historical heuristics (terms/10, patterns/5); they are not calibrated
// against any clinical ground truth.
type Config struct {
	TerminologyNorm  int `yaml:"terminology_norm"`
	PatternMatchNorm int `yaml:"pattern_match_norm"`
	CompletenessNorm int `yaml:"completeness_norm"`
}

// DefaultConfig returns the historical normalization constants.
func DefaultConfig() Config {
	return Config{
		TerminologyNorm:  10,
		PatternMatchNorm: 5,
		CompletenessNorm: 20,
	}
}

// Scorer computes confidence results. Stateless and safe for concurrent use.
type Scorer struct {
	config Config
}

// NewScorer creates a scorer with the given normalization config; zero
// fields fall back to defaults.
func NewScorer(config Config) *Scorer {
	defaults := DefaultConfig()
	if config.TerminologyNorm <= 0 {
		config.TerminologyNorm = defaults.TerminologyNorm
	}
	if config.PatternMatchNorm <= 0 {
		config.PatternMatchNorm = defaults.PatternMatchNorm
	}
	if config.CompletenessNorm <= 0 {
		config.CompletenessNorm = defaults.CompletenessNorm
	}
	return &Scorer{config: config}
}

// Score computes the weighted composite. The overall score is the
// factor-weighted sum rounded to 3 decimals and always lands in [0,1].
func (s *Scorer) Score(data Data) Result {
	perFactor := make(map[string]float64, len(factorTable))
	overall := 0.0

	for _, name := range factorNames() {
		spec := factorTable[name]
		score := 0.0
		for _, wc := range spec.components {
			score += s.evaluate(wc.component, data) * wc.weight
		}
		score = round3(score)
		perFactor[name] = score
		overall += score * spec.weight
	}

	overall = round3(overall)
	return Result{
		Overall:          overall,
		PerFactor:        perFactor,
		Level:            levelFor(overall),
		ReliabilityFlags: reliabilityFlags(perFactor, data),
	}
}

// evaluate scores one sub-component from the validation data. Every branch
// returns a value in [0,1]; missing data scores neutral.
func (s *Scorer) evaluate(c component, data Data) float64 {
	switch c {
	case componentTerminology:
		return capRatio(data.MatchedTermCount, s.config.TerminologyNorm)
	case componentPatternMatch:
		return capRatio(data.PatternMatchCount, s.config.PatternMatchNorm)
	case componentContextRelevance:
		if data.HasContext {
			return 1.0
		}
		return neutralScore
	case componentSyntax:
		if data.WordCount == 0 {
			return neutralScore
		}
		if data.ComponentCount > 0 {
			return 1.0
		}
		return neutralScore
	case componentCoherence:
		if data.ContradictionCount > 0 {
			return 0.2
		}
		return 1.0
	case componentCompleteness:
		if data.WordCount == 0 {
			return neutralScore
		}
		return capRatio(data.WordCount, s.config.CompletenessNorm)
	case componentSymptomClarity:
		if data.SymptomMatched {
			return 1.0
		}
		return neutralScore
	case componentConditionCorrelation:
		if data.ConditionMatched {
			return 1.0
		}
		return neutralScore
	case componentTemporalRelationship:
		if data.TemporalMatched {
			return 1.0
		}
		return neutralScore
	case componentInternalConsistency:
		if data.ContradictionCount > 0 {
			return 0.2
		}
		return 1.0
	case componentKnowledgeAlignment:
		if data.TruthConflictCount > 0 {
			return 0.2
		}
		return 1.0
	case componentSeverityClarity:
		if data.SeverityMatched {
			return 1.0
		}
		return neutralScore
	case componentUrgencyRecognition:
		if data.Emergency {
			return 1.0
		}
		if data.RiskKnown && data.RiskLevel >= risk.High {
			return 1.0
		}
		return neutralScore
	case componentRiskAssessment:
		if !data.RiskKnown {
			return neutralScore
		}
		// A settled classification at either extreme is clearer than a
		// middle-band one.
		switch data.RiskLevel {
		case risk.Low, risk.Critical:
			return 1.0
		default:
			return 0.8
		}
	}
	return neutralScore
}

// reliabilityFlags produces textual explanations for notably weak or strong
// factors plus flags for contradictions, missing context, and emergencies.
func reliabilityFlags(perFactor map[string]float64, data Data) []string {
	var flags []string
	for _, name := range factorNames() {
		display := strings.ReplaceAll(name, "_", " ")
		switch score := perFactor[name]; {
		case score < 0.5:
			flags = append(flags, fmt.Sprintf("Low %s confidence", display))
		case score > 0.8:
			flags = append(flags, fmt.Sprintf("Strong %s confidence", display))
		}
	}
	if data.ContradictionCount > 0 {
		flags = append(flags, "Contains contradictions")
	}
	if !data.HasContext {
		flags = append(flags, "Incomplete context")
	}
	if data.Emergency {
		flags = append(flags, "Emergency indicators present")
	}
	return flags
}

func levelFor(score float64) Level {
	switch {
	case score >= 0.9:
		return VeryHigh
	case score >= 0.75:
		return High
	case score >= 0.6:
		return Moderate
	case score >= 0.4:
		return Low
	default:
		return VeryLow
	}
}

// factorNames returns the factor names in deterministic order so repeated
// scoring of identical input is byte-identical.
func factorNames() []string {
	names := make([]string, 0, len(factorTable))
	for name := range factorTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func capRatio(count, norm int) float64 {
	if norm <= 0 {
		return neutralScore
	}
	return math.Min(float64(count)/float64(norm), 1.0)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
