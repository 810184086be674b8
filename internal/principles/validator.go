// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package principles

import (
	"fmt"
	"math"

	"medgate/internal/risk"
)

// RuleResult is the outcome of one rule evaluation.
type RuleResult struct {
	Rule   string  `json:"rule" yaml:"rule"`
	Passed bool    `json:"passed" yaml:"passed"`
	Score  float64 `json:"score" yaml:"score"`
}

// PrincipleResult is the outcome of one principle evaluation. ViolatedRules
// is populated only when the principle failed.
type PrincipleResult struct {
	PrincipleID   string       `json:"principle_id" yaml:"principle_id"`
	Statement     string       `json:"statement" yaml:"statement"`
	Passed        bool         `json:"passed" yaml:"passed"`
	Score         float64      `json:"score" yaml:"score"`
	RuleResults   []RuleResult `json:"rule_results" yaml:"rule_results"`
	ViolatedRules []string     `json:"violated_rules,omitempty" yaml:"violated_rules,omitempty"`
}

// Outcome aggregates one validation pass over a level's principle set.
type Outcome struct {
	Level            Level             `json:"level" yaml:"level"`
	OverallScore     float64           `json:"overall_score" yaml:"overall_score"`
	RequiredScore    float64           `json:"required_score" yaml:"required_score"`
	Valid            bool              `json:"valid" yaml:"valid"`
	PrincipleResults []PrincipleResult `json:"principle_results" yaml:"principle_results"`
	EthicalConflicts []string          `json:"ethical_conflicts,omitempty" yaml:"ethical_conflicts,omitempty"`
	Recommendations  []string          `json:"recommendations" yaml:"recommendations"`
}

// generalRecommendations is always appended, whatever the outcome.
var generalRecommendations = []string{
	"Document any observations relevant to the concern",
	"Monitor for changes in the described symptoms",
	"Keep medical records updated",
}

// Validator evaluates text evidence against the principle registry at a
// chosen strictness level. Stateless over an immutable registry.
type Validator struct {
	registry *Registry
}

// NewValidator creates a validator bound to the registry.
func NewValidator(registry *Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate runs every principle in the level's set and aggregates. The
// outcome is valid when the mean principle score meets the level's required
// score and no principle failed. Unknown levels or principle ids surface as
// errors, never partial results.
func (v *Validator) Validate(level Level, evidence Evidence) (*Outcome, error) {
	required, err := level.RequiredScore()
	if err != nil {
		return nil, err
	}
	ids, err := level.PrincipleIDs(v.registry)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("validation level %q selects no principles", string(level))
	}

	outcome := &Outcome{Level: level, RequiredScore: required}
	total := 0.0

	for _, id := range ids {
		principle, err := v.registry.Get(id)
		if err != nil {
			return nil, err
		}
		result := evaluatePrinciple(principle, evidence)
		outcome.PrincipleResults = append(outcome.PrincipleResults, result)
		total += result.Score
		if !result.Passed {
			outcome.EthicalConflicts = append(outcome.EthicalConflicts,
				fmt.Sprintf("%s: %s", principle.ID, principle.Statement))
		}
	}

	outcome.OverallScore = round3(total / float64(len(ids)))
	outcome.Valid = outcome.OverallScore >= required && len(outcome.EthicalConflicts) == 0
	outcome.Recommendations = buildRecommendations(outcome, evidence)
	return outcome, nil
}

// evaluatePrinciple scores each rule and takes the mean. Increasing any rule
// score can only increase the principle score.
func evaluatePrinciple(p Principle, evidence Evidence) PrincipleResult {
	result := PrincipleResult{PrincipleID: p.ID, Statement: p.Statement}
	total := 0.0

	for _, rule := range p.Rules {
		score := scoreRule(rule.Kind, evidence)
		passed := score >= p.PassThreshold
		result.RuleResults = append(result.RuleResults, RuleResult{
			Rule:   rule.Text,
			Passed: passed,
			Score:  score,
		})
		total += score
	}

	if len(p.Rules) > 0 {
		result.Score = round3(total / float64(len(p.Rules)))
	}
	result.Passed = result.Score >= p.PassThreshold
	if !result.Passed {
		for _, rr := range result.RuleResults {
			if !rr.Passed {
				result.ViolatedRules = append(result.ViolatedRules, rr.Rule)
			}
		}
	}
	return result
}

// buildRecommendations appends the risk-driven suggestion, one line per
// failed principle, then the fixed general recommendations.
func buildRecommendations(outcome *Outcome, evidence Evidence) []string {
	var recs []string
	switch {
	case evidence.RiskLevel >= risk.High:
		recs = append(recs, "Seek immediate attention from a healthcare provider")
	case evidence.RiskLevel == risk.Moderate:
		recs = append(recs, "Consider consulting a healthcare provider")
	}
	for _, result := range outcome.PrincipleResults {
		if !result.Passed {
			recs = append(recs, fmt.Sprintf("Review guidance against principle: %s", result.Statement))
		}
	}
	return append(recs, generalRecommendations...)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
