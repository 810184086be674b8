// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package principles

import (
	"testing"

	"medgate/internal/risk"
)

func TestClassifyRule(t *testing.T) {
	tests := []struct {
		text string
		want RuleKind
	}{
		{"Verify no contraindications are present", RuleContraindications},
		{"Assess the risk level of the situation", RuleRiskAwareness},
		{"Document patient consent and understanding", RuleDocumentation},
		{"Present options rather than directives", RuleGeneral},
		// Contraindication wins over risk when both appear.
		{"Check risk of contraindications", RuleContraindications},
	}
	for _, tt := range tests {
		if got := ClassifyRule(tt.text); got != tt.want {
			t.Errorf("ClassifyRule(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestScoreRule(t *testing.T) {
	tests := []struct {
		name     string
		kind     RuleKind
		evidence Evidence
		want     float64
	}{
		{"general always passes", RuleGeneral, Evidence{RiskLevel: risk.Critical}, 1.0},
		{"contraindication with factors", RuleContraindications, Evidence{RiskFactorsFound: true}, 0.8},
		{"contraindication without factors", RuleContraindications, Evidence{}, 1.0},
		{"risk awareness at high", RuleRiskAwareness, Evidence{RiskLevel: risk.High}, 0.6},
		{"risk awareness at critical", RuleRiskAwareness, Evidence{RiskLevel: risk.Critical}, 0.6},
		{"risk awareness at moderate", RuleRiskAwareness, Evidence{RiskLevel: risk.Moderate}, 1.0},
		{"documentation with context", RuleDocumentation, Evidence{HasContext: true}, 1.0},
		{"documentation without context", RuleDocumentation, Evidence{}, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreRule(tt.kind, tt.evidence); got != tt.want {
				t.Errorf("scoreRule = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateBasicClean(t *testing.T) {
	validator := NewValidator(NewRegistry())

	outcome, err := validator.Validate(LevelBasic, Evidence{RiskLevel: risk.Low})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !outcome.Valid {
		t.Errorf("clean basic validation not valid: %+v", outcome)
	}
	if outcome.OverallScore != 1.0 {
		t.Errorf("OverallScore = %v, want 1.0", outcome.OverallScore)
	}
	if outcome.RequiredScore != 0.6 {
		t.Errorf("RequiredScore = %v, want 0.6", outcome.RequiredScore)
	}
	if len(outcome.PrincipleResults) != 3 {
		t.Errorf("basic level evaluated %d principles, want 3", len(outcome.PrincipleResults))
	}
	if len(outcome.EthicalConflicts) != 0 {
		t.Errorf("EthicalConflicts = %v, want none", outcome.EthicalConflicts)
	}
}

func TestValidateComprehensiveHighRisk(t *testing.T) {
	validator := NewValidator(NewRegistry())

	evidence := Evidence{RiskLevel: risk.High, RiskFactorsFound: true}
	outcome, err := validator.Validate(LevelComprehensive, evidence)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// Both referral_awareness rules score 0.6 at elevated risk, so the
	// principle fails and the outcome carries an ethical conflict.
	if outcome.Valid {
		t.Errorf("high-risk comprehensive validation should not be valid")
	}
	if len(outcome.EthicalConflicts) == 0 {
		t.Fatalf("expected an ethical conflict for referral_awareness")
	}

	var referral *PrincipleResult
	for i := range outcome.PrincipleResults {
		if outcome.PrincipleResults[i].PrincipleID == "referral_awareness" {
			referral = &outcome.PrincipleResults[i]
		}
	}
	if referral == nil {
		t.Fatalf("referral_awareness missing from results")
	}
	if referral.Passed {
		t.Errorf("referral_awareness passed at high risk")
	}
	if referral.Score != 0.6 {
		t.Errorf("referral_awareness score = %v, want 0.6", referral.Score)
	}
	if len(referral.ViolatedRules) != 2 {
		t.Errorf("ViolatedRules = %v, want both rules", referral.ViolatedRules)
	}

	if len(outcome.Recommendations) == 0 ||
		outcome.Recommendations[0] != "Seek immediate attention from a healthcare provider" {
		t.Errorf("Recommendations = %v, want the high-risk line first", outcome.Recommendations)
	}
}

func TestValidateRiskMonotonicity(t *testing.T) {
	validator := NewValidator(NewRegistry())

	low, err := validator.Validate(LevelComprehensive, Evidence{RiskLevel: risk.Low})
	if err != nil {
		t.Fatalf("Validate low: %v", err)
	}
	high, err := validator.Validate(LevelComprehensive, Evidence{RiskLevel: risk.Critical, RiskFactorsFound: true})
	if err != nil {
		t.Fatalf("Validate high: %v", err)
	}
	if high.OverallScore >= low.OverallScore {
		t.Errorf("riskier evidence scored %v, clean evidence %v", high.OverallScore, low.OverallScore)
	}
}

func TestValidateModerateRecommendation(t *testing.T) {
	validator := NewValidator(NewRegistry())

	outcome, err := validator.Validate(LevelStandard, Evidence{RiskLevel: risk.Moderate})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(outcome.Recommendations) == 0 ||
		outcome.Recommendations[0] != "Consider consulting a healthcare provider" {
		t.Errorf("Recommendations = %v, want the moderate-risk line first", outcome.Recommendations)
	}
	// General recommendations always close the list.
	last := outcome.Recommendations[len(outcome.Recommendations)-1]
	if last != "Keep medical records updated" {
		t.Errorf("last recommendation = %q", last)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"basic", LevelBasic, false},
		{"Standard", LevelStandard, false},
		{"COMPREHENSIVE", LevelComprehensive, false},
		{"", LevelComprehensive, false},
		{"strict", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRequiredScores(t *testing.T) {
	tests := []struct {
		level Level
		want  float64
	}{
		{LevelBasic, 0.6},
		{LevelStandard, 0.7},
		{LevelComprehensive, 0.8},
	}
	for _, tt := range tests {
		got, err := tt.level.RequiredScore()
		if err != nil {
			t.Fatalf("RequiredScore(%s): %v", tt.level, err)
		}
		if got != tt.want {
			t.Errorf("RequiredScore(%s) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestRegistryUnknownPrinciple(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Get("nonexistent"); err == nil {
		t.Errorf("Get(nonexistent) did not error")
	}
}
