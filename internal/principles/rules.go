// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package principles

import (
	"strings"

	"medgate/internal/risk"
)

// RuleKind is the closed enumeration of rule scoring behaviors. Rule text
// is classified exactly once, at registry construction; scoring dispatches
// over this enum so a new behavior is a compile-checked change here and in
// scoreRule, never a string-matching fallthrough at evaluation time.
type RuleKind int

const (
	// RuleGeneral rules always score 1.0.
	RuleGeneral RuleKind = iota
	// RuleContraindications scores 0.8 when risk-factor indicators were
	// found in the text, 1.0 otherwise.
	RuleContraindications
	// RuleRiskAwareness scores 0.6 when the assessed risk is High or
	// Critical, 1.0 otherwise.
	RuleRiskAwareness
	// RuleDocumentation scores 1.0 when structured context was supplied,
	// 0.8 otherwise.
	RuleDocumentation
)

// ClassifyRule maps rule text to its scoring kind. Keyword precedence:
// contraindications before risk, because several rules mention both.
func ClassifyRule(text string) RuleKind {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "contraindication"):
		return RuleContraindications
	case strings.Contains(lower, "risk"):
		return RuleRiskAwareness
	case strings.Contains(lower, "document"):
		return RuleDocumentation
	default:
		return RuleGeneral
	}
}

// Evidence carries the analyzer outputs rule scoring reads.
type Evidence struct {
	RiskLevel        risk.Level
	RiskFactorsFound bool
	HasContext       bool
}

// scoreRule applies the fixed heuristic table for one rule kind.
func scoreRule(kind RuleKind, evidence Evidence) float64 {
	switch kind {
	case RuleContraindications:
		if evidence.RiskFactorsFound {
			return 0.8
		}
		return 1.0
	case RuleRiskAwareness:
		if evidence.RiskLevel >= risk.High {
			return 0.6
		}
		return 1.0
	case RuleDocumentation:
		if evidence.HasContext {
			return 1.0
		}
		return 0.8
	default:
		return 1.0
	}
}
