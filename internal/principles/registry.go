// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package principles evaluates statements against a fixed registry of named
// ethical principles, each carrying an ordered list of validation rules and
// a pass threshold.
package principles

import (
	"fmt"
	"strings"
)

// DefaultPassThreshold is the fixed per-principle pass bar. It is
// independent of the validation level's required aggregate score.
const DefaultPassThreshold = 0.7

// Principle is one named ethical rule. The registry is seeded at startup
// and read-only thereafter.
type Principle struct {
	ID            string
	Statement     string
	Description   string
	Rules         []Rule
	PassThreshold float64
}

// Rule is one validation rule with its pre-classified scoring kind. The
// kind is resolved once when the registry is built, so evaluation never
// string-matches rule text.
type Rule struct {
	Text string
	Kind RuleKind
}

// Registry maps principle id -> Principle.
type Registry struct {
	principles map[string]Principle
	order      []string
}

// NewRegistry builds the default principle registry.
func NewRegistry() *Registry {
	r := &Registry{principles: make(map[string]Principle)}
	for _, p := range defaultPrinciples() {
		r.order = append(r.order, p.ID)
		r.principles[p.ID] = p
	}
	return r
}

// Get returns the principle for an id. Unknown ids are a configuration
// error, fatal to the calling validation.
func (r *Registry) Get(id string) (Principle, error) {
	p, ok := r.principles[id]
	if !ok {
		return Principle{}, fmt.Errorf("unknown principle id %q", id)
	}
	return p, nil
}

// IDs returns every registered principle id in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// newPrinciple classifies each rule's kind up front.
func newPrinciple(id, statement, description string, ruleTexts ...string) Principle {
	rules := make([]Rule, 0, len(ruleTexts))
	for _, text := range ruleTexts {
		rules = append(rules, Rule{Text: text, Kind: ClassifyRule(text)})
	}
	return Principle{
		ID:            id,
		Statement:     statement,
		Description:   description,
		Rules:         rules,
		PassThreshold: DefaultPassThreshold,
	}
}

func defaultPrinciples() []Principle {
	return []Principle{
		newPrinciple("do_no_harm",
			"First, do no harm (primum non nocere)",
			"Guidance must never increase the danger to the patient.",
			"Verify no contraindications are present for the suggested course",
			"Assess the risk level of the situation before advising",
			"Prefer conservative guidance when information is incomplete"),
		newPrinciple("confidentiality",
			"Respect patient privacy and confidentiality",
			"Patient details stay within the consultation.",
			"Avoid repeating identifying patient details",
			"Document only what is needed for the consultation record"),
		newPrinciple("beneficence",
			"Act in the best interest of the patient",
			"Advice should leave the patient better informed and safer.",
			"Confirm the guidance addresses the stated concern",
			"Weigh expected benefit against the assessed risk"),
		newPrinciple("patient_autonomy",
			"Respect the patient's right to make decisions",
			"The patient decides; the system informs.",
			"Present options rather than directives",
			"Document the patient's stated preferences"),
		newPrinciple("justice",
			"Treat all patients fairly and equally",
			"Identical inputs receive identical guidance.",
			"Apply the same evaluation regardless of patient demographics"),
		newPrinciple("informed_consent",
			"Ensure patient understanding and consent",
			"Understanding precedes action.",
			"Explain the reasoning behind the guidance",
			"Document patient consent and understanding"),
		newPrinciple("professional_ethics",
			"Maintain professional standards and ethics",
			"Output must meet the bar of professional conduct.",
			"Keep language professional and free of speculation",
			"Document the basis for each recommendation"),
		newPrinciple("medical_accuracy",
			"Provide accurate medical information",
			"No guidance is better than wrong guidance.",
			"Flag uncertainty instead of asserting unverified claims",
			"Check statements against known contraindications"),
		newPrinciple("referral_awareness",
			"Know when to refer to human healthcare providers",
			"The system recognizes its limits.",
			"Recommend professional consultation when risk is elevated",
			"Escalate when the risk assessment is high or critical"),
		newPrinciple("emergency_protocol",
			"Recognize and appropriately handle medical emergencies",
			"Emergencies bypass normal evaluation.",
			"Direct emergencies to immediate professional care",
			"Assess risk indicators for emergency escalation"),
	}
}

// Level is the validation strictness profile: which principles to check and
// the minimum aggregate score required.
type Level string

const (
	LevelBasic         Level = "basic"
	LevelStandard      Level = "standard"
	LevelComprehensive Level = "comprehensive"
)

// ParseLevel resolves a level name case-insensitively. Unknown names are a
// configuration error.
func ParseLevel(name string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(name))) {
	case LevelBasic:
		return LevelBasic, nil
	case LevelStandard:
		return LevelStandard, nil
	case LevelComprehensive, Level(""):
		return LevelComprehensive, nil
	}
	return "", fmt.Errorf("unknown validation level %q", name)
}

// RequiredScore returns the minimum aggregate principle score for a level.
func (l Level) RequiredScore() (float64, error) {
	switch l {
	case LevelBasic:
		return 0.6, nil
	case LevelStandard:
		return 0.7, nil
	case LevelComprehensive:
		return 0.8, nil
	}
	return 0, fmt.Errorf("unknown validation level %q", string(l))
}

// PrincipleIDs returns the ordered principle set a level evaluates.
func (l Level) PrincipleIDs(registry *Registry) ([]string, error) {
	switch l {
	case LevelBasic:
		return []string{"do_no_harm", "emergency_protocol", "medical_accuracy"}, nil
	case LevelStandard:
		return []string{
			"do_no_harm", "emergency_protocol", "medical_accuracy",
			"confidentiality", "informed_consent", "referral_awareness", "beneficence",
		}, nil
	case LevelComprehensive:
		return registry.IDs(), nil
	}
	return nil, fmt.Errorf("unknown validation level %q", string(l))
}
