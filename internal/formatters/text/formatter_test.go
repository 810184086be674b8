// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"strings"
	"testing"
	"time"

	"medgate/internal/confidence"
	"medgate/internal/contradiction"
	"medgate/internal/engine"
	"medgate/internal/formatters"
	"medgate/internal/principles"
	"medgate/internal/risk"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Timestamp:     time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		OriginalText:  "pain is both acute and chronic",
		IsValid:       false,
		Level:         principles.LevelBasic,
		OverallScore:  1.0,
		RequiredScore: 0.6,
		Contradictions: []contradiction.Contradiction{
			{Kind: contradiction.KindTemporal, Left: "pain is both acute", Right: "and chronic"},
		},
		Risk:       risk.Assessment{Level: risk.Low},
		Confidence: confidence.Result{Overall: 0.62, Level: confidence.Moderate},
		Principles: []principles.PrincipleResult{
			{PrincipleID: "do_no_harm", Passed: true, Score: 1.0},
		},
		Recommendations: []string{"Consider consulting a healthcare provider"},
		ModifiedText:    "gated text",
	}
}

func format(t *testing.T, result *engine.Result, options formatters.FormatterOptions) string {
	t.Helper()
	out, err := NewFormatter().Format(result, options)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	return out
}

func TestFormatInvalidResult(t *testing.T) {
	out := format(t, sampleResult(), formatters.FormatterOptions{NoColor: true})

	for _, want := range []string{
		"INVALID",
		"Level:      basic",
		"Score:      1.000 (required 0.60)",
		"Risk:       low",
		"Confidence: 0.620 (moderate)",
		"[temporal]",
		"Consider consulting a healthcare provider",
		"--- Gated response ---",
		"gated text",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Principle detail only appears with -verbose.
	if strings.Contains(out, "do_no_harm") {
		t.Errorf("non-verbose output contains principle detail:\n%s", out)
	}
}

func TestFormatVerboseIncludesPrinciples(t *testing.T) {
	out := format(t, sampleResult(), formatters.FormatterOptions{NoColor: true, Verbose: true})
	if !strings.Contains(out, "do_no_harm") {
		t.Errorf("verbose output missing principle table:\n%s", out)
	}
}

func TestFormatEmergencyResult(t *testing.T) {
	result := sampleResult()
	result.Emergency = true
	result.EmergencyActions = []string{"Seek immediate medical attention"}
	result.Risk = risk.Assessment{Level: risk.Critical}

	out := format(t, result, formatters.FormatterOptions{NoColor: true})
	if !strings.Contains(out, "EMERGENCY DETECTED") {
		t.Errorf("output missing emergency header:\n%s", out)
	}
	if !strings.Contains(out, "! Seek immediate medical attention") {
		t.Errorf("output missing emergency action:\n%s", out)
	}
	if !strings.Contains(out, "(monitoring, immediate action, emergency services)") {
		t.Errorf("output missing critical risk suffix:\n%s", out)
	}
}

func TestFormatValidResult(t *testing.T) {
	result := sampleResult()
	result.IsValid = true
	result.Contradictions = nil
	result.ModifiedText = ""

	out := format(t, result, formatters.FormatterOptions{NoColor: true})
	if !strings.Contains(out, "VALID") {
		t.Errorf("output missing VALID header:\n%s", out)
	}
	if strings.Contains(out, "--- Gated response ---") {
		t.Errorf("valid output contains gated response block:\n%s", out)
	}
}
