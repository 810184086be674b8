// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"time"

	"medgate/internal/confidence"
	"medgate/internal/contradiction"
	"medgate/internal/principles"
	"medgate/internal/risk"
)

// Result is the merged verdict of one validation call. Every Result is
// created fresh per call and owned exclusively by the caller.
type Result struct {
	Timestamp      time.Time                     `json:"timestamp" yaml:"timestamp"`
	OriginalText   string                        `json:"original_text" yaml:"original_text"`
	IsValid        bool                          `json:"is_valid" yaml:"is_valid"`
	Level          principles.Level              `json:"level" yaml:"level"`
	OverallScore   float64                       `json:"overall_score" yaml:"overall_score"`
	RequiredScore  float64                       `json:"required_score" yaml:"required_score"`
	Principles     []principles.PrincipleResult  `json:"principle_results,omitempty" yaml:"principle_results,omitempty"`
	Contradictions []contradiction.Contradiction `json:"contradictions,omitempty" yaml:"contradictions,omitempty"`
	Emergency      bool                          `json:"emergency" yaml:"emergency"`
	// EmergencyActions carries the fixed required-action list on emergency
	// verdicts.
	EmergencyActions []string          `json:"emergency_actions,omitempty" yaml:"emergency_actions,omitempty"`
	Risk             risk.Assessment   `json:"risk" yaml:"risk"`
	Confidence       confidence.Result `json:"confidence" yaml:"confidence"`
	Warnings         []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Recommendations  []string          `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	// StageErrors lists analyzer stages that failed internally and were
	// substituted with neutral results. Any entry forces IsValid=false.
	StageErrors []string `json:"stage_errors,omitempty" yaml:"stage_errors,omitempty"`
	// ModifiedText is the rewritten, disclaimer-annotated text. Empty when
	// the original text passed unmodified.
	ModifiedText string `json:"modified_text,omitempty" yaml:"modified_text,omitempty"`
}

// EventType classifies events emitted through the engine's hook.
type EventType string

const (
	EventValidation    EventType = "validation"
	EventEmergency     EventType = "emergency"
	EventContradiction EventType = "contradiction"
	EventStageError    EventType = "stage_error"
)

// Event is one emission to the logging collaborator. The engine performs no
// I/O of its own; a subscriber decides what to persist.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Result    *Result   `json:"result,omitempty"`
}

// EventFunc receives engine events. Implementations must not call back into
// the engine.
type EventFunc func(Event)
