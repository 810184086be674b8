// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package engine orchestrates the analyzers into a single validation
// pipeline: emergency check, pattern extraction, risk assessment,
// contradiction check, principle validation, confidence scoring, verdict
// assembly, and response rewriting.
package engine

import (
	"fmt"
	"strings"
	"time"

	"medgate/internal/confidence"
	"medgate/internal/contradiction"
	"medgate/internal/emergency"
	"medgate/internal/observability"
	"medgate/internal/patterns"
	"medgate/internal/principles"
	"medgate/internal/risk"
)

// Engine is the public entry point. All referenced registries are immutable
// after construction, so one Engine is safe for concurrent Validate calls;
// the caller supplies any mutable truth state per call.
type Engine struct {
	library    *patterns.Library
	extractor  *patterns.Extractor
	detector   *emergency.Detector
	assessor   *risk.Assessor
	checker    *contradiction.Checker
	scorer     *confidence.Scorer
	principles *principles.Validator
	observer   *observability.StandardObserver
	eventHook  EventFunc
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver attaches a stage-timing observer.
func WithObserver(observer *observability.StandardObserver) Option {
	return func(e *Engine) { e.observer = observer }
}

// WithEventHook subscribes the logging collaborator to engine events.
func WithEventHook(hook EventFunc) Option {
	return func(e *Engine) { e.eventHook = hook }
}

// WithClock overrides the engine clock. Tests use this to make results for
// identical input fully reproducible.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithScorerConfig overrides the confidence normalization constants.
func WithScorerConfig(config confidence.Config) Option {
	return func(e *Engine) { e.scorer = confidence.NewScorer(config) }
}

// New builds an engine with the default registries.
func New(options ...Option) *Engine {
	library := patterns.NewLibrary()
	extractor := patterns.NewExtractor(library)
	detector := emergency.NewDetector(library)

	e := &Engine{
		library:    library,
		extractor:  extractor,
		detector:   detector,
		assessor:   risk.NewAssessor(detector, extractor),
		checker:    contradiction.NewChecker(),
		scorer:     confidence.NewScorer(confidence.DefaultConfig()),
		principles: principles.NewValidator(principles.NewRegistry()),
		now:        time.Now,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Validate runs the full pipeline over one statement. knownTruths are the
// session's previously accepted statements; context is an opaque, read-only
// mapping of structured hints. An error is returned only for configuration
// problems (unknown level); analyzer failures are contained and reflected in
// the result instead.
func (e *Engine) Validate(text string, context map[string]string, level principles.Level, knownTruths []string) (*Result, error) {
	if _, err := level.RequiredScore(); err != nil {
		return nil, err
	}

	finish := e.startTiming("engine", "validate")
	result := &Result{
		Timestamp:    e.now(),
		OriginalText: text,
		Level:        level,
	}

	// Emergency check runs first and is terminal.
	if matched := e.detector.MatchedKeywords(text); len(matched) > 0 {
		e.assembleEmergency(result, text, context, matched)
		finish(true, map[string]any{"emergency": true})
		return result, nil
	}

	extracted := map[string][]patterns.Match{}
	e.runStage(result, "pattern_extraction", func() {
		extracted = e.extractor.Extract(text)
	})

	assessment := risk.Assessment{Level: risk.Low}
	riskKnown := false
	e.runStage(result, "risk_assessment", func() {
		assessment = e.assessor.Assess(text, context)
		riskKnown = true
	})
	result.Risk = assessment

	e.runStage(result, "contradiction_check", func() {
		result.Contradictions = e.checker.FindContradictions(text, knownTruths)
	})
	for _, c := range result.Contradictions {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Contradiction (%s): %q conflicts with %q", c.Kind, c.Left, c.Right))
		e.emit(Event{Type: EventContradiction, Timestamp: e.now(), Text: text,
			Detail: fmt.Sprintf("%s: %s / %s", c.Kind, c.Left, c.Right)})
	}

	evidence := principles.Evidence{
		RiskLevel:        assessment.Level,
		RiskFactorsFound: len(extracted[patterns.CategoryRiskFactor]) > 0,
		HasContext:       len(context) > 0,
	}
	var outcome *principles.Outcome
	e.runStage(result, "principle_validation", func() {
		var err error
		outcome, err = e.principles.Validate(level, evidence)
		if err != nil {
			panic(err) // contained by runStage; registry errors are stage failures here
		}
	})
	if outcome != nil {
		result.OverallScore = outcome.OverallScore
		result.RequiredScore = outcome.RequiredScore
		result.Principles = outcome.PrincipleResults
		result.Recommendations = outcome.Recommendations
		for _, conflict := range outcome.EthicalConflicts {
			result.Warnings = append(result.Warnings, "Ethical conflict: "+conflict)
		}
	} else {
		// Neutral substitution: the level's bar still applies but nothing
		// scored, so the verdict cannot pass.
		result.RequiredScore, _ = level.RequiredScore()
	}

	e.runStage(result, "confidence_scoring", func() {
		result.Confidence = e.scorer.Score(confidence.Data{
			MatchedTermCount:   patterns.MatchedTermCount(extracted),
			PatternMatchCount:  patterns.MatchCount(extracted),
			HasContext:         len(context) > 0,
			ComponentCount:     len(contradiction.SplitComponents(text)),
			WordCount:          len(strings.Fields(text)),
			ContradictionCount: len(result.Contradictions),
			TruthConflictCount: countTruthConflicts(result.Contradictions),
			SymptomMatched:     len(extracted[patterns.CategoryQuality]) > 0,
			ConditionMatched:   len(extracted[patterns.CategoryCondition]) > 0,
			TemporalMatched:    len(extracted[patterns.CategoryTemporal]) > 0,
			SeverityMatched:    len(extracted[patterns.CategorySeverity]) > 0,
			Emergency:          false,
			RiskKnown:          riskKnown,
			RiskLevel:          assessment.Level,
		})
	})

	e.assembleVerdict(result, outcome)
	e.emit(Event{Type: EventValidation, Timestamp: e.now(), Text: text, Result: result})
	finish(true, map[string]any{"valid": result.IsValid})
	return result, nil
}

// assembleVerdict applies the validity invariant and rewrites the text when
// the verdict gates it.
func (e *Engine) assembleVerdict(result *Result, outcome *principles.Outcome) {
	scoreOK := outcome != nil && outcome.Valid
	result.IsValid = scoreOK &&
		len(result.Contradictions) == 0 &&
		!result.Emergency &&
		len(result.StageErrors) == 0

	if len(result.StageErrors) > 0 {
		result.Recommendations = append(result.Recommendations,
			"Unable to fully validate this guidance; treat it with caution")
	}
	if !result.IsValid {
		result.ModifiedText = RewriteResponse(result)
	}
}

// assembleEmergency produces the terminal emergency verdict. Principle and
// contradiction evaluation are skipped entirely; confidence is reported as
// zero because no scoring ran.
func (e *Engine) assembleEmergency(result *Result, text string, context map[string]string, matched []string) {
	result.Emergency = true
	result.IsValid = false
	result.EmergencyActions = append([]string(nil), emergency.RequiredActions...)
	result.Risk = e.assessor.Assess(text, context)
	result.RequiredScore, _ = result.Level.RequiredScore()
	result.Confidence = confidence.Result{
		Level:            confidence.VeryLow,
		ReliabilityFlags: []string{"Emergency indicators present"},
	}
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("Emergency keywords detected: %s", strings.Join(matched, ", ")))
	result.Recommendations = append(result.Recommendations, result.EmergencyActions...)
	result.ModifiedText = RewriteResponse(result)

	e.emit(Event{Type: EventEmergency, Timestamp: e.now(), Text: text,
		Detail: strings.Join(matched, ", ")})
	e.emit(Event{Type: EventValidation, Timestamp: e.now(), Text: text, Result: result})
}

// runStage executes one analyzer stage, containing any internal panic. A
// failed stage keeps its neutral zero result, is recorded on the verdict,
// and is reported through the event hook; the pipeline continues.
func (e *Engine) runStage(result *Result, name string, fn func()) {
	finish := e.startTiming("engine", name)
	defer func() {
		if r := recover(); r != nil {
			detail := fmt.Sprintf("%s: %v", name, r)
			result.StageErrors = append(result.StageErrors, detail)
			e.emit(Event{Type: EventStageError, Timestamp: e.now(), Detail: detail})
			finish(false, map[string]any{"error": fmt.Sprint(r)})
			return
		}
		finish(true, nil)
	}()
	fn()
}

func (e *Engine) startTiming(component, operation string) func(bool, map[string]any) {
	if e.observer == nil {
		return func(bool, map[string]any) {}
	}
	return e.observer.StartTiming(component, operation, "")
}

func (e *Engine) emit(event Event) {
	if e.eventHook != nil {
		e.eventHook(event)
	}
}

func countTruthConflicts(found []contradiction.Contradiction) int {
	count := 0
	for _, c := range found {
		if c.Kind == contradiction.KindTruthConflict {
			count++
		}
	}
	return count
}
