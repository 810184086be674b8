// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"medgate/internal/engine"
	"medgate/internal/formatters"
	"medgate/internal/risk"
)

// Formatter implements human-readable terminal output
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable output for terminal display"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(result *engine.Result, options formatters.FormatterOptions) (string, error) {
	previous := color.NoColor
	color.NoColor = options.NoColor || previous
	defer func() { color.NoColor = previous }()

	var b strings.Builder

	if result.Emergency {
		b.WriteString(color.New(color.FgRed, color.Bold).Sprint("EMERGENCY DETECTED"))
		b.WriteString("\n")
		for _, action := range result.EmergencyActions {
			fmt.Fprintf(&b, "  ! %s\n", action)
		}
	} else if result.IsValid {
		b.WriteString(color.New(color.FgGreen, color.Bold).Sprint("VALID"))
		b.WriteString("\n")
	} else {
		b.WriteString(color.New(color.FgYellow, color.Bold).Sprint("INVALID"))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Level:      %s\n", result.Level)
	fmt.Fprintf(&b, "Score:      %.3f (required %.2f)\n", result.OverallScore, result.RequiredScore)
	fmt.Fprintf(&b, "Risk:       %s%s\n", riskColor(result.Risk.Level), flagSuffix(result))
	fmt.Fprintf(&b, "Confidence: %.3f (%s)\n", result.Confidence.Overall, result.Confidence.Level)

	if len(result.Contradictions) > 0 {
		b.WriteString(color.New(color.FgYellow).Sprint("Contradictions:"))
		b.WriteString("\n")
		for _, c := range result.Contradictions {
			fmt.Fprintf(&b, "  - [%s] %q vs %q\n", c.Kind, c.Left, c.Right)
		}
	}

	if len(result.StageErrors) > 0 {
		b.WriteString(color.New(color.FgRed).Sprint("Stage errors:"))
		b.WriteString("\n")
		for _, e := range result.StageErrors {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
	}

	if options.Verbose {
		writeVerbose(&b, result)
	}

	if len(result.Recommendations) > 0 {
		b.WriteString("Recommendations:\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", rec)
		}
	}

	if result.ModifiedText != "" {
		b.WriteString("\n--- Gated response ---\n")
		b.WriteString(result.ModifiedText)
		b.WriteString("\n")
	}

	return b.String(), nil
}

func writeVerbose(b *strings.Builder, result *engine.Result) {
	if len(result.Risk.Factors) > 0 {
		b.WriteString("Risk factors:\n")
		for _, factor := range result.Risk.Factors {
			fmt.Fprintf(b, "  - %s\n", factor)
		}
	}
	if len(result.Confidence.ReliabilityFlags) > 0 {
		b.WriteString("Reliability:\n")
		for _, flag := range result.Confidence.ReliabilityFlags {
			fmt.Fprintf(b, "  - %s\n", flag)
		}
	}
	if len(result.Principles) > 0 {
		b.WriteString("Principles:\n")
		for _, p := range result.Principles {
			status := "pass"
			if !p.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(b, "  - %-20s %.3f %s\n", p.PrincipleID, p.Score, status)
			for _, rule := range p.ViolatedRules {
				fmt.Fprintf(b, "      violated: %s\n", rule)
			}
		}
	}
}

func riskColor(level risk.Level) string {
	switch level {
	case risk.Critical:
		return color.New(color.FgRed, color.Bold).Sprint(level.String())
	case risk.High:
		return color.New(color.FgRed).Sprint(level.String())
	case risk.Moderate:
		return color.New(color.FgYellow).Sprint(level.String())
	default:
		return color.New(color.FgGreen).Sprint(level.String())
	}
}

func flagSuffix(result *engine.Result) string {
	var flags []string
	if result.Risk.Level.RequiresMonitoring() {
		flags = append(flags, "monitoring")
	}
	if result.Risk.Level.RequiresImmediateAction() {
		flags = append(flags, "immediate action")
	}
	if result.Risk.Level.RequiresEmergencyServices() {
		flags = append(flags, "emergency services")
	}
	if len(flags) == 0 {
		return ""
	}
	return " (" + strings.Join(flags, ", ") + ")"
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
