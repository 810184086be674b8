// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import "strings"

// EmergencyBanner is prepended to any response whose validation detected an
// emergency.
const EmergencyBanner = "EMERGENCY WARNING: This appears to be a medical emergency. " +
	"Seek immediate emergency medical care or call your local emergency services."

// Disclaimer is appended to every rewritten response.
const Disclaimer = "IMPORTANT: This is AI-assisted medical information. Always consult with " +
	"qualified healthcare professionals for medical advice, diagnosis, or treatment. " +
	"Seek immediate emergency care for urgent medical conditions."

// RewriteResponse produces the gated version of the original text: an
// emergency banner when applicable, the original text, one bullet per
// warning and recommendation, and the fixed disclaimer block.
func RewriteResponse(result *Result) string {
	var b strings.Builder

	if result.Emergency {
		b.WriteString(EmergencyBanner)
		b.WriteString("\n\n")
	}

	b.WriteString(result.OriginalText)

	if len(result.Warnings) > 0 || len(result.Recommendations) > 0 {
		b.WriteString("\n\nImportant considerations:\n")
		for _, warning := range result.Warnings {
			b.WriteString("- ")
			b.WriteString(warning)
			b.WriteString("\n")
		}
		for _, rec := range result.Recommendations {
			b.WriteString("- ")
			b.WriteString(rec)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(Disclaimer)
	return b.String()
}
