// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

// Library holds the static medical vocabulary taxonomies used by every
// analyzer. It is built once at startup and shared read-only across calls;
// nothing in this package mutates it after NewLibrary returns.
type Library struct {
	// Symptom descriptor groups, keyed category -> subcategory -> phrases
	Symptom map[string]map[string][]string

	// Flat indicator groups, keyed subcategory -> phrases
	Condition map[string][]string
	Treatment map[string][]string
	Risk      map[string][]string

	// Keywords that force an emergency verdict
	EmergencyKeywords []string
}

// Symptom descriptor category names.
const (
	CategoryTemporal = "temporal"
	CategorySeverity = "severity"
	CategoryQuality  = "quality"
	CategoryLocation = "location"
)

// Flat group category names used in extraction results.
const (
	CategoryCondition  = "condition"
	CategoryTreatment  = "treatment"
	CategoryRiskFactor = "risk_factors"
)

// NewLibrary creates the default pattern library. The phrase tables are
// hand-authored trigger vocabularies, not a clinical ontology.
func NewLibrary() *Library {
	return &Library{
		Symptom: map[string]map[string][]string{
			CategoryTemporal: {
				"acute":        {"sudden", "abrupt", "recent", "new onset", "immediate"},
				"chronic":      {"long-term", "ongoing", "persistent", "continuous", "lasting"},
				"intermittent": {"comes and goes", "periodic", "recurring", "occasional", "fluctuating"},
				"progressive":  {"worsening", "increasing", "deteriorating", "advancing", "developing"},
			},
			CategorySeverity: {
				"mild":     {"slight", "minor", "minimal", "light", "gentle"},
				"moderate": {"medium", "intermediate", "moderate-intensity", "substantial"},
				"severe":   {"intense", "extreme", "severe", "excruciating", "unbearable"},
				"critical": {"life-threatening", "emergency", "critical", "urgent", "serious"},
			},
			CategoryQuality: {
				"pain":      {"sharp", "dull", "throbbing", "burning", "stabbing", "aching"},
				"sensation": {"tingling", "numbness", "itching", "pressure", "tightness"},
				"visual":    {"blurred", "double vision", "spots", "flashing", "dimness"},
				"auditory":  {"ringing", "buzzing", "muffled", "loss of hearing"},
			},
			CategoryLocation: {
				"specific":  {"localized", "focused", "specific area", "point tenderness"},
				"radiating": {"spreading", "moving", "radiating to", "extending"},
				"bilateral": {"both sides", "bilateral", "symmetrical"},
				"systemic":  {"throughout body", "generalized", "systemic", "widespread"},
			},
		},
		Condition: map[string][]string{
			"diagnostic":   {"diagnosed with", "confirmed", "testing showed", "results indicate"},
			"suspected":    {"suspected", "possible", "probable", "likely", "consistent with"},
			"differential": {"rule out", "versus", "differential includes", "to consider"},
			"comorbid":     {"along with", "associated with", "complicated by", "concurrent"},
		},
		Treatment: map[string][]string{
			"medication": {"prescribed", "taking", "administered", "dosage", "frequency"},
			"procedure":  {"underwent", "performed", "scheduled for", "completed"},
			"therapy":    {"physical therapy", "occupational therapy", "counseling", "rehabilitation"},
			"lifestyle":  {"diet", "exercise", "sleep", "stress management", "lifestyle changes"},
		},
		Risk: map[string][]string{
			"demographic":   {"age", "gender", "ethnicity", "family history"},
			"lifestyle":     {"smoking", "alcohol", "diet", "exercise", "occupation"},
			"medical":       {"previous condition", "chronic disease", "medication history"},
			"environmental": {"exposure to", "travel history", "living conditions"},
		},
		EmergencyKeywords: []string{
			"heart attack", "stroke", "bleeding", "unconscious", "breathing difficulty",
			"severe pain", "chest pain", "head injury", "seizure", "anaphylaxis",
			"suicide", "overdose", "emergency", "critical", "severe", "urgent",
		},
	}
}

// SymptomGroup returns the subcategory map for one symptom descriptor
// category, or nil if the category is unknown.
func (l *Library) SymptomGroup(category string) map[string][]string {
	return l.Symptom[category]
}

// FlatGroups returns the three flat indicator groups keyed by their
// extraction category name.
func (l *Library) FlatGroups() map[string]map[string][]string {
	return map[string]map[string][]string{
		CategoryCondition:  l.Condition,
		CategoryTreatment:  l.Treatment,
		CategoryRiskFactor: l.Risk,
	}
}
