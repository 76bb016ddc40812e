// Package model defines the core types shared across the assessment pipeline.
package model

import "strings"

// Decision is the disposition of an opportunity at any stage of the pipeline.
type Decision string

// Pipeline decisions.
const (
	DecisionGo            Decision = "GO"
	DecisionNoGo          Decision = "NO-GO"
	DecisionIndeterminate Decision = "INDETERMINATE"
	DecisionContactCO     Decision = "CONTACT_CO"
)

// PipelineStage identifies which stage produced a record.
type PipelineStage string

// Pipeline stages.
const (
	StageApp   PipelineStage = "APP"
	StageBatch PipelineStage = "BATCH"
	StageAgent PipelineStage = "AGENT"
)

// AssessmentType identifies the assessment mechanism behind a record.
type AssessmentType string

// Assessment types.
const (
	TypeAppKnockout     AssessmentType = "APP_KNOCKOUT"
	TypeBatchAssessment AssessmentType = "MISTRAL_BATCH_ASSESSMENT"
	TypeAgentAssessment AssessmentType = "MISTRAL_ASSESSMENT"
)

// NormalizeDecision maps an arbitrary decision string onto the three unified
// decisions. NO-GO variants are checked before GO so "NO-GO" is never read as
// "GO"; contact-CO and further-review phrasings collapse to INDETERMINATE, as
// does anything unrecognized. The second return is false only for empty input.
func NormalizeDecision(raw string) (Decision, bool) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if upper == "" {
		return "", false
	}
	switch {
	case strings.Contains(upper, "NO-GO"),
		strings.Contains(upper, "NO_GO"),
		strings.Contains(upper, "NO GO"):
		return DecisionNoGo, true
	case strings.Contains(upper, "INDETERMINATE"),
		strings.Contains(upper, "UNKNOWN"),
		strings.Contains(upper, "FURTHER"),
		strings.Contains(upper, "CONTACT CO"),
		strings.Contains(upper, "CONTACT_CO"):
		return DecisionIndeterminate, true
	case upper == "GO",
		strings.Contains(upper, "GO") && !strings.Contains(upper, "NO"):
		return DecisionGo, true
	}
	return DecisionIndeterminate, true
}

// StageFor returns the pipeline stage implied by an assessment type.
func StageFor(t AssessmentType) PipelineStage {
	switch t {
	case TypeBatchAssessment:
		return StageBatch
	case TypeAgentAssessment:
		return StageAgent
	default:
		return StageApp
	}
}
