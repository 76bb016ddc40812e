// Package sanitize converts heterogeneous stage records into the unified
// record schema. It is the sole converter between stages and artifacts.
package sanitize

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/sosillc/bidgate/internal/model"
)

// legacyMethods maps historic processing_method values onto the unified
// stage and assessment type. Legacy names are never written back out.
var legacyMethods = map[string]model.AssessmentType{
	"REGEX_ONLY":                model.TypeAppKnockout,
	"APP_ONLY":                  model.TypeAppKnockout,
	"APP_KNOCKOUT":              model.TypeAppKnockout,
	"BATCH_AI":                  model.TypeBatchAssessment,
	"MISTRAL_BATCH_ASSESSMENT":  model.TypeBatchAssessment,
	"AGENT_VERIFIED":            model.TypeAgentAssessment,
	"AGENT_AI":                  model.TypeAgentAssessment,
	"MISTRAL_ASSESSMENT":        model.TypeAgentAssessment,
}

// decisionKeys are checked in order when recognizing a record's decision.
var decisionKeys = []string{"result", "decision", "final_decision", "recommendation"}

// samURLKeys and hgURLKeys are checked in order when collecting URLs.
var (
	samURLKeys = []string{"sam_url", "sam_gov_url", "source_path"}
	hgURLKeys  = []string{"hg_url", "highergov_url", "path", "url"}
)

// Sanitize transforms any stage record into a UnifiedRecord. It is pure and
// idempotent: an already-sanitized record is returned unchanged, and the
// input map is never mutated.
func Sanitize(record map[string]any) model.UnifiedRecord {
	var unified model.UnifiedRecord
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &unified,
		WeaklyTypedInput: true,
	})
	if err == nil {
		// Decode from a shallow copy so the caller's map is untouched.
		_ = decoder.Decode(copyMap(record))
	}

	if unified.Sanitized {
		return unified
	}

	unified.Result = recognizeDecision(record)
	unified.PipelineStage, unified.AssessmentType = deriveStage(record)
	unified.SAMURL = firstString(record, samURLKeys)
	unified.HGURL = firstString(record, hgURLKeys)

	if unified.KnockOutReasons == nil {
		unified.KnockOutReasons = []string{}
	}
	if unified.Exceptions == nil {
		unified.Exceptions = []string{}
	}
	if unified.PipelineTitle == "" {
		unified.PipelineTitle = unified.SolicitationTitle
	}

	// Alias keys are consumed into typed fields; keeping them in Extra
	// would resurrect legacy names in persisted artifacts.
	cleanExtra(&unified)

	unified.Sanitized = true
	return unified
}

// recognizeDecision finds and normalizes the decision from any known key,
// including the nested assessment.decision shape.
func recognizeDecision(record map[string]any) model.Decision {
	for _, key := range decisionKeys {
		if raw, ok := stringValue(record[key]); ok {
			if decision, recognized := model.NormalizeDecision(raw); recognized {
				return decision
			}
		}
	}

	if nested, ok := record["assessment"].(map[string]any); ok {
		if raw, ok := stringValue(nested["decision"]); ok {
			if decision, recognized := model.NormalizeDecision(raw); recognized {
				return decision
			}
		}
	}

	return model.DecisionIndeterminate
}

// deriveStage determines pipeline stage and assessment type, preferring an
// explicit processing_method and falling back to record-shape inference.
func deriveStage(record map[string]any) (model.PipelineStage, model.AssessmentType) {
	if raw, ok := stringValue(record["processing_method"]); ok {
		if assessmentType, known := legacyMethods[raw]; known {
			return model.StageFor(assessmentType), assessmentType
		}
	}

	// Shape inference: agent markers beat batch markers beat knock_pattern.
	if hasAny(record, "agent_reasoning", "agent_id", "agent_model", "verification_error") {
		return model.StageAgent, model.TypeAgentAssessment
	}
	if hasAny(record, "batch_reasoning", "batch_decision", "custom_id") {
		return model.StageBatch, model.TypeBatchAssessment
	}
	if hasAny(record, "knock_pattern", "primary_blocker", "knock_out_reasons") {
		return model.StageApp, model.TypeAppKnockout
	}

	return model.StageApp, model.TypeAppKnockout
}

// cleanExtra drops alias and legacy keys whose values now live in typed
// fields, so Map() round-trips without resurrecting them.
func cleanExtra(r *model.UnifiedRecord) {
	for _, key := range []string{
		"decision", "final_decision", "processing_method",
		"sam_gov_url", "highergov_url", "assessment",
	} {
		delete(r.Extra, key)
	}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func stringValue(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, s != ""
	case model.Decision:
		return string(s), s != ""
	case fmt.Stringer:
		return s.String(), s.String() != ""
	}
	return "", false
}

func firstString(record map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := stringValue(record[key]); ok {
			return s
		}
	}
	return ""
}

func hasAny(record map[string]any, keys ...string) bool {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			if s, isStr := v.(string); isStr && s == "" {
				continue
			}
			return true
		}
	}
	return false
}
