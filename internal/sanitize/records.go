package sanitize

import (
	"strings"

	"github.com/sosillc/bidgate/internal/model"
)

// FromGate converts a gate assessment into a unified record.
func FromGate(opp *model.Opportunity, res model.AssessmentResult) model.UnifiedRecord {
	record := baseRecord(opp)
	record["result"] = string(res.Decision)
	record["processing_method"] = "APP_KNOCKOUT"
	record["knock_out_reasons"] = knockOutReasons(res)
	record["rationale"] = res.PrimaryBlocker
	record["recommendation"] = recommendationFor(res.Decision)
	if res.KnockPattern != "" {
		record["knock_pattern"] = res.KnockPattern
	}
	if res.ContactCO {
		record["special_action"] = "CONTACT_CO"
		record["exceptions"] = []string{res.ContactCOReason}
		record["rationale"] = res.ContactCOReason
	}
	if len(res.FurtherAnalysis) > 0 {
		record["exceptions"] = res.FurtherAnalysis
	}
	return Sanitize(record)
}

// FromBatch merges a batch result with the original opportunity metadata.
// Metadata always comes from the opportunity, never from model output.
func FromBatch(opp *model.Opportunity, res model.BatchResult) model.UnifiedRecord {
	record := baseRecord(opp)
	record["result"] = string(res.Decision)
	record["processing_method"] = "MISTRAL_BATCH_ASSESSMENT"
	record["rationale"] = res.Rationale
	record["batch_reasoning"] = res.Rationale
	record["recommendation"] = recommendationFor(res.Decision)
	return Sanitize(record)
}

// FromAgent attaches agent verification to an existing batch record. The
// returned record keeps the batch decision when the agent call failed.
func FromAgent(batch model.UnifiedRecord, res model.AgentResult, verificationErr error) model.UnifiedRecord {
	record := batch.Map()
	// Force a full sanitize pass; the batch record was already sanitized.
	record["_sanitized"] = false
	record["processing_method"] = "MISTRAL_ASSESSMENT"
	if verificationErr != nil {
		record["verification_error"] = verificationErr.Error()
		return Sanitize(record)
	}
	record["result"] = string(res.Decision)
	record["rationale"] = res.Rationale
	record["agent_reasoning"] = res.AgentReasoning
	record["recommendation"] = recommendationFor(res.Decision)
	return Sanitize(record)
}

// baseRecord carries the opportunity metadata shared by every stage.
func baseRecord(opp *model.Opportunity) map[string]any {
	return map[string]any{
		"solicitation_id":    opp.ID(),
		"solicitation_title": opp.Title,
		"sos_pipeline_title": pipelineTitle(opp),
		"summary":            summaryFor(opp),
		"agency":             opp.Agency.String(),
		"naics_code":         opp.NAICSCode.String(),
		"psc_code":           opp.PSCCode.String(),
		"set_aside":          opp.SetAside,
		"posted_date":        opp.PostedDate,
		"due_date":           opp.DueDate,
		"sam_url":            opp.SAMURL(),
		"hg_url":             opp.HGURL(),
	}
}

// pipelineTitle is the short label used in pipeline dashboards.
func pipelineTitle(opp *model.Opportunity) string {
	title := strings.TrimSpace(opp.Title)
	if len(title) > 80 {
		title = title[:77] + "..."
	}
	if opp.ID() == "" {
		return title
	}
	return opp.ID() + " " + title
}

func summaryFor(opp *model.Opportunity) string {
	if opp.AISummary != "" {
		return opp.AISummary
	}
	desc := strings.TrimSpace(opp.Description)
	if len(desc) > 500 {
		desc = desc[:497] + "..."
	}
	return desc
}

func knockOutReasons(res model.AssessmentResult) []string {
	var reasons []string
	for _, categoryID := range res.TriggeredCategories {
		score := res.Scores[categoryID]
		reason := score.Category
		if len(score.Evidence) > 0 {
			reason += ": " + score.Evidence[0]
		}
		reasons = append(reasons, reason)
	}
	return reasons
}

func recommendationFor(decision model.Decision) string {
	switch decision {
	case model.DecisionGo, model.DecisionContactCO:
		return "Pursue"
	case model.DecisionNoGo:
		return "Decline"
	default:
		return "Review manually"
	}
}
