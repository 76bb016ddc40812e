package llm

import (
	"fmt"
	"strings"

	"github.com/sosillc/bidgate/internal/model"
)

// batchSystemPrompt frames the bulk assessment stage. The batch stage may
// emit NO-GO to keep agent-stage volume down; the agent remains the source
// of truth for GO.
const batchSystemPrompt = `You assess U.S. federal contracting opportunities for a specialty aviation parts supplier. The firm sells commercial and commercial-derivative aircraft parts, including refurbished and surplus stock with FAA 8130-3 airworthiness tags. It holds no security clearances, is not an approved source on military QPLs, and does not qualify for small-business set-asides.

Respond with exactly one JSON object:
{"decision": "GO" | "NO-GO" | "INDETERMINATE", "rationale": "<one or two sentences>"}

GO means the opportunity fits commercial or commercial-derivative aviation parts supply. NO-GO means a disqualifier is present (military-only platform, set-aside, clearance, source approval the firm cannot obtain). INDETERMINATE means the text does not settle it.`

// agentSystemPrompt frames the verification stage.
const agentSystemPrompt = `You are the final reviewer of federal contracting opportunities already screened for a specialty aviation parts supplier. Re-evaluate the opportunity from scratch and confirm or correct the earlier assessment. Be conservative: only confirm GO when the opportunity clearly fits commercial or commercial-derivative aviation parts supply.

Respond with exactly one JSON object:
{"decision": "GO" | "NO-GO" | "INDETERMINATE", "rationale": "<one or two sentences>", "reasoning": "<your step-by-step reasoning>"}`

// fewShotExemplars steer the batch model toward the JSON contract.
var fewShotExemplars = []struct {
	opportunity string
	answer      string
}{
	{
		opportunity: "Title: Boeing 737-800 brake assemblies, refurbished acceptable with FAA 8130-3 tag. Agency: DLA Aviation.",
		answer:      `{"decision": "GO", "rationale": "Commercial airframe parts with refurbished stock explicitly acceptable."}`,
	},
	{
		opportunity: "Title: F-35 Lightning II canopy actuators, source approval required. Agency: Air Force Life Cycle Management Center.",
		answer:      `{"decision": "NO-GO", "rationale": "Pure military platform with source approval the firm cannot obtain."}`,
	},
	{
		opportunity: "Title: Aircraft ground support tooling, condition unspecified. Agency: GSA.",
		answer:      `{"decision": "INDETERMINATE", "rationale": "Aviation-adjacent but platform and condition requirements are not stated."}`,
	},
}

// BuildBatchMessages assembles the chat messages for one batch request.
func BuildBatchMessages(opp *model.Opportunity, text string) []ChatMessage {
	messages := []ChatMessage{{Role: "system", Content: batchSystemPrompt}}
	for _, ex := range fewShotExemplars {
		messages = append(messages,
			ChatMessage{Role: "user", Content: ex.opportunity},
			ChatMessage{Role: "assistant", Content: ex.answer},
		)
	}
	messages = append(messages, ChatMessage{Role: "user", Content: formatOpportunity(opp, text)})
	return messages
}

// BuildAgentPrompt assembles the verification prompt for one record.
func BuildAgentPrompt(opp *model.Opportunity, text string, prior model.Decision, priorRationale string) string {
	var sb strings.Builder
	sb.WriteString(formatOpportunity(opp, text))
	sb.WriteString("\n\nEarlier assessment: ")
	sb.WriteString(string(prior))
	if priorRationale != "" {
		sb.WriteString("\nEarlier rationale: ")
		sb.WriteString(priorRationale)
	}
	sb.WriteString("\n\nVerify or correct this assessment.")
	return sb.String()
}

// formatOpportunity renders the metadata and body text for a prompt.
func formatOpportunity(opp *model.Opportunity, text string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Solicitation: %s\n", opp.ID())
	fmt.Fprintf(&sb, "Title: %s\n", opp.Title)
	if opp.Agency != "" {
		fmt.Fprintf(&sb, "Agency: %s\n", opp.Agency)
	}
	if opp.NAICSCode != "" {
		fmt.Fprintf(&sb, "NAICS: %s\n", opp.NAICSCode)
	}
	if opp.PSCCode != "" {
		fmt.Fprintf(&sb, "PSC: %s\n", opp.PSCCode)
	}
	if opp.SetAside != "" {
		fmt.Fprintf(&sb, "Set-aside: %s\n", opp.SetAside)
	}
	if opp.DueDate != "" {
		fmt.Fprintf(&sb, "Response due: %s\n", opp.DueDate)
	}
	sb.WriteString("\n")
	sb.WriteString(text)
	return sb.String()
}
