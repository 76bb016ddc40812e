package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sosillc/bidgate/internal/model"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	bareGoRe      = regexp.MustCompile(`\bGO\b`)
)

// decisionPayload is the JSON shape both stages are prompted to return.
type decisionPayload struct {
	Decision       string `json:"decision"`
	Result         string `json:"result"`
	Rationale      string `json:"rationale"`
	Reasoning      string `json:"reasoning"`
	Recommendation string `json:"recommendation"`
}

// ParseDecision extracts a decision and rationale from model output. It is
// robust to three shapes: strict JSON, JSON inside a fenced code block, and
// free-form text containing decision keywords. Malformed output never fails;
// it yields INDETERMINATE with the raw text as the rationale.
func ParseDecision(content string) (model.Decision, string) {
	trimmed := strings.TrimSpace(content)

	// Shape 1: strict JSON.
	if decision, rationale, ok := parseJSONPayload(trimmed); ok {
		return decision, rationale
	}

	// Shape 2: JSON inside a fenced code block.
	if m := fencedBlockRe.FindStringSubmatch(trimmed); m != nil {
		if decision, rationale, ok := parseJSONPayload(strings.TrimSpace(m[1])); ok {
			return decision, rationale
		}
	}

	// Shape 3: free-text keyword scan.
	if decision, ok := scanKeywords(trimmed); ok {
		return decision, trimmed
	}

	return model.DecisionIndeterminate, trimmed
}

// parseJSONPayload decodes one JSON object carrying a decision field.
func parseJSONPayload(text string) (model.Decision, string, bool) {
	if !strings.HasPrefix(text, "{") {
		return "", "", false
	}

	var payload decisionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return "", "", false
	}

	raw := payload.Decision
	if raw == "" {
		raw = payload.Result
	}
	if raw == "" {
		raw = payload.Recommendation
	}
	decision, ok := model.NormalizeDecision(raw)
	if !ok {
		return "", "", false
	}

	rationale := payload.Rationale
	if rationale == "" {
		rationale = payload.Reasoning
	}
	return decision, rationale, true
}

// scanKeywords looks for decision keywords anywhere in free text. NO-GO
// variants are checked first so that "NO-GO" is never read as "GO".
func scanKeywords(text string) (model.Decision, bool) {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "NO-GO"),
		strings.Contains(upper, "NO_GO"),
		strings.Contains(upper, "NO GO"):
		return model.DecisionNoGo, true
	case strings.Contains(upper, "INDETERMINATE"),
		strings.Contains(upper, "UNKNOWN"),
		strings.Contains(upper, "FURTHER"):
		return model.DecisionIndeterminate, true
	case bareGoRe.MatchString(upper):
		return model.DecisionGo, true
	}
	return "", false
}
