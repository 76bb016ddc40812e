// Package condition classifies the parts-condition requirements of a
// solicitation: whether surplus or refurbished parts are acceptable.
package condition

import (
	"regexp"
	"strings"

	"github.com/sosillc/bidgate/internal/model"
)

// negationWindow is the number of characters a negator may precede a
// commercial-override phrase by and still negate it.
const negationWindow = 25

var (
	anyConditionRes = compileAll(
		`any\s+condition\s+(?:is\s+)?acceptable`,
		`used\s+(?:parts?\s+|items?\s+)?(?:is|are)?\s*acceptable`,
		`condition\s+code\s+[A-F]\s+acceptable`,
	)
	refurbOKRes = compileAll(
		`refurbished\s+(?:parts?\s+|units?\s+)?(?:is|are)?\s*acceptable`,
		`reconditioned\s+(?:parts?\s+)?(?:is|are)?\s*(?:acceptable|considered)`,
		`overhauled\s+(?:units?|parts?)\s+(?:is|are)\s+acceptable`,
	)
	surplusOKRes = compileAll(
		`surplus\s+(?:parts?\s+|material\s+)?(?:is|are|will\s+be)\s+(?:acceptable|considered|accepted)`,
		`surplus\s+dealers?\s+(?:are\s+)?(?:welcome|eligible)`,
	)
	newOnlyRes = compileAll(
		`(?:factory\s+)?new\s+(?:parts?|items?|units?|material)\s+only`,
		`new\s+manufacture\s+only`,
		`surplus\s+(?:parts?\s+)?(?:is|are|will)\s+not\s+(?:be\s+)?(?:acceptable|accepted|considered)`,
		`no\s+(?:used|refurbished|reconditioned|surplus)\s+(?:parts?|items?|material)`,
		`used\s+or\s+reconditioned\s+.{0,40}not\s+acceptable`,
		`remanufactured\s+.{0,40}prohibited`,
	)
	commercialOverrideRes = compileAll(
		`FAR\s+(?:part\s+)?12\b`,
		`commercial\s+items?\b`,
		`commercial\s+(?:off[-\s]the[-\s]shelf|product)`,
		`\bCOTS\b`,
	)
	milSpecBlockerRes = compileAll(
		`mil[-\s]?spec|military\s+specification`,
		`\bQPL\b\s+(?:is\s+)?required|qualified\s+products?\s+list\s+(?:is\s+)?required`,
		`MIL[-\s]?(?:STD|PRF|DTL)[-\s]?[0-9]+`,
	)
	negatorRe = regexp.MustCompile(`(?im)\b(?:not|non|no|isn't|is\s+not|does\s+not\s+apply|excluded\s+from)\b[\s-]*$`)
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile("(?im)"+expr))
	}
	return out
}

// Check classifies the parts-condition requirement found in text.
func Check(text string) model.ConditionResult {
	// Rule 1: anything goes.
	if ev := firstMatch(anyConditionRes, text); ev != "" {
		return model.ConditionResult{
			Condition: model.ConditionAny,
			Decision:  model.DecisionGo,
			Rationale: "any condition acceptable",
			Evidence:  []string{ev},
		}
	}

	// Rule 2: explicit refurb or surplus acceptance.
	if ev := firstMatch(refurbOKRes, text); ev != "" {
		return model.ConditionResult{
			Condition: model.ConditionRefurbOK,
			Decision:  model.DecisionGo,
			Rationale: "refurbished parts accepted",
			Evidence:  []string{ev},
		}
	}
	if ev := firstMatch(surplusOKRes, text); ev != "" {
		return model.ConditionResult{
			Condition: model.ConditionSurplusOK,
			Decision:  model.DecisionGo,
			Rationale: "surplus parts accepted",
			Evidence:  []string{ev},
		}
	}

	// Rule 3: new-only requirements, with the commercial override.
	if ev := firstMatch(newOnlyRes, text); ev != "" {
		override, overrideEv := commercialOverride(text)
		milSpec := firstMatch(milSpecBlockerRes, text)

		switch {
		case override && milSpec == "":
			return model.ConditionResult{
				Condition: model.ConditionNewOnly,
				Decision:  model.DecisionGo,
				Rationale: "commercial override",
				Evidence:  []string{ev, overrideEv},
			}
		case override && milSpec != "":
			return model.ConditionResult{
				Condition: model.ConditionNewOnly,
				Decision:  model.DecisionNoGo,
				Rationale: "commercial override blocked by military specification",
				Evidence:  []string{ev, milSpec},
			}
		default:
			return model.ConditionResult{
				Condition: model.ConditionNewOnly,
				Decision:  model.DecisionNoGo,
				Rationale: "new parts only",
				Evidence:  []string{ev},
			}
		}
	}

	// Rule 4: nothing stated.
	return model.ConditionResult{
		Condition: model.ConditionUnspecified,
		Decision:  model.DecisionIndeterminate,
		Rationale: "condition unspecified",
	}
}

// commercialOverride reports whether a non-negated commercial phrase appears.
// Negation uses pattern proximity: the negator must sit within a short window
// immediately before the phrase, not merely co-occur in the text.
func commercialOverride(text string) (bool, string) {
	for _, re := range commercialOverrideRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if !negatedAt(text, loc[0]) {
				return true, excerpt(text, loc[0], loc[1])
			}
		}
	}
	return false, ""
}

// negatedAt reports whether a negator immediately precedes position start.
func negatedAt(text string, start int) bool {
	lo := start - negationWindow
	if lo < 0 {
		lo = 0
	}
	return negatorRe.MatchString(text[lo:start])
}

func firstMatch(res []*regexp.Regexp, text string) string {
	for _, re := range res {
		if loc := re.FindStringIndex(text); loc != nil {
			return excerpt(text, loc[0], loc[1])
		}
	}
	return ""
}

func excerpt(text string, start, end int) string {
	lo := start - 30
	if lo < 0 {
		lo = 0
	}
	hi := end + 30
	if hi > len(text) {
		hi = len(text)
	}
	return strings.Join(strings.Fields(text[lo:hi]), " ")
}
