package gate

import (
	"strings"

	"github.com/sosillc/bidgate/internal/model"
	"github.com/sosillc/bidgate/internal/patterns"
)

// setAsideCodes are the small-business programs the firm does not qualify
// for. A match in either the set-aside field or the body text knocks out.
var setAsideCodes = []string{
	"8(a)",
	"8(A)",
	"WOSB",
	"EDWOSB",
	"SDVOSB",
	"VOSB",
	"HUBZone",
	"HUBZONE",
	"woman-owned",
	"women-owned",
	"service-disabled veteran",
	"veteran-owned",
}

// scoreSetAsides handles Category 4: structural membership check on the
// set-aside field plus the set-aside pattern family over the body text.
func (e *Engine) scoreSetAsides(opp *model.Opportunity, matches patterns.MatchSet) model.CategoryScore {
	score := model.CategoryScore{}

	field := strings.ToLower(opp.SetAside)
	if field != "" {
		for _, code := range setAsideCodes {
			if strings.Contains(field, strings.ToLower(code)) {
				score.Score = hardBlockScore
				score.Triggered = true
				score.Evidence = append(score.Evidence, "set-aside: "+opp.SetAside)
				break
			}
		}
	}

	if snippets, ok := matches[patterns.FamilySetAsideCodes]; ok {
		score.Score = hardBlockScore
		score.Triggered = true
		score.MatchedFamilies = append(score.MatchedFamilies, patterns.FamilySetAsideCodes)
		score.Evidence = append(score.Evidence, snippets...)
	}

	return score
}
