package gate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sosillc/bidgate/internal/model"
)

// The Navy FAA-8130 exception: Navy solicitations for commercial-derivative
// platforms that demand source approval but accept FAA airworthiness tags
// are worth pursuing through the contracting officer, even though the
// source-approval language would otherwise knock them out.

var navyAgencyRe = regexp.MustCompile(`(?im)\b(?:navy|naval|NAVSUP|NAVAIR|NAVSEA)\b`)

// navyPlatforms pairs each qualifying Navy designator with the civilian
// names that confirm the commercial derivative.
var navyPlatforms = []struct {
	designator *regexp.Regexp
	civilian   *regexp.Regexp
	label      string
}{
	{regexp.MustCompile(`(?im)\bP[-\s]?8A?\b`), regexp.MustCompile(`(?im)Poseidon|\b737\b`), "P-8"},
	{regexp.MustCompile(`(?im)\bE[-\s]?6B?\b`), regexp.MustCompile(`(?im)Mercury|\b707\b`), "E-6"},
	{regexp.MustCompile(`(?im)\bC[-\s]?40[A-Z]?\b`), regexp.MustCompile(`(?im)Clipper|\b737\b`), "C-40"},
	{regexp.MustCompile(`(?im)\bUC[-\s]?35[A-Z]?\b`), regexp.MustCompile(`(?im)Citation`), "UC-35"},
	{regexp.MustCompile(`(?im)\bC[-\s]?12[A-Z]?\b`), regexp.MustCompile(`(?im)King\s+Air|Huron`), "C-12"},
}

var (
	navySourceApprovalRe = regexp.MustCompile(`(?im)source\s+approval|approved\s+sources?|\bOEM\b|original\s+equipment\s+manufacturer`)
	navyFAA8130Re        = regexp.MustCompile(`(?im)FAA\s*(?:form\s*)?8130(?:[-\s]?3)?|airworthiness\s+(?:approval|certificate|tag)`)
)

// navyException checks the four signals and, when all are present, returns
// the contact-CO reason.
func (e *Engine) navyException(opp *model.Opportunity, text string) (string, bool) {
	agency := opp.Agency.String()
	if !navyAgencyRe.MatchString(agency) && !navyAgencyRe.MatchString(text) {
		return "", false
	}

	var platformLabel string
	for _, p := range navyPlatforms {
		if p.designator.MatchString(text) && p.civilian.MatchString(text) {
			platformLabel = p.label
			break
		}
	}
	if platformLabel == "" {
		return "", false
	}

	if !navySourceApprovalRe.MatchString(text) {
		return "", false
	}
	if !navyFAA8130Re.MatchString(text) {
		return "", false
	}

	reason := fmt.Sprintf(
		"Navy %s commercial derivative with source approval language and FAA 8130 acceptance; contact the contracting officer before bidding",
		platformLabel)
	return strings.TrimSpace(reason), true
}
