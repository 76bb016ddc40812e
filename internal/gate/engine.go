// Package gate implements the deterministic 19-category knock-out rule
// engine that screens opportunities ahead of the LLM stages.
package gate

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sosillc/bidgate/internal/condition"
	"github.com/sosillc/bidgate/internal/model"
	"github.com/sosillc/bidgate/internal/patterns"
	"github.com/sosillc/bidgate/internal/platform"
)

// Confidence levels attached to gate decisions.
const (
	confidenceGo            = 85
	confidenceIndeterminate = 50
)

// hardBlockScore is the score assigned to a category that knocks out an
// opportunity outright.
const hardBlockScore = 5

// Config holds configuration options for the rule engine.
type Config struct {
	// DisableDeadlineCheck turns off Category 1 due-date screening.
	// Intended for replaying historic opportunities; default off.
	DisableDeadlineCheck bool
}

// Engine scores opportunities against the pattern pack and structural checks.
type Engine struct {
	pack   *patterns.Pack
	mapper *platform.Mapper
	cfg    Config
	now    func() time.Time
}

// New creates a rule engine over the given pattern pack.
func New(pack *patterns.Pack, cfg Config) *Engine {
	return &Engine{
		pack:   pack,
		mapper: platform.New(),
		cfg:    cfg,
		now:    time.Now,
	}
}

// Assess runs all 19 knock-out categories against one opportunity and
// returns the structured result. It never returns an error: scoring
// failures degrade to INDETERMINATE.
func (e *Engine) Assess(opp *model.Opportunity) model.AssessmentResult {
	text := opp.CombinedText()

	// The Navy FAA-8130 exception short-circuits all category scoring.
	if reason, ok := e.navyException(opp, text); ok {
		slog.Info("Navy FAA-8130 exception applied",
			"opportunity", opp.ID(),
			"reason", reason)
		return model.AssessmentResult{
			Decision:        model.DecisionGo,
			ContactCO:       true,
			ContactCOReason: reason,
			Confidence:      confidenceGo,
			Scores:          emptyScores(),
			AssessedAt:      e.now(),
		}
	}

	matches := e.pack.Scan(text)

	result := model.AssessmentResult{
		Scores:     make(map[int]model.CategoryScore, model.CategoryCount),
		AssessedAt: e.now(),
	}

	var platformResult *model.PlatformResult
	var conditionResult *model.ConditionResult

	for categoryID := 1; categoryID <= model.CategoryCount; categoryID++ {
		var score model.CategoryScore
		switch categoryID {
		case model.CategoryTiming:
			score = e.scoreTiming(opp)
		case model.CategorySecurity:
			score = e.scoreSecurity(matches)
		case model.CategorySetAsides:
			score = e.scoreSetAsides(opp, matches)
		case model.CategoryPlatform:
			score, platformResult = e.scorePlatform(text, matches)
		case model.CategoryProcurement:
			score, conditionResult = e.scoreProcurement(text)
		default:
			score = e.scorePatternCategory(categoryID, matches)
		}
		score.CategoryID = categoryID
		score.Category = model.CategoryNames[categoryID]
		result.Scores[categoryID] = score
	}

	result.Platform = platformResult
	result.Condition = conditionResult

	// Centralized override pass: one place clears blocks for the
	// overridable categories instead of per-category special cases.
	e.applyOverrides(result.Scores, matches)

	e.decide(&result, matches)

	return result
}

// applyOverrides clears triggered categories whose override families also
// matched, recording the cancellation as evidence.
func (e *Engine) applyOverrides(scores map[int]model.CategoryScore, matches patterns.MatchSet) {
	for categoryID, families := range patterns.OverrideFamilies {
		score, ok := scores[categoryID]
		if !ok || !score.Triggered {
			continue
		}
		family, found := matches.HasAny(families...)
		if !found {
			continue
		}
		score.Triggered = false
		score.Score = 0
		score.Overridden = true
		score.OverrideFamily = family
		score.Evidence = append(score.Evidence, "Override: "+family)
		scores[categoryID] = score
	}
}

// decide applies the decision rules over the full score map.
func (e *Engine) decide(result *model.AssessmentResult, matches patterns.MatchSet) {
	for categoryID := 1; categoryID <= model.CategoryCount; categoryID++ {
		score := result.Scores[categoryID]
		if score.Triggered && !score.Overridden {
			result.TriggeredCategories = append(result.TriggeredCategories, categoryID)
		}
	}

	if len(result.TriggeredCategories) > 0 {
		first := result.TriggeredCategories[0]
		score := result.Scores[first]
		result.Decision = model.DecisionNoGo
		result.PrimaryBlockerCategory = first
		result.PrimaryBlocker = blockerReason(score)
		if len(score.MatchedFamilies) > 0 {
			result.KnockPattern = score.MatchedFamilies[0]
		}
		result.Confidence = confidenceGo
		return
	}

	// No first blocker but a high score anywhere still knocks out.
	for categoryID := 1; categoryID <= model.CategoryCount; categoryID++ {
		score := result.Scores[categoryID]
		if score.Score >= 3 && !score.Overridden {
			result.Decision = model.DecisionNoGo
			result.PrimaryBlockerCategory = categoryID
			result.PrimaryBlocker = "multiple restrictions"
			result.Confidence = confidenceGo
			return
		}
	}

	// Positive signal: GO.
	var positives []string
	if family, ok := matches.HasAny(patterns.PositiveFamilies...); ok {
		positives = append(positives, family)
	}
	if result.Platform != nil && result.Platform.Verdict == model.PlatformGo {
		positives = append(positives, "civilian platform verdict")
	}
	if len(positives) > 0 {
		result.Decision = model.DecisionGo
		result.PositiveSignals = positives
		result.Confidence = confidenceGo
		return
	}

	// Nothing positive found: never GO by default.
	result.Decision = model.DecisionIndeterminate
	result.Confidence = confidenceIndeterminate
	result.FurtherAnalysis = furtherAnalysis(matches)
}

// blockerReason renders a human-readable primary blocker string.
func blockerReason(score model.CategoryScore) string {
	if len(score.Evidence) > 0 {
		return fmt.Sprintf("%s: %s", score.Category, score.Evidence[0])
	}
	return score.Category
}

// furtherAnalysis collects follow-up items keyed off specific trigger families.
func furtherAnalysis(matches patterns.MatchSet) []string {
	var items []string
	for family, hint := range patterns.FurtherAnalysisHints {
		if matches.Has(family) {
			items = append(items, hint)
		}
	}
	sort.Strings(items)
	return items
}

// emptyScores returns an all-pass score map for short-circuited results.
func emptyScores() map[int]model.CategoryScore {
	scores := make(map[int]model.CategoryScore, model.CategoryCount)
	for id := 1; id <= model.CategoryCount; id++ {
		scores[id] = model.CategoryScore{
			CategoryID: id,
			Category:   model.CategoryNames[id],
		}
	}
	return scores
}

// AviationRelated reports whether the text carries any aviation signal at
// all. It is an optional pre-filter; the orchestrator does not call it.
func (e *Engine) AviationRelated(text string) bool {
	matches := e.pack.Scan(text)
	if matches.Has(patterns.FamilyAviationPlatform) || matches.Has(patterns.FamilyCivilianPlatform) {
		return true
	}
	if e.mapper == nil {
		return false
	}
	return e.mapper.Classify(text).Verdict != model.PlatformUnknown
}

// scoreProcurement runs the condition checker for Category 11.
func (e *Engine) scoreProcurement(text string) (model.CategoryScore, *model.ConditionResult) {
	res := condition.Check(text)
	score := model.CategoryScore{}
	if res.Decision == model.DecisionNoGo {
		score.Score = hardBlockScore
		score.Triggered = true
		score.MatchedFamilies = []string{patterns.FamilyNewPartsOnly}
		score.Evidence = append([]string{res.Rationale}, res.Evidence...)
	}
	return score, &res
}

// scorePlatform runs the platform mapper and the curated military-designator
// patterns for Category 10.
func (e *Engine) scorePlatform(text string, matches patterns.MatchSet) (model.CategoryScore, *model.PlatformResult) {
	res := e.mapper.Classify(text)
	score := model.CategoryScore{}

	switch res.Verdict {
	case model.PlatformNoGo:
		score.Score = hardBlockScore
		score.Triggered = true
		score.MatchedFamilies = []string{patterns.FamilyMilitaryPlatform}
		score.Evidence = []string{res.Rationale}
		return score, &res
	case model.PlatformGo:
		// Civilian verdict passes outright; skip the pattern checks.
		return score, &res
	case model.PlatformConditional, model.PlatformUnknown:
	}

	// Curated military-designator and ordnance patterns, subject to the
	// same override cancellation as the mapper verdicts.
	for _, family := range []string{patterns.FamilyMilitaryPlatform, patterns.FamilyWeaponsOrdnance} {
		if snippets, ok := matches[family]; ok {
			score.Score = hardBlockScore
			score.Triggered = true
			score.MatchedFamilies = append(score.MatchedFamilies, family)
			score.Evidence = append(score.Evidence, snippets...)
		}
	}

	return score, &res
}

// scoreSecurity handles Category 3: hard clearance language blocks; a mere
// "may require clearance" is only an indeterminate signal.
func (e *Engine) scoreSecurity(matches patterns.MatchSet) model.CategoryScore {
	score := model.CategoryScore{}
	if snippets, ok := matches[patterns.FamilySecurityClearance]; ok {
		score.Score = hardBlockScore
		score.Triggered = true
		score.MatchedFamilies = []string{patterns.FamilySecurityClearance}
		score.Evidence = snippets
	}
	return score
}

// scorePatternCategory scores a category purely from its pattern families.
func (e *Engine) scorePatternCategory(categoryID int, matches patterns.MatchSet) model.CategoryScore {
	score := model.CategoryScore{}
	for _, family := range patterns.CategoryFamilies(categoryID) {
		// Soft-signal families never block on their own; they surface as
		// further-analysis items on INDETERMINATE results instead.
		if family == patterns.FamilyClearancePossible || family == patterns.FamilyJCPCertification {
			continue
		}
		snippets, ok := matches[family]
		if !ok {
			continue
		}
		score.Score = hardBlockScore
		score.Triggered = true
		score.MatchedFamilies = append(score.MatchedFamilies, family)
		score.Evidence = append(score.Evidence, snippets...)
	}
	sort.Strings(score.MatchedFamilies)
	return score
}
