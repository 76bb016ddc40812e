// Package platform classifies airframe and engine designator mentions as
// civilian, military, or conditional, with override handling for commercial
// derivatives.
package platform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sosillc/bidgate/internal/model"
)

// mapping ties a designator to its verdict and, when one exists, the civilian
// equivalent whose presence lifts the block.
type mapping struct {
	Verdict  model.PlatformVerdict
	Civilian string
}

// compiled is one designator with its precompiled flexible-separator regex.
type compiled struct {
	designator string
	re         *regexp.Regexp
	mapping    mapping
	engine     bool
}

// Mapper scans opportunity text for platform and engine designators.
type Mapper struct {
	platforms []compiled
	overrides []*regexp.Regexp
	civilian  []*regexp.Regexp
}

// New builds a mapper with the built-in designator dictionaries.
func New() *Mapper {
	m := &Mapper{}

	for designator, mp := range militaryPlatforms {
		m.platforms = append(m.platforms, compiled{
			designator: designator,
			re:         designatorRegex(designator),
			mapping:    mp,
		})
	}
	for designator, mp := range militaryEngines {
		m.platforms = append(m.platforms, compiled{
			designator: designator,
			re:         designatorRegex(designator),
			mapping:    mp,
			engine:     true,
		})
	}

	// Deterministic scan order regardless of map iteration.
	sort.Slice(m.platforms, func(i, j int) bool {
		return m.platforms[i].designator < m.platforms[j].designator
	})

	for _, expr := range overridePhrases {
		m.overrides = append(m.overrides, regexp.MustCompile("(?im)"+expr))
	}
	for _, maker := range civilianManufacturers {
		m.civilian = append(m.civilian, regexp.MustCompile(`(?im)\b`+regexp.QuoteMeta(maker)+`\b`))
	}
	for _, expr := range civilianModelPatterns {
		m.civilian = append(m.civilian, regexp.MustCompile("(?im)"+expr))
	}

	return m
}

// designatorRegex builds a flexible-separator regex for a designator such as
// "F-16", matching "F-16", "F 16", and "F16A".
func designatorRegex(designator string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString(`(?im)\b`)
	runes := []rune(designator)
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ':
			sb.WriteString(`[-\s]?`)
		default:
			// Flexible separator at every letter/digit boundary.
			if i > 0 && isBoundary(runes[i-1], r) {
				sb.WriteString(`[-\s]?`)
			}
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	// Allow a trailing variant letter (F-16A, C-130J).
	sb.WriteString(`[A-Z]?\b`)
	return regexp.MustCompile(sb.String())
}

func isBoundary(prev, cur rune) bool {
	prevDigit := prev >= '0' && prev <= '9'
	curDigit := cur >= '0' && cur <= '9'
	return prevDigit != curDigit
}

// Classify scans text and returns the platform verdict per the precedence
// rules: civilian variant of a matched military designator wins, then the
// civilian whitelist, then military designators subject to override phrases.
func (m *Mapper) Classify(text string) model.PlatformResult {
	hits := m.scan(text)
	override, overrideReason := m.findOverride(text)

	// Precedence 1: a military designator whose civilian variant also appears
	// is treated as the civilian aircraft.
	for _, hit := range hits {
		if hit.mapping.Civilian != "" && designatorRegex(hit.mapping.Civilian).MatchString(text) {
			return model.PlatformResult{
				Platform:           hit.designator,
				Verdict:            model.PlatformGo,
				CivilianEquivalent: hit.mapping.Civilian,
				Rationale:          fmt.Sprintf("civilian variant %s present alongside %s", hit.mapping.Civilian, hit.designator),
			}
		}
	}

	// Precedence 2: pure civilian manufacturer or model.
	if maker := m.findCivilian(text); maker != "" {
		if len(hits) == 0 || allBlocksLifted(hits, override) {
			return model.PlatformResult{
				Platform:  maker,
				Verdict:   model.PlatformGo,
				Rationale: "civilian platform: " + maker,
			}
		}
	}

	// Precedence 3 and 4: military designators and engines block unless an
	// override phrase appears anywhere in the text.
	for _, hit := range hits {
		if hit.mapping.Verdict != model.PlatformNoGo {
			continue
		}
		if override {
			return model.PlatformResult{
				Platform:           hit.designator,
				Verdict:            model.PlatformGo,
				CivilianEquivalent: hit.mapping.Civilian,
				Overridden:         true,
				OverrideReason:     overrideReason,
				Rationale:          fmt.Sprintf("military platform %s overridden: %s", hit.designator, overrideReason),
			}
		}
		kind := "platform"
		if hit.engine {
			kind = "engine"
		}
		return model.PlatformResult{
			Platform:           hit.designator,
			Verdict:            model.PlatformNoGo,
			CivilianEquivalent: hit.mapping.Civilian,
			Rationale:          fmt.Sprintf("military %s %s", kind, hit.designator),
		}
	}

	// Conditional platforms (e.g. C-130) without a civilian variant present.
	for _, hit := range hits {
		if hit.mapping.Verdict == model.PlatformConditional {
			return model.PlatformResult{
				Platform:           hit.designator,
				Verdict:            model.PlatformConditional,
				CivilianEquivalent: hit.mapping.Civilian,
				Overridden:         override,
				OverrideReason:     overrideReason,
				Rationale:          fmt.Sprintf("conditional platform %s", hit.designator),
			}
		}
	}

	// GO-mapped military derivatives (e.g. KC-46) with no blocker.
	for _, hit := range hits {
		if hit.mapping.Verdict == model.PlatformGo {
			return model.PlatformResult{
				Platform:           hit.designator,
				Verdict:            model.PlatformGo,
				CivilianEquivalent: hit.mapping.Civilian,
				Rationale:          fmt.Sprintf("commercial derivative %s", hit.designator),
			}
		}
	}

	return model.PlatformResult{Verdict: model.PlatformUnknown}
}

// scan returns every dictionary designator present in the text.
func (m *Mapper) scan(text string) []compiled {
	var hits []compiled
	for _, c := range m.platforms {
		if c.re.MatchString(text) {
			hits = append(hits, c)
		}
	}
	return hits
}

// findOverride reports whether any block-lifting phrase is present.
func (m *Mapper) findOverride(text string) (bool, string) {
	for _, re := range m.overrides {
		if loc := re.FindString(text); loc != "" {
			return true, strings.Join(strings.Fields(loc), " ")
		}
	}
	return false, ""
}

// findCivilian returns the first civilian manufacturer or model mentioned.
func (m *Mapper) findCivilian(text string) string {
	for _, re := range m.civilian {
		if match := re.FindString(text); match != "" {
			return strings.Join(strings.Fields(match), " ")
		}
	}
	return ""
}

// allBlocksLifted reports whether every blocking hit is neutralized by an
// override phrase.
func allBlocksLifted(hits []compiled, override bool) bool {
	for _, hit := range hits {
		if hit.mapping.Verdict == model.PlatformNoGo && !override {
			return false
		}
	}
	return true
}
