// Package patterns provides the declarative knock-out pattern pack: named
// families of compiled regexes grouped into the gate's knock-out categories.
package patterns

import (
	"fmt"
	"regexp"
	"strings"
)

// snippetRadius is the number of characters of context captured on each side
// of a pattern match when collecting evidence snippets.
const snippetRadius = 60

// maxSnippetsPerFamily caps evidence collection per family per scan.
const maxSnippetsPerFamily = 3

// Family is a named group of compiled patterns that fire together.
type Family struct {
	Name    string
	regexes []*regexp.Regexp
}

// NewFamily compiles the given regex expressions and exact phrases into a
// family. Unparseable expressions are returned in skipped and dropped; a
// family with at least one surviving pattern is still usable.
func NewFamily(name string, exprs, phrases []string) (*Family, []string) {
	f := &Family{Name: name}
	var skipped []string

	for _, expr := range exprs {
		re, err := compileExpr(expr)
		if err != nil {
			skipped = append(skipped, expr)
			continue
		}
		f.regexes = append(f.regexes, re)
	}
	for _, phrase := range phrases {
		re, err := compilePhrase(phrase)
		if err != nil {
			skipped = append(skipped, phrase)
			continue
		}
		f.regexes = append(f.regexes, re)
	}

	return f, skipped
}

// PatternCount returns the number of compiled patterns in the family.
func (f *Family) PatternCount() int {
	return len(f.regexes)
}

// compileExpr compiles a raw regex case-insensitively and in multiline mode.
func compileExpr(expr string) (*regexp.Regexp, error) {
	if !strings.HasPrefix(expr, "(?") {
		expr = "(?im)" + expr
	}
	return regexp.Compile(expr)
}

// compilePhrase converts an exact phrase into a word-bounded, whitespace-
// tolerant regex.
func compilePhrase(phrase string) (*regexp.Regexp, error) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil, fmt.Errorf("empty phrase")
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.Compile(`(?im)\b` + strings.Join(quoted, `\s+`) + `\b`)
}

// MatchSet maps family names to the evidence snippets they matched.
type MatchSet map[string][]string

// Has reports whether the named family matched.
func (m MatchSet) Has(family string) bool {
	_, ok := m[family]
	return ok
}

// HasAny reports whether any of the named families matched.
func (m MatchSet) HasAny(families ...string) (string, bool) {
	for _, f := range families {
		if m.Has(f) {
			return f, true
		}
	}
	return "", false
}

// Pack is the full pattern library: all families, scanned in load order.
type Pack struct {
	families map[string]*Family
	order    []string
}

// NewPack creates an empty pack.
func NewPack() *Pack {
	return &Pack{families: make(map[string]*Family)}
}

// Add inserts a family, merging patterns when the name already exists.
func (p *Pack) Add(f *Family) {
	if f == nil || f.PatternCount() == 0 {
		return
	}
	if existing, ok := p.families[f.Name]; ok {
		existing.regexes = append(existing.regexes, f.regexes...)
		return
	}
	p.families[f.Name] = f
	p.order = append(p.order, f.Name)
}

// Family returns the named family, or nil.
func (p *Pack) Family(name string) *Family {
	return p.families[name]
}

// Families returns family names in load order.
func (p *Pack) Families() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Len returns the number of families in the pack.
func (p *Pack) Len() int {
	return len(p.families)
}

// Scan matches the full text against every family once and returns the
// evidence snippets per matched family.
func (p *Pack) Scan(text string) MatchSet {
	matches := make(MatchSet)
	for _, name := range p.order {
		family := p.families[name]
		for _, re := range family.regexes {
			locs := re.FindAllStringIndex(text, maxSnippetsPerFamily)
			for _, loc := range locs {
				if len(matches[name]) >= maxSnippetsPerFamily {
					break
				}
				matches[name] = append(matches[name], snippet(text, loc[0], loc[1]))
			}
			if len(matches[name]) >= maxSnippetsPerFamily {
				break
			}
		}
	}
	return matches
}

// snippet extracts a whitespace-collapsed excerpt around a match location.
func snippet(text string, start, end int) string {
	lo := start - snippetRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + snippetRadius
	if hi > len(text) {
		hi = len(text)
	}
	return strings.Join(strings.Fields(text[lo:hi]), " ")
}
