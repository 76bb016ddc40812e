package patterns

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sosillc/bidgate/internal/common"
)

// familySpec is the on-disk form of one pattern family. Two historic shapes
// are accepted: a flat patterns list, and grouped entries carrying
// regex_patterns and exact_phrases separately.
type familySpec struct {
	Patterns      []string    `yaml:"patterns"`
	PatternGroups []groupSpec `yaml:"pattern_groups"`
}

type groupSpec struct {
	RegexPatterns []string `yaml:"regex_patterns"`
	ExactPhrases  []string `yaml:"exact_phrases"`
}

// Load reads a pattern pack from a YAML file. Per-pattern compile failures
// are logged and skipped; a missing file yields an empty pack so every
// opportunity falls through to INDETERMINATE rather than aborting the run.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Pattern pack file not found, using empty pack", "path", path)
			return NewPack(), nil
		}
		return nil, fmt.Errorf("failed to read pattern pack: %w", err)
	}

	return Parse(data)
}

// Parse decodes pattern pack YAML into a compiled pack.
func Parse(data []byte) (*Pack, error) {
	var specs map[string]familySpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to parse pattern pack: %w", err)
	}

	pack := NewPack()
	for name, spec := range specs {
		exprs := append([]string{}, spec.Patterns...)
		var phrases []string
		for _, group := range spec.PatternGroups {
			exprs = append(exprs, group.RegexPatterns...)
			phrases = append(phrases, group.ExactPhrases...)
		}

		family, skipped := NewFamily(name, exprs, phrases)
		for _, expr := range skipped {
			slog.Warn("Skipping unparseable pattern", "family", name, "pattern", expr)
		}
		pack.Add(family)
	}

	// A pack file with no usable family is a configuration error, unlike a
	// missing file which degrades to an empty pack.
	if len(specs) > 0 && pack.Len() == 0 {
		return nil, fmt.Errorf("%w: no usable pattern families", common.ErrEmptyPack)
	}

	return pack, nil
}

// LoadOrDefault loads the pack at path when set, otherwise the built-in pack.
func LoadOrDefault(path string) (*Pack, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
