package patterns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosillc/bidgate/internal/common"
)

func TestParseFlatShape(t *testing.T) {
	pack, err := Parse([]byte(`
security_clearance:
  patterns:
    - 'secret clearance'
    - 'top secret'
set_aside_codes:
  patterns:
    - '8\(a\)'
`))
	require.NoError(t, err)

	assert.Equal(t, 2, pack.Len())
	matches := pack.Scan("requires a Secret Clearance for all personnel")
	assert.True(t, matches.Has("security_clearance"))
	assert.False(t, matches.Has("set_aside_codes"))
}

func TestParseGroupedShape(t *testing.T) {
	pack, err := Parse([]byte(`
source_approval:
  pattern_groups:
    - regex_patterns:
        - 'source\s+approval'
      exact_phrases:
        - qualified products list
`))
	require.NoError(t, err)

	matches := pack.Scan("item appears on the Qualified Products List")
	assert.True(t, matches.Has("source_approval"))

	matches = pack.Scan("engineering source approval required")
	assert.True(t, matches.Has("source_approval"))
}

func TestParseSkipsBadPatterns(t *testing.T) {
	pack, err := Parse([]byte(`
mixed:
  patterns:
    - '[unclosed'
    - 'valid pattern'
`))
	require.NoError(t, err)

	family := pack.Family("mixed")
	require.NotNil(t, family)
	assert.Equal(t, 1, family.PatternCount())
	assert.True(t, pack.Scan("a valid pattern here").Has("mixed"))
}

func TestParseRejectsPackWithNoUsableFamilies(t *testing.T) {
	_, err := Parse([]byte(`
broken:
  patterns:
    - '[unclosed'
`))
	require.ErrorIs(t, err, common.ErrEmptyPack)
}

func TestLoadMissingFileYieldsEmptyPack(t *testing.T) {
	pack, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0, pack.Len())
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("empty path gives built-in pack", func(t *testing.T) {
		pack, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Greater(t, pack.Len(), 10)
	})

	t.Run("explicit path is loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pack.yaml")
		require.NoError(t, os.WriteFile(path, []byte("only:\n  patterns:\n    - 'thing'\n"), 0o644))

		pack, err := LoadOrDefault(path)
		require.NoError(t, err)
		assert.Equal(t, 1, pack.Len())
	})
}

func TestScanSnippets(t *testing.T) {
	pack, err := Parse([]byte(`
clearance:
  patterns:
    - 'top secret'
`))
	require.NoError(t, err)

	matches := pack.Scan("all staff require Top Secret eligibility before start")
	snippets := matches["clearance"]
	require.NotEmpty(t, snippets)
	assert.Contains(t, snippets[0], "Top Secret")
}

func TestDefaultPackCoversEveryCategory(t *testing.T) {
	pack := Default()
	seen := make(map[int]bool)
	for _, name := range pack.Families() {
		if id, ok := FamilyCategories[name]; ok {
			seen[id] = true
		}
	}
	// Category 1 is date-driven and has no pattern family.
	for id := 2; id <= 19; id++ {
		assert.True(t, seen[id], "no default family for category %d", id)
	}
}
