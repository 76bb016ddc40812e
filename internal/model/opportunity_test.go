package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpportunityID(t *testing.T) {
	opp := &Opportunity{SourceID: "SPE4A7-25-Q-0001", OppKey: "hg-123"}
	assert.Equal(t, "SPE4A7-25-Q-0001", opp.ID())

	opp = &Opportunity{OppKey: "hg-123"}
	assert.Equal(t, "hg-123", opp.ID())
}

func TestCombinedText(t *testing.T) {
	t.Run("long extracted text is authoritative", func(t *testing.T) {
		opp := &Opportunity{
			Title:       "Boeing 737 brake assemblies",
			Description: "should not appear",
			Text:        strings.Repeat("x", 1001),
		}
		combined := opp.CombinedText()
		assert.Equal(t, opp.Text, combined)
		assert.NotContains(t, combined, "should not appear")
	})

	t.Run("short text joins all fields", func(t *testing.T) {
		opp := &Opportunity{
			Title:       "Boeing 737 brake assemblies",
			Description: "refurbished acceptable",
			AISummary:   "commercial aviation parts",
			Text:        "short extract",
		}
		combined := opp.CombinedText()
		assert.Contains(t, combined, "Boeing 737 brake assemblies")
		assert.Contains(t, combined, "refurbished acceptable")
		assert.Contains(t, combined, "commercial aviation parts")
		assert.Contains(t, combined, "short extract")
	})

	t.Run("blank fields are skipped", func(t *testing.T) {
		opp := &Opportunity{Title: "only a title"}
		assert.Equal(t, "only a title", opp.CombinedText())
	})
}

func TestFlexStringUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare string", input: `{"agency": "Defense Logistics Agency"}`, want: "Defense Logistics Agency"},
		{name: "agency object", input: `{"agency": {"agency_name": "NAVSUP"}}`, want: "NAVSUP"},
		{name: "code object", input: `{"agency": {"code": "DLA"}}`, want: "DLA"},
		{name: "number", input: `{"agency": 3361}`, want: "3361"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Agency FlexString `json:"agency"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.input), &payload))
			assert.Equal(t, tt.want, payload.Agency.String())
		})
	}
}
