package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosillc/bidgate/internal/model"
	"github.com/sosillc/bidgate/internal/patterns"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(patterns.Default(), Config{})
}

func TestAssessMilitaryFighter(t *testing.T) {
	e := newTestEngine(t)

	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-001",
		Title:    "F-16 Fighting Falcon parts",
		Text:     "F-16 spares",
	})

	assert.Equal(t, model.DecisionNoGo, result.Decision)
	assert.Equal(t, 10, result.PrimaryBlockerCategory)
	require.NotNil(t, result.Platform)
	assert.Equal(t, "F-16", result.Platform.Platform)
}

func TestAssessOverriddenTransport(t *testing.T) {
	e := newTestEngine(t)

	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-002",
		Title:    "C-130 with AMSC Code Z commercial equivalent acceptable",
	})

	assert.Equal(t, model.DecisionGo, result.Decision)
	assert.NotContains(t, result.TriggeredCategories, 10)

	var evidence []string
	for _, score := range result.Scores {
		evidence = append(evidence, score.Evidence...)
	}
	overrideSeen := false
	for _, ev := range evidence {
		if len(ev) >= 8 && ev[:8] == "Override" {
			overrideSeen = true
		}
	}
	assert.True(t, overrideSeen, "expected override evidence, got %v", evidence)
}

func TestAssessNavyException(t *testing.T) {
	e := newTestEngine(t)

	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-003",
		Title:    "Navy P-8A Poseidon parts; source approval required; FAA 8130-3",
	})

	assert.Equal(t, model.DecisionGo, result.Decision)
	assert.True(t, result.ContactCO)
	assert.Contains(t, result.ContactCOReason, "P-8")
}

func TestAssessNavyExceptionRequiresAllFourSignals(t *testing.T) {
	e := newTestEngine(t)

	// FAA 8130 acceptance is missing, so the exception must not activate.
	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-003B",
		Title:    "Navy P-8A Poseidon parts; source approval required",
	})
	assert.False(t, result.ContactCO)
}

func TestAssessCivilianRefurb(t *testing.T) {
	e := newTestEngine(t)

	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-004",
		Title:    "Commercial Boeing 737 parts, refurbished acceptable",
	})

	assert.Equal(t, model.DecisionGo, result.Decision)
	assert.NotContains(t, result.TriggeredCategories, 11)
	require.NotNil(t, result.Condition)
	assert.Equal(t, model.ConditionRefurbOK, result.Condition.Condition)
}

func TestAssessSetAside(t *testing.T) {
	e := newTestEngine(t)

	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-005",
		Title:    "Aircraft brake assemblies",
		SetAside: "8(a)",
	})

	assert.Equal(t, model.DecisionNoGo, result.Decision)
	assert.Equal(t, 4, result.PrimaryBlockerCategory)
}

func TestAssessExpiredDueDate(t *testing.T) {
	e := newTestEngine(t)

	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-006",
		Title:    "Aircraft brake assemblies",
		DueDate:  "2000-01-01",
	})

	assert.Equal(t, model.DecisionNoGo, result.Decision)
	assert.Contains(t, result.TriggeredCategories, 1)
}

func TestAssessDisabledDeadlineCheck(t *testing.T) {
	e := New(patterns.Default(), Config{DisableDeadlineCheck: true})

	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-006B",
		Title:    "Aircraft brake assemblies",
		DueDate:  "2000-01-01",
	})

	assert.NotContains(t, result.TriggeredCategories, 1)
}

func TestAssessDecisionDomain(t *testing.T) {
	e := newTestEngine(t)

	inputs := []*model.Opportunity{
		{SourceID: "A", Title: "F-16 spares"},
		{SourceID: "B", Title: "Boeing 737 parts"},
		{SourceID: "C", Title: "office furniture"},
		{SourceID: "D", Title: ""},
		{SourceID: "E", Title: "Navy P-8A Poseidon, source approval, FAA 8130-3"},
	}

	for _, opp := range inputs {
		result := e.Assess(opp)
		assert.Contains(t, []model.Decision{
			model.DecisionGo, model.DecisionNoGo, model.DecisionIndeterminate, model.DecisionContactCO,
		}, result.Decision, "opportunity %s", opp.SourceID)
	}
}

func TestAssessCivilianNeverNoGoWithoutTrigger(t *testing.T) {
	e := newTestEngine(t)

	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-INV3",
		Title:    "Gulfstream G550 cabin window assemblies",
	})

	require.NotNil(t, result.Platform)
	assert.Equal(t, model.PlatformGo, result.Platform.Verdict)
	assert.NotEqual(t, model.DecisionNoGo, result.Decision)
}

func TestAssessIndeterminateCarriesHints(t *testing.T) {
	e := newTestEngine(t)

	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-HINT",
		Title:    "Component repair, JCP certification required for drawing access",
	})

	assert.Equal(t, model.DecisionIndeterminate, result.Decision)
	assert.NotEmpty(t, result.FurtherAnalysis)
}

func TestAssessMultipleRestrictions(t *testing.T) {
	e := newTestEngine(t)

	result := e.Assess(&model.Opportunity{
		SourceID: "TEST-MULTI",
		Title:    "Sole source award requiring secret clearance",
	})

	assert.Equal(t, model.DecisionNoGo, result.Decision)
	assert.GreaterOrEqual(t, len(result.TriggeredCategories), 2)
}

func TestAviationRelated(t *testing.T) {
	e := newTestEngine(t)

	assert.True(t, e.AviationRelated("Boeing 737 brake assemblies"))
	assert.False(t, e.AviationRelated("janitorial services for building 400"))
}
