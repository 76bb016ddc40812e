package model

import "time"

// CategoryCount is the number of knock-out categories scored by the gate.
const CategoryCount = 19

// Knock-out category identifiers, in scoring order.
const (
	CategoryTiming         = 1
	CategoryDomain         = 2
	CategorySecurity       = 3
	CategorySetAsides      = 4
	CategorySourceRestrict = 5
	CategoryTechData       = 6
	CategoryExportControl  = 7
	CategoryAMCAMSC        = 8
	CategorySAR            = 9
	CategoryPlatform       = 10
	CategoryProcurement    = 11
	CategoryCompetition    = 12
	CategorySubcontracting = 13
	CategoryVehicles       = 14
	CategoryExperimental   = 15
	CategoryITAccess       = 16
	CategoryCertifications = 17
	CategoryWarranty       = 18
	CategoryCADCAM         = 19
)

// CategoryNames maps category ids to human-readable names.
var CategoryNames = map[int]string{
	CategoryTiming:         "Timing",
	CategoryDomain:         "Domain",
	CategorySecurity:       "Security Clearance",
	CategorySetAsides:      "Set-Asides",
	CategorySourceRestrict: "Source Restrictions",
	CategoryTechData:       "Technical Data",
	CategoryExportControl:  "Export Control",
	CategoryAMCAMSC:        "AMC/AMSC Codes",
	CategorySAR:            "Source Approval Required",
	CategoryPlatform:       "Platform",
	CategoryProcurement:    "Procurement Condition",
	CategoryCompetition:    "Competition",
	CategorySubcontracting: "Subcontracting",
	CategoryVehicles:       "Contract Vehicles",
	CategoryExperimental:   "Experimental Programs",
	CategoryITAccess:       "IT Access",
	CategoryCertifications: "Certifications",
	CategoryWarranty:       "Warranty",
	CategoryCADCAM:         "CAD/CAM",
}

// CategoryScore is the gate's verdict for one knock-out category.
type CategoryScore struct {
	CategoryID      int      `json:"category_id"`
	Category        string   `json:"category"`
	Score           int      `json:"score"` // 0 = pass, 5 = hard block
	Triggered       bool     `json:"triggered"`
	MatchedFamilies []string `json:"matched_families,omitempty"`
	Evidence        []string `json:"evidence,omitempty"`
	Overridden      bool     `json:"overridden,omitempty"`
	OverrideFamily  string   `json:"override_family,omitempty"`
	ContactCO       bool     `json:"contact_co_applicable,omitempty"`
	ContactCOReason string   `json:"contact_co_reason,omitempty"`
}

// PlatformVerdict classifies an airframe or engine mention.
type PlatformVerdict string

// Platform verdicts.
const (
	PlatformGo          PlatformVerdict = "GO"
	PlatformNoGo        PlatformVerdict = "NO-GO"
	PlatformConditional PlatformVerdict = "CONDITIONAL"
	PlatformUnknown     PlatformVerdict = "UNKNOWN"
)

// PlatformResult is the platform mapper's verdict for an opportunity.
type PlatformResult struct {
	Platform           string          `json:"platform,omitempty"`
	Verdict            PlatformVerdict `json:"verdict"`
	CivilianEquivalent string          `json:"civilian_equivalent,omitempty"`
	Overridden         bool            `json:"overridden,omitempty"`
	OverrideReason     string          `json:"override_reason,omitempty"`
	Rationale          string          `json:"rationale,omitempty"`
}

// PartsCondition classifies the parts-condition requirement of a solicitation.
type PartsCondition string

// Parts-condition classifications.
const (
	ConditionNewOnly     PartsCondition = "NEW_ONLY"
	ConditionRefurbOK    PartsCondition = "REFURB_OK"
	ConditionSurplusOK   PartsCondition = "SURPLUS_OK"
	ConditionAny         PartsCondition = "ANY_CONDITION"
	ConditionUnspecified PartsCondition = "UNSPECIFIED"
)

// ConditionResult is the condition checker's verdict.
type ConditionResult struct {
	Condition PartsCondition `json:"condition"`
	Decision  Decision       `json:"decision"` // GO, NO-GO, or INDETERMINATE for CONDITIONAL cases
	Rationale string         `json:"rationale,omitempty"`
	Evidence  []string       `json:"evidence,omitempty"`
}

// AssessmentResult is the gate's full output for one opportunity.
type AssessmentResult struct {
	Decision               Decision              `json:"decision"`
	TriggeredCategories    []int                 `json:"triggered_categories"`
	PrimaryBlocker         string                `json:"primary_blocker,omitempty"`
	PrimaryBlockerCategory int                   `json:"primary_blocker_category,omitempty"`
	Scores                 map[int]CategoryScore `json:"scores"`
	ContactCO              bool                  `json:"contact_co"`
	ContactCOReason        string                `json:"contact_co_reason,omitempty"`
	Confidence             int                   `json:"confidence"`
	Platform               *PlatformResult       `json:"platform_result,omitempty"`
	Condition              *ConditionResult      `json:"condition_result,omitempty"`
	PositiveSignals        []string              `json:"positive_signals,omitempty"`
	FurtherAnalysis        []string              `json:"further_analysis,omitempty"`
	KnockPattern           string                `json:"knock_pattern,omitempty"`
	AssessedAt             time.Time             `json:"assessed_at"`
}

// BatchResult is one parsed response from the batch LLM stage.
type BatchResult struct {
	CustomID  string   `json:"custom_id"`
	Decision  Decision `json:"decision"`
	Rationale string   `json:"rationale"`
	Raw       string   `json:"raw,omitempty"`
}

// AgentResult is one parsed response from the agent verification stage.
type AgentResult struct {
	Decision       Decision `json:"decision"`
	Rationale      string   `json:"rationale"`
	AgentReasoning string   `json:"agent_reasoning,omitempty"`
	Raw            string   `json:"raw,omitempty"`
}
