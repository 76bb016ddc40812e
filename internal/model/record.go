package model

// UnifiedRecord is the single post-sanitizer record shape shared by all three
// pipeline stages. Every persisted artifact is built from unified records.
type UnifiedRecord struct {
	SolicitationID    string         `json:"solicitation_id" mapstructure:"solicitation_id"`
	SolicitationTitle string         `json:"solicitation_title" mapstructure:"solicitation_title"`
	Summary           string         `json:"summary" mapstructure:"summary"`
	Result            Decision       `json:"result" mapstructure:"result"`
	KnockOutReasons   []string       `json:"knock_out_reasons" mapstructure:"knock_out_reasons"`
	Exceptions        []string       `json:"exceptions" mapstructure:"exceptions"`
	SpecialAction     string         `json:"special_action" mapstructure:"special_action"`
	Rationale         string         `json:"rationale" mapstructure:"rationale"`
	Recommendation    string         `json:"recommendation" mapstructure:"recommendation"`
	PipelineTitle     string         `json:"sos_pipeline_title" mapstructure:"sos_pipeline_title"`
	SAMURL            string         `json:"sam_url" mapstructure:"sam_url"`
	HGURL             string         `json:"hg_url" mapstructure:"hg_url"`
	PipelineStage     PipelineStage  `json:"pipeline_stage" mapstructure:"pipeline_stage"`
	AssessmentType    AssessmentType `json:"assessment_type" mapstructure:"assessment_type"`
	Sanitized         bool           `json:"_sanitized" mapstructure:"_sanitized"`

	// Descriptive metadata carried forward verbatim from the opportunity.
	Agency     string `json:"agency,omitempty" mapstructure:"agency,omitempty"`
	NAICSCode  string `json:"naics_code,omitempty" mapstructure:"naics_code,omitempty"`
	PSCCode    string `json:"psc_code,omitempty" mapstructure:"psc_code,omitempty"`
	SetAside   string `json:"set_aside,omitempty" mapstructure:"set_aside,omitempty"`
	PostedDate string `json:"posted_date,omitempty" mapstructure:"posted_date,omitempty"`
	DueDate    string `json:"due_date,omitempty" mapstructure:"due_date,omitempty"`

	// Agent verification fields, attached only by the agent stage.
	AgentReasoning    string `json:"agent_reasoning,omitempty" mapstructure:"agent_reasoning,omitempty"`
	VerificationError string `json:"verification_error,omitempty" mapstructure:"verification_error,omitempty"`

	// Extra preserves any metadata fields not covered above.
	Extra map[string]any `json:"-" mapstructure:",remain"`
}

// Map renders the record as a flat map, including preserved extra fields and
// the backward-compatible final_decision key used inside data.json.
func (r UnifiedRecord) Map() map[string]any {
	m := make(map[string]any, len(r.Extra)+20)
	for k, v := range r.Extra {
		m[k] = v
	}
	m["solicitation_id"] = r.SolicitationID
	m["solicitation_title"] = r.SolicitationTitle
	m["summary"] = r.Summary
	m["result"] = string(r.Result)
	m["knock_out_reasons"] = r.KnockOutReasons
	m["exceptions"] = r.Exceptions
	m["special_action"] = r.SpecialAction
	m["rationale"] = r.Rationale
	m["recommendation"] = r.Recommendation
	m["sos_pipeline_title"] = r.PipelineTitle
	m["sam_url"] = r.SAMURL
	m["hg_url"] = r.HGURL
	m["pipeline_stage"] = string(r.PipelineStage)
	m["assessment_type"] = string(r.AssessmentType)
	m["_sanitized"] = r.Sanitized
	if r.Agency != "" {
		m["agency"] = r.Agency
	}
	if r.NAICSCode != "" {
		m["naics_code"] = r.NAICSCode
	}
	if r.PSCCode != "" {
		m["psc_code"] = r.PSCCode
	}
	if r.SetAside != "" {
		m["set_aside"] = r.SetAside
	}
	if r.PostedDate != "" {
		m["posted_date"] = r.PostedDate
	}
	if r.DueDate != "" {
		m["due_date"] = r.DueDate
	}
	if r.AgentReasoning != "" {
		m["agent_reasoning"] = r.AgentReasoning
	}
	if r.VerificationError != "" {
		m["verification_error"] = r.VerificationError
	}
	return m
}
