package model

import (
	"encoding/json"
	"strings"
)

// combinedTextThreshold is the length above which the extracted text field is
// considered authoritative and other text-bearing fields are ignored.
const combinedTextThreshold = 1000

// Opportunity is a single federal contracting opportunity as returned by the
// vendor API, plus any document text attached by the document fetcher.
type Opportunity struct {
	SourceID     string       `json:"source_id"`
	OppKey       string       `json:"opp_key,omitempty"`
	Title        string       `json:"title"`
	Agency       FlexString   `json:"agency"`
	NAICSCode    FlexString   `json:"naics_code"`
	PSCCode      FlexString   `json:"psc_code"`
	SetAside     string       `json:"set_aside"`
	PostedDate   string       `json:"posted_date"`
	DueDate      string       `json:"due_date"`
	SourcePath   string       `json:"source_path,omitempty"`
	Path         string       `json:"path,omitempty"`
	ValEstLow    json.Number  `json:"val_est_low,omitempty"`
	ValEstHigh   json.Number  `json:"val_est_high,omitempty"`
	Place        string       `json:"place_of_performance,omitempty"`
	DocumentPath string       `json:"document_path,omitempty"`
	Description  string       `json:"description,omitempty"`
	AISummary    string       `json:"ai_summary,omitempty"`
	Requirements string       `json:"requirements,omitempty"`
	SOW          string       `json:"statement_of_work,omitempty"`
	Attachments  string       `json:"attachments_text,omitempty"`
	Text         string       `json:"text,omitempty"`
}

// ID returns the stable identifier for the opportunity, preferring source_id.
func (o *Opportunity) ID() string {
	if o.SourceID != "" {
		return o.SourceID
	}
	return o.OppKey
}

// CombinedText assembles the text used for pattern scanning. A long extracted
// text body is authoritative; otherwise all text-bearing fields are joined.
func (o *Opportunity) CombinedText() string {
	if len(o.Text) > combinedTextThreshold {
		return o.Text
	}

	parts := []string{
		o.Title,
		o.Text,
		o.Description,
		o.AISummary,
		o.Requirements,
		o.SOW,
		o.Attachments,
	}

	var sb strings.Builder
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p)
	}
	return sb.String()
}

// SAMURL returns the best-known sam.gov URL for the opportunity.
func (o *Opportunity) SAMURL() string {
	return o.SourcePath
}

// HGURL returns the best-known vendor portal URL for the opportunity.
func (o *Opportunity) HGURL() string {
	return o.Path
}

// FlexString unmarshals either a bare JSON string or a single-key object such
// as {"agency_name": "..."}. Both shapes occur in vendor API payloads.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		// Numbers show up occasionally for codes; fall back to raw text.
		*f = FlexString(strings.Trim(string(data), `"`))
		return nil //nolint:nilerr // tolerant by contract
	}

	for _, key := range []string{"agency_name", "naics_code", "psc_code", "name", "code", "value"} {
		if v, ok := obj[key]; ok {
			if s, ok := v.(string); ok {
				*f = FlexString(s)
				return nil
			}
		}
	}

	// Unknown object shape: take the first string value found.
	for _, v := range obj {
		if s, ok := v.(string); ok {
			*f = FlexString(s)
			return nil
		}
	}
	*f = ""
	return nil
}

// String returns the underlying string value.
func (f FlexString) String() string { return string(f) }
