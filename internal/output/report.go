package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sosillc/bidgate/internal/model"
)

// writeDataJSON writes the full machine-readable record of the run. Each
// record carries final_decision alongside result for internal consumers;
// that key exists only here, never in the CSVs.
func (m *Manager) writeDataJSON(dir string, records []model.UnifiedRecord, meta RunMetadata, summary Summary) error {
	recordMaps := make([]map[string]any, 0, len(records))
	for _, r := range records {
		rm := r.Map()
		rm["final_decision"] = string(r.Result)
		recordMaps = append(recordMaps, rm)
	}

	payload := map[string]any{
		"metadata": meta,
		"summary":  summary,
		"records":  recordMaps,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding data.json: %w", err)
	}
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, data, runFilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeReport writes the Markdown executive summary.
func (m *Manager) writeReport(dir string, records []model.UnifiedRecord, meta RunMetadata, summary Summary) error {
	var sb strings.Builder

	sb.WriteString("# Opportunity Assessment Report\n\n")
	fmt.Fprintf(&sb, "Run `%s`, completed %s.\n\n", meta.RunID, meta.CompletedAt.Format("2006-01-02 15:04:05"))

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "| Decision | Count |\n|---|---|\n")
	fmt.Fprintf(&sb, "| GO | %d |\n", summary.Go)
	fmt.Fprintf(&sb, "| NO-GO | %d |\n", summary.NoGo)
	fmt.Fprintf(&sb, "| INDETERMINATE | %d |\n", summary.Indeterminate)
	fmt.Fprintf(&sb, "| **Total** | **%d** |\n\n", summary.Total)
	fmt.Fprintf(&sb, "%d opportunities were knocked out before the LLM stages.\n\n", summary.AppKnockouts)

	sb.WriteString("## GO Opportunities\n\n")
	wroteAny := false
	for _, r := range records {
		if r.Result != model.DecisionGo {
			continue
		}
		if !wroteAny {
			sb.WriteString("| Solicitation | Title | Agency | Due | Rationale |\n|---|---|---|---|---|\n")
			wroteAny = true
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			mdCell(r.SolicitationID), mdCell(r.SolicitationTitle),
			mdCell(r.Agency), mdCell(r.DueDate), mdCell(r.Rationale))
	}
	if !wroteAny {
		sb.WriteString("No GO opportunities in this run.\n")
	}

	path := filepath.Join(dir, "report.md")
	if err := os.WriteFile(path, []byte(sb.String()), runFilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeSummaryText writes the short terminal-friendly run summary.
func (m *Manager) writeSummaryText(dir string, meta RunMetadata, summary Summary) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s\n", meta.RunID)
	fmt.Fprintf(&sb, "Completed: %s\n", meta.CompletedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Search IDs: %s\n\n", strings.Join(meta.SearchIDs, ", "))
	fmt.Fprintf(&sb, "Total assessed:   %d\n", summary.Total)
	fmt.Fprintf(&sb, "GO:               %d\n", summary.Go)
	fmt.Fprintf(&sb, "NO-GO:            %d\n", summary.NoGo)
	fmt.Fprintf(&sb, "INDETERMINATE:    %d\n", summary.Indeterminate)
	fmt.Fprintf(&sb, "App knockouts:    %d\n", summary.AppKnockouts)
	if meta.Errors > 0 {
		fmt.Fprintf(&sb, "Errors:           %d\n", meta.Errors)
	}
	if meta.AgentSkip {
		sb.WriteString("Agent verification was skipped for this run.\n")
	}

	path := filepath.Join(dir, "summary.txt")
	if err := os.WriteFile(path, []byte(sb.String()), runFilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// mdCell makes a value safe inside a Markdown table cell.
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
