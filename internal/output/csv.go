package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sosillc/bidgate/internal/model"
)

// csvColumns is the fixed column order for every CSV artifact. The leading
// column is always result; final_decision is never a CSV column.
var csvColumns = []string{
	"result",
	"solicitation_id",
	"solicitation_title",
	"agency",
	"naics_code",
	"psc_code",
	"set_aside",
	"posted_date",
	"due_date",
	"recommendation",
	"rationale",
	"knock_out_reasons",
	"exceptions",
	"special_action",
	"pipeline_stage",
	"assessment_type",
	"sam_url",
	"hg_url",
	"sos_pipeline_title",
}

// writeAssessmentCSV writes the primary flat table. On failure it retries
// with a headers-only file so downstream consumers always find valid CSV.
func (m *Manager) writeAssessmentCSV(dir string, records []model.UnifiedRecord) error {
	path := filepath.Join(dir, "assessment.csv")
	if err := writeCSV(path, records); err != nil {
		m.logger.Error("Primary CSV write failed, recovering with headers only",
			"path", path, "error", err)
		if recoverErr := writeCSV(path, nil); recoverErr != nil {
			return fmt.Errorf("writing %s: %w", path, recoverErr)
		}
	}
	return nil
}

// writeGoCSV writes GO_opportunities.csv only when at least one GO exists.
func (m *Manager) writeGoCSV(dir string, records []model.UnifiedRecord) error {
	var goRecords []model.UnifiedRecord
	for _, r := range records {
		if r.Result == model.DecisionGo {
			goRecords = append(goRecords, r)
		}
	}
	if len(goRecords) == 0 {
		return nil
	}
	path := filepath.Join(dir, "GO_opportunities.csv")
	if err := writeCSV(path, goRecords); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeCSV writes records with the fixed header, emitting the header even
// when the record set is empty.
func writeCSV(path string, records []model.UnifiedRecord) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, runFilePerm)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(csvRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func csvRow(r model.UnifiedRecord) []string {
	return []string{
		string(r.Result),
		r.SolicitationID,
		r.SolicitationTitle,
		r.Agency,
		r.NAICSCode,
		r.PSCCode,
		r.SetAside,
		r.PostedDate,
		r.DueDate,
		r.Recommendation,
		r.Rationale,
		strings.Join(r.KnockOutReasons, "; "),
		strings.Join(r.Exceptions, "; "),
		r.SpecialAction,
		string(r.PipelineStage),
		string(r.AssessmentType),
		r.SAMURL,
		r.HGURL,
		r.PipelineTitle,
	}
}
