// Package output persists run artifacts and the rolling master datasets.
package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sosillc/bidgate/internal/model"
)

const (
	runFilePerm = 0o644
	runDirPerm  = 0o755

	masterDirName = "Master_Database"
)

// RunMetadata describes one pipeline run for data.json and the reports.
type RunMetadata struct {
	RunID       string    `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	SearchIDs   []string  `json:"search_ids"`
	Model       string    `json:"model,omitempty"`
	BatchJobID  string    `json:"batch_job_id,omitempty"`
	AgentSkip   bool      `json:"agent_verification_skipped"`
	Errors      int       `json:"errors"`
}

// Summary holds the decision counts reported in data.json and summary.txt.
type Summary struct {
	Total         int `json:"total"`
	Go            int `json:"go"`
	NoGo          int `json:"no_go"`
	Indeterminate int `json:"indeterminate"`
	AppKnockouts  int `json:"app_knockouts"`
}

// Manager writes all artifacts for one run under a timestamped directory and
// appends every record to the rolling master datasets.
type Manager struct {
	baseDir string
	runDir  string
	logger  *slog.Logger
	now     func() time.Time
}

// NewManager creates a manager rooted at baseDir (typically "SOS_Output").
func NewManager(baseDir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		baseDir: baseDir,
		logger:  logger,
		now:     time.Now,
	}
}

// RunDir returns the run directory, creating it on first call. The layout is
// <base>/<YYYY-MM>/Run_<timestamp>_<sid8>/ so runs group by month.
func (m *Manager) RunDir() (string, error) {
	if m.runDir != "" {
		return m.runDir, nil
	}

	now := m.now()
	sid := uuid.NewString()[:8]
	dir := filepath.Join(
		m.baseDir,
		now.Format("2006-01"),
		fmt.Sprintf("Run_%s_%s", now.Format("2006-01-02_150405"), sid),
	)
	if err := os.MkdirAll(dir, runDirPerm); err != nil {
		return "", fmt.Errorf("creating run directory: %w", err)
	}

	m.runDir = dir
	return dir, nil
}

// WriteRun persists every artifact for a completed run. Artifact order
// matters: the primary CSV and data.json first, reports next, master appends
// last so a partial failure leaves the per-run artifacts intact. Master
// failures are logged but never fail the run.
func (m *Manager) WriteRun(records []model.UnifiedRecord, meta RunMetadata) (string, error) {
	dir, err := m.RunDir()
	if err != nil {
		return "", err
	}

	summary := Summarize(records)

	if err := m.writeAssessmentCSV(dir, records); err != nil {
		return dir, err
	}
	if err := m.writeDataJSON(dir, records, meta, summary); err != nil {
		return dir, err
	}
	if err := m.writeReport(dir, records, meta, summary); err != nil {
		return dir, err
	}
	if err := m.writeSummaryText(dir, meta, summary); err != nil {
		return dir, err
	}
	if err := m.writeGoCSV(dir, records); err != nil {
		return dir, err
	}

	if err := m.appendMasters(records); err != nil {
		m.logger.Warn("Master database append failed", "error", err)
	}

	return dir, nil
}

// Summarize counts decisions across a record set.
func Summarize(records []model.UnifiedRecord) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Result {
		case model.DecisionGo:
			s.Go++
		case model.DecisionNoGo:
			s.NoGo++
		default:
			s.Indeterminate++
		}
		if r.AssessmentType == model.TypeAppKnockout {
			s.AppKnockouts++
		}
	}
	return s
}
