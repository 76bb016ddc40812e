package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sosillc/bidgate/internal/model"
)

// appendMasters appends every record to the rolling master datasets: the
// daily CSV and JSONL plus the all-time CSV. All three are append-only logs
// shared across runs, so files are opened in append mode and headers are
// written only when the file is created.
func (m *Manager) appendMasters(records []model.UnifiedRecord) error {
	if len(records) == 0 {
		return nil
	}

	masterDir := filepath.Join(m.baseDir, masterDirName)
	if err := os.MkdirAll(masterDir, runDirPerm); err != nil {
		return fmt.Errorf("creating master directory: %w", err)
	}

	day := m.now().Format("2006-01-02")
	dailyCSV := filepath.Join(masterDir, "master_"+day+".csv")
	dailyJSONL := filepath.Join(masterDir, "master_"+day+".jsonl")
	allTimeCSV := filepath.Join(masterDir, "master_all_time.csv")

	if err := appendCSV(dailyCSV, records); err != nil {
		return fmt.Errorf("appending %s: %w", dailyCSV, err)
	}
	if err := appendJSONL(dailyJSONL, records); err != nil {
		return fmt.Errorf("appending %s: %w", dailyJSONL, err)
	}
	if err := appendCSV(allTimeCSV, records); err != nil {
		return fmt.Errorf("appending %s: %w", allTimeCSV, err)
	}
	return nil
}

func appendCSV(path string, records []model.UnifiedRecord) error {
	writeHeader := false
	if info, err := os.Stat(path); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, runFilePerm)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvColumns); err != nil {
			return err
		}
	}
	for _, r := range records {
		if err := w.Write(csvRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func appendJSONL(path string, records []model.UnifiedRecord) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, runFilePerm)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, r := range records {
		if err := enc.Encode(r.Map()); err != nil {
			return err
		}
	}
	return nil
}
