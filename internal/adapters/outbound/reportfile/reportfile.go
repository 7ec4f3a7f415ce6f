// Package reportfile writes the machine report artifact consumed by CI.
package reportfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/layerguard/layerguard/internal/domain"
)

// JSONWriter implements domain.ReportWriter as a flat JSON array, one record
// per violation with exactly the file/line/type/detail fields. The schema is
// load-bearing for downstream consumers; a clean run writes an empty array.
type JSONWriter struct{}

func New() *JSONWriter { return &JSONWriter{} }

func (w *JSONWriter) Write(path string, report *domain.Report) error {
	records := report.Violations
	if records == nil {
		records = []domain.Violation{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}
