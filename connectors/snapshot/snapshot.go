package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"fleet-stats/domain/report"
)

// FileSink writes the selection and metrics of a report as indented JSON.
// Rows are left out; the CSV export carries them.
type FileSink struct {
	Path string
}

type document struct {
	GeneratedAt string      `json:"generated_at"`
	Selection   interface{} `json:"selection"`
	Metrics     interface{} `json:"metrics"`
	Rows        int         `json:"rows"`
}

func (s FileSink) Emit(r report.Report) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(document{
		GeneratedAt: r.GeneratedAt.UTC().Format(time.RFC3339),
		Selection:   r.Selection,
		Metrics:     r.Metrics,
		Rows:        len(r.Rows),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, append(b, '\n'), 0o644)
}
