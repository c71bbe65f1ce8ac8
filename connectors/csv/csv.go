package csv

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"fleet-stats/domain/asset"
	"fleet-stats/domain/report"
)

// WriteAssets writes the header row and one line per record, projected on columns.
func WriteAssets(out io.Writer, columns []string, rows []asset.Record) error {
	w := csv.NewWriter(out)
	if err := w.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, r := range rows {
		for i, c := range columns {
			row[i] = r.Field(c)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteAssetsCSV writes the export to path, creating parent directories.
func WriteAssetsCSV(path string, columns []string, rows []asset.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteAssets(f, columns, rows)
}

// FileSink exports the report rows to a CSV file.
type FileSink struct {
	Path string
}

func (s FileSink) Emit(r report.Report) error {
	return WriteAssetsCSV(s.Path, r.Columns, r.Rows)
}
