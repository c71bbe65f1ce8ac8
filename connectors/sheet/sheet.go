package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fleet-stats/domain/config"
	"fleet-stats/domain/reconcile"
	"fleet-stats/domain/table"

	"github.com/xuri/excelize/v2"
)

// Load reads a .csv or .xlsx export into a table named after the file.
// Empty cells become missing values; blank rows are skipped.
func Load(path, sheet string) (*table.Table, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path, sheet)
	case ".csv":
		records, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%s: unsupported file type", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no header row", path)
	}

	headers := records[0]
	t := &table.Table{Name: filepath.Base(path), Columns: make([]string, len(headers))}
	for j, h := range headers {
		t.Columns[j] = strings.TrimPrefix(h, "\ufeff")
	}
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		row := make([]*string, len(headers))
		for j := 0; j < len(headers) && j < len(rec); j++ {
			if rec[j] != "" {
				row[j] = table.Str(rec[j])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// LoadSources reads the three configured exports.
func LoadSources(cfg config.Sources) (reconcile.Sources, error) {
	var (
		src reconcile.Sources
		err error
	)
	if src.CMDB, err = Load(cfg.CMDB.Path, cfg.CMDB.Sheet); err != nil {
		return src, err
	}
	if src.OS, err = Load(cfg.OS.Path, cfg.OS.Sheet); err != nil {
		return src, err
	}
	if src.Patch, err = Load(cfg.Patch.Path, cfg.Patch.Sheet); err != nil {
		return src, err
	}
	return src, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	// Raw values keep date cells as serial numbers; the formatted text of
	// the built-in date styles ("09-01-25", "1-Sep-25") is ambiguous.
	return f.GetRows(sheet, excelize.Options{RawCellValue: true})
}
