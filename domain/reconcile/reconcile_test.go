package reconcile

import (
	"strings"
	"testing"
	"time"

	"fleet-stats/domain/asset"
	"fleet-stats/domain/config"
	"fleet-stats/domain/metrics"
	"fleet-stats/domain/osclass"
	"fleet-stats/domain/table"
)

var cmdbHeader = []string{"Asset ID", "Status(Hardware Status)", "CI Type", "Asset Criteria", "Company", "Support group", "Owner ID", "Impact Level", "Email", "Custodian ID", "Location"}

func cmdbRow(id string) []string {
	return []string{id, "Live", "Laptop", "L3", "Acme", "EUC", "u1", "Low", "u1@example.com", "c1", "Pune"}
}

func fixture(ids []string, osRows [][]string, patchRows [][]string) Sources {
	var rows [][]string
	for _, id := range ids {
		rows = append(rows, cmdbRow(id))
	}
	return Sources{
		CMDB:  table.New("CMDB_Data.xlsx", cmdbHeader, rows...),
		OS:    table.New("OS_Version.xlsx", []string{"Name", "OperatingSystem", "LastLogonDate"}, osRows...),
		Patch: table.New("WSUS_Data.xlsx", []string{"Computer Name", "Status"}, patchRows...),
	}
}

func TestMergeLeftJoinAndFill(t *testing.T) {
	src := fixture([]string{"a1", "A2", "A3"},
		[][]string{{"A1", "Windows 11 Pro", "2025-09-01"}, {"ZZ9", "Windows 10 Pro", "2025-09-01"}},
		nil,
	)
	merged, err := Merge(src, config.Default().Sources)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(merged.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(merged.Rows))
	}
	if got := *merged.Value(0, asset.ColAssetID); got != "A1" {
		t.Errorf("id not upper-cased: %q", got)
	}
	if got := *merged.Value(0, asset.ColOperatingSystem); got != "Windows 11 Pro" {
		t.Errorf("matched os = %q", got)
	}
	for i := range merged.Rows {
		for _, col := range []string{asset.ColWSUSStatus, asset.ColHardwareStatus, asset.ColOperatingSystem, asset.ColLastLogonDate} {
			if merged.Value(i, col) == nil {
				t.Errorf("row %d: %s is null after gap filling", i, col)
			}
		}
	}
	if got := *merged.Value(1, asset.ColOperatingSystem); got != "Not Found" {
		t.Errorf("unmatched os = %q, want Not Found", got)
	}
	if got := *merged.Value(2, asset.ColWSUSStatus); got != "Not Reporting" {
		t.Errorf("unmatched wsus = %q, want Not Reporting", got)
	}
}

func TestMergeMissingColumn(t *testing.T) {
	src := fixture([]string{"A1"}, nil, nil)
	src.OS = table.New("OS_Version.xlsx", []string{"Name", "OperatingSystem"})
	_, err := Merge(src, config.Default().Sources)
	if err == nil || !strings.Contains(err.Error(), "OS_Version.xlsx") || !strings.Contains(err.Error(), "LastLogonDate") {
		t.Fatalf("want diagnostic naming file and column, got %v", err)
	}
}

func TestMergeRejectsShadowedColumn(t *testing.T) {
	src := fixture(nil, [][]string{{"A1", "Windows 11 Pro", "2025-09-01"}}, nil)
	src.CMDB = table.New("CMDB_Data.xlsx", append(append([]string{}, cmdbHeader...), "LastLogonDate"),
		append(cmdbRow("A1"), "2024-01-01"))
	_, err := Merge(src, config.Default().Sources)
	if err == nil || !strings.Contains(err.Error(), "LastLogonDate (OS_Version.xlsx)") {
		t.Fatalf("want diagnostic naming the OS export column, got %v", err)
	}
}

func TestEndToEndOverall(t *testing.T) {
	src := fixture([]string{"A1", "A2", "A3", "A4", "A5"},
		[][]string{
			{"a1", "Windows 11 Pro", "2025-09-01"},
			{"a2", "Windows 10 Pro", "2025-09-01"},
			{"a3", "Windows 7 Professional", "2025-09-01"},
			{"a5", "Windows Server 2019 Standard", "2025-09-01"},
		},
		[][]string{{"a2", "installed "}},
	)
	records, err := Records(src, config.Default().Sources, osclass.Default())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	filtered := asset.Filter(records, asset.Selection{}, time.Now())
	snap := metrics.Compute(filtered, metrics.DefaultPolicy())
	o := snap.Overall
	if o.Total != 5 || o.Win11.Count != 1 || o.Win10.Count != 1 || o.Older.Count != 1 || o.NotFound.Count != 1 || o.OtherOS.Count != 1 {
		t.Errorf("overall = %+v", o)
	}
	if snap.Patch.Installed != 1 {
		t.Errorf("patch = %+v, want one Installed", snap.Patch)
	}
}
