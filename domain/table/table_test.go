package table

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func column(t *Table, name string) []string {
	j := t.Index(name)
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		if j < 0 || r[j] == nil {
			out[i] = "<nil>"
			continue
		}
		out[i] = *r[j]
	}
	return out
}

func TestNormalizeKey(t *testing.T) {
	src := New("OS_Version.xlsx", []string{"Name", "OperatingSystem"},
		[]string{"pc-01", "Windows 11 Pro"},
		[]string{"", "Windows 10 Pro"},
		[]string{"Pc-02", ""},
	)
	got, err := NormalizeKey(src, "Name", "Asset ID")
	if err != nil {
		t.Fatalf("NormalizeKey: %v", err)
	}
	if diff := cmp.Diff([]string{"Asset ID", "OperatingSystem"}, got.Columns); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"PC-01", "<nil>", "PC-02"}, column(got, "Asset ID")); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	// source untouched
	if *src.Rows[0][0] != "pc-01" {
		t.Errorf("source mutated: %q", *src.Rows[0][0])
	}

	again, err := NormalizeKey(got, "Asset ID", "Asset ID")
	if err != nil {
		t.Fatalf("NormalizeKey twice: %v", err)
	}
	if diff := cmp.Diff(column(got, "Asset ID"), column(again, "Asset ID")); diff != "" {
		t.Errorf("normalizing twice changed ids:\n%s", diff)
	}
}

func TestNormalizeKeyMissingColumn(t *testing.T) {
	src := New("WSUS_Data.xlsx", []string{"Host", "Status"})
	_, err := NormalizeKey(src, "Computer Name", "Asset ID")
	if err == nil {
		t.Fatal("expected error for missing id column")
	}
	if !strings.Contains(err.Error(), "WSUS_Data.xlsx") || !strings.Contains(err.Error(), "Computer Name") {
		t.Errorf("diagnostic should name file and column, got %q", err)
	}
}

func TestLeftJoinKeepsPrimaryRows(t *testing.T) {
	cmdb := New("CMDB_Data.xlsx", []string{"Asset ID", "CI Type"},
		[]string{"A1", "Laptop"},
		[]string{"A2", "Desktop"},
		[]string{"A3", "Laptop"},
	)
	osData := New("OS_Version.xlsx", []string{"Asset ID", "OperatingSystem"},
		[]string{"A1", "Windows 11 Pro"},
		[]string{"ZZ", "Windows 10 Pro"},
	)
	got, err := LeftJoin(cmdb, osData, "Asset ID")
	if err != nil {
		t.Fatalf("LeftJoin: %v", err)
	}
	if len(got.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(got.Rows))
	}
	if diff := cmp.Diff([]string{"Windows 11 Pro", "<nil>", "<nil>"}, column(got, "OperatingSystem")); diff != "" {
		t.Errorf("os column (-want +got):\n%s", diff)
	}
}

func TestLeftJoinFanOutAndCollisions(t *testing.T) {
	left := New("CMDB_Data.xlsx", []string{"Asset ID", "Status"},
		[]string{"A1", "Live"},
		[]string{"", "Retired"},
	)
	right := New("WSUS_Data.xlsx", []string{"Asset ID", "Status"},
		[]string{"A1", "Installed"},
		[]string{"A1", "Failed"},
		[]string{"", "Downloaded"},
	)
	got, err := LeftJoin(left, right, "Asset ID")
	if err != nil {
		t.Fatalf("LeftJoin: %v", err)
	}
	wantCols := []string{"Asset ID", "Status", "Status (WSUS_Data.xlsx)"}
	if diff := cmp.Diff(wantCols, got.Columns); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Installed", "Failed", "<nil>"}, column(got, "Status (WSUS_Data.xlsx)")); diff != "" {
		t.Errorf("right status (-want +got):\n%s", diff)
	}
	if got := JoinedName(left, right, "Asset ID", "Status"); got != "Status (WSUS_Data.xlsx)" {
		t.Errorf("JoinedName = %q", got)
	}
}

func TestRename(t *testing.T) {
	src := New("merged", []string{"Asset ID", "Status"}, []string{"A1", "Live"})
	got, err := Rename(src, map[string]string{"Status": "WSUS Status"})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got.Index("WSUS Status") != 1 {
		t.Errorf("columns = %v", got.Columns)
	}
	if _, err := Rename(src, map[string]string{"OperatingSystem": "Operating System"}); err == nil {
		t.Error("expected error renaming a missing column")
	}
}

func TestRenameRejectsDuplicateColumn(t *testing.T) {
	src := New("CMDB_Data.xlsx", []string{"Asset ID", "LastLogonDate", "LastLogonDate (OS_Version.xlsx)"}, []string{"A1", "2024-01-01", "2025-09-01"})
	_, err := Rename(src, map[string]string{"LastLogonDate (OS_Version.xlsx)": "LastLogonDate"})
	if err == nil || !strings.Contains(err.Error(), "already exists") || !strings.Contains(err.Error(), "OS_Version.xlsx") {
		t.Fatalf("want duplicate column error, got %v", err)
	}
	if _, err := Rename(src, map[string]string{"Asset ID": "Status", "LastLogonDate": "Status"}); err == nil {
		t.Error("expected error renaming two columns to the same name")
	}

	// swapping names is fine because neither target survives
	got, err := Rename(src, map[string]string{"LastLogonDate": "CMDB Logon", "LastLogonDate (OS_Version.xlsx)": "LastLogonDate"})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got.Index("LastLogonDate") != 2 || got.Index("CMDB Logon") != 1 {
		t.Errorf("columns = %v", got.Columns)
	}
}

func TestFillMissing(t *testing.T) {
	src := New("merged", []string{"Asset ID", "WSUS Status", "Location"},
		[]string{"A1", "", ""},
		[]string{"A2", "Installed", "Pune"},
	)
	got := FillMissing(src,
		Fill{Column: "WSUS Status", Sentinel: "Not Reporting"},
		Fill{Column: "LastLogonDate", Sentinel: "Not Found"},
	)
	if diff := cmp.Diff([]string{"Not Reporting", "Installed"}, column(got, "WSUS Status")); diff != "" {
		t.Errorf("wsus (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Not Found", "Not Found"}, column(got, "LastLogonDate")); diff != "" {
		t.Errorf("last logon (-want +got):\n%s", diff)
	}
	if got.Value(0, "Location") != nil {
		t.Error("unlisted column was filled")
	}
}
