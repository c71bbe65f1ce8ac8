package metrics

import (
	"testing"

	"fleet-stats/domain/asset"
	"fleet-stats/domain/osclass"

	"github.com/google/go-cmp/cmp"
)

var lookup = osclass.Default()

func rec(os, hw, wsus string) asset.Record {
	var raw *string
	if os != "" {
		raw = &os
	}
	return asset.Record{HardwareStatus: hw, WSUSStatus: wsus, RawOS: os, OS: lookup.Classify(raw)}
}

func TestComputeOverall(t *testing.T) {
	records := []asset.Record{
		rec("Windows 11 Pro", "Live", ""),
		rec("Windows 10 Pro", "Live", ""),
		rec("Windows 7 Professional", "Live", ""),
		rec("", "Live", ""),
		rec("Windows Server 2019 Standard", "Live", ""),
	}
	got := ComputeOverall(records)
	want := Overall{
		Total:    5,
		Win11:    Count{1, 20},
		Win10:    Count{1, 20},
		Older:    Count{1, 20},
		NotFound: Count{1, 20},
		OtherOS:  Count{1, 20},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overall (-want +got):\n%s", diff)
	}
}

func TestOverallSumsToTotal(t *testing.T) {
	pool := []string{"Windows 11 Pro", "Windows 10 Pro", "Windows 8 Pro", "Windows XP Professional", "", "Cisco Identity Services Engine", "Ubuntu 22.04", "Windows Server 2022 Standard"}
	var records []asset.Record
	for i := 0; i < 40; i++ {
		records = append(records, rec(pool[(i*7)%len(pool)], "Live", ""))
		o := ComputeOverall(records)
		sum := o.Win11.Count + o.Win10.Count + o.Older.Count + o.NotFound.Count + o.OtherOS.Count
		if sum != o.Total || o.Total != len(records) {
			t.Fatalf("after %d records: buckets sum to %d, total %d", len(records), sum, o.Total)
		}
	}
}

func TestEmptySetIsZero(t *testing.T) {
	snap := Compute(nil, DefaultPolicy())
	for name, c := range map[string]Count{
		"win11": snap.Overall.Win11, "win10": snap.Overall.Win10, "older": snap.Overall.Older,
		"not found": snap.Overall.NotFound, "other": snap.Overall.OtherOS,
	} {
		if c.Count != 0 || c.Percent != 0 {
			t.Errorf("%s = %+v, want zero", name, c)
		}
	}
	if snap.OSDistribution.HasData || snap.WSUSDistribution.HasData {
		t.Error("empty distributions should report no data")
	}
}

func TestNonComplianceAndPatch(t *testing.T) {
	records := []asset.Record{
		rec("Windows 11 Pro", "Live", "Installed"),
		rec("Windows 10 Pro", "Live", "Installed"),
		rec("Windows 10 Enterprise", "Live", "Failed"),
		rec("Windows 10 Pro", "Retired", "Installed"),
		rec("Windows 10 Pro", "Live", "Not Reporting"),
		rec("Windows 8.1 Pro", "Live", "Installed"),
		rec("Windows Server 2016 Standard", "Live", "Installed"),
		rec("", "Live", "Not Reporting"),
		rec("Ubuntu 22.04", "Live", "Installed"),
	}
	p := DefaultPolicy()
	nc := ComputeNonCompliance(records, p)
	// Win11 and the unrecognized Ubuntu host are compliant.
	want := NonCompliance{Total: 7, Win10: 4, Older: 1, WinServer: 1}
	if diff := cmp.Diff(want, nc); diff != "" {
		t.Errorf("non-compliance (-want +got):\n%s", diff)
	}

	snap := Compute(records, p)
	wantPatch := Patch{Total: 3, Installed: 1, Failed: 1, NotReporting: 1}
	if diff := cmp.Diff(wantPatch, snap.Patch); diff != "" {
		t.Errorf("patch (-want +got):\n%s", diff)
	}
	wantDist := []Slice{{"Failed", 1}, {"Installed", 1}, {"Not Reporting", 1}}
	if diff := cmp.Diff(wantDist, snap.WSUSDistribution.Slices); diff != "" {
		t.Errorf("wsus distribution (-want +got):\n%s", diff)
	}
	if snap.OSDistribution.Slices[0] != (Slice{"Win10", 4}) {
		t.Errorf("os distribution head = %+v", snap.OSDistribution.Slices[0])
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy([]string{"Win11"})
	if err != nil {
		t.Fatalf("ParsePolicy: %v", err)
	}
	if !p.NonCompliant(rec("Ubuntu 22.04", "Live", "")) {
		t.Error("without Other in the compliant set unrecognized OS should be non-compliant")
	}
	if _, err := ParsePolicy([]string{"Win12"}); err == nil {
		t.Error("expected error for unknown bucket")
	}
}
