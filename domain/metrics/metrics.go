package metrics

import (
	"fmt"
	"sort"

	"fleet-stats/domain/asset"
	"fleet-stats/domain/osclass"

	lo "github.com/samber/lo"
)

// WSUS statuses reported as individual patch KPIs.
const (
	StatusDownloaded    = "Downloaded"
	StatusInstalled     = "Installed"
	StatusNoStatus      = "No Status"
	StatusFailed        = "Failed"
	StatusNotApplicable = "Not Applicable"
	StatusNotInstalled  = "Not Installed"
	StatusNotReporting  = asset.NotReporting
)

// Count is a KPI value with its share of the filtered total.
type Count struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Overall is the OS mix of the whole filtered set. OtherOS is the residual:
// every bucket not listed explicitly (servers, Cisco, unrecognized strings).
type Overall struct {
	Total    int   `json:"total"`
	Win11    Count `json:"win11"`
	Win10    Count `json:"win10"`
	Older    Count `json:"older"`
	NotFound Count `json:"not_found"`
	OtherOS  Count `json:"other_os"`
}

type NonCompliance struct {
	Total     int `json:"total"`
	Win10     int `json:"win10"`
	Older     int `json:"older"`
	WinServer int `json:"win_server"`
}

// Patch covers live Win10 machines of the non-compliance cohort.
type Patch struct {
	Total         int `json:"total"`
	Downloaded    int `json:"downloaded"`
	Installed     int `json:"installed"`
	NoStatus      int `json:"no_status"`
	Failed        int `json:"failed"`
	NotApplicable int `json:"not_applicable"`
	NotInstalled  int `json:"not_installed"`
	NotReporting  int `json:"not_reporting"`
}

// Slice is one category of a chart series.
type Slice struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Distribution is a chart-ready series; HasData is false for an empty set.
type Distribution struct {
	HasData bool    `json:"has_data"`
	Slices  []Slice `json:"slices"`
}

// Snapshot holds every metric derived from one filtered set.
type Snapshot struct {
	Overall          Overall       `json:"overall"`
	NonCompliance    NonCompliance `json:"non_compliance"`
	Patch            Patch         `json:"patch"`
	OSDistribution   Distribution  `json:"os_distribution"`
	WSUSDistribution Distribution  `json:"wsus_distribution"`
}

// Policy decides which buckets count as compliant.
type Policy struct {
	Compliant []osclass.Bucket
}

// DefaultPolicy treats Win11 and unrecognized operating systems as compliant.
func DefaultPolicy() Policy {
	return Policy{Compliant: []osclass.Bucket{osclass.Win11, osclass.Other}}
}

// ParsePolicy builds a Policy from bucket labels.
func ParsePolicy(labels []string) (Policy, error) {
	var p Policy
	for _, l := range labels {
		b, err := osclass.ParseBucket(l)
		if err != nil {
			return Policy{}, fmt.Errorf("compliance: %w", err)
		}
		p.Compliant = append(p.Compliant, b)
	}
	return p, nil
}

// NonCompliant reports whether r falls outside the compliant buckets.
func (p Policy) NonCompliant(r asset.Record) bool {
	return !lo.Contains(p.Compliant, r.OS.Bucket)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

func countBucket(records []asset.Record, b osclass.Bucket) int {
	return lo.CountBy(records, func(r asset.Record) bool { return r.OS.Bucket == b })
}

func countOlder(records []asset.Record) int {
	return lo.CountBy(records, func(r asset.Record) bool { return r.OS.Bucket.Older() })
}

// ComputeOverall returns the OS mix of records.
func ComputeOverall(records []asset.Record) Overall {
	total := len(records)
	win11 := countBucket(records, osclass.Win11)
	win10 := countBucket(records, osclass.Win10)
	older := countOlder(records)
	notFound := countBucket(records, osclass.NotFound)
	other := total - (win11 + win10 + older + notFound)
	mk := func(n int) Count { return Count{Count: n, Percent: percent(n, total)} }
	return Overall{
		Total:    total,
		Win11:    mk(win11),
		Win10:    mk(win10),
		Older:    mk(older),
		NotFound: mk(notFound),
		OtherOS:  mk(other),
	}
}

// ComputeNonCompliance counts the non-compliant subset of records.
func ComputeNonCompliance(records []asset.Record, p Policy) NonCompliance {
	nc := lo.Filter(records, func(r asset.Record, _ int) bool { return p.NonCompliant(r) })
	return NonCompliance{
		Total:     len(nc),
		Win10:     countBucket(nc, osclass.Win10),
		Older:     countOlder(nc),
		WinServer: countBucket(nc, osclass.WinServer),
	}
}

// PatchCohort selects live, non-compliant Win10 machines.
func PatchCohort(records []asset.Record, p Policy) []asset.Record {
	return lo.Filter(records, func(r asset.Record, _ int) bool {
		return p.NonCompliant(r) && r.OS.Bucket == osclass.Win10 && r.HardwareStatus == "Live"
	})
}

// ComputePatch counts exact WSUS statuses over cohort.
func ComputePatch(cohort []asset.Record) Patch {
	by := lo.CountValuesBy(cohort, func(r asset.Record) string { return r.WSUSStatus })
	return Patch{
		Total:         len(cohort),
		Downloaded:    by[StatusDownloaded],
		Installed:     by[StatusInstalled],
		NoStatus:      by[StatusNoStatus],
		Failed:        by[StatusFailed],
		NotApplicable: by[StatusNotApplicable],
		NotInstalled:  by[StatusNotInstalled],
		NotReporting:  by[StatusNotReporting],
	}
}

// Distribute counts records per category, largest first, ties by name.
func Distribute(records []asset.Record, category func(asset.Record) string) Distribution {
	counts := lo.CountValuesBy(records, category)
	slices := lo.MapToSlice(counts, func(k string, v int) Slice { return Slice{Category: k, Count: v} })
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].Category < slices[j].Category
	})
	return Distribution{HasData: len(slices) > 0, Slices: slices}
}

// Compute derives the full snapshot from a filtered record set.
func Compute(filtered []asset.Record, p Policy) Snapshot {
	cohort := PatchCohort(filtered, p)
	return Snapshot{
		Overall:          ComputeOverall(filtered),
		NonCompliance:    ComputeNonCompliance(filtered, p),
		Patch:            ComputePatch(cohort),
		OSDistribution:   Distribute(filtered, func(r asset.Record) string { return r.OS.Label }),
		WSUSDistribution: Distribute(cohort, func(r asset.Record) string { return r.WSUSStatus }),
	}
}
