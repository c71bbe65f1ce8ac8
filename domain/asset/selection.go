package asset

import (
	"fleet-stats/domain/config"

	lo "github.com/samber/lo"
)

// Selection is the user's filter choice. Every predicate is optional: an
// empty set does not restrict. Selection values are never mutated by Filter.
type Selection struct {
	HardwareStatus  []string `json:"hardware_status"`
	CIType          []string `json:"ci_type"`
	AssetCriteria   []string `json:"asset_criteria"`
	Company         []string `json:"company"`
	SupportGroup    []string `json:"support_group"`
	RecentLogon     bool     `json:"recent_logon"`
	RecentLogonDays int      `json:"recent_logon_days"`
}

// FilterOptions lists the distinct non-empty values offered by each multi-select.
type FilterOptions struct {
	HardwareStatus []string `json:"hardware_status"`
	CIType         []string `json:"ci_type"`
	AssetCriteria  []string `json:"asset_criteria"`
	Company        []string `json:"company"`
	SupportGroup   []string `json:"support_group"`
}

// Options collects filter options in first-seen order.
func Options(records []Record) FilterOptions {
	distinct := func(get func(Record) string) []string {
		vals := lo.Uniq(lo.Map(records, func(r Record, _ int) string { return get(r) }))
		return lo.Without(vals, "")
	}
	return FilterOptions{
		HardwareStatus: distinct(func(r Record) string { return r.HardwareStatus }),
		CIType:         distinct(func(r Record) string { return r.CIType }),
		AssetCriteria:  distinct(func(r Record) string { return r.AssetCriteria }),
		Company:        distinct(func(r Record) string { return r.Company }),
		SupportGroup:   distinct(func(r Record) string { return r.SupportGroup }),
	}
}

// DefaultSelection builds the initial selection from configured defaults.
// Asset criteria default to every available option except the excluded ones.
func DefaultSelection(records []Record, f config.Filters) Selection {
	opts := Options(records)
	sel := Selection{
		HardwareStatus:  append([]string{}, f.HardwareStatus...),
		CIType:          append([]string{}, f.CIType...),
		AssetCriteria:   lo.Without(opts.AssetCriteria, f.ExcludeAssetCriteria...),
		Company:         append([]string{}, f.Company...),
		SupportGroup:    append([]string{}, f.SupportGroup...),
		RecentLogonDays: f.RecentLogonDays,
	}
	if f.RecentLogon != nil {
		sel.RecentLogon = *f.RecentLogon
	}
	return sel
}
