package asset

import (
	"strconv"
	"strings"
	"time"

	lo "github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultRecentLogonDays is the recency window when a selection leaves it unset.
const DefaultRecentLogonDays = 90

var logonLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06 15:04",
	"1/2/06",
	"02-01-2006 15:04:05",
	"2-Jan-2006",
	"Jan 2, 2006",
}

// ParseLogon parses a LastLogonDate cell. Besides the usual textual layouts it
// accepts Excel serial day numbers. Sentinels and garbage report false.
func ParseLogon(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == NotFound {
		return time.Time{}, false
	}
	for _, layout := range logonLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		if t, err := excelize.ExcelDateToTime(f, false); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), true
		}
	}
	return time.Time{}, false
}

// NormalizeStatus trims and title-cases a WSUS status so that
// "not installed" and "Not Installed " group together.
func NormalizeStatus(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

func member(sel []string) func(string) bool {
	if len(sel) == 0 {
		return func(string) bool { return true }
	}
	set := lo.SliceToMap(sel, func(s string) (string, struct{}) { return s, struct{}{} })
	return func(v string) bool {
		if v == "" {
			return false
		}
		_, ok := set[v]
		return ok
	}
}

// Filter returns the records matching every predicate of sel, evaluated at
// now, with WSUS Status normalized for display. records is not modified.
func Filter(records []Record, sel Selection, now time.Time) []Record {
	hw := member(sel.HardwareStatus)
	ci := member(sel.CIType)
	criteria := member(sel.AssetCriteria)
	company := member(sel.Company)
	group := member(sel.SupportGroup)

	days := sel.RecentLogonDays
	if days <= 0 {
		days = DefaultRecentLogonDays
	}
	cutoff := now.AddDate(0, 0, -days)
	recent := func(r Record) bool {
		if !sel.RecentLogon {
			return true
		}
		t, ok := ParseLogon(r.LastLogonDate)
		return ok && !t.Before(cutoff)
	}

	out := lo.Filter(records, func(r Record, _ int) bool {
		return hw(r.HardwareStatus) &&
			ci(r.CIType) &&
			criteria(r.AssetCriteria) &&
			recent(r) &&
			company(r.Company) &&
			group(r.SupportGroup)
	})
	for i := range out {
		out[i].WSUSStatus = NormalizeStatus(out[i].WSUSStatus)
	}
	return out
}
