package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fleet-stats/domain/metrics"
	"fleet-stats/domain/report"
)

// Sink prints the KPI summary of a report as aligned text.
type Sink struct {
	W io.Writer
}

func (s Sink) Emit(r report.Report) error {
	tw := tabwriter.NewWriter(s.W, 0, 4, 2, ' ', 0)
	m := r.Metrics
	o := m.Overall

	fmt.Fprintf(tw, "Operating System Overview\t\t\n")
	fmt.Fprintf(tw, "  Total Assets\t%d\t\n", o.Total)
	kpi(tw, "Win11 Devices", o.Win11)
	kpi(tw, "Win10 Devices", o.Win10)
	kpi(tw, "Older OS Devices", o.Older)
	kpi(tw, "Not Found", o.NotFound)
	kpi(tw, "Other OS Devices", o.OtherOS)
	distribution(tw, m.OSDistribution)

	nc := m.NonCompliance
	fmt.Fprintf(tw, "\nWin11 Non-Compliance\t\t\n")
	fmt.Fprintf(tw, "  Total Non-Compliant\t%d\t\n", nc.Total)
	fmt.Fprintf(tw, "  Win10\t%d\t\n", nc.Win10)
	fmt.Fprintf(tw, "  Older OS\t%d\t\n", nc.Older)
	fmt.Fprintf(tw, "  Win Server\t%d\t\n", nc.WinServer)

	p := m.Patch
	fmt.Fprintf(tw, "\nWSUS Status for Win10 Live Devices\t\t\n")
	for _, row := range []struct {
		label string
		n     int
	}{
		{metrics.StatusDownloaded, p.Downloaded},
		{metrics.StatusInstalled, p.Installed},
		{metrics.StatusNoStatus, p.NoStatus},
		{metrics.StatusFailed, p.Failed},
		{metrics.StatusNotApplicable, p.NotApplicable},
		{metrics.StatusNotInstalled, p.NotInstalled},
		{metrics.StatusNotReporting, p.NotReporting},
	} {
		fmt.Fprintf(tw, "  %s\t%d\t\n", row.label, row.n)
	}
	if !m.WSUSDistribution.HasData {
		fmt.Fprintf(tw, "  No WSUS status data available for non-compliant live devices.\t\t\n")
	}
	return tw.Flush()
}

func kpi(w io.Writer, title string, c metrics.Count) {
	fmt.Fprintf(w, "  %s\t%d\t(%.1f%%)\n", title, c.Count, c.Percent)
}

func distribution(w io.Writer, d metrics.Distribution) {
	if !d.HasData {
		fmt.Fprintf(w, "  no data\t\t\n")
		return
	}
	for _, s := range d.Slices {
		fmt.Fprintf(w, "    %s\t%d\t\n", s.Category, s.Count)
	}
}
