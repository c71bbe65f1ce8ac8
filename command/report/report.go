package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"fleet-stats/command/dataset"
	cconfig "fleet-stats/connectors/config"
	"fleet-stats/connectors/console"
	ccsv "fleet-stats/connectors/csv"
	"fleet-stats/connectors/snapshot"
	"fleet-stats/domain/asset"
	"fleet-stats/domain/report"

	"github.com/spf13/pflag"
)

// Run executes the report subcommand: reconcile the three exports once,
// apply the filters and print the KPI summary.
//
// Usage:
//
//	fleet-stats report [--config config.yml] [--ci-type Laptop,Desktop] [--recent-logon=false]
//	                   [--out Filtered_Assets.csv] [--json snapshot.json]
func Run(args []string) error {
	return run(args, os.Stdout, time.Now())
}

func run(args []string, stdout io.Writer, now time.Time) error {
	fs := pflag.NewFlagSet("report", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", "", "YAML config file (default $CONFIG_PATH or ./config.yml)")
	hardware := fs.StringSlice("hardware-status", nil, "hardware statuses to keep")
	ciType := fs.StringSlice("ci-type", nil, "CI types to keep")
	criteria := fs.StringSlice("asset-criteria", nil, "asset criteria to keep")
	company := fs.StringSlice("company", nil, "companies to keep")
	group := fs.StringSlice("support-group", nil, "support groups to keep")
	recent := fs.Bool("recent-logon", true, "only keep assets whose LastLogonDate falls in the recency window")
	days := fs.Int("recent-days", 0, "recency window in days (default from config, 90)")
	noDefaults := fs.Bool("no-defaults", false, "start from an empty selection instead of the configured defaults")
	out := fs.String("out", "", "write the filtered records as CSV to this path")
	jsonOut := fs.String("json", "", "write the selection and metrics as JSON to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, explicit := cconfig.Resolve(*cfgPath)
	cfg, err := cconfig.Load(path, explicit)
	if err != nil {
		return err
	}
	ds, err := dataset.Load(cfg)
	if err != nil {
		return err
	}

	sel := asset.Selection{RecentLogonDays: ds.Filters.RecentLogonDays}
	if !*noDefaults {
		sel = asset.DefaultSelection(ds.Records, ds.Filters)
	}
	if fs.Changed("hardware-status") {
		sel.HardwareStatus = *hardware
	}
	if fs.Changed("ci-type") {
		sel.CIType = *ciType
	}
	if fs.Changed("asset-criteria") {
		sel.AssetCriteria = *criteria
	}
	if fs.Changed("company") {
		sel.Company = *company
	}
	if fs.Changed("support-group") {
		sel.SupportGroup = *group
	}
	if fs.Changed("recent-logon") || *noDefaults {
		sel.RecentLogon = *recent
	}
	if *days > 0 {
		sel.RecentLogonDays = *days
	}

	rep := report.Build(ds.Records, sel, ds.Policy, ds.Columns, now)
	slog.Info("report.filtered", "records", len(ds.Records), "kept", len(rep.Rows))

	sinks := []report.Sink{console.Sink{W: stdout}}
	if *out != "" {
		sinks = append(sinks, ccsv.FileSink{Path: *out})
	}
	if *jsonOut != "" {
		sinks = append(sinks, snapshot.FileSink{Path: *jsonOut})
	}
	if err := report.Publish(rep, sinks...); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	slog.Info("report.done", "csv", *out, "json", *jsonOut)
	return nil
}
