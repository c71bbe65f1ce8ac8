package main

import (
	cmdclassify "fleet-stats/command/classify"
	cmdreport "fleet-stats/command/report"
	cmdweb "fleet-stats/command/web"
	"fmt"
	"log/slog"
	"os"
)

// Windows upgrade compliance report built from three spreadsheet exports.
// Usage:
//   fleet-stats report [--config config.yml] [filters] [--out Filtered_Assets.csv] [--json snapshot.json]
//   fleet-stats web [--addr :8080] [--config config.yml] [--ui ./ui/dist]
//   fleet-stats classify [--lookup os_lookup.yaml] <os string>...
// Notes:
// - Sources: CMDB export (asset metadata), AD OS inventory (OperatingSystem, LastLogonDate)
//   and WSUS status, joined on the asset identifier case-insensitively.
// - Unmatched CMDB rows are kept with "Not Found" / "Not Reporting" sentinels.

func main() {
	args := os.Args
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(h))

	if len(args) > 1 {
		sub := args[1]
		rest := append([]string{}, args[2:]...)
		var run func([]string) error
		switch sub {
		case "report":
			run = cmdreport.Run
		case "web":
			run = cmdweb.Run
		case "classify":
			run = cmdclassify.Run
		}
		if run != nil {
			if err := run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, "usage: fleet-stats report [--out <csv>] [--json <file>] [filters] | web [--addr :8080] | classify <os>...\nENV: set CONFIG_PATH to point to a YAML config file (default ./config.yml)")
	os.Exit(2)
}
