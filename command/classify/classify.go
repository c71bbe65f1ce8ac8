package classify

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	cconfig "fleet-stats/connectors/config"
	"fleet-stats/domain/osclass"

	"github.com/spf13/pflag"
)

// Run prints the bucket of every raw OS string given as argument. It is used
// to check lookup table edits before running a report.
//
//	fleet-stats classify [--lookup os_lookup.yaml] "Windows 11 Pro" "Windows Server 2022 Standard"
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("classify", pflag.ContinueOnError)
	lookupPath := fs.String("lookup", "", "OS lookup table (default: os_lookup from config, else built-in)")
	cfgPath := fs.String("config", "", "YAML config file (default $CONFIG_PATH or ./config.yml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("classify: at least one OS string expected")
	}

	path := *lookupPath
	if path == "" {
		cfgFile, explicit := cconfig.Resolve(*cfgPath)
		cfg, err := cconfig.Load(cfgFile, explicit)
		if err != nil {
			return err
		}
		path = cfg.OSLookup
	}
	lookup, err := osclass.LoadFile(path)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "RAW\tBUCKET\tLABEL\n")
	for _, raw := range fs.Args() {
		res := lookup.ClassifyString(raw)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", raw, res.Bucket, res.Label)
	}
	return tw.Flush()
}
