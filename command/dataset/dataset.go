package dataset

import (
	"log/slog"

	"fleet-stats/connectors/sheet"
	"fleet-stats/domain/asset"
	"fleet-stats/domain/config"
	"fleet-stats/domain/metrics"
	"fleet-stats/domain/osclass"
	"fleet-stats/domain/reconcile"
)

// Dataset is the reconciled record set plus everything needed to filter and
// aggregate it. It is not modified after Load.
type Dataset struct {
	Records []asset.Record
	Policy  metrics.Policy
	Columns []string
	Filters config.Filters
	Lookup  *osclass.Table
}

// Load reads the three exports named in cfg and reconciles them.
func Load(cfg *config.Config) (*Dataset, error) {
	lookup, err := osclass.LoadFile(cfg.OSLookup)
	if err != nil {
		return nil, err
	}
	policy, err := metrics.ParsePolicy(cfg.Compliance.CompliantBuckets)
	if err != nil {
		return nil, err
	}
	slog.Info("dataset.load.start", "cmdb", cfg.Sources.CMDB.Path, "os", cfg.Sources.OS.Path, "patch", cfg.Sources.Patch.Path, "lookup", lookup.Version)
	src, err := sheet.LoadSources(cfg.Sources)
	if err != nil {
		slog.Error("dataset.load.error", "error", err)
		return nil, err
	}
	records, err := reconcile.Records(src, cfg.Sources, lookup)
	if err != nil {
		slog.Error("dataset.reconcile.error", "error", err)
		return nil, err
	}
	slog.Info("dataset.load.done", "cmdb_rows", len(src.CMDB.Rows), "os_rows", len(src.OS.Rows), "patch_rows", len(src.Patch.Rows), "records", len(records))
	return &Dataset{
		Records: records,
		Policy:  policy,
		Columns: cfg.Export.Columns,
		Filters: cfg.Filters,
		Lookup:  lookup,
	}, nil
}
