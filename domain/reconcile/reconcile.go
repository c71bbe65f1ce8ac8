package reconcile

import (
	"fmt"

	"fleet-stats/domain/asset"
	"fleet-stats/domain/config"
	"fleet-stats/domain/osclass"
	"fleet-stats/domain/table"
)

// Sources are the three raw exports, as loaded.
type Sources struct {
	CMDB  *table.Table
	OS    *table.Table
	Patch *table.Table
}

// Merge normalizes the identifier columns, left-joins CMDB <- OS <- patch,
// renames the ambiguous status/OS columns and fills the gaps. The returned
// table still holds raw OS strings.
func Merge(src Sources, cols config.Sources) (*table.Table, error) {
	if err := src.CMDB.Require(append([]string{cols.CMDB.IDColumn, cols.CMDB.StatusColumn}, asset.CMDBColumns[1:]...)...); err != nil {
		return nil, err
	}
	if err := src.OS.Require(cols.OS.IDColumn, cols.OS.OSColumn, cols.OS.LastLogonColumn); err != nil {
		return nil, err
	}
	if err := src.Patch.Require(cols.Patch.IDColumn, cols.Patch.StatusColumn); err != nil {
		return nil, err
	}

	cmdb, err := table.NormalizeKey(src.CMDB, cols.CMDB.IDColumn, asset.ColAssetID)
	if err != nil {
		return nil, err
	}
	osData, err := table.NormalizeKey(src.OS, cols.OS.IDColumn, asset.ColAssetID)
	if err != nil {
		return nil, err
	}
	patch, err := table.NormalizeKey(src.Patch, cols.Patch.IDColumn, asset.ColAssetID)
	if err != nil {
		return nil, err
	}

	withOS, err := table.LeftJoin(cmdb, osData, asset.ColAssetID)
	if err != nil {
		return nil, fmt.Errorf("merge %s with %s: %w", cmdb.Name, osData.Name, err)
	}
	merged, err := table.LeftJoin(withOS, patch, asset.ColAssetID)
	if err != nil {
		return nil, fmt.Errorf("merge %s with %s: %w", withOS.Name, patch.Name, err)
	}

	renames := map[string]string{
		table.JoinedName(withOS, patch, asset.ColAssetID, cols.Patch.StatusColumn): asset.ColWSUSStatus,
		cols.CMDB.StatusColumn: asset.ColHardwareStatus,
		table.JoinedName(cmdb, osData, asset.ColAssetID, cols.OS.OSColumn): asset.ColOperatingSystem,
	}
	if lc := table.JoinedName(cmdb, osData, asset.ColAssetID, cols.OS.LastLogonColumn); lc != asset.ColLastLogonDate {
		renames[lc] = asset.ColLastLogonDate
	}
	for from, to := range renames {
		if from == to {
			delete(renames, from)
		}
	}
	merged, err = table.Rename(merged, renames)
	if err != nil {
		return nil, err
	}

	return table.FillMissing(merged,
		table.Fill{Column: asset.ColWSUSStatus, Sentinel: asset.NotReporting},
		table.Fill{Column: asset.ColHardwareStatus, Sentinel: asset.NotFound},
		table.Fill{Column: asset.ColOperatingSystem, Sentinel: asset.NotFound},
		table.Fill{Column: asset.ColLastLogonDate, Sentinel: asset.NotFound},
	), nil
}

// Records runs Merge and classifies every row with lookup.
func Records(src Sources, cols config.Sources, lookup *osclass.Table) ([]asset.Record, error) {
	merged, err := Merge(src, cols)
	if err != nil {
		return nil, err
	}
	return asset.FromTable(merged, lookup)
}
