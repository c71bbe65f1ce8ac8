package asset

import (
	"fleet-stats/domain/osclass"
	"fleet-stats/domain/table"
)

// Column names of the reconciled asset table.
const (
	ColAssetID         = "Asset ID"
	ColHardwareStatus  = "Hardware Status"
	ColCIType          = "CI Type"
	ColAssetCriteria   = "Asset Criteria"
	ColCompany         = "Company"
	ColSupportGroup    = "Support group"
	ColOwnerID         = "Owner ID"
	ColImpactLevel     = "Impact Level"
	ColEmail           = "Email"
	ColCustodianID     = "Custodian ID"
	ColLocation        = "Location"
	ColLastLogonDate   = "LastLogonDate"
	ColOperatingSystem = "Operating System"
	ColWSUSStatus      = "WSUS Status"
)

// Sentinels written by the gap filler.
const (
	NotReporting = "Not Reporting"
	NotFound     = osclass.NotFoundLabel
)

// CMDBColumns must be present in the configuration-management export.
var CMDBColumns = []string{
	ColAssetID, ColCIType, ColAssetCriteria, ColCompany, ColSupportGroup,
	ColOwnerID, ColImpactLevel, ColEmail, ColCustodianID, ColLocation,
}

// Record is one reconciled asset row. Empty strings are missing values,
// except for the gap-filled fields which always hold a value or sentinel.
type Record struct {
	ID             string         `json:"asset_id"`
	HardwareStatus string         `json:"hardware_status"`
	CIType         string         `json:"ci_type"`
	AssetCriteria  string         `json:"asset_criteria"`
	Company        string         `json:"company"`
	SupportGroup   string         `json:"support_group"`
	OwnerID        string         `json:"owner_id"`
	ImpactLevel    string         `json:"impact_level"`
	Email          string         `json:"email"`
	CustodianID    string         `json:"custodian_id"`
	Location       string         `json:"location"`
	LastLogonDate  string         `json:"last_logon_date"`
	RawOS          string         `json:"raw_operating_system"`
	WSUSStatus     string         `json:"wsus_status"`
	OS             osclass.Result `json:"os"`
}

// Field returns the value shown under an export column name; the
// Operating System column holds the classified label.
func (r Record) Field(column string) string {
	switch column {
	case ColAssetID:
		return r.ID
	case ColHardwareStatus:
		return r.HardwareStatus
	case ColCIType:
		return r.CIType
	case ColAssetCriteria:
		return r.AssetCriteria
	case ColCompany:
		return r.Company
	case ColSupportGroup:
		return r.SupportGroup
	case ColOwnerID:
		return r.OwnerID
	case ColImpactLevel:
		return r.ImpactLevel
	case ColEmail:
		return r.Email
	case ColCustodianID:
		return r.CustodianID
	case ColLocation:
		return r.Location
	case ColLastLogonDate:
		return r.LastLogonDate
	case ColOperatingSystem:
		return r.OS.Label
	case ColWSUSStatus:
		return r.WSUSStatus
	}
	return ""
}

// FromTable converts a merged, renamed and gap-filled table into records,
// classifying the Operating System column with lookup.
func FromTable(t *table.Table, lookup *osclass.Table) ([]Record, error) {
	required := append(append([]string{}, CMDBColumns...), ColHardwareStatus, ColLastLogonDate, ColOperatingSystem, ColWSUSStatus)
	if err := t.Require(required...); err != nil {
		return nil, err
	}
	str := func(i int, col string) string {
		if v := t.Value(i, col); v != nil {
			return *v
		}
		return ""
	}
	out := make([]Record, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, Record{
			ID:             str(i, ColAssetID),
			HardwareStatus: str(i, ColHardwareStatus),
			CIType:         str(i, ColCIType),
			AssetCriteria:  str(i, ColAssetCriteria),
			Company:        str(i, ColCompany),
			SupportGroup:   str(i, ColSupportGroup),
			OwnerID:        str(i, ColOwnerID),
			ImpactLevel:    str(i, ColImpactLevel),
			Email:          str(i, ColEmail),
			CustodianID:    str(i, ColCustodianID),
			Location:       str(i, ColLocation),
			LastLogonDate:  str(i, ColLastLogonDate),
			RawOS:          str(i, ColOperatingSystem),
			WSUSStatus:     str(i, ColWSUSStatus),
			OS:             lookup.Classify(t.Value(i, ColOperatingSystem)),
		})
	}
	return out, nil
}
