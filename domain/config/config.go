package config

// Config represents the structure of config.yml used by the tool.
// Zero values are replaced by Default() values in ApplyDefaults.
type Config struct {
	Sources    Sources    `yaml:"sources"`
	OSLookup   string     `yaml:"os_lookup"`
	Filters    Filters    `yaml:"filters"`
	Compliance Compliance `yaml:"compliance"`
	Export     Export     `yaml:"export"`
}

type Sources struct {
	CMDB  Source `yaml:"cmdb"`
	OS    Source `yaml:"os"`
	Patch Source `yaml:"patch"`
}

// Source describes one spreadsheet export and the column names it uses.
type Source struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet"` // xlsx only, first sheet when empty

	IDColumn        string `yaml:"id_column"`
	StatusColumn    string `yaml:"status_column"`     // cmdb: hardware status, patch: wsus status
	OSColumn        string `yaml:"os_column"`         // os source only
	LastLogonColumn string `yaml:"last_logon_column"` // os source only
}

// Filters holds the default filter selection.
type Filters struct {
	HardwareStatus       []string `yaml:"hardware_status"`
	CIType               []string `yaml:"ci_type"`
	ExcludeAssetCriteria []string `yaml:"exclude_asset_criteria"`
	Company              []string `yaml:"company"`
	SupportGroup         []string `yaml:"support_group"`
	RecentLogon          *bool    `yaml:"recent_logon"`
	RecentLogonDays      int      `yaml:"recent_logon_days"`
}

type Compliance struct {
	// CompliantBuckets are OS bucket labels left out of the non-compliance cohort.
	CompliantBuckets []string `yaml:"compliant_buckets"`
}

type Export struct {
	Columns  []string `yaml:"columns"`
	FileName string   `yaml:"file_name"`
}

// ExportColumns is the fixed projection shown in the record table and the CSV export.
var ExportColumns = []string{
	"Asset ID", "Operating System", "WSUS Status", "LastLogonDate",
	"Owner ID", "Impact Level", "Email", "Custodian ID", "CI Type",
	"Location", "Hardware Status", "Support group", "Company", "Asset Criteria",
}

// Default mirrors the layout of the CMDB, AD and WSUS exports the tool was built for.
func Default() Config {
	recent := true
	return Config{
		Sources: Sources{
			CMDB:  Source{Path: "CMDB_Data.xlsx", IDColumn: "Asset ID", StatusColumn: "Status(Hardware Status)"},
			OS:    Source{Path: "OS_Version.xlsx", IDColumn: "Name", OSColumn: "OperatingSystem", LastLogonColumn: "LastLogonDate"},
			Patch: Source{Path: "WSUS_Data.xlsx", IDColumn: "Computer Name", StatusColumn: "Status"},
		},
		Filters: Filters{
			HardwareStatus:       []string{"Live"},
			CIType:               []string{"Workstation", "Desktop", "Laptop"},
			ExcludeAssetCriteria: []string{"L1", "L2", "No Data"},
			RecentLogon:          &recent,
			RecentLogonDays:      90,
		},
		Compliance: Compliance{CompliantBuckets: []string{"Win11", "Other"}},
		Export:     Export{Columns: append([]string{}, ExportColumns...), FileName: "Filtered_Assets.csv"},
	}
}

// ApplyDefaults fills every unset field from Default().
func (c *Config) ApplyDefaults() {
	d := Default()
	c.Sources.CMDB = mergeSource(c.Sources.CMDB, d.Sources.CMDB)
	c.Sources.OS = mergeSource(c.Sources.OS, d.Sources.OS)
	c.Sources.Patch = mergeSource(c.Sources.Patch, d.Sources.Patch)

	if c.Filters.HardwareStatus == nil {
		c.Filters.HardwareStatus = d.Filters.HardwareStatus
	}
	if c.Filters.CIType == nil {
		c.Filters.CIType = d.Filters.CIType
	}
	if c.Filters.ExcludeAssetCriteria == nil {
		c.Filters.ExcludeAssetCriteria = d.Filters.ExcludeAssetCriteria
	}
	if c.Filters.RecentLogon == nil {
		c.Filters.RecentLogon = d.Filters.RecentLogon
	}
	if c.Filters.RecentLogonDays <= 0 {
		c.Filters.RecentLogonDays = d.Filters.RecentLogonDays
	}
	if c.Compliance.CompliantBuckets == nil {
		c.Compliance.CompliantBuckets = d.Compliance.CompliantBuckets
	}
	if len(c.Export.Columns) == 0 {
		c.Export.Columns = d.Export.Columns
	}
	if c.Export.FileName == "" {
		c.Export.FileName = d.Export.FileName
	}
}

func mergeSource(s, d Source) Source {
	if s.Path == "" {
		s.Path = d.Path
	}
	if s.IDColumn == "" {
		s.IDColumn = d.IDColumn
	}
	if s.StatusColumn == "" {
		s.StatusColumn = d.StatusColumn
	}
	if s.OSColumn == "" {
		s.OSColumn = d.OSColumn
	}
	if s.LastLogonColumn == "" {
		s.LastLogonColumn = d.LastLogonColumn
	}
	return s
}
