package api

// StatsV1 is the stable JSON schema for a transform run summary.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type StatsV1 struct {
	TotalFragments uint64   `json:"total_fragments"`
	FailedParsing  uint64   `json:"failed_parsing"`
	SuccessPercent float64  `json:"success_percent"`
	Geometry       string   `json:"geometry,omitempty"`
	Simplified     string   `json:"simplified_geometry,omitempty"`
	Read1Files     []string `json:"read1_files,omitempty"`
	Read2Files     []string `json:"read2_files,omitempty"`
	RunID          string   `json:"run_id,omitempty"`
}
