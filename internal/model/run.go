package model

// RunSpec is the configuration for a single processing run.
// It is what POST /api/v1/runs accepts and what the CLI builds from flags.
type RunSpec struct {
	Input   string `json:"input"`             // path to the survey export (csv or xlsx)
	Output  string `json:"output,omitempty"`  // optional JSON file target
	Embed   string `json:"embed,omitempty"`   // optional HTML file to patch in place
	Timeout string `json:"timeout,omitempty"` // e.g. "5m"
}

// FilterStats reports how many rows each quality gate removed.
type FilterStats struct {
	BeforeCutoff    int `json:"before_cutoff"`    // rows dropped by the date filter
	FailedAttention int `json:"failed_attention"` // rows dropped by the attention check
	Valid           int `json:"valid"`            // rows remaining after both gates
}
