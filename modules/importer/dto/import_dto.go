package dto

// ImportResult summarizes one processed file. Skipped counts rows missing a
// natural key plus rows that failed individually; the import never aborts on
// a bad row.
type ImportResult struct {
	TotalRows int      `json:"total_rows"`
	Created   int      `json:"created"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}
