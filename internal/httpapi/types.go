package httpapi

type PipelineStatus struct {
	LastRunAt    string `json:"last_run_at"`
	LastOkAt     string `json:"last_ok_at"`
	LastError    string `json:"last_error"`
	LastRunID    string `json:"last_run_id"`
	LastFiles    int    `json:"last_files"`
	LastRows     int    `json:"last_rows"`
	LastInserted int    `json:"last_inserted"`
	LastDupes    int    `json:"last_dupes"`
	Running      bool   `json:"running"`
}
