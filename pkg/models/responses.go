package models

// DiagnoseResponse is the success body of POST /diagnose. Diagnosis
// holds the allow-listed fields copied verbatim from the model output.
type DiagnoseResponse struct {
	Success   bool           `json:"success"`
	Diagnosis map[string]any `json:"diagnosis"`
	IsDemo    bool           `json:"isDemo"`
}

// ErrorResponse is the body of every non-200 reply.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Success   bool   `json:"success"`
	Available bool   `json:"available"`
	Model     string `json:"model"`
	Mode      string `json:"mode,omitempty"`
}

// StatsResponse is the body of GET /stats on persistence-backed
// deployments.
type StatsResponse struct {
	Success  bool             `json:"success"`
	Total    int64            `json:"total"`
	ByResult map[string]int64 `json:"byResult"`
	ByRegion map[string]int64 `json:"byRegion"`
}
