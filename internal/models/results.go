package models

// ActionResult is the body of action endpoints (mark-read, star, delete, takeover).
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ExportResult is returned by export endpoints; URL is a time-limited download link.
type ExportResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}
