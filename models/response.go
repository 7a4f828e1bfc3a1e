package models

// IngestResponse is the response for POST /api/v1/url.
type IngestResponse struct {
	// Success indicates whether an entry was produced.
	Success bool `json:"success"`

	// Entry is populated only when Success is true.
	Entry *Entry `json:"entry,omitempty"`

	// Parser names the parser family that recognized the content.
	Parser string `json:"parser,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent on the network round trip.
	FetchMs int64 `json:"fetch_ms"`

	// ParseMs is the time spent identifying and extracting the entry.
	ParseMs int64 `json:"parse_ms"`
}

// SimilarityResponse is the response for POST /api/v1/similarity.
type SimilarityResponse struct {
	Success bool `json:"success"`

	// Matrix[i][j] is the cosine similarity of documents i and j.
	Matrix [][]float64 `json:"matrix,omitempty"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string   `json:"status"`
	Uptime  string   `json:"uptime"`
	Parsers []string `json:"parsers"`
	Version string   `json:"version"`
}

// ErrorResponse is the envelope for failures raised outside a specific
// endpoint, such as rate limiting.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}
