package models

// IngestRequest is the payload for POST /api/v1/url.
type IngestRequest struct {
	// URL is the absolute http(s) address to ingest. Required.
	URL string `json:"url" binding:"required,url"`

	// Metadata optionally seeds fields the extractor cannot find,
	// e.g. a summary already known from a feed item.
	Metadata *Metadata `json:"metadata,omitempty"`
}

// SimilarityRequest is the payload for POST /api/v1/similarity.
type SimilarityRequest struct {
	// Documents are the texts to compare pairwise. 2 to 100 entries.
	Documents []string `json:"documents" binding:"required,min=2,max=100"`
}
