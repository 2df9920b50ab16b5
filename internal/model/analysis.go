package model

import "time"

// DetectionResult is the structured output of the vision step.
type DetectionResult struct {
	Labels  []string `json:"labels"`
	Text    []string `json:"text"`
	Objects []string `json:"objects"`
}

// AnalysisRecord is the permanent enrichment result for one video thumbnail.
// At most one record per video ever exists; it has no TTL because the
// thumbnail it describes is immutable.
type AnalysisRecord struct {
	VideoID   string          `json:"videoId"`
	Detection DetectionResult `json:"detection"`
	Narrative string          `json:"narrative"`
	CreatedAt time.Time       `json:"createdAt"`
}
