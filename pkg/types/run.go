package types

import "time"

// Run summarizes one reconciliation pass over a records file.
// ID is zero until the run is persisted to a store.
type Run struct {
	ID          int64        `json:"id,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	RecordsPath string       `json:"records_path"`
	ImagesDir   string       `json:"images_dir"`
	Total       int          `json:"total"`
	Matched     int          `json:"matched"`
	Assignments []Assignment `json:"assignments"`
	Unmatched   []string     `json:"unmatched"`
}
