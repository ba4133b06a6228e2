package models

import "time"

// Quality report statuses.
const (
	ReportPassed  = "PASSED"
	ReportWarning = "WARNING"
	ReportFailed  = "FAILED"
)

// QualityReport summarizes validation checks and the cleaning outcome of one run.
// It is created once per validation and never mutated afterwards.
type QualityReport struct {
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	InitialRecords    int     `json:"initial_records"`
	FinalRecords      int     `json:"final_records"`
	RemovedRecords    int     `json:"removed_records"`
	RemovalPercentage float64 `json:"removal_percentage"`

	Checks QualityChecks `json:"checks"`
}

// QualityChecks holds the four per-check sub-reports.
type QualityChecks struct {
	// MissingValues counts empty critical fields per field name.
	MissingValues map[string]int `json:"missing_values"`

	// Duplicates counts rows sharing a (title, publishedAt) pair with an
	// earlier row.
	Duplicates int `json:"duplicates"`

	// Freshness is nil when no row carries a parseable timestamp.
	Freshness *FreshnessReport `json:"freshness,omitempty"`

	ContentQuality ContentQualityReport `json:"content_quality"`
}

// FreshnessReport describes the publish-time span of the dataset.
type FreshnessReport struct {
	Oldest   time.Time `json:"oldest"`
	Newest   time.Time `json:"newest"`
	SpanDays int       `json:"span_days"`
}

// ContentQualityReport counts rows with too-short text fields.
type ContentQualityReport struct {
	ShortTitles       int `json:"short_titles"`
	ShortDescriptions int `json:"short_descriptions"`
}
