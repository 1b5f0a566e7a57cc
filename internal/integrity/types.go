// Package integrity provides store integrity checking and repair for the
// workstation's document collections. It detects orphaned ECU profiles and
// tunes (references to vehicles that no longer exist), duplicate vehicle
// IDs, and unparsable documents, and can prune orphans on request.
package integrity

import "time"

// IssueType classifies a detected integrity issue.
type IssueType string

const (
	// IssueTypeOrphanedProfile is an ECU profile referencing a missing vehicle
	IssueTypeOrphanedProfile IssueType = "orphaned_profile"

	// IssueTypeOrphanedTune is a tune referencing a missing vehicle
	IssueTypeOrphanedTune IssueType = "orphaned_tune"

	// IssueTypeDuplicateVehicle is more than one vehicle with the same ID
	IssueTypeDuplicateVehicle IssueType = "duplicate_vehicle"

	// IssueTypeCorruptDocument is a document that exists but cannot be parsed
	IssueTypeCorruptDocument IssueType = "corrupt_document"
)

// Severity ranks how critical an issue is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is one detected integrity problem.
type Issue struct {
	// Type classifies the issue
	Type IssueType `json:"type"`

	// Severity ranks the issue
	Severity Severity `json:"severity"`

	// DocumentID identifies the offending document, when applicable
	DocumentID string `json:"document_id,omitempty"`

	// Detail is the human-readable description
	Detail string `json:"detail"`

	// Repairable is true when Repair can resolve the issue automatically
	Repairable bool `json:"repairable"`
}

// ScanReport is the outcome of one integrity scan. HealthScore starts at
// 100 and is reduced per issue by severity, clamped at 0.
type ScanReport struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	ScannedDocs int       `json:"scanned_documents"`
	Issues      []Issue   `json:"issues"`
	HealthScore int       `json:"health_score"`
}

// RepairResult summarizes a repair pass over a scan report.
type RepairResult struct {
	ReportID string `json:"report_id"`

	// DryRun is true when no changes were applied
	DryRun bool `json:"dry_run"`

	// PrunedProfiles and PrunedTunes count removed orphans
	PrunedProfiles int `json:"pruned_profiles"`
	PrunedTunes    int `json:"pruned_tunes"`

	// Skipped counts issues repair could not resolve automatically
	Skipped int `json:"skipped"`
}
