package integrity

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tunedeck.org/tunedeck/internal/store"
	"tunedeck.org/tunedeck/models"
)

// Health score deductions per issue severity, clamped at 0.
var severityDeductions = map[Severity]int{
	SeverityLow:    2,
	SeverityMedium: 5,
	SeverityHigh:   15,
}

// Service scans the store for integrity issues and applies repairs.
type Service struct {
	store *store.Store
}

// NewService creates an integrity service over the given store.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Scan inspects all collections and returns a report of detected issues.
// A corrupt collection is reported as a single high-severity issue rather
// than aborting the scan.
func (s *Service) Scan() (*ScanReport, error) {
	report := &ScanReport{
		ID:        "scan-" + uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Issues:    []Issue{},
	}

	vehicleIDs := map[string]int{}

	vehicles, err := s.store.GetVehicles()
	if err != nil {
		if !store.IsCorrupt(err) {
			return nil, err
		}
		report.Issues = append(report.Issues, corruptIssue(store.VehiclesFile, err))
	} else {
		report.ScannedDocs += len(vehicles)
		for _, v := range vehicles {
			vehicleIDs[v.ID]++
		}
		for id, count := range vehicleIDs {
			if count > 1 {
				report.Issues = append(report.Issues, Issue{
					Type:       IssueTypeDuplicateVehicle,
					Severity:   SeverityHigh,
					DocumentID: id,
					Detail:     fmt.Sprintf("%d vehicles share id %s", count, id),
				})
			}
		}
	}

	profiles, err := s.store.GetAllECUProfiles()
	if err != nil {
		if !store.IsCorrupt(err) {
			return nil, err
		}
		report.Issues = append(report.Issues, corruptIssue(store.ProfilesFile, err))
	} else {
		report.ScannedDocs += len(profiles)
		for _, p := range profiles {
			if vehicleIDs[p.VehicleID] == 0 {
				report.Issues = append(report.Issues, Issue{
					Type:       IssueTypeOrphanedProfile,
					Severity:   SeverityMedium,
					DocumentID: p.ID,
					Detail:     fmt.Sprintf("profile %q references missing vehicle %s", p.Name, p.VehicleID),
					Repairable: true,
				})
			}
		}
	}

	tunes, err := s.store.GetAllTunes()
	if err != nil {
		if !store.IsCorrupt(err) {
			return nil, err
		}
		report.Issues = append(report.Issues, corruptIssue(store.TunesFile, err))
	} else {
		report.ScannedDocs += len(tunes)
		for _, t := range tunes {
			if vehicleIDs[t.VehicleID] == 0 {
				report.Issues = append(report.Issues, Issue{
					Type:       IssueTypeOrphanedTune,
					Severity:   SeverityMedium,
					DocumentID: t.ID,
					Detail:     fmt.Sprintf("tune %q references missing vehicle %s", t.Name, t.VehicleID),
					Repairable: true,
				})
			}
		}
	}

	report.HealthScore = 100
	for _, issue := range report.Issues {
		report.HealthScore -= severityDeductions[issue.Severity]
	}
	if report.HealthScore < 0 {
		report.HealthScore = 0
	}

	return report, nil
}

// Repair resolves the repairable issues in a report. With apply false it
// is a dry run and only counts what would change. Pruning orphans is the
// only destructive repair; corrupt documents and duplicate IDs always
// require manual intervention and are counted as skipped.
func (s *Service) Repair(report *ScanReport, apply bool) (*RepairResult, error) {
	result := &RepairResult{
		ReportID: report.ID,
		DryRun:   !apply,
	}

	var orphanProfiles, orphanTunes []string
	for _, issue := range report.Issues {
		switch {
		case issue.Type == IssueTypeOrphanedProfile:
			orphanProfiles = append(orphanProfiles, issue.DocumentID)
		case issue.Type == IssueTypeOrphanedTune:
			orphanTunes = append(orphanTunes, issue.DocumentID)
		default:
			result.Skipped++
		}
	}

	if !apply {
		result.PrunedProfiles = len(orphanProfiles)
		result.PrunedTunes = len(orphanTunes)
		return result, nil
	}

	if len(orphanProfiles) > 0 {
		n, err := s.store.RemoveECUProfiles(orphanProfiles)
		if err != nil {
			return nil, fmt.Errorf("failed to prune orphaned profiles: %w", err)
		}
		result.PrunedProfiles = n
	}

	if len(orphanTunes) > 0 {
		n, err := s.store.RemoveTunes(orphanTunes)
		if err != nil {
			return nil, fmt.Errorf("failed to prune orphaned tunes: %w", err)
		}
		result.PrunedTunes = n
	}

	if result.PrunedProfiles+result.PrunedTunes > 0 {
		_, err := s.store.AddLog(&models.LogEntry{
			Type:  models.LogTypeSystem,
			Level: models.LogLevelWarn,
			Message: fmt.Sprintf("integrity repair pruned %d profile(s) and %d tune(s)",
				result.PrunedProfiles, result.PrunedTunes),
		})
		if err != nil {
			log.Printf("Failed to write integrity log entry: %v", err)
		}
	}

	return result, nil
}

func corruptIssue(document string, err error) Issue {
	return Issue{
		Type:       IssueTypeCorruptDocument,
		Severity:   SeverityHigh,
		DocumentID: document,
		Detail:     err.Error(),
	}
}
