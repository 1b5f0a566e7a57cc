package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tunedeck.org/tunedeck/internal/integrity"
)

var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Document store integrity checking and repair",
	Long:  `Scan for orphaned profiles and tunes, duplicate IDs and corrupt documents`,
}

var integrityScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for integrity issues",
	RunE:  runIntegrityScan,
}

var integrityRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Prune orphaned documents",
	Long: `Repair issues found by a scan. Without --apply this is a dry run
that only reports what would be removed.`,
	RunE: runIntegrityRepair,
}

func init() {
	integrityScanCmd.Flags().Bool("json", false, "Output results as JSON")
	integrityRepairCmd.Flags().Bool("apply", false, "Apply repairs instead of a dry run")

	integrityCmd.AddCommand(integrityScanCmd)
	integrityCmd.AddCommand(integrityRepairCmd)
}

func runIntegrityScan(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	report, err := integrity.NewService(st).Scan()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Scanned documents: %d\n", report.ScannedDocs)
	fmt.Printf("Health score:      %d/100\n", report.HealthScore)
	fmt.Printf("Issues found:      %d\n", len(report.Issues))

	for _, issue := range report.Issues {
		marker := " "
		if issue.Repairable {
			marker = "*"
		}
		fmt.Printf("  %s [%s/%s] %s\n", marker, issue.Type, issue.Severity, issue.Detail)
	}

	if len(report.Issues) > 0 {
		fmt.Println("\nIssues marked * can be fixed with: tunedeck integrity repair --apply")
	}
	return nil
}

func runIntegrityRepair(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	svc := integrity.NewService(st)

	report, err := svc.Scan()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	apply, _ := cmd.Flags().GetBool("apply")

	result, err := svc.Repair(report, apply)
	if err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}

	mode := "dry run"
	if apply {
		mode = "applied"
	}
	fmt.Printf("Repair (%s): %d profile(s), %d tune(s) pruned, %d issue(s) skipped\n",
		mode, result.PrunedProfiles, result.PrunedTunes, result.Skipped)

	if !apply && result.PrunedProfiles+result.PrunedTunes > 0 {
		fmt.Println("Re-run with --apply to remove these documents")
	}
	return nil
}
