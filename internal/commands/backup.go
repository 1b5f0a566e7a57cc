package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tunedeck.org/tunedeck/internal/backup"
	"tunedeck.org/tunedeck/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage document store snapshots",
	Long:  `Create, list and restore point-in-time snapshots of the document store`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a snapshot",
	RunE:  runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snapshots, newest first",
	RunE:  runBackupList,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore a snapshot",
	Long: `Restore the document store from a snapshot. All four document
collections are replaced atomically; the activity log is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupRestore,
}

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}

func openBackupManager() (*backup.Manager, error) {
	st, err := store.New(cfg.Store.ContentRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	return backup.New(st), nil
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	manager, err := openBackupManager()
	if err != nil {
		return err
	}

	info, err := manager.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("Backup created: %s (%d files)\n", info.ID, len(info.Files))
	return nil
}

func runBackupList(cmd *cobra.Command, args []string) error {
	manager, err := openBackupManager()
	if err != nil {
		return err
	}

	backups, err := manager.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}

	for _, id := range backups {
		fmt.Println(id)
	}
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	manager, err := openBackupManager()
	if err != nil {
		return err
	}

	id := args[0]
	if err := manager.Restore(id); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Printf("Restored backup %s\n", id)
	return nil
}
