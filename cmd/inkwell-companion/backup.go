package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwellkeeper/inkwell-companion/internal/config"
	"github.com/inkwellkeeper/inkwell-companion/internal/storage"
)

var backupPassword string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up and restore the collection database",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backup of the collection database",
	RunE:  runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup file>",
	Short: "Restore the collection database from a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupRestore,
}

func init() {
	backupCreateCmd.Flags().StringVar(&backupPassword, "password", "", "encrypt the backup with this password")
	backupRestoreCmd.Flags().StringVar(&backupPassword, "password", "", "password for an encrypted backup")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	path, err := a.db.Backup(storage.BackupOptions{Password: backupPassword})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	// Restore must not race an open database handle, so the app is not
	// bootstrapped here; only the config is read.
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := storage.RestoreBackup(args[0], cfg.Database.Path, backupPassword); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored collection database from %s\n", args[0])
	return nil
}
