package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage storage backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Back up the record collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, cfg, err := openEngine()
		if err != nil {
			return err
		}
		path, err := st.CreateBackup("")
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
		if err := cfg.MarkBackup(time.Now()); err != nil {
			return fmt.Errorf("record backup time: %w", err)
		}
		fmt.Printf("backup written to %s\n", path)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openEngine()
		if err != nil {
			return err
		}
		backups, err := st.ListBackups()
		if err != nil {
			return fmt.Errorf("list backups: %w", err)
		}
		if len(backups) == 0 {
			fmt.Println("No backups found.")
			return nil
		}
		for _, b := range backups {
			fmt.Println(b)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [path]",
	Short: "Restore the collection from a backup",
	Long:  "Validates the backup, takes a safety backup of the live file, then overwrites the live file with the backup.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openEngine()
		if err != nil {
			return err
		}
		if !st.RestoreFromBackup(args[0]) {
			return fmt.Errorf("restore from %s failed", args[0])
		}
		count, err := st.Count()
		if err != nil {
			return fmt.Errorf("count after restore: %w", err)
		}
		fmt.Printf("restored %d paper(s) from %s\n", count, args[0])
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}
