package cli

import (
	"fmt"

	"github.com/crisrui7/hk-insurance-dividend/src/config"
	"github.com/crisrui7/hk-insurance-dividend/src/database"
	"github.com/crisrui7/hk-insurance-dividend/src/restructure"
	"github.com/spf13/cobra"
)

var noBackup bool

var restructureCmd = &cobra.Command{
	Use:   "restructure",
	Short: "Rebuild the wide-form table from the long-form table",
	Long: `Restructure pivots the long-form table into one row per
product/currency/purchase-year with a (rate, status) column pair per
dividend category. The wide table is rebuilt from scratch and swapped in
atomically, so readers never see it half-built.

Renaming the long table to a backup afterwards is controlled by
BACKUP_LONG_TABLE and --no-backup; the rename is not reversible.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		backup := config.Cfg.BackupLongTable && !noBackup

		r := restructure.NewRestructurer(database.DB)
		summary, err := r.Run(restructure.Options{Backup: backup})
		if err != nil {
			return err
		}

		fmt.Printf("rows read %d, dropped %d, wide rows written %d\n",
			summary.RowsRead, summary.RowsDropped, summary.GroupsWritten)
		if summary.BackedUp {
			fmt.Println("long table renamed to fulfillment_ratios_backup")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(restructureCmd)
	restructureCmd.Flags().BoolVar(&noBackup, "no-backup", false, "keep the long-form table in place after the rebuild")
}
