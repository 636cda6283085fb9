package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	clearCompany string
	clearYes     bool
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete long-form rows (all, or one company's)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to delete without --yes")
		}
		if err := ingestionService.Clear(clearCompany); err != nil {
			return err
		}
		if clearCompany != "" {
			fmt.Printf("cleared rows for %s\n", clearCompany)
		} else {
			fmt.Println("cleared all rows")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().StringVar(&clearCompany, "company", "", "only delete this company's rows")
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deletion")
}
