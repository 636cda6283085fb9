package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print record counts over the long-form table",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := ingestionService.Statistics()
		if err != nil {
			return err
		}

		fmt.Printf("records: %d, products: %d\n", stats.TotalRecords, stats.TotalProducts)
		fmt.Println("by company:")
		for company, n := range stats.ByCompany {
			fmt.Printf("  %s: %d\n", company, n)
		}
		fmt.Println("by status:")
		for status, n := range stats.ByStatus {
			fmt.Printf("  %s: %d\n", status, n)
		}
		fmt.Println("by currency:")
		for currency, n := range stats.ByCurrency {
			fmt.Printf("  %s: %d\n", currency, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
