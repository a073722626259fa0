package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "salesgen",
	Short: "Retail sales sample dataset generator",
	Long: `salesgen synthesizes a fake retail sales dataset (10,000 rows, seed 42)
and writes it to data/raw_sales.csv and to the "sales" table of the
SQLite database data/sales_data.db.

Run without arguments to generate both artifacts. The data is meant for
spreadsheet, SQL and BI dashboard exercises.`,
	Args:          cobra.NoArgs,
	RunE:          generateDataset,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
