package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/matthieukhl/salesgen/internal/config"
	"github.com/matthieukhl/salesgen/internal/dataset"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the sales dataset and write both artifacts",
	Long: `Generate the synthetic sales batch and persist it twice:
- a CSV file with a header row and one row per record
- a "sales" table in the SQLite store, dropped and recreated on every run

The two writes are not transactional: if the store write fails the CSV
file is left in place.`,
	Args: cobra.NoArgs,
	RunE: generateDataset,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateDataset(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("🛒 Generating %s realistic retail sales records...\n", humanize.Comma(int64(cfg.Generate.Rows)))

	records, err := dataset.Generate(cfg)
	if err != nil {
		return fmt.Errorf("failed to generate records: %w", err)
	}

	report, err := dataset.Persist(cmd.Context(), cfg, records)
	if report != nil && report.CSVBytes > 0 {
		fmt.Printf("📄 CSV created: %s (%s)\n", report.CSVPath, humanize.Bytes(uint64(report.CSVBytes)))
	}
	if err != nil {
		return err
	}

	if report.DBPath != "" {
		fmt.Printf("🗄️  SQLite DB created: %s (%s, table %q)\n",
			report.DBPath, humanize.Bytes(uint64(report.DBBytes)), report.Table)
	} else {
		fmt.Printf("🗄️  Table %q written (%s driver)\n", report.Table, cfg.DB.Driver)
	}

	fmt.Printf("\n✅ Data generation complete! %s rows ready for SQL, Excel, Python & Power BI\n",
		humanize.Comma(int64(report.Rows)))
	return nil
}
