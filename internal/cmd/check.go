package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/matthieukhl/salesgen/internal/config"
	"github.com/matthieukhl/salesgen/internal/database"
	"github.com/matthieukhl/salesgen/internal/export"
	"github.com/matthieukhl/salesgen/internal/ingest"
	"github.com/matthieukhl/salesgen/internal/models"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the generated artifacts",
	Long: `Read back the CSV file and the sales table and confirm that both
hold the expected header and row count. Prints a per-category breakdown
of the stored rows.`,
	Args: cobra.NoArgs,
	RunE: checkArtifacts,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkArtifacts(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("🔍 Checking %s...\n", cfg.CSVPath())

	header, rows, err := export.ReadCSV(cfg.CSVPath())
	if err != nil {
		return err
	}
	if !slices.Equal(header, models.Columns) {
		return fmt.Errorf("unexpected CSV header: %s", strings.Join(header, ","))
	}
	if len(rows) != cfg.Generate.Rows {
		return fmt.Errorf("CSV has %d data rows, expected %d", len(rows), cfg.Generate.Rows)
	}
	fmt.Printf("   ✅ Header: %s\n", strings.Join(header, ","))
	fmt.Printf("   ✅ Rows: %s\n", humanize.Comma(int64(len(rows))))

	fmt.Printf("🔍 Checking table %q (%s)...\n", cfg.DB.Table, cfg.DB.Driver)

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	sales := ingest.NewSalesIngester(db, cfg.DB.Table)

	count, err := sales.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}
	if count != cfg.Generate.Rows {
		return fmt.Errorf("table %s has %d rows, expected %d", cfg.DB.Table, count, cfg.Generate.Rows)
	}
	fmt.Printf("   ✅ Rows: %s\n", humanize.Comma(int64(count)))

	totals, err := sales.CategorySummary(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to summarize categories: %w", err)
	}

	fmt.Println("\n📊 Sales by category:")
	fmt.Println(strings.Repeat("─", 60))
	for _, t := range totals {
		fmt.Printf("   %-12s %7s rows %8s units  $%s\n",
			t.Category, humanize.Comma(int64(t.Rows)), humanize.Comma(int64(t.Units)),
			humanize.CommafWithDigits(t.Revenue, 2))
	}

	fmt.Println("\n✅ Artifacts look good!")
	return nil
}
