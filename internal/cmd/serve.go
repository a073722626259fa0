package cmd

import (
	"fmt"

	"github.com/matthieukhl/salesgen/internal/config"
	"github.com/matthieukhl/salesgen/internal/database"
	"github.com/matthieukhl/salesgen/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sales table over a read-only HTTP API",
	Long: `Start an HTTP server over the generated sales table:
- GET /api/health          store connectivity
- GET /api/sales?limit=N   most recent rows
- GET /api/sales/summary   rows, units and revenue per category`,
	Args: cobra.NoArgs,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("🔌 Connecting to database...")
	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	fmt.Println("✅ Database connected successfully")

	srv := server.NewServer(db, cfg.DB.Table)

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
