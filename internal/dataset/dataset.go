// Package dataset runs the retail sales generation procedure: generate a
// batch, then persist it as a CSV file and as a table in the relational store.
package dataset

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/matthieukhl/salesgen/internal/config"
	"github.com/matthieukhl/salesgen/internal/database"
	"github.com/matthieukhl/salesgen/internal/export"
	"github.com/matthieukhl/salesgen/internal/generator"
	"github.com/matthieukhl/salesgen/internal/ingest"
	"github.com/matthieukhl/salesgen/internal/models"
)

// Report describes the artifacts written by Persist
type Report struct {
	Rows     int
	CSVPath  string
	CSVBytes int64
	DBPath   string
	DBBytes  int64
	Table    string
}

// NewGenerator builds a generator from the seed and date window in cfg
func NewGenerator(cfg *config.GenerateConfig) (*generator.Generator, error) {
	g := generator.New(cfg.Seed)

	start, err := time.Parse(models.DateLayout, cfg.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := time.Parse(models.DateLayout, cfg.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end date: %w", err)
	}
	g.Bounds.Start, g.Bounds.End = start, end

	return g, nil
}

// Generate produces the configured number of records
func Generate(cfg *config.Config) ([]models.SalesRecord, error) {
	g, err := NewGenerator(&cfg.Generate)
	if err != nil {
		return nil, err
	}
	return g.Generate(cfg.Generate.Rows)
}

// Persist writes records to the CSV artifact, then replaces the store table.
// The two writes are independent: a store failure leaves the CSV in place.
func Persist(ctx context.Context, cfg *config.Config, records []models.SalesRecord) (*Report, error) {
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	report := &Report{
		CSVPath: cfg.CSVPath(),
		Table:   cfg.DB.Table,
	}

	if err := export.WriteCSV(report.CSVPath, records); err != nil {
		return nil, err
	}
	report.CSVBytes = fileSize(report.CSVPath)

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return report, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	rows, err := ingest.NewSalesIngester(db, cfg.DB.Table).Replace(ctx, records)
	if err != nil {
		return report, fmt.Errorf("failed to write table %s: %w", cfg.DB.Table, err)
	}
	report.Rows = rows

	if db.Driver == database.DriverSQLite {
		report.DBPath = database.SQLitePath(cfg.DB.DSN)
		report.DBBytes = fileSize(report.DBPath)
	}

	return report, nil
}

func fileSize(path string) int64 {
	if path == "" {
		return 0
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
