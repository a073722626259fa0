package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/matthieukhl/salesgen/internal/database"
	"github.com/matthieukhl/salesgen/internal/models"
	"github.com/shopspring/decimal"
)

type SalesIngester struct {
	db    *database.DB
	table string
}

func NewSalesIngester(db *database.DB, table string) *SalesIngester {
	return &SalesIngester{db: db, table: table}
}

// Replace drops and recreates the sales table and inserts every record.
// On sqlite the whole replacement commits atomically; on mysql the DDL
// commits implicitly and only the inserts share the transaction.
func (s *SalesIngester) Replace(ctx context.Context, records []models.SalesRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.db.ReplaceSalesTable(ctx, tx, s.table); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, s.db.InsertSalesSQL(s.table))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.DateString(), r.StoreID, r.ProductID, r.Category,
			r.Quantity, r.UnitPrice, r.CustomerSegment, r.TotalSales,
		)
		if err != nil {
			return i, fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return len(records), nil
}

// Count returns the number of rows in the sales table
func (s *SalesIngester) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.db.QuoteIdent(s.table)).Scan(&count)
	return count, err
}

// CategorySummary aggregates rows, units and revenue per category
func (s *SalesIngester) CategorySummary(ctx context.Context) ([]models.CategoryTotal, error) {
	query := fmt.Sprintf(`
		SELECT
			%[1]s,
			COUNT(*),
			COALESCE(SUM(%[2]s), 0),
			COALESCE(SUM(%[3]s), 0)
		FROM %[4]s
		GROUP BY %[1]s
		ORDER BY %[1]s`,
		s.db.QuoteIdent("Category"), s.db.QuoteIdent("Quantity"),
		s.db.QuoteIdent("TotalSales"), s.db.QuoteIdent(s.table))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var t models.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Rows, &t.Units, &t.Revenue); err != nil {
			return nil, err
		}
		t.Revenue = decimal.NewFromFloat(t.Revenue).Round(2).InexactFloat64()
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// Recent returns up to limit rows, newest Date first
func (s *SalesIngester) Recent(ctx context.Context, limit int) ([]models.SalesRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s DESC LIMIT ?",
		s.db.SalesColumnList(), s.db.QuoteIdent(s.table), s.db.QuoteIdent("Date"))

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.SalesRecord
	for rows.Next() {
		var r models.SalesRecord
		var date string

		err := rows.Scan(
			&date, &r.StoreID, &r.ProductID, &r.Category,
			&r.Quantity, &r.UnitPrice, &r.CustomerSegment, &r.TotalSales,
		)
		if err != nil {
			return nil, err
		}

		r.Date, err = time.Parse(models.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date %q: %w", date, err)
		}

		records = append(records, r)
	}

	return records, rows.Err()
}
