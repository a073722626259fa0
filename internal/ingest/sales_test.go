package ingest

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/matthieukhl/salesgen/internal/config"
	"github.com/matthieukhl/salesgen/internal/database"
	"github.com/matthieukhl/salesgen/internal/generator"
	"github.com/matthieukhl/salesgen/internal/models"
)

func newTestIngester(t *testing.T) *SalesIngester {
	t.Helper()
	db, err := database.NewConnection(&config.DBConfig{
		Driver:       database.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "sales_data.db"),
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("NewConnection failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSalesIngester(db, "sales")
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	ing := newTestIngester(t)

	records, err := generator.New(42).Generate(1000)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for run := 1; run <= 2; run++ {
		n, err := ing.Replace(ctx, records)
		if err != nil {
			t.Fatalf("Replace run %d failed: %v", run, err)
		}
		if n != len(records) {
			t.Errorf("Replace run %d wrote %d rows, want %d", run, n, len(records))
		}

		count, err := ing.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != len(records) {
			t.Fatalf("run %d: table has %d rows, want %d", run, count, len(records))
		}
	}
}

func TestReplaceShrinks(t *testing.T) {
	ctx := context.Background()
	ing := newTestIngester(t)

	big, _ := generator.New(1).Generate(50)
	small, _ := generator.New(2).Generate(5)

	if _, err := ing.Replace(ctx, big); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if _, err := ing.Replace(ctx, small); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	count, err := ing.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Errorf("table has %d rows, want 5", count)
	}
}

func TestCategorySummary(t *testing.T) {
	ctx := context.Background()
	ing := newTestIngester(t)

	records, _ := generator.New(42).Generate(500)
	if _, err := ing.Replace(ctx, records); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	want := map[string]*models.CategoryTotal{}
	for _, r := range records {
		ct, ok := want[r.Category]
		if !ok {
			ct = &models.CategoryTotal{Category: r.Category}
			want[r.Category] = ct
		}
		ct.Rows++
		ct.Units += r.Quantity
		ct.Revenue += r.TotalSales
	}

	totals, err := ing.CategorySummary(ctx)
	if err != nil {
		t.Fatalf("CategorySummary failed: %v", err)
	}
	if len(totals) != len(want) {
		t.Fatalf("got %d categories, want %d", len(totals), len(want))
	}

	for i, got := range totals {
		if i > 0 && totals[i-1].Category >= got.Category {
			t.Errorf("categories not sorted: %q before %q", totals[i-1].Category, got.Category)
		}
		w := want[got.Category]
		if w == nil {
			t.Fatalf("unexpected category %q", got.Category)
		}
		if got.Rows != w.Rows || got.Units != w.Units {
			t.Errorf("%s: got rows=%d units=%d, want rows=%d units=%d", got.Category, got.Rows, got.Units, w.Rows, w.Units)
		}
		if math.Abs(got.Revenue-w.Revenue) > 0.01 {
			t.Errorf("%s: revenue %v, want %v", got.Category, got.Revenue, w.Revenue)
		}
	}
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	ing := newTestIngester(t)

	records, _ := generator.New(42).Generate(100)
	if _, err := ing.Replace(ctx, records); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	recent, err := ing.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("got %d rows, want 10", len(recent))
	}

	latest := records[0].Date
	for _, r := range records {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	if !recent[0].Date.Equal(latest) {
		t.Errorf("first recent date = %s, want %s", recent[0].DateString(), latest.Format(models.DateLayout))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].Date.After(recent[i-1].Date) {
			t.Errorf("rows not in descending date order at %d", i)
		}
	}

	// Stored values round-trip unchanged
	for _, r := range recent {
		if math.Abs(r.TotalSales-float64(r.Quantity)*r.UnitPrice) > 1e-6 {
			t.Errorf("TotalSales %v != %d x %v", r.TotalSales, r.Quantity, r.UnitPrice)
		}
	}
}
