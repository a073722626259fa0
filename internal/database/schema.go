package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Execer is satisfied by *sql.DB and *sql.Tx
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type column struct {
	name       string
	sqliteType string
	mysqlType  string
}

// Column order matches models.Columns
var salesColumns = []column{
	{"Date", "TEXT", "VARCHAR(10)"},
	{"StoreID", "INTEGER", "INT"},
	{"ProductID", "INTEGER", "INT"},
	{"Category", "TEXT", "VARCHAR(32)"},
	{"Quantity", "INTEGER", "INT"},
	{"UnitPrice", "REAL", "DOUBLE"},
	{"CustomerSegment", "TEXT", "VARCHAR(16)"},
	{"TotalSales", "REAL", "DOUBLE"},
}

// ValidateTableName rejects anything that is not a plain SQL identifier
func ValidateTableName(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// QuoteIdent quotes an identifier for the connection's dialect
func (db *DB) QuoteIdent(name string) string {
	if db.Driver == DriverMySQL {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// CreateSalesTableSQL returns the CREATE TABLE statement for the sales table
func (db *DB) CreateSalesTableSQL(table string) string {
	defs := make([]string, len(salesColumns))
	for i, c := range salesColumns {
		typ := c.sqliteType
		if db.Driver == DriverMySQL {
			typ = c.mysqlType
		}
		defs[i] = fmt.Sprintf("%s %s", db.QuoteIdent(c.name), typ)
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (\n    %s\n)", db.QuoteIdent(table), strings.Join(defs, ",\n    "))
	if db.Driver == DriverMySQL {
		stmt += " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	}
	return stmt
}

// InsertSalesSQL returns a parameterized single-row INSERT for the sales table
func (db *DB) InsertSalesSQL(table string) string {
	names := make([]string, len(salesColumns))
	marks := make([]string, len(salesColumns))
	for i, c := range salesColumns {
		names[i] = db.QuoteIdent(c.name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		db.QuoteIdent(table), strings.Join(names, ", "), strings.Join(marks, ", "))
}

// SalesColumnList returns the quoted, comma-separated column list in table order
func (db *DB) SalesColumnList() string {
	names := make([]string, len(salesColumns))
	for i, c := range salesColumns {
		names[i] = db.QuoteIdent(c.name)
	}
	return strings.Join(names, ", ")
}

// ReplaceSalesTable drops the sales table if it exists and creates it empty
func (db *DB) ReplaceSalesTable(ctx context.Context, ex Execer, table string) error {
	if err := ValidateTableName(table); err != nil {
		return err
	}

	if _, err := ex.ExecContext(ctx, "DROP TABLE IF EXISTS "+db.QuoteIdent(table)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}
	if _, err := ex.ExecContext(ctx, db.CreateSalesTableSQL(table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}
