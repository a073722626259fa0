package models

import (
	"strconv"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used in both artifacts
const DateLayout = "2006-01-02"

// SalesRecord represents one synthetic sales transaction
type SalesRecord struct {
	Date            time.Time `json:"date" db:"Date"`
	StoreID         int       `json:"store_id" db:"StoreID"`
	ProductID       int       `json:"product_id" db:"ProductID"`
	Category        string    `json:"category" db:"Category"`
	Quantity        int       `json:"quantity" db:"Quantity"`
	UnitPrice       float64   `json:"unit_price" db:"UnitPrice"`
	CustomerSegment string    `json:"customer_segment" db:"CustomerSegment"`
	TotalSales      float64   `json:"total_sales" db:"TotalSales"`
}

// Columns is the artifact column order
var Columns = []string{
	"Date",
	"StoreID",
	"ProductID",
	"Category",
	"Quantity",
	"UnitPrice",
	"CustomerSegment",
	"TotalSales",
}

// DateString formats Date as YYYY-MM-DD
func (r SalesRecord) DateString() string {
	return r.Date.Format(DateLayout)
}

// Row renders the record as CSV cells in Columns order
func (r SalesRecord) Row() []string {
	return []string{
		r.DateString(),
		strconv.Itoa(r.StoreID),
		strconv.Itoa(r.ProductID),
		r.Category,
		strconv.Itoa(r.Quantity),
		strconv.FormatFloat(r.UnitPrice, 'f', -1, 64),
		r.CustomerSegment,
		strconv.FormatFloat(r.TotalSales, 'f', -1, 64),
	}
}

// CategoryTotal aggregates the sales table per category
type CategoryTotal struct {
	Category string  `json:"category"`
	Rows     int     `json:"rows"`
	Units    int     `json:"units"`
	Revenue  float64 `json:"revenue"`
}

// Product categories
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryFood        = "Food"
	CategoryBooks       = "Books"
)

// Customer segments
const (
	SegmentVIP     = "VIP"
	SegmentRegular = "Regular"
	SegmentNew     = "New"
)

var Categories = []string{CategoryElectronics, CategoryClothing, CategoryFood, CategoryBooks}

var Segments = []string{SegmentVIP, SegmentRegular, SegmentNew}
