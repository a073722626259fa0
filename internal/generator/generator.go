package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/matthieukhl/salesgen/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCount  = errors.New("row count must not be negative")
	ErrInvalidBounds = errors.New("invalid sampling bounds")
)

// Weighted is a categorical distribution over string values
type Weighted struct {
	Values  []string
	Weights []float64
}

// Bounds holds the literal sampling ranges for every random attribute
type Bounds struct {
	Start       time.Time
	End         time.Time
	StoreMin    int
	StoreMax    int
	ProductMin  int
	ProductMax  int
	QuantityMin int
	QuantityMax int
	PriceMin    float64
	PriceMax    float64
	Categories  Weighted
	Segments    Weighted
}

// DefaultBounds returns the fixed ranges of the retail dataset
func DefaultBounds() Bounds {
	return Bounds{
		Start:       time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		StoreMin:    1,
		StoreMax:    50,
		ProductMin:  1001,
		ProductMax:  1500,
		QuantityMin: 1,
		QuantityMax: 9,
		PriceMin:    5.0,
		PriceMax:    200.0,
		Categories: Weighted{
			Values:  models.Categories,
			Weights: []float64{0.3, 0.3, 0.2, 0.2},
		},
		Segments: Weighted{
			Values:  models.Segments,
			Weights: []float64{0.2, 0.6, 0.2},
		},
	}
}

// Validate checks that every range is well-formed (min <= max) and that
// each categorical distribution sums to 1.
func (b Bounds) Validate() error {
	switch {
	case b.End.Before(b.Start):
		return fmt.Errorf("%w: date range %s..%s", ErrInvalidBounds, b.Start.Format(models.DateLayout), b.End.Format(models.DateLayout))
	case b.StoreMin > b.StoreMax:
		return fmt.Errorf("%w: store id %d..%d", ErrInvalidBounds, b.StoreMin, b.StoreMax)
	case b.ProductMin > b.ProductMax:
		return fmt.Errorf("%w: product id %d..%d", ErrInvalidBounds, b.ProductMin, b.ProductMax)
	case b.QuantityMin > b.QuantityMax:
		return fmt.Errorf("%w: quantity %d..%d", ErrInvalidBounds, b.QuantityMin, b.QuantityMax)
	case b.PriceMin > b.PriceMax:
		return fmt.Errorf("%w: unit price %.2f..%.2f", ErrInvalidBounds, b.PriceMin, b.PriceMax)
	}

	if err := b.Categories.validate(); err != nil {
		return fmt.Errorf("%w: categories: %v", ErrInvalidBounds, err)
	}
	if err := b.Segments.validate(); err != nil {
		return fmt.Errorf("%w: segments: %v", ErrInvalidBounds, err)
	}
	return nil
}

func (w Weighted) validate() error {
	if len(w.Values) == 0 || len(w.Values) != len(w.Weights) {
		return fmt.Errorf("%d values for %d weights", len(w.Values), len(w.Weights))
	}
	sum := 0.0
	for _, p := range w.Weights {
		if p < 0 {
			return fmt.Errorf("negative weight %v", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("weights sum to %v", sum)
	}
	return nil
}

// Generator produces batches of independent SalesRecords from its own
// random source.
type Generator struct {
	Bounds Bounds
	rand   *rand.Rand
}

// New creates a generator seeded with seed. The same seed always yields the
// same sequence of batches.
func New(seed uint64) *Generator {
	return NewWithRand(rand.New(rand.NewPCG(seed, seed)))
}

// NewWithRand creates a generator drawing from r
func NewWithRand(r *rand.Rand) *Generator {
	return &Generator{
		Bounds: DefaultBounds(),
		rand:   r,
	}
}

// Generate returns n records in generation order
func (g *Generator) Generate(n int) ([]models.SalesRecord, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	if err := g.Bounds.Validate(); err != nil {
		return nil, err
	}

	records := make([]models.SalesRecord, n)
	for i := range records {
		records[i] = g.record()
	}
	return records, nil
}

func (g *Generator) record() models.SalesRecord {
	b := &g.Bounds

	quantity := g.intBetween(b.QuantityMin, b.QuantityMax)
	price := decimal.NewFromFloat(b.PriceMin + g.rand.Float64()*(b.PriceMax-b.PriceMin)).Round(2)
	total := price.Mul(decimal.NewFromInt(int64(quantity)))

	return models.SalesRecord{
		Date:            g.date(),
		StoreID:         g.intBetween(b.StoreMin, b.StoreMax),
		ProductID:       g.intBetween(b.ProductMin, b.ProductMax),
		Category:        g.choice(b.Categories),
		Quantity:        quantity,
		UnitPrice:       price.InexactFloat64(),
		CustomerSegment: g.choice(b.Segments),
		TotalSales:      total.InexactFloat64(),
	}
}

// date draws a day offset in [0, days] so both ends of the window are reachable
func (g *Generator) date() time.Time {
	days := int(g.Bounds.End.Sub(g.Bounds.Start).Hours() / 24)
	return g.Bounds.Start.AddDate(0, 0, g.rand.IntN(days+1))
}

// intBetween returns a uniform integer in [min, max]
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rand.IntN(hi-lo+1)
}

func (g *Generator) choice(w Weighted) string {
	return weightedChoice(g.rand.Float64(), w)
}

// weightedChoice maps u in [0, 1) onto w's cumulative weights
func weightedChoice(u float64, w Weighted) string {
	acc := 0.0
	for i, p := range w.Weights {
		acc += p
		if u < acc {
			return w.Values[i]
		}
	}
	// Rounding can leave acc a hair under 1.
	return w.Values[len(w.Values)-1]
}
