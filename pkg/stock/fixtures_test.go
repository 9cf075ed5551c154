package stock

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	testNow       = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)
	testHousehold = uuid.MustParse("5b0e8f2c-3c1f-4b5e-9a57-1f1f4c2a9a10")
)

func qty(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func inDays(days int) *time.Time {
	d := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &d
}

func newProduct(name string, importance domain.Importance) *entities.Product {
	return &entities.Product{
		ID:          uuid.New(),
		HouseholdID: testHousehold,
		Name:        name,
		NameKey:     entities.NormalizeName(name),
		Unit:        domain.UnitPiece,
		Importance:  importance,
	}
}

func newBatch(p *entities.Product, quantity float64, expiry *time.Time) *entities.Batch {
	return &entities.Batch{
		ID:          uuid.New(),
		ProductID:   p.ID,
		HouseholdID: p.HouseholdID,
		Quantity:    qty(quantity),
		Location:    "pantry",
		ExpiryDate:  expiry,
	}
}

func findRow(t interface{ Fatalf(string, ...any) }, report domain.StockReport, name string) domain.GroupedProduct {
	for _, row := range report.Products {
		if row.Name == name {
			return row
		}
	}
	t.Fatalf("no row for %q", name)
	return domain.GroupedProduct{}
}
