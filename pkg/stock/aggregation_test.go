package stock

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysUntilExpiry(t *testing.T) {
	now := time.Date(2026, time.October, 15, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{"same day", time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), 0},
		{"tomorrow", time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC), 1},
		{"three days", time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC), 3},
		{"yesterday", time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC), -1},
		{"across month", time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC), 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilExpiry(tt.expiry, now))
		})
	}
}

func TestDaysUntilExpiryIgnoresClockZone(t *testing.T) {
	utc := time.Date(2026, time.October, 15, 20, 0, 0, 0, time.UTC)
	wib := utc.In(time.FixedZone("WIB", 7*60*60))
	expiry := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, DaysUntilExpiry(expiry, utc))
	assert.Equal(t, 4, DaysUntilExpiry(expiry, wib))

	milk := newProduct("Milk", domain.ImportanceNormal)
	batch := newBatch(milk, 1, &expiry)
	assert.Equal(t, IsExpiring(batch, utc), IsExpiring(batch, wib))
}

func TestAggregateCriticalLowStock(t *testing.T) {
	milk := newProduct("Milk", domain.ImportanceCritical)
	batches := []*entities.Batch{newBatch(milk, 2, nil)}

	report := Aggregate([]*entities.Product{milk}, batches, testNow)

	row := findRow(t, report, "Milk")
	assert.True(t, row.TotalQuantity.Equal(qty(2)))
	assert.True(t, row.HealthyQuantity.Equal(qty(2)))
	require.NotNil(t, row.Threshold)
	assert.True(t, row.Threshold.Equal(qty(4)))
	assert.Equal(t, domain.HealthCritical, row.Status)

	require.Len(t, report.Critical, 1)
	assert.Equal(t, domain.ReasonLowStock, report.Critical[0].Reason)
	assert.Equal(t, "Milk: low stock", report.Critical[0].Message)
	assert.Empty(t, report.Suggestions)
}

func TestAggregateSufficientStockIsOK(t *testing.T) {
	milk := newProduct("Milk", domain.ImportanceCritical)

	report := Aggregate([]*entities.Product{milk}, []*entities.Batch{newBatch(milk, 6, nil)}, testNow)

	assert.Equal(t, domain.HealthOK, findRow(t, report, "Milk").Status)
	assert.Empty(t, report.Critical)
	assert.Empty(t, report.Suggestions)
}

func TestAggregateExpiringBatchIsNotHealthy(t *testing.T) {
	eggs := newProduct("Eggs", domain.ImportanceHigh)
	batches := []*entities.Batch{newBatch(eggs, 3, inDays(2))}

	report := Aggregate([]*entities.Product{eggs}, batches, testNow)

	row := findRow(t, report, "Eggs")
	assert.True(t, row.HealthyQuantity.IsZero())
	assert.True(t, row.ExpiringQuantity.Equal(qty(3)))
	assert.True(t, row.TotalQuantity.Equal(qty(3)))
	assert.True(t, row.HasExpiringBatch)
	assert.Equal(t, domain.HealthCritical, row.Status)
	assert.Equal(t, domain.ReasonLowFromExpiry, row.Reason)
}

func TestAggregateGhostNeverAlerts(t *testing.T) {
	chips := newProduct("Chips", domain.ImportanceCritical)
	chips.IsGhost = true

	report := Aggregate([]*entities.Product{chips}, []*entities.Batch{newBatch(chips, 1, inDays(1))}, testNow)

	row := findRow(t, report, "Chips")
	assert.Equal(t, domain.HealthGhost, row.Status)
	assert.Nil(t, row.Threshold)
	assert.True(t, row.TotalQuantity.Equal(qty(1)))
	assert.Empty(t, report.Critical)
	assert.Empty(t, report.Suggestions)

	report = Aggregate([]*entities.Product{chips}, nil, testNow)
	assert.Empty(t, report.Critical)
	assert.Empty(t, report.Suggestions)
}

func TestAggregateSentinelShowsOutOfStock(t *testing.T) {
	rice := newProduct("Rice", domain.ImportanceHigh)
	sentinel := newBatch(rice, 0, nil)

	report := Aggregate([]*entities.Product{rice}, []*entities.Batch{sentinel}, testNow)

	row := findRow(t, report, "Rice")
	assert.Equal(t, 0, row.BatchCount)
	assert.Len(t, row.Batches, 1)
	assert.Equal(t, domain.ReasonOutOfStock, row.Reason)
	require.Len(t, report.Critical, 1)
}

func TestAggregateSuggestions(t *testing.T) {
	salt := newProduct("Salt", domain.ImportanceNormal)
	yogurt := newProduct("Yogurt", domain.ImportanceNormal)
	bread := newProduct("Bread", domain.ImportanceNormal)
	bread.MinQuantity = decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}
	spice := newProduct("Saffron", domain.ImportanceNone)

	batches := []*entities.Batch{
		newBatch(salt, 1, nil),
		newBatch(yogurt, 4, inDays(3)),
		newBatch(yogurt, 1, nil),
		newBatch(bread, 0.5, inDays(10)),
	}

	report := Aggregate([]*entities.Product{salt, yogurt, bread, spice}, batches, testNow)

	assert.Equal(t, domain.ReasonRestockSuggest, findRow(t, report, "Salt").Reason)
	// Yogurt is both low and expiring; the expiry warning is the one shown.
	assert.Equal(t, domain.ReasonExpiringSoon, findRow(t, report, "Yogurt").Reason)
	assert.Equal(t, domain.HealthOK, findRow(t, report, "Bread").Status)
	assert.Equal(t, domain.HealthOK, findRow(t, report, "Saffron").Status)
	assert.Len(t, report.Suggestions, 2)
	assert.Empty(t, report.Critical)
}

func TestAggregateThresholdOverride(t *testing.T) {
	coffee := newProduct("Coffee", domain.ImportanceHigh)
	coffee.MinQuantity = decimal.NullDecimal{Decimal: qty(5), Valid: true}

	report := Aggregate([]*entities.Product{coffee}, []*entities.Batch{newBatch(coffee, 3, nil)}, testNow)

	row := findRow(t, report, "Coffee")
	assert.True(t, row.Threshold.Equal(qty(5)))
	assert.Equal(t, domain.HealthCritical, row.Status)
}

func TestAggregateTotalsInvariant(t *testing.T) {
	a := newProduct("Apples", domain.ImportanceNormal)
	b := newProduct("Butter", domain.ImportanceCritical)
	batches := []*entities.Batch{
		newBatch(a, 2, inDays(-1)),
		newBatch(a, 3.5, inDays(4)),
		newBatch(a, 0, nil),
		newBatch(b, 1.25, inDays(0)),
		newBatch(b, 7, nil),
		newBatch(b, 2, inDays(30)),
	}

	report := Aggregate([]*entities.Product{a, b}, batches, testNow)

	for _, row := range report.Products {
		sum := row.HealthyQuantity.Add(row.ExpiringQuantity)
		assert.Truef(t, row.TotalQuantity.Equal(sum), "%s: total %s != healthy+expiring %s", row.Name, row.TotalQuantity, sum)
	}

	apples := findRow(t, report, "Apples")
	assert.Equal(t, 2, apples.BatchCount)
	require.NotNil(t, apples.EarliestExpiry)
	assert.True(t, apples.EarliestExpiry.Equal(*inDays(-1)))
}

func TestAggregateOrdersCriticalByImportance(t *testing.T) {
	a := newProduct("Apples", domain.ImportanceHigh)
	z := newProduct("Zucchini", domain.ImportanceCritical)

	report := Aggregate([]*entities.Product{a, z}, nil, testNow)

	require.Len(t, report.Critical, 2)
	assert.Equal(t, "Zucchini", report.Critical[0].Name)
	assert.Equal(t, "Apples", report.Critical[1].Name)
	assert.Equal(t, "Apples", report.Products[0].Name)
}

func TestAggregateBatchesInConsumptionOrder(t *testing.T) {
	p := newProduct("Cheese", domain.ImportanceNormal)
	noExpiry := newBatch(p, 1, nil)
	late := newBatch(p, 1, inDays(20))
	soon := newBatch(p, 1, inDays(5))

	report := Aggregate([]*entities.Product{p}, []*entities.Batch{noExpiry, late, soon}, testNow)

	row := findRow(t, report, "Cheese")
	require.Len(t, row.Batches, 3)
	assert.Equal(t, soon.ID.String(), row.Batches[0].ID)
	assert.Equal(t, late.ID.String(), row.Batches[1].ID)
	assert.Equal(t, noExpiry.ID.String(), row.Batches[2].ID)
}
