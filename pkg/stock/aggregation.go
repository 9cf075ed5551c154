package stock

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DaysUntilExpiry counts UTC calendar days from now to the expiry date. Expired
// batches give a negative number.
func DaysUntilExpiry(expiry, now time.Time) int {
	ey, em, ed := expiry.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(e.Sub(n).Hours() / 24)
}

// IsExpiring reports whether the batch is too close to its expiry date to be
// counted as usable stock.
func IsExpiring(b *entities.Batch, now time.Time) bool {
	if b.ExpiryDate == nil {
		return false
	}
	return DaysUntilExpiry(*b.ExpiryDate, now) <= domain.ExpiryWarningDays
}

// Aggregate folds the household's batches into one row per product and
// classifies every product against its threshold. It is a pure function of
// its arguments and is safe to call as often as needed.
//
// Every registered product gets a row, even without batches. Batches whose
// product is not in the list are ignored.
func Aggregate(products []*entities.Product, batches []*entities.Batch, now time.Time) domain.StockReport {
	byProduct := make(map[uuid.UUID][]*entities.Batch, len(products))
	for _, b := range batches {
		byProduct[b.ProductID] = append(byProduct[b.ProductID], b)
	}

	ordered := make([]*entities.Product, len(products))
	copy(ordered, products)
	sort.SliceStable(ordered, func(i, j int) bool {
		return entities.NormalizeName(ordered[i].Name) < entities.NormalizeName(ordered[j].Name)
	})

	report := domain.StockReport{
		GeneratedAt: now,
		Products:    make([]domain.GroupedProduct, 0, len(ordered)),
		Critical:    []domain.Alert{},
		Suggestions: []domain.Alert{},
	}

	for _, p := range ordered {
		row := groupProduct(p, byProduct[p.ID], now)
		report.Products = append(report.Products, row)

		switch row.Status {
		case domain.HealthCritical:
			report.Critical = append(report.Critical, newAlert(row))
		case domain.HealthSuggestion:
			report.Suggestions = append(report.Suggestions, newAlert(row))
		}
	}

	sort.SliceStable(report.Critical, func(i, j int) bool {
		return importanceRank(report.Critical[i].Importance) < importanceRank(report.Critical[j].Importance)
	})

	return report
}

func groupProduct(p *entities.Product, batches []*entities.Batch, now time.Time) domain.GroupedProduct {
	row := domain.GroupedProduct{
		ProductID:        p.ID.String(),
		Name:             p.Name,
		Category:         p.Category,
		Unit:             p.Unit,
		Importance:       p.Importance,
		IsGhost:          p.IsGhost,
		TotalQuantity:    decimal.Zero,
		HealthyQuantity:  decimal.Zero,
		ExpiringQuantity: decimal.Zero,
		Batches:          make([]domain.BatchResponse, 0, len(batches)),
	}

	sorted := make([]*entities.Batch, len(batches))
	copy(sorted, batches)
	entities.SortBatchesForConsumption(sorted)

	for _, b := range sorted {
		row.Batches = append(row.Batches, b.ToResponse())
		if b.Quantity.Sign() <= 0 {
			continue
		}

		row.BatchCount++
		row.TotalQuantity = row.TotalQuantity.Add(b.Quantity)
		if IsExpiring(b, now) {
			row.ExpiringQuantity = row.ExpiringQuantity.Add(b.Quantity)
			row.HasExpiringBatch = true
		} else {
			row.HealthyQuantity = row.HealthyQuantity.Add(b.Quantity)
		}

		if b.ExpiryDate != nil && (row.EarliestExpiry == nil || b.ExpiryDate.Before(*row.EarliestExpiry)) {
			expiry := *b.ExpiryDate
			row.EarliestExpiry = &expiry
		}
	}

	threshold, ok := p.Threshold()
	if !ok {
		row.Status = domain.HealthGhost
		return row
	}
	row.Threshold = &threshold
	row.Status, row.Reason = classify(p.Importance, row, threshold)
	return row
}

// classify decides the health of a non-ghost product. A product is reported
// at most once: critical wins over suggestion, and for suggestions the expiry
// warning wins over the restock hint.
func classify(importance domain.Importance, row domain.GroupedProduct, threshold decimal.Decimal) (domain.HealthStatus, domain.AlertReason) {
	outOfStock := row.TotalQuantity.IsZero()
	low := row.HealthyQuantity.LessThanOrEqual(threshold)
	expiring := row.ExpiringQuantity.IsPositive()

	if importance.Urgent() && (low || outOfStock) {
		switch {
		case outOfStock:
			return domain.HealthCritical, domain.ReasonOutOfStock
		case expiring:
			return domain.HealthCritical, domain.ReasonLowFromExpiry
		default:
			return domain.HealthCritical, domain.ReasonLowStock
		}
	}

	if expiring {
		return domain.HealthSuggestion, domain.ReasonExpiringSoon
	}
	if importance == domain.ImportanceNormal && low && threshold.IsPositive() {
		return domain.HealthSuggestion, domain.ReasonRestockSuggest
	}
	return domain.HealthOK, ""
}

func newAlert(row domain.GroupedProduct) domain.Alert {
	alert := domain.Alert{
		ProductID:  row.ProductID,
		Name:       row.Name,
		Category:   row.Category,
		Importance: row.Importance,
		Reason:     row.Reason,
		Message:    row.Name + ": " + row.Reason.Text(),
		Healthy:    row.HealthyQuantity,
	}
	if row.Threshold != nil {
		alert.Threshold = *row.Threshold
	}
	return alert
}

func importanceRank(i domain.Importance) int {
	switch i {
	case domain.ImportanceCritical:
		return 0
	case domain.ImportanceHigh:
		return 1
	case domain.ImportanceNormal:
		return 2
	}
	return 3
}
