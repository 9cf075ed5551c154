package stock

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"

	"github.com/google/uuid"
)

// ReconciliationPlan lists the shopping-list writes needed to match the
// current critical alerts.
type ReconciliationPlan struct {
	Insert []*entities.ShoppingEntry
	Remove []*entities.ShoppingEntry
}

func (p ReconciliationPlan) Empty() bool {
	return len(p.Insert) == 0 && len(p.Remove) == 0
}

// PlanReconciliation compares a stock report with the household's open
// shopping entries (active, checked or postponed).
//
// Every critical product of an urgent tier not covered by an open entry gets
// an automatic one. An entry covers a product when it references the product
// or carries its name. Automatic active entries are removed once the healthy
// stock of their product is above its threshold, or when the product they
// reference no longer exists. Manual entries are never removed, and entries
// that match no product are left alone.
func PlanReconciliation(householdID uuid.UUID, report domain.StockReport, open []*entities.ShoppingEntry) ReconciliationPlan {
	var plan ReconciliationPlan

	byID := make(map[string]domain.GroupedProduct, len(report.Products))
	byName := make(map[string]domain.GroupedProduct, len(report.Products))
	for _, row := range report.Products {
		byID[row.ProductID] = row
		byName[entities.NormalizeName(row.Name)] = row
	}

	coveredNames := make(map[string]bool, len(open))
	coveredIDs := make(map[string]bool, len(open))
	for _, e := range open {
		if !e.Status.Open() {
			continue
		}
		coveredNames[entities.NormalizeName(e.ItemName)] = true
		if e.ProductID != nil {
			coveredIDs[e.ProductID.String()] = true
		}
	}

	critical := make(map[string]bool, len(report.Critical))
	for _, alert := range report.Critical {
		if !alert.Importance.Urgent() {
			continue
		}
		row, ok := byID[alert.ProductID]
		if !ok || row.IsGhost {
			continue
		}
		critical[alert.ProductID] = true

		key := entities.NormalizeName(alert.Name)
		if coveredNames[key] || coveredIDs[alert.ProductID] {
			continue
		}
		coveredNames[key] = true
		coveredIDs[alert.ProductID] = true

		entry := &entities.ShoppingEntry{
			HouseholdID: householdID,
			ItemName:    alert.Name,
			ItemKey:     key,
			Category:    alert.Category,
			Priority:    domain.PriorityFor(alert.Importance),
			Status:      domain.StatusActive,
			IsManual:    false,
		}
		if productID, err := uuid.Parse(alert.ProductID); err == nil {
			entry.ProductID = &productID
		}
		plan.Insert = append(plan.Insert, entry)
	}

	for _, e := range open {
		if e.IsManual || e.Status != domain.StatusActive {
			continue
		}

		var row domain.GroupedProduct
		var ok bool
		if e.ProductID != nil {
			row, ok = byID[e.ProductID.String()]
			if !ok {
				plan.Remove = append(plan.Remove, e)
				continue
			}
		} else {
			row, ok = byName[entities.NormalizeName(e.ItemName)]
			if !ok {
				continue
			}
		}

		if recovered(row) && !critical[row.ProductID] {
			plan.Remove = append(plan.Remove, e)
		}
	}

	return plan
}

// recovered reports whether the healthy stock is above the threshold. Ghost
// products have no threshold and never recover.
func recovered(row domain.GroupedProduct) bool {
	return row.Threshold != nil && row.HealthyQuantity.GreaterThan(*row.Threshold)
}
