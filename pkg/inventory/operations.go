package inventory

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumptionPlan is the set of ledger writes that deduct an amount from a
// product.
type ConsumptionPlan struct {
	Updated   []*entities.Batch
	Deleted   []uuid.UUID
	Remaining decimal.Decimal
}

// PlanConsumption walks the product's stocked batches soonest expiry first and
// deducts amount from them. A batch that runs out is deleted for ghost products
// and kept as an empty sentinel without expiry otherwise. Input batches are not
// modified.
func PlanConsumption(product *entities.Product, batches []*entities.Batch, amount decimal.Decimal) (ConsumptionPlan, error) {
	if !amount.IsPositive() {
		return ConsumptionPlan{}, domain.ErrInvalidQuantity
	}

	stocked := make([]*entities.Batch, 0, len(batches))
	total := decimal.Zero
	for _, b := range batches {
		if b.Quantity.IsPositive() {
			copied := *b
			stocked = append(stocked, &copied)
			total = total.Add(b.Quantity)
		}
	}
	if amount.GreaterThan(total) {
		return ConsumptionPlan{}, domain.ErrInsufficientStock
	}
	entities.SortBatchesForConsumption(stocked)

	plan := ConsumptionPlan{Remaining: total.Sub(amount)}
	remaining := amount
	for _, b := range stocked {
		if remaining.IsZero() {
			break
		}

		if b.Quantity.GreaterThan(remaining) {
			b.Quantity = b.Quantity.Sub(remaining)
			plan.Updated = append(plan.Updated, b)
			break
		}

		remaining = remaining.Sub(b.Quantity)
		if product.IsGhost {
			plan.Deleted = append(plan.Deleted, b.ID)
			continue
		}
		b.Quantity = decimal.Zero
		b.ExpiryDate = nil
		plan.Updated = append(plan.Updated, b)
	}

	return plan, nil
}

// MovePlan describes a relocation. Moved is nil when the whole batch changed
// location in place.
type MovePlan struct {
	Origin *entities.Batch
	Moved  *entities.Batch
}

type MoveParams struct {
	Destination       string
	Quantity          decimal.Decimal
	OriginExpiry      *time.Time
	DestinationExpiry *time.Time
}

// PlanMove relocates all or part of a batch. Moving the full quantity updates
// the batch in place; a smaller quantity splits it into two lots.
func PlanMove(source *entities.Batch, params MoveParams) (MovePlan, error) {
	destination := strings.TrimSpace(params.Destination)
	if destination == "" {
		return MovePlan{}, domain.ErrMissingDestination
	}
	if !params.Quantity.IsPositive() {
		return MovePlan{}, domain.ErrInvalidQuantity
	}
	if params.Quantity.GreaterThan(source.Quantity) {
		return MovePlan{}, domain.ErrMoveExceedsBatch
	}

	origin := *source
	if params.Quantity.Equal(source.Quantity) {
		origin.Location = destination
		if params.DestinationExpiry != nil {
			origin.ExpiryDate = params.DestinationExpiry
		}
		return MovePlan{Origin: &origin}, nil
	}

	origin.Quantity = source.Quantity.Sub(params.Quantity)
	if params.OriginExpiry != nil {
		origin.ExpiryDate = params.OriginExpiry
	}

	moved := &entities.Batch{
		ProductID:   source.ProductID,
		HouseholdID: source.HouseholdID,
		Quantity:    params.Quantity,
		Location:    destination,
		Store:       source.Store,
		UnitPrice:   source.UnitPrice,
		ExpiryDate:  source.ExpiryDate,
	}
	if params.DestinationExpiry != nil {
		moved.ExpiryDate = params.DestinationExpiry
	}

	return MovePlan{Origin: &origin, Moved: moved}, nil
}

// DeletionPlan is the outcome of removing one batch.
type DeletionPlan struct {
	Outcome       domain.BatchDeleteOutcome
	Sentinel      *entities.Batch
	DeleteProduct bool
}

// PlanBatchDeletion decides what removing target means. Only the last stocked
// batch of a product is special: a ghost product disappears with it, any other
// product keeps it as an empty sentinel.
func PlanBatchDeletion(product *entities.Product, batches []*entities.Batch, target *entities.Batch) DeletionPlan {
	lastStocked := target.Quantity.IsPositive()
	for _, b := range batches {
		if b.ID != target.ID && b.Quantity.IsPositive() {
			lastStocked = false
			break
		}
	}

	if !lastStocked {
		return DeletionPlan{Outcome: domain.BatchDeleted}
	}
	if product.IsGhost {
		return DeletionPlan{Outcome: domain.ProductRemoved, DeleteProduct: true}
	}

	sentinel := *target
	sentinel.Quantity = decimal.Zero
	sentinel.ExpiryDate = nil
	return DeletionPlan{Outcome: domain.BatchConvertedToEmpty, Sentinel: &sentinel}
}
