package entities

import (
	"Pantry-Backend/domain"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Batch is a physical lot of one product. A zero quantity row is a sentinel
// that keeps a tracked product visible after it has been used up.
type Batch struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ProductID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"product_id"`
	HouseholdID uuid.UUID           `gorm:"type:uuid;not null;index" json:"household_id"`
	Quantity    decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Location    string              `json:"location"`
	Store       *string             `json:"store,omitempty"`
	UnitPrice   decimal.NullDecimal `gorm:"type:decimal(20,4)" json:"unit_price"`
	ExpiryDate  *time.Time          `json:"expiry_date,omitempty"`

	Timestamp
}

func (b *Batch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsSentinel reports whether the batch is the zero quantity placeholder.
func (b *Batch) IsSentinel() bool {
	return b.Quantity.Sign() == 0
}

// SortBatchesForConsumption orders batches soonest expiry first. Batches
// without an expiry date go last; ties keep creation order.
func SortBatchesForConsumption(batches []*Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i].ExpiryDate, batches[j].ExpiryDate
		switch {
		case a == nil && b == nil:
			return batches[i].CreatedAt.Before(batches[j].CreatedAt)
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return batches[i].CreatedAt.Before(batches[j].CreatedAt)
		}
		return a.Before(*b)
	})
}

func (b *Batch) ToResponse() domain.BatchResponse {
	res := domain.BatchResponse{
		ID:         b.ID.String(),
		ProductID:  b.ProductID.String(),
		Quantity:   b.Quantity,
		Location:   b.Location,
		ExpiryDate: b.ExpiryDate,
		CreatedAt:  b.CreatedAt,
	}
	if b.Store != nil {
		res.Store = *b.Store
	}
	if b.UnitPrice.Valid {
		price := b.UnitPrice.Decimal
		res.UnitPrice = &price
	}
	return res
}
