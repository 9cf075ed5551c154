package entities

import (
	"Pantry-Backend/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingEntry struct {
	ID          uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	HouseholdID uuid.UUID             `gorm:"type:uuid;not null;index" json:"household_id"`
	ProductID   *uuid.UUID            `gorm:"type:uuid" json:"product_id,omitempty"`
	ItemName    string                `gorm:"not null" json:"item_name"`
	ItemKey     string                `gorm:"not null" json:"-"`
	Category    string                `json:"category"`
	Priority    domain.Priority       `json:"priority"` // urgent, high, normal
	Status      domain.ShoppingStatus `gorm:"not null;index" json:"status"`
	IsManual    bool                  `json:"is_manual"`
	IsGhost     bool                  `json:"is_ghost"`

	Timestamp
}

func (e *ShoppingEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *ShoppingEntry) BeforeSave(tx *gorm.DB) error {
	e.ItemKey = NormalizeName(e.ItemName)
	return nil
}

func (e *ShoppingEntry) ToResponse() domain.ShoppingEntryResponse {
	res := domain.ShoppingEntryResponse{
		ID:        e.ID.String(),
		ItemName:  e.ItemName,
		Category:  e.Category,
		Priority:  e.Priority,
		Status:    e.Status,
		IsManual:  e.IsManual,
		IsGhost:   e.IsGhost,
		CreatedAt: e.CreatedAt,
	}
	if e.ProductID != nil {
		res.ProductID = e.ProductID.String()
	}
	return res
}
