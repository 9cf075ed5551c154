package entities

import (
	"Pantry-Backend/domain"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	HouseholdID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_product_household_name,priority:1" json:"household_id"`
	Name        string              `gorm:"not null" json:"name"`
	NameKey     string              `gorm:"not null;uniqueIndex:idx_product_household_name,priority:2" json:"-"`
	Category    string              `json:"category"`
	Unit        domain.Unit         `json:"unit"`
	Importance  domain.Importance   `json:"importance"` // critical, high, normal, none
	MinQuantity decimal.NullDecimal `gorm:"type:decimal(20,4)" json:"min_quantity"`
	IsGhost     bool                `json:"is_ghost"`

	Batches []*Batch `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"batches,omitempty"`
	Timestamp
}

// NormalizeName is the case-insensitive identity of a product or shopping item name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewProduct validates registry attributes and applies defaults: unit pcs and
// normal importance.
func NewProduct(householdID uuid.UUID, name, category string, unit domain.Unit, importance domain.Importance, minQuantity *decimal.Decimal, isGhost bool) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyProductName
	}
	if unit == "" {
		unit = domain.UnitPiece
	}
	if !unit.Valid() {
		return nil, domain.ErrInvalidUnit
	}
	if importance == "" {
		importance = domain.ImportanceNormal
	}
	if !importance.Valid() {
		return nil, domain.ErrInvalidImportance
	}

	product := &Product{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Name:        name,
		NameKey:     NormalizeName(name),
		Category:    strings.TrimSpace(category),
		Unit:        unit,
		Importance:  importance,
		IsGhost:     isGhost,
	}
	if minQuantity != nil {
		if minQuantity.IsNegative() {
			return nil, domain.ErrInvalidThreshold
		}
		product.MinQuantity = decimal.NewNullDecimal(*minQuantity)
	}
	return product, nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.NameKey = NormalizeName(p.Name)
	return nil
}

// Threshold resolves the minimum healthy stock of the product. Ghost products
// have none.
func (p *Product) Threshold() (decimal.Decimal, bool) {
	if p.IsGhost {
		return decimal.Zero, false
	}
	if p.MinQuantity.Valid {
		return p.MinQuantity.Decimal, true
	}
	return p.Importance.DefaultThreshold(), true
}

func (p *Product) ToResponse() domain.ProductResponse {
	res := domain.ProductResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Category:   p.Category,
		Unit:       p.Unit,
		Importance: p.Importance,
		IsGhost:    p.IsGhost,
		CreatedAt:  p.CreatedAt,
	}
	if p.MinQuantity.Valid {
		threshold := p.MinQuantity.Decimal
		res.MinQuantity = &threshold
	}
	return res
}
