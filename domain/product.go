package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type (
	Importance string
	Unit       string
)

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceNormal   Importance = "normal"
	// ImportanceNone opts a product out of threshold alerts without making it a ghost.
	ImportanceNone Importance = "none"
)

const (
	UnitPiece    Unit = "pcs"
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
	UnitMilliL   Unit = "ml"
	UnitLiter    Unit = "l"
	UnitPack     Unit = "pack"
)

func (i Importance) Valid() bool {
	switch i {
	case ImportanceCritical, ImportanceHigh, ImportanceNormal, ImportanceNone:
		return true
	}
	return false
}

// Urgent reports whether the tier takes part in shopping-list automation.
func (i Importance) Urgent() bool {
	return i == ImportanceCritical || i == ImportanceHigh
}

// DefaultThreshold is the minimum healthy stock used when a product has no override.
func (i Importance) DefaultThreshold() decimal.Decimal {
	switch i {
	case ImportanceCritical:
		return decimal.NewFromInt(4)
	case ImportanceHigh:
		return decimal.NewFromInt(2)
	case ImportanceNormal:
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

func (u Unit) Valid() bool {
	switch u {
	case UnitPiece, UnitGram, UnitKilogram, UnitMilliL, UnitLiter, UnitPack:
		return true
	}
	return false
}

var (
	MessageSuccessCreateProduct = "product created successfully"
	MessageSuccessUpdateProduct = "product updated successfully"
	MessageSuccessDeleteProduct = "product deleted successfully"
	MessageSuccessGetProducts   = "products retrieved successfully"

	MessageFailedCreateProduct = "failed to create product"
	MessageFailedUpdateProduct = "failed to update product"
	MessageFailedDeleteProduct = "failed to delete product"
	MessageFailedGetProducts   = "failed to retrieve products"

	ErrProductNotFound   = fmt.Errorf("product %w", ErrNotFound)
	ErrEmptyProductName  = fmt.Errorf("%w: product name is required", ErrValidation)
	ErrInvalidImportance = fmt.Errorf("%w: invalid importance", ErrValidation)
	ErrInvalidUnit       = fmt.Errorf("%w: invalid unit", ErrValidation)
	ErrInvalidThreshold  = fmt.Errorf("%w: minimum quantity must not be negative", ErrValidation)
	ErrProductNameTaken  = errors.New("a product with this name already exists")
)

type (
	CreateProductRequest struct {
		Name        string           `json:"name" validate:"required"`
		Category    string           `json:"category"`
		Unit        Unit             `json:"unit" validate:"required,oneof=pcs g kg ml l pack"`
		Importance  Importance       `json:"importance" validate:"omitempty,oneof=critical high normal none"`
		MinQuantity *decimal.Decimal `json:"min_quantity"`
		IsGhost     bool             `json:"is_ghost"`
	}

	// UpdateProductRequest only changes the fields that are set. ClearMinQuantity
	// drops the override so the threshold falls back to the importance default.
	UpdateProductRequest struct {
		Name             *string          `json:"name" validate:"omitempty,min=1"`
		Category         *string          `json:"category"`
		Unit             *Unit            `json:"unit" validate:"omitempty,oneof=pcs g kg ml l pack"`
		Importance       *Importance      `json:"importance" validate:"omitempty,oneof=critical high normal none"`
		MinQuantity      *decimal.Decimal `json:"min_quantity"`
		ClearMinQuantity bool             `json:"clear_min_quantity"`
		IsGhost          *bool            `json:"is_ghost"`
	}

	ProductResponse struct {
		ID          string           `json:"id"`
		Name        string           `json:"name"`
		Category    string           `json:"category"`
		Unit        Unit             `json:"unit"`
		Importance  Importance       `json:"importance"`
		MinQuantity *decimal.Decimal `json:"min_quantity"`
		IsGhost     bool             `json:"is_ghost"`
		CreatedAt   time.Time        `json:"created_at"`
	}
)
