package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessAddBatch     = "batch added successfully"
	MessageSuccessConsume      = "stock consumed successfully"
	MessageSuccessMoveBatch    = "batch moved successfully"
	MessageSuccessDeleteBatch  = "batch deleted successfully"
	MessageSuccessGetBatches   = "batches retrieved successfully"
	MessageSuccessReceiveEntry = "purchase received into inventory"

	MessageFailedAddBatch     = "failed to add batch"
	MessageFailedConsume      = "failed to consume stock"
	MessageFailedMoveBatch    = "failed to move batch"
	MessageFailedDeleteBatch  = "failed to delete batch"
	MessageFailedGetBatches   = "failed to retrieve batches"
	MessageFailedReceiveEntry = "failed to receive purchase"

	ErrBatchNotFound      = fmt.Errorf("batch %w", ErrNotFound)
	ErrInvalidQuantity    = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrInsufficientStock  = fmt.Errorf("%w: amount exceeds available stock", ErrValidation)
	ErrMoveExceedsBatch   = fmt.Errorf("%w: quantity exceeds batch quantity", ErrValidation)
	ErrMissingDestination = fmt.Errorf("%w: destination location is required", ErrValidation)
	ErrInvalidExpiryDate  = fmt.Errorf("%w: invalid expiry date", ErrValidation)
	ErrInvalidPrice       = fmt.Errorf("%w: price must not be negative", ErrValidation)
	ErrEntryNotBought     = fmt.Errorf("%w: shopping entry must be bought before it is received", ErrValidation)
	ErrHouseholdMismatch  = fmt.Errorf("%w: record belongs to another household", ErrNotFound)
)

type (
	AddBatchRequest struct {
		ProductName string           `json:"product_name" validate:"required"`
		Category    string           `json:"category"`
		Unit        Unit             `json:"unit" validate:"omitempty,oneof=pcs g kg ml l pack"`
		Quantity    decimal.Decimal  `json:"quantity"`
		Location    string           `json:"location" validate:"required"`
		ExpiryDate  string           `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
		Store       string           `json:"store"`
		UnitPrice   *decimal.Decimal `json:"unit_price"`

		// Only used when the product does not exist yet.
		Importance  Importance       `json:"importance" validate:"omitempty,oneof=critical high normal none"`
		IsGhost     bool             `json:"is_ghost"`
		MinQuantity *decimal.Decimal `json:"min_quantity"`
	}

	ConsumeRequest struct {
		Amount decimal.Decimal `json:"amount"`
	}

	// MoveBatchRequest relocates all or part of a batch. The optional expiry
	// overrides apply to the part left behind and to the moved part.
	MoveBatchRequest struct {
		Destination       string          `json:"destination" validate:"required"`
		Quantity          decimal.Decimal `json:"quantity"`
		OriginExpiry      string          `json:"origin_expiry" validate:"omitempty,datetime=2006-01-02"`
		DestinationExpiry string          `json:"destination_expiry" validate:"omitempty,datetime=2006-01-02"`
	}

	ReceiveEntryRequest struct {
		Quantity   decimal.Decimal  `json:"quantity"`
		Unit       Unit             `json:"unit" validate:"omitempty,oneof=pcs g kg ml l pack"`
		Location   string           `json:"location" validate:"required"`
		ExpiryDate string           `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
		Store      string           `json:"store"`
		UnitPrice  *decimal.Decimal `json:"unit_price"`

		Importance  Importance       `json:"importance" validate:"omitempty,oneof=critical high normal none"`
		IsGhost     bool             `json:"is_ghost"`
		MinQuantity *decimal.Decimal `json:"min_quantity"`
	}

	BatchResponse struct {
		ID         string           `json:"id"`
		ProductID  string           `json:"product_id"`
		Quantity   decimal.Decimal  `json:"quantity"`
		Location   string           `json:"location"`
		Store      string           `json:"store,omitempty"`
		UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
		ExpiryDate *time.Time       `json:"expiry_date,omitempty"`
		CreatedAt  time.Time        `json:"created_at"`
	}

	ConsumeResponse struct {
		ProductID string          `json:"product_id"`
		Consumed  decimal.Decimal `json:"consumed"`
		Remaining decimal.Decimal `json:"remaining"`
		Batches   []BatchResponse `json:"batches"`
	}

	MoveBatchResponse struct {
		Origin BatchResponse  `json:"origin"`
		Moved  *BatchResponse `json:"moved,omitempty"`
	}

	DeleteBatchResponse struct {
		Outcome BatchDeleteOutcome `json:"outcome"`
	}
)

// BatchDeleteOutcome tells the caller what deleting a batch actually did.
type BatchDeleteOutcome string

const (
	BatchDeleted          BatchDeleteOutcome = "deleted"
	BatchConvertedToEmpty BatchDeleteOutcome = "sentinel"
	ProductRemoved        BatchDeleteOutcome = "product_removed"
)

// ParseDate parses an optional calendar date. An empty string yields nil.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, ErrInvalidExpiryDate
	}
	return &t, nil
}
