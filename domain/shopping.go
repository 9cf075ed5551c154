package domain

import (
	"fmt"
	"time"
)

type (
	ShoppingStatus string
	Priority       string
)

const (
	StatusActive    ShoppingStatus = "active"
	StatusChecked   ShoppingStatus = "checked"
	StatusPostponed ShoppingStatus = "postponed"
	StatusBought    ShoppingStatus = "bought"
	StatusArchived  ShoppingStatus = "archived"
)

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
)

var shoppingTransitions = map[ShoppingStatus][]ShoppingStatus{
	StatusActive:    {StatusChecked, StatusPostponed, StatusArchived},
	StatusChecked:   {StatusActive, StatusBought, StatusArchived},
	StatusPostponed: {StatusActive, StatusArchived},
	StatusBought:    {StatusArchived},
}

func (s ShoppingStatus) Valid() bool {
	_, ok := shoppingTransitions[s]
	return ok || s == StatusArchived
}

// CanTransition reports whether an entry may move from s to next.
func (s ShoppingStatus) CanTransition(next ShoppingStatus) bool {
	for _, allowed := range shoppingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Open reports whether an entry still stands for a pending purchase.
func (s ShoppingStatus) Open() bool {
	return s == StatusActive || s == StatusChecked || s == StatusPostponed
}

// OpenStatuses lists the statuses for which Open is true.
var OpenStatuses = []ShoppingStatus{StatusActive, StatusChecked, StatusPostponed}

func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityNormal:
		return true
	}
	return false
}

// PriorityFor derives the priority of an automatically created entry from the
// product's importance tier.
func PriorityFor(importance Importance) Priority {
	switch importance {
	case ImportanceCritical:
		return PriorityUrgent
	case ImportanceHigh:
		return PriorityHigh
	}
	return PriorityNormal
}

var (
	MessageSuccessGetShoppingList   = "shopping list retrieved successfully"
	MessageSuccessAddShoppingEntry  = "shopping entry added successfully"
	MessageSuccessUpdateEntryStatus = "shopping entry status updated successfully"
	MessageSuccessDeleteEntry       = "shopping entry deleted successfully"

	MessageFailedGetShoppingList   = "failed to retrieve shopping list"
	MessageFailedAddShoppingEntry  = "failed to add shopping entry"
	MessageFailedUpdateEntryStatus = "failed to update shopping entry status"
	MessageFailedDeleteEntry       = "failed to delete shopping entry"

	ErrShoppingEntryNotFound   = fmt.Errorf("shopping entry %w", ErrNotFound)
	ErrEmptyItemName           = fmt.Errorf("%w: item name is required", ErrValidation)
	ErrInvalidStatus           = fmt.Errorf("%w: invalid shopping status", ErrValidation)
	ErrInvalidStatusTransition = fmt.Errorf("%w: status transition not allowed", ErrValidation)
	ErrInvalidPriority         = fmt.Errorf("%w: invalid priority", ErrValidation)
)

type (
	AddShoppingEntryRequest struct {
		ItemName string   `json:"item_name" validate:"required"`
		Category string   `json:"category"`
		Priority Priority `json:"priority" validate:"omitempty,oneof=urgent high normal"`
		IsGhost  bool     `json:"is_ghost"`
	}

	UpdateEntryStatusRequest struct {
		Status ShoppingStatus `json:"status" validate:"required,oneof=active checked postponed bought archived"`
	}

	ShoppingEntryResponse struct {
		ID        string         `json:"id"`
		ProductID string         `json:"product_id,omitempty"`
		ItemName  string         `json:"item_name"`
		Category  string         `json:"category"`
		Priority  Priority       `json:"priority"`
		Status    ShoppingStatus `json:"status"`
		IsManual  bool           `json:"is_manual"`
		IsGhost   bool           `json:"is_ghost"`
		CreatedAt time.Time      `json:"created_at"`
	}
)
