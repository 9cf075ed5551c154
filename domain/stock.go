package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetStock     = "stock overview retrieved successfully"
	MessageSuccessRefreshStock = "stock recomputed and shopping list reconciled"

	MessageFailedGetStock     = "failed to retrieve stock overview"
	MessageFailedRefreshStock = "failed to refresh stock"
)

// ExpiryWarningDays is the number of days before expiry at which a batch stops
// counting as healthy stock.
const ExpiryWarningDays = 3

type HealthStatus string

const (
	HealthCritical   HealthStatus = "critical"
	HealthSuggestion HealthStatus = "suggestion"
	HealthOK         HealthStatus = "ok"
	HealthGhost      HealthStatus = "ghost"
)

type AlertReason string

const (
	ReasonOutOfStock     AlertReason = "out_of_stock"
	ReasonLowFromExpiry  AlertReason = "low_due_to_expiry"
	ReasonLowStock       AlertReason = "low_stock"
	ReasonExpiringSoon   AlertReason = "expiring_soon"
	ReasonRestockSuggest AlertReason = "restock_suggested"
)

var reasonText = map[AlertReason]string{
	ReasonOutOfStock:     "out of stock",
	ReasonLowFromExpiry:  "low because stock is about to expire",
	ReasonLowStock:       "low stock",
	ReasonExpiringSoon:   "stock expiring soon",
	ReasonRestockSuggest: "running low, consider restocking",
}

func (r AlertReason) Text() string {
	return reasonText[r]
}

type (
	// GroupedProduct is the per-product row of the stock overview. It is only
	// produced by the aggregation engine.
	GroupedProduct struct {
		ProductID        string           `json:"product_id"`
		Name             string           `json:"name"`
		Category         string           `json:"category"`
		Unit             Unit             `json:"unit"`
		Importance       Importance       `json:"importance"`
		IsGhost          bool             `json:"is_ghost"`
		Threshold        *decimal.Decimal `json:"threshold"`
		TotalQuantity    decimal.Decimal  `json:"total_quantity"`
		HealthyQuantity  decimal.Decimal  `json:"healthy_quantity"`
		ExpiringQuantity decimal.Decimal  `json:"expiring_quantity"`
		BatchCount       int              `json:"batch_count"`
		EarliestExpiry   *time.Time       `json:"earliest_expiry"`
		HasExpiringBatch bool             `json:"has_expiring_batch"`
		Status           HealthStatus     `json:"status"`
		Reason           AlertReason      `json:"reason,omitempty"`
		Batches          []BatchResponse  `json:"batches"`
	}

	Alert struct {
		ProductID  string          `json:"product_id"`
		Name       string          `json:"name"`
		Category   string          `json:"category"`
		Importance Importance      `json:"importance"`
		Reason     AlertReason     `json:"reason"`
		Message    string          `json:"message"`
		Healthy    decimal.Decimal `json:"healthy_quantity"`
		Threshold  decimal.Decimal `json:"threshold"`
	}

	StockReport struct {
		HouseholdID string           `json:"household_id"`
		GeneratedAt time.Time        `json:"generated_at"`
		Products    []GroupedProduct `json:"products"`
		Critical    []Alert          `json:"critical"`
		Suggestions []Alert          `json:"suggestions"`
	}

	ReconcileResult struct {
		Inserted []string `json:"inserted"`
		Removed  []string `json:"removed"`
	}

	RefreshResponse struct {
		Report    StockReport     `json:"report"`
		Reconcile ReconcileResult `json:"reconcile"`
	}
)
