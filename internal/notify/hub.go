// Package notify carries "something changed in this household" signals from
// the write paths to whoever needs to recompute derived state.
package notify

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

type Kind string

const (
	KindProduct  Kind = "product"
	KindBatch    Kind = "batch"
	KindShopping Kind = "shopping"
	KindExternal Kind = "external"
)

type Change struct {
	HouseholdID string
	Kind        Kind
}

type Handler func(ctx context.Context, change Change) error

type Publisher interface {
	Publish(ctx context.Context, change Change)
}

// Hub dispatches changes synchronously to every subscriber in subscription
// order. A failing subscriber is logged and does not stop the others.
type Hub struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewHub() *Hub {
	return &Hub{}
}

func (h *Hub) Subscribe(handler Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = append(h.handlers, handler)
}

func (h *Hub) Publish(ctx context.Context, change Change) {
	h.mu.RLock()
	handlers := make([]Handler, len(h.handlers))
	copy(handlers, h.handlers)
	h.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, change); err != nil {
			log.Warnw("change handler failed",
				"household_id", change.HouseholdID,
				"kind", string(change.Kind),
				"error", err.Error(),
			)
		}
	}
}

// Discard is a Publisher that drops every change.
type Discard struct{}

func (Discard) Publish(context.Context, Change) {}
