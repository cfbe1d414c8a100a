package models

import "time"

// Product event types published after a successful mutation.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent describes a change to a product.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"productId"`
	Product    Product   `json:"product"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewProductEvent builds an event for p.
func NewProductEvent(eventType string, p Product) ProductEvent {
	return ProductEvent{
		Type:       eventType,
		ProductID:  p.ID,
		Product:    p,
		OccurredAt: time.Now().UTC(),
	}
}
