package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/northlake-labs/product-service/internal/domain"
)

const (
	TypeProductCreated = "product.created"
	TypeProductUpdated = "product.updated"
	TypeProductDeleted = "product.deleted"
)

// ProductEvent is published after every successful write. Deleted events
// carry only the product id.
type ProductEvent struct {
	EventID   string          `json:"event_id"`
	Type      string          `json:"type"`
	ProductID string          `json:"product_id"`
	Product   *domain.Product `json:"product,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewProductEvent(eventType string, product *domain.Product) ProductEvent {
	event := ProductEvent{
		EventID:   uuid.New().String(),
		Type:      eventType,
		ProductID: product.ID.Hex(),
		Timestamp: time.Now().UTC(),
	}
	if eventType != TypeProductDeleted {
		event.Product = product
	}
	return event
}
