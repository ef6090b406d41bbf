package notify

import (
	"context"
	"encoding/json"

	"fundraiser-store/internal/mailer"
)

// Notifier requests a confirmation email for a saved order.
type Notifier interface {
	Notify(ctx context.Context, req mailer.ConfirmationRequest) error
}

const EventOrderPlaced = "OrderPlaced"

// Event is the envelope published to the order topic.
type Event struct {
	EventType string          `json:"eventType"`
	OrderID   string          `json:"orderId"`
	Data      json.RawMessage `json:"data"`
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(context.Context, mailer.ConfirmationRequest) error { return nil }
