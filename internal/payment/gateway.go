package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Handle identifies an order created at the payment provider.
type Handle struct {
	ID string
}

// Result describes a captured payment.
type Result struct {
	ID         string
	Status     string
	PayerEmail string
	PayerName  string
}

// Gateway creates and captures provider-side orders.
type Gateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, description string) (Handle, error)
	Capture(ctx context.Context, handle Handle) (Result, error)
}
