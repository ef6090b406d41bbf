package order

import (
	"context"

	"fundraiser-store/internal/domain"
)

// Collection is the document collection holding one document per order.
const Collection = "dcdc-orders"

// Repository writes order documents. Create returns the store-generated id.
type Repository interface {
	Create(ctx context.Context, rec domain.OrderRecord) (string, error)
	Get(ctx context.Context, id string) (*domain.OrderRecord, error)
}
