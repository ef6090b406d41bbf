package pending

import (
	"context"

	"fundraiser-store/internal/domain"
)

// Repository is the pending-order log. Entries are recorded before the order
// document is written and resolved afterwards; nothing is retried.
type Repository interface {
	Record(ctx context.Context, entry domain.PendingOrder) error
	MarkSaved(ctx context.Context, externalOrderID, orderID string) error
	MarkFailed(ctx context.Context, externalOrderID, reason string) error
	ListUnresolved(ctx context.Context) ([]domain.PendingOrder, error)
}
