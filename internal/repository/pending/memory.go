package pending

import (
	"context"
	"sync"
	"time"

	"fundraiser-store/internal/domain"
)

type memoryRepo struct {
	mu      sync.Mutex
	order   []string
	entries map[string]domain.PendingOrder
}

// NewMemory is used when no database is configured. Entries do not survive a restart.
func NewMemory() Repository {
	return &memoryRepo{entries: make(map[string]domain.PendingOrder)}
}

func (r *memoryRepo) Record(_ context.Context, entry domain.PendingOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.entries[entry.ExternalOrderID]; ok {
		entry.CreatedAt = existing.CreatedAt
	} else {
		entry.CreatedAt = now
		r.order = append(r.order, entry.ExternalOrderID)
	}
	if entry.State == "" {
		entry.State = domain.PendingStateCaptured
	}
	entry.Payload = append([]byte(nil), entry.Payload...)
	entry.UpdatedAt = now
	r.entries[entry.ExternalOrderID] = entry
	return nil
}

func (r *memoryRepo) MarkSaved(_ context.Context, externalOrderID, orderID string) error {
	return r.mark(externalOrderID, domain.PendingStateSaved, orderID, "")
}

func (r *memoryRepo) MarkFailed(_ context.Context, externalOrderID, reason string) error {
	return r.mark(externalOrderID, domain.PendingStateFailed, "", reason)
}

func (r *memoryRepo) mark(externalOrderID string, state domain.PendingState, orderID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[externalOrderID]
	if !ok {
		return domain.ErrNotFound
	}
	entry.State = state
	entry.OrderID = orderID
	entry.LastError = reason
	entry.UpdatedAt = time.Now().UTC()
	r.entries[externalOrderID] = entry
	return nil
}

func (r *memoryRepo) ListUnresolved(_ context.Context) ([]domain.PendingOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PendingOrder
	for _, id := range r.order {
		if e := r.entries[id]; e.State != domain.PendingStateSaved {
			out = append(out, e)
		}
	}
	return out, nil
}
