package product

import (
	"context"
	"sync"
	"time"

	"fundraiser-store/internal/domain"
)

type memoryRepo struct {
	mu       sync.RWMutex
	order    []string
	products map[string]domain.Product
}

// NewMemory returns a catalog held in process memory, preloaded with products.
func NewMemory(products ...domain.Product) Repository {
	r := &memoryRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		_, _ = r.Upsert(context.Background(), p)
	}
	return r
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.products[id])
	}
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepo) Upsert(_ context.Context, product domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.products[product.ID]; ok {
		product.CreatedAt = existing.CreatedAt
	} else {
		product.CreatedAt = time.Now().UTC()
		r.order = append(r.order, product.ID)
	}
	product.Sizes = append([]string(nil), product.Sizes...)
	r.products[product.ID] = product
	return &product, nil
}
