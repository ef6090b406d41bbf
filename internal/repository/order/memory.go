package order

import (
	"context"
	"sync"

	"fundraiser-store/internal/domain"
	"github.com/google/uuid"
)

// Memory keeps order documents in process. Err, when set, fails every Create.
type Memory struct {
	mu     sync.Mutex
	docs   map[string]orderDoc
	ids    []string
	Err    error
	nextID func() string
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]orderDoc), nextID: uuid.NewString}
}

func (m *Memory) Create(_ context.Context, rec domain.OrderRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	id := m.nextID()
	m.docs[id] = toDoc(rec)
	m.ids = append(m.ids, id)
	return id, nil
}

func (m *Memory) Get(_ context.Context, id string) (*domain.OrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec := fromDoc(doc)
	return &rec, nil
}

// IDs lists created order ids in creation order.
func (m *Memory) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ids...)
}
