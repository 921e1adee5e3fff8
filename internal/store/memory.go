package store

import (
	"context"
	"sync"

	"github.com/shoplens/shoplens/internal/models"
)

// MemoryPersistence is a non-durable backing used in tests and in
// deployments that opt out of persistence.
type MemoryPersistence struct {
	mu       sync.Mutex
	products []models.ProductInfo
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (m *MemoryPersistence) Load(_ context.Context) ([]models.ProductInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ProductInfo, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MemoryPersistence) Save(_ context.Context, products []models.ProductInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = make([]models.ProductInfo, len(products))
	copy(m.products, products)
	return nil
}
