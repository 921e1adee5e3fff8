package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/shoplens/shoplens/internal/identity"
	"github.com/shoplens/shoplens/internal/models"
)

// Persistence is the durable backing of a collection. Implementations
// persist the full ordered list on every change; the collection stays the
// source of truth in memory between writes.
type Persistence interface {
	Load(ctx context.Context) ([]models.ProductInfo, error)
	Save(ctx context.Context, products []models.ProductInfo) error
}

// Entry is one cart or favorite line: a product snapshot plus its identity
// key, created on add and replaced wholesale when the same identity is
// added again.
type Entry struct {
	ID      string             `json:"id"`
	Key     identity.Key       `json:"key"`
	Product models.ProductInfo `json:"product"`
}

// Collection is an ordered product list keyed by identity. Cart and
// Favorites are independent instances. Operations are serialized by one
// mutex per collection; no cross-collection coordination exists or is
// needed.
type Collection struct {
	name        string
	persistence Persistence
	logger      *slog.Logger

	mu      sync.Mutex
	entries []Entry
}

// NewCollection builds a collection and loads its persisted state. A load
// failure starts the collection empty rather than failing startup.
func NewCollection(ctx context.Context, name string, persistence Persistence, logger *slog.Logger) *Collection {
	c := &Collection{
		name:        name,
		persistence: persistence,
		logger:      logger.With("component", "store", "collection", name),
	}

	products, err := persistence.Load(ctx)
	if err != nil {
		c.logger.Error("failed to load persisted collection", "error", err)
		return c
	}
	for _, p := range products {
		c.entries = append(c.entries, newEntry(p))
	}
	return c
}

func newEntry(p models.ProductInfo) Entry {
	return Entry{
		ID:      uuid.NewString(),
		Key:     identity.KeyOf(&p),
		Product: p,
	}
}

// Add inserts a product snapshot. An existing entry with the same identity
// is replaced in place of appending, so the collection never holds two
// entries for one identity. The return value is the persistence outcome;
// on a failed write the in-memory list is left untouched.
func (c *Collection) Add(ctx context.Context, product *models.ProductInfo) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := identity.KeyOf(product)
	next := make([]Entry, 0, len(c.entries)+1)
	for _, e := range c.entries {
		if e.Key != key {
			next = append(next, e)
		}
	}
	next = append(next, newEntry(*product))

	if !c.persist(ctx, next) {
		return false
	}
	c.entries = next
	return true
}

// Remove deletes the entry with the product's identity. The first return
// reports whether an entry was actually removed; removing an absent entry
// is not an error. The second reports the persistence outcome.
func (c *Collection) Remove(ctx context.Context, product *models.ProductInfo) (removed, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := identity.KeyOf(product)
	next := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Key != key {
			next = append(next, e)
		}
	}

	if len(next) == len(c.entries) {
		return false, true
	}
	if !c.persist(ctx, next) {
		return false, false
	}
	c.entries = next
	return true, true
}

// Contains reports whether an entry with the product's identity exists.
func (c *Collection) Contains(product *models.ProductInfo) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := identity.KeyOf(product)
	for _, e := range c.entries {
		if e.Key == key {
			return true
		}
	}
	return false
}

// List returns the product snapshots in insertion order.
func (c *Collection) List() []models.ProductInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.ProductInfo, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Product
	}
	return out
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes every entry. Returns the persistence outcome.
func (c *Collection) Clear(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.persist(ctx, nil) {
		return false
	}
	c.entries = nil
	return true
}

func (c *Collection) persist(ctx context.Context, entries []Entry) bool {
	products := make([]models.ProductInfo, len(entries))
	for i, e := range entries {
		products[i] = e.Product
	}
	if err := c.persistence.Save(ctx, products); err != nil {
		c.logger.Error("failed to persist collection", "error", err, "entries", len(entries))
		return false
	}
	return true
}
