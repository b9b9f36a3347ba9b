package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lfmorais/stockledger/internal/core/domain"
	"github.com/lfmorais/stockledger/internal/port"
)

// DefaultCatalogKey is the blob key the product collection is stored under.
const DefaultCatalogKey = "catalog:products"

// ProductInput carries every product field except the id, which the catalog
// assigns.
type ProductInput struct {
	Name          string
	Size          string
	Color         string
	Brand         string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Quantity      int
}

// Catalog owns the product collection. The collection is loaded once from the
// blob store, held in memory, and written back whole after every mutation.
// The mutex is held across the flush so an older snapshot can never overwrite
// a newer one.
type Catalog struct {
	blobs  port.BlobStore
	key    string
	logger *zap.Logger

	mu       sync.RWMutex
	products []domain.Product
	nextID   int64
}

// OpenCatalog loads the product collection. An absent key means an empty
// catalog, not an error. The id counter resumes past the highest stored id.
func OpenCatalog(ctx context.Context, blobs port.BlobStore, key string, logger *zap.Logger) (*Catalog, error) {
	if key == "" {
		key = DefaultCatalogKey
	}

	data, err := blobs.Get(ctx, key)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Key: key, Err: err}
	}

	var products []domain.Product
	if data != nil {
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("decode catalog blob %q: %w", key, err)
		}
	}

	var nextID int64 = 1
	for _, p := range products {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}

	return &Catalog{
		blobs:    blobs,
		key:      key,
		logger:   logger,
		products: products,
		nextID:   nextID,
	}, nil
}

// List returns the products in insertion order.
func (c *Catalog) List() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id or domain.ErrNotFound.
func (c *Catalog) Get(id int64) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.index(id)
	if i < 0 {
		return domain.Product{}, domain.ErrNotFound
	}
	return c.products[i], nil
}

// Create assigns a fresh id, appends the product, and flushes. The id counter
// is never reused, even when the flush fails.
func (c *Catalog) Create(ctx context.Context, in ProductInput) (domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return domain.Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := domain.Product{
		ID:            c.nextID,
		Name:          in.Name,
		Size:          in.Size,
		Color:         in.Color,
		Brand:         in.Brand,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Quantity:      in.Quantity,
	}
	c.nextID++

	c.products = append(c.products, p)
	if err := c.flush(ctx); err != nil {
		c.products = c.products[:len(c.products)-1]
		return domain.Product{}, err
	}

	c.logger.Info("product created", zap.Int64("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// Update replaces every mutable field of the product with the given id.
func (c *Catalog) Update(ctx context.Context, id int64, in ProductInput) (domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return domain.Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return domain.Product{}, domain.ErrNotFound
	}

	prev := c.products[i]
	c.products[i] = domain.Product{
		ID:            id,
		Name:          in.Name,
		Size:          in.Size,
		Color:         in.Color,
		Brand:         in.Brand,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Quantity:      in.Quantity,
	}
	if err := c.flush(ctx); err != nil {
		c.products[i] = prev
		return domain.Product{}, err
	}

	c.logger.Info("product updated", zap.Int64("id", id))
	return c.products[i], nil
}

// SetQuantity updates only the on-hand quantity. The sale coordinator uses it
// for both the decrement and the compensating restore.
func (c *Catalog) SetQuantity(ctx context.Context, id int64, quantity int) error {
	if quantity < 0 {
		return domain.Validationf("quantity must not be negative, got %d", quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}

	prev := c.products[i].Quantity
	c.products[i].Quantity = quantity
	if err := c.flush(ctx); err != nil {
		c.products[i].Quantity = prev
		return err
	}
	return nil
}

// Remove deletes the product with the given id. A missing id is a no-op, not
// an error, and does not touch storage.
func (c *Catalog) Remove(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return nil
	}

	prev := c.products
	c.products = append(append([]domain.Product{}, c.products[:i]...), c.products[i+1:]...)
	if err := c.flush(ctx); err != nil {
		c.products = prev
		return err
	}

	c.logger.Info("product removed", zap.Int64("id", id))
	return nil
}

// index returns the position of id in the collection, or -1. Callers hold the
// mutex.
func (c *Catalog) index(id int64) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// flush writes the whole collection back. Callers hold the mutex.
func (c *Catalog) flush(ctx context.Context) error {
	data, err := json.Marshal(c.products)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := c.blobs.Set(ctx, c.key, data); err != nil {
		return &domain.PersistenceError{Op: "write", Key: c.key, Err: err}
	}
	return nil
}

func validateProduct(in ProductInput) error {
	if in.Name == "" {
		return domain.Validationf("product name is required")
	}
	if in.PurchasePrice.IsNegative() {
		return domain.Validationf("purchase price must not be negative, got %s", in.PurchasePrice)
	}
	if in.SalePrice.IsNegative() {
		return domain.Validationf("sale price must not be negative, got %s", in.SalePrice)
	}
	if in.Quantity < 0 {
		return domain.Validationf("quantity must not be negative, got %d", in.Quantity)
	}
	return nil
}
