package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
)

// InventorySummary aggregates the products matching a filter.
type InventorySummary struct {
	Products   int
	Units      int
	TotalValue float64 // sum of price * stock
}

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// Create saves a new product after validating it.
	// Returns ErrSKUExists if the SKU is already in use.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// GetBySKU retrieves a product by SKU.
	// Returns ErrProductNotFound if the product does not exist.
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)

	// List returns the products matching filter ordered by creation time
	// with ties broken by ID. Returns an empty slice if nothing matches.
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)

	// Summarize aggregates every product matching filter. Pagination is
	// ignored.
	Summarize(ctx context.Context, filter ProductFilter) (InventorySummary, error)

	// Update replaces an existing product's details except its stock, which
	// only AdjustStock changes. On success product.Stock holds the stored level.
	// Returns ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, product *domain.Product) error

	// AdjustStock atomically adds delta to the product's stock and returns
	// the updated product. Returns domain.ErrInsufficientStock if the
	// result would be negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*domain.Product, error)

	// Delete removes a product by ID.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
