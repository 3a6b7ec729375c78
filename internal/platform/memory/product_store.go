package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/platform/logger"
	"github.com/phrazzld/storefront-api/internal/store"
	"github.com/samber/lo"
)

// ProductStore implements store.ProductStore with an in-process map.
type ProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
	bySKU    map[string]uuid.UUID
	logger   *slog.Logger
}

var _ store.ProductStore = (*ProductStore)(nil)

// NewProductStore creates an empty ProductStore.
func NewProductStore(logger *slog.Logger) *ProductStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductStore{
		products: make(map[uuid.UUID]*domain.Product),
		bySKU:    make(map[string]uuid.UUID),
		logger:   logger.With(slog.String("component", "memory_product_store")),
	}
}

// Create implements store.ProductStore.Create.
func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return fmt.Errorf("%w: product id %s", store.ErrDuplicate, product.ID)
	}
	if _, taken := s.bySKU[product.SKU]; taken {
		return store.ErrSKUExists
	}

	s.products[product.ID] = product.Clone()
	s.bySKU[product.SKU] = product.ID

	logger.FromContextOrDefault(ctx, s.logger).Debug("product created",
		slog.String("product_id", product.ID.String()),
		slog.String("sku", product.SKU))
	return nil
}

// GetByID implements store.ProductStore.GetByID.
func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return product.Clone(), nil
}

// GetBySKU implements store.ProductStore.GetBySKU.
func (s *ProductStore) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySKU[domain.NormalizeSKU(sku)]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return s.products[id].Clone(), nil
}

// List implements store.ProductStore.List.
func (s *ProductStore) List(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	s.mu.RLock()
	products := lo.Map(s.matching(filter), func(p *domain.Product, _ int) *domain.Product {
		return p.Clone()
	})
	s.mu.RUnlock()

	byCreation(products,
		func(p *domain.Product) time.Time { return p.CreatedAt },
		func(p *domain.Product) uuid.UUID { return p.ID })

	return page(products, filter.ListOptions), nil
}

// Summarize implements store.ProductStore.Summarize.
func (s *ProductStore) Summarize(ctx context.Context, filter store.ProductFilter) (store.InventorySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.matching(filter)
	return store.InventorySummary{
		Products:   len(matches),
		Units:      lo.SumBy(matches, func(p *domain.Product) int { return p.Stock }),
		TotalValue: domain.RoundCents(lo.SumBy(matches, (*domain.Product).InventoryValue)),
	}, nil
}

// matching returns the stored products that satisfy filter, ignoring
// pagination. Callers must hold s.mu.
func (s *ProductStore) matching(filter store.ProductFilter) []*domain.Product {
	category := domain.NormalizeCategory(filter.Category)

	return lo.Filter(lo.Values(s.products), func(p *domain.Product, _ int) bool {
		switch {
		case category != "" && p.Category != category:
			return false
		case filter.MinPrice != nil && p.Price < *filter.MinPrice:
			return false
		case filter.MaxPrice != nil && p.Price > *filter.MaxPrice:
			return false
		case filter.OwnerID != nil && p.OwnerID != *filter.OwnerID:
			return false
		case filter.InStockOnly && !p.IsInStock():
			return false
		}
		return true
	})
}

// Update implements store.ProductStore.Update.
func (s *ProductStore) Update(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[product.ID]
	if !ok {
		return store.ErrProductNotFound
	}
	if owner, taken := s.bySKU[product.SKU]; taken && owner != product.ID {
		return store.ErrSKUExists
	}

	product.CreatedAt = existing.CreatedAt
	product.Stock = existing.Stock

	delete(s.bySKU, existing.SKU)
	s.bySKU[product.SKU] = product.ID
	s.products[product.ID] = product.Clone()

	logger.FromContextOrDefault(ctx, s.logger).Debug("product updated",
		slog.String("product_id", product.ID.String()))
	return nil
}

// AdjustStock implements store.ProductStore.AdjustStock. The write lock makes
// the read-modify-write atomic with respect to other callers.
func (s *ProductStore) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}

	if err := product.AdjustStock(delta); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("product stock adjusted",
		slog.String("product_id", id.String()),
		slog.Int("delta", delta),
		slog.Int("stock", product.Stock))
	return product.Clone(), nil
}

// Delete implements store.ProductStore.Delete.
func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return store.ErrProductNotFound
	}

	delete(s.bySKU, product.SKU)
	delete(s.products, id)
	return nil
}

// deleteOwnedBy removes every product listed by ownerID and reports how
// many were removed.
func (s *ProductStore) deleteOwnedBy(ownerID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, p := range s.products {
		if p.OwnerID != ownerID {
			continue
		}
		delete(s.bySKU, p.SKU)
		delete(s.products, id)
		removed++
	}
	return removed
}
