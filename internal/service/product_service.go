package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/store"
)

// CreateProductInput carries the fields needed to list a product.
type CreateProductInput struct {
	Name        string
	Description string
	SKU         string
	Category    string
	Price       float64
	Stock       int
}

// ProductService provides product catalogue operations.
type ProductService interface {
	// CreateProduct lists a new product owned by ownerID.
	// Returns store.ErrUserNotFound if the owner does not exist and
	// domain.ErrInactiveUser if the owner is deactivated.
	CreateProduct(ctx context.Context, ownerID uuid.UUID, input CreateProductInput) (*domain.Product, error)

	// GetProduct retrieves a product by ID.
	GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error)

	// ListProducts returns products matching filter.
	ListProducts(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error)

	// InventorySummary totals the products matching filter: how many there
	// are, the units in stock and their combined value.
	InventorySummary(ctx context.Context, filter store.ProductFilter) (store.InventorySummary, error)

	// UpdateProduct applies a partial update. Owner only.
	UpdateProduct(
		ctx context.Context,
		actorID, productID uuid.UUID,
		update domain.ProductUpdate,
	) (*domain.Product, error)

	// AdjustStock adds delta to the product's stock. Owner only.
	AdjustStock(ctx context.Context, actorID, productID uuid.UUID, delta int) (*domain.Product, error)

	// DeleteProduct removes a product. Owner only.
	DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error
}

// ProductServiceImpl implements the ProductService interface
type ProductServiceImpl struct {
	productStore store.ProductStore
	userStore    store.UserStore
	logger       *slog.Logger
}

var _ ProductService = (*ProductServiceImpl)(nil)

// NewProductService creates a new ProductService. userStore is used to
// check that a product's owner exists.
func NewProductService(
	productStore store.ProductStore,
	userStore store.UserStore,
	logger *slog.Logger,
) *ProductServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductServiceImpl{
		productStore: productStore,
		userStore:    userStore,
		logger:       logger.With("component", "product_service"),
	}
}

// CreateProduct implements ProductService.
func (s *ProductServiceImpl) CreateProduct(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateProductInput,
) (*domain.Product, error) {
	owner, err := s.userStore.GetByID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to look up product owner",
				"error", err,
				"owner_id", ownerID)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	if !owner.Active {
		s.logger.Debug("rejected product from inactive owner", "owner_id", ownerID)
		return nil, domain.ErrInactiveUser
	}

	var opts []domain.ProductOption
	if input.Description != "" {
		opts = append(opts, domain.WithDescription(input.Description))
	}
	if input.Category != "" {
		opts = append(opts, domain.WithCategory(input.Category))
	}

	product, err := domain.NewProduct(ownerID, input.Name, input.SKU, input.Price, input.Stock, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := s.productStore.Create(ctx, product); err != nil {
		if errors.Is(err, store.ErrSKUExists) {
			s.logger.Debug("attempted to create product with existing sku",
				"sku", product.SKU)
		} else {
			s.logger.Error("failed to save product",
				"error", err,
				"sku", product.SKU)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("product created successfully",
		"product_id", product.ID,
		"owner_id", ownerID,
		"sku", product.SKU)

	return product, nil
}

// GetProduct implements ProductService.
func (s *ProductServiceImpl) GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	product, err := s.productStore.GetByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, store.ErrProductNotFound) {
			s.logger.Error("failed to retrieve product",
				"error", err,
				"product_id", productID)
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return product, nil
}

// ListProducts implements ProductService. A price range with the minimum
// above the maximum is rejected.
func (s *ProductServiceImpl) ListProducts(
	ctx context.Context,
	filter store.ProductFilter,
) ([]*domain.Product, error) {
	if err := validatePriceRange(filter); err != nil {
		return nil, err
	}

	filter.ListOptions = filter.ListOptions.Normalize()
	products, err := s.productStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list products", "error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// InventorySummary implements ProductService.
func (s *ProductServiceImpl) InventorySummary(
	ctx context.Context,
	filter store.ProductFilter,
) (store.InventorySummary, error) {
	if err := validatePriceRange(filter); err != nil {
		return store.InventorySummary{}, err
	}

	summary, err := s.productStore.Summarize(ctx, filter)
	if err != nil {
		s.logger.Error("failed to summarize inventory", "error", err)
		return store.InventorySummary{}, fmt.Errorf("failed to summarize inventory: %w", err)
	}
	return summary, nil
}

func validatePriceRange(filter store.ProductFilter) error {
	ve := &domain.ValidationError{}
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		ve.Add("min_price", "must not be negative")
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		ve.Add("max_price", "must not be negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		ve.Add("min_price", "must not exceed max_price")
	}
	return ve.Err()
}

// UpdateProduct implements ProductService.
func (s *ProductServiceImpl) UpdateProduct(
	ctx context.Context,
	actorID, productID uuid.UUID,
	update domain.ProductUpdate,
) (*domain.Product, error) {
	product, err := s.getOwned(ctx, actorID, productID)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return nil, domain.NewValidationError("body", "at least one field must be provided", nil)
	}

	if err := product.ApplyUpdate(update); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err := s.productStore.Update(ctx, product); err != nil {
		s.logger.Error("failed to update product",
			"error", err,
			"product_id", productID)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info("product updated successfully", "product_id", productID)
	return product, nil
}

// AdjustStock implements ProductService.
func (s *ProductServiceImpl) AdjustStock(
	ctx context.Context,
	actorID, productID uuid.UUID,
	delta int,
) (*domain.Product, error) {
	if _, err := s.getOwned(ctx, actorID, productID); err != nil {
		return nil, err
	}

	product, err := s.productStore.AdjustStock(ctx, productID, delta)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			s.logger.Debug("stock adjustment would go negative",
				"product_id", productID,
				"delta", delta)
		} else if !errors.Is(err, store.ErrProductNotFound) {
			s.logger.Error("failed to adjust stock",
				"error", err,
				"product_id", productID)
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	s.logger.Info("product stock adjusted",
		"product_id", productID,
		"delta", delta,
		"stock", product.Stock)
	return product, nil
}

// DeleteProduct implements ProductService.
func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error {
	if _, err := s.getOwned(ctx, actorID, productID); err != nil {
		return err
	}

	if err := s.productStore.Delete(ctx, productID); err != nil {
		if !errors.Is(err, store.ErrProductNotFound) {
			s.logger.Error("failed to delete product",
				"error", err,
				"product_id", productID)
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info("product deleted successfully", "product_id", productID)
	return nil
}

// getOwned loads a product and checks that actorID owns it.
func (s *ProductServiceImpl) getOwned(ctx context.Context, actorID, productID uuid.UUID) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != actorID {
		s.logger.Debug("rejected change to another user's product",
			"actor_id", actorID,
			"product_id", productID,
			"owner_id", product.OwnerID)
		return nil, ErrNotOwned
	}
	return product, nil
}
