package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/platform/logger"
	"github.com/phrazzld/storefront-api/internal/store"
)

// price is cast to float8 so the numeric column scans into float64.
const productColumns = `id, owner_id, name, description, sku, category, price::float8, stock, created_at, updated_at`

// ProductStore implements store.ProductStore using a PostgreSQL database.
type ProductStore struct {
	db     store.DBTX
	txDB   *sql.DB
	logger *slog.Logger
}

var _ store.ProductStore = (*ProductStore)(nil)

// NewProductStore creates a PostgreSQL ProductStore. AdjustStock needs to
// open its own transaction, so db is a *sql.DB rather than a DBTX.
func NewProductStore(db *sql.DB, logger *slog.Logger) *ProductStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductStore{
		db:     db,
		txDB:   db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Create implements store.ProductStore.Create.
func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO products (id, owner_id, name, description, sku, category, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.OwnerID,
		product.Name,
		product.Description,
		product.SKU,
		product.Category,
		product.Price,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create product",
				slog.String("error", err.Error()),
				slog.String("product_id", product.ID.String()))
		}
		return mapped
	}

	log.Info("product created",
		slog.String("product_id", product.ID.String()),
		slog.String("sku", product.SKU))
	return nil
}

// GetByID implements store.ProductStore.GetByID.
func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.getOne(ctx, s.db, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU implements store.ProductStore.GetBySKU.
func (s *ProductStore) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return s.getOne(ctx, s.db, `SELECT `+productColumns+` FROM products WHERE sku = $1`, domain.NormalizeSKU(sku))
}

func (s *ProductStore) getOne(ctx context.Context, db store.DBTX, query string, arg any) (*domain.Product, error) {
	product, err := scanProduct(db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProductNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query product",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return product, nil
}

// List implements store.ProductStore.List.
func (s *ProductStore) List(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	query, args := buildProductListQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return products, nil
}

// Summarize implements store.ProductStore.Summarize. The value is summed
// over the numeric column and rounded to cents before leaving the database.
func (s *ProductStore) Summarize(ctx context.Context, filter store.ProductFilter) (store.InventorySummary, error) {
	where, args := productWhere(filter)
	query := `
		SELECT COUNT(*), COALESCE(SUM(stock), 0), COALESCE(ROUND(SUM(price * stock), 2), 0)::float8
		FROM products` + where

	var (
		summary  store.InventorySummary
		products int64
		units    int64
	)
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&products, &units, &summary.TotalValue); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to summarize products",
			slog.String("error", err.Error()))
		return store.InventorySummary{}, MapError(err)
	}
	summary.Products = int(products)
	summary.Units = int(units)
	return summary, nil
}

// buildProductListQuery renders the paginated listing query for filter with
// positional parameters.
func buildProductListQuery(filter store.ProductFilter) (string, []any) {
	opts := filter.ListOptions.Normalize()
	where, args := productWhere(filter)

	var b strings.Builder
	b.WriteString("SELECT " + productColumns + " FROM products" + where)
	args = append(args, opts.Limit, opts.Offset)
	fmt.Fprintf(&b, " ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return b.String(), args
}

// productWhere renders the WHERE clause for filter, or "" when it matches
// every product. Pagination is not part of it.
func productWhere(filter store.ProductFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if category := domain.NormalizeCategory(filter.Category); category != "" {
		add("category = $%d", category)
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}
	if filter.OwnerID != nil {
		add("owner_id = $%d", *filter.OwnerID)
	}
	if filter.InStockOnly {
		conditions = append(conditions, "stock > 0")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// Update implements store.ProductStore.Update.
func (s *ProductStore) Update(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	// stock is left to AdjustStock so a concurrent adjustment is never overwritten
	query := `
		UPDATE products
		SET name = $2, description = $3, sku = $4, category = $5, price = $6, updated_at = $7
		WHERE id = $1
		RETURNING stock
	`
	var stock int32
	err := s.db.QueryRowContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.SKU,
		product.Category,
		product.Price,
		product.UpdatedAt,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrProductNotFound
		}
		return MapError(err)
	}

	product.Stock = int(stock)
	return nil
}

// AdjustStock implements store.ProductStore.AdjustStock. The row is locked
// with SELECT ... FOR UPDATE so concurrent adjustments serialize.
func (s *ProductStore) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*domain.Product, error) {
	var adjusted *domain.Product

	err := store.RunInTransaction(ctx, s.txDB, func(ctx context.Context, tx *sql.Tx) error {
		product, err := s.getOne(ctx, tx,
			`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return err
		}

		if err := product.AdjustStock(delta); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1`,
			product.ID, product.Stock, product.UpdatedAt)
		if err != nil {
			return MapError(err)
		}

		adjusted = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("product stock adjusted",
		slog.String("product_id", id.String()),
		slog.Int("delta", delta),
		slog.Int("stock", adjusted.Stock))
	return adjusted, nil
}

// Delete implements store.ProductStore.Delete.
func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrProductNotFound)
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Description,
		&p.SKU,
		&p.Category,
		&p.Price,
		&p.Stock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
