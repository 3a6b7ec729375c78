package domain

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Limits applied by Product.Validate.
const (
	MaxProductNameLength = 100
	MaxDescriptionLength = 500
	MaxPrice             = 1_000_000
)

var (
	skuPattern      = regexp.MustCompile(`^[A-Z0-9]{3,12}(-[A-Z0-9]{1,12})*$`)
	categoryPattern = regexp.MustCompile(`^[a-z0-9-]{1,50}$`)
)

// Product is an item listed for sale by a user.
type Product struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductUpdate carries a partial update. Nil fields are left unchanged.
// Stock is not part of it; stock only moves through AdjustStock.
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
}

// IsEmpty reports whether the update changes nothing.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil && u.Price == nil
}

// ProductOption sets an optional field on a new product.
type ProductOption func(*Product)

// WithDescription sets the product description.
func WithDescription(description string) ProductOption {
	return func(p *Product) {
		p.Description = strings.TrimSpace(description)
	}
}

// WithCategory sets the product category.
func WithCategory(category string) ProductOption {
	return func(p *Product) {
		p.Category = NormalizeCategory(category)
	}
}

// NewProduct creates and validates a new product owned by ownerID.
func NewProduct(
	ownerID uuid.UUID,
	name, sku string,
	price float64,
	stock int,
	opts ...ProductOption,
) (*Product, error) {
	now := time.Now().UTC()
	product := &Product{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(name),
		SKU:       NormalizeSKU(sku),
		Price:     price,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, opt := range opts {
		opt(product)
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// NormalizeSKU trims and upper-cases a SKU.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// NormalizeCategory trims and lower-cases a category slug.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// Validate checks every field and returns a *ValidationError listing all
// failures, or nil.
func (p *Product) Validate() error {
	ve := &ValidationError{}

	if p.ID == uuid.Nil {
		ve.Add("id", "is required")
	}
	if p.OwnerID == uuid.Nil {
		ve.Add("owner_id", "is required")
	}

	switch n := utf8.RuneCountInString(strings.TrimSpace(p.Name)); {
	case n == 0:
		ve.Add("name", "is required")
	case n > MaxProductNameLength:
		ve.Add("name", "must be at most 100 characters")
	}

	if utf8.RuneCountInString(p.Description) > MaxDescriptionLength {
		ve.Add("description", "must be at most 500 characters")
	}

	switch {
	case p.SKU == "":
		ve.Add("sku", "is required")
	case !skuPattern.MatchString(p.SKU):
		ve.Add("sku", "has invalid format")
	}

	if p.Category != "" && !categoryPattern.MatchString(p.Category) {
		ve.Add("category", "has invalid format")
	}

	switch {
	case math.IsNaN(p.Price) || p.Price <= 0:
		ve.Add("price", "must be greater than 0")
	case p.Price > MaxPrice:
		ve.Add("price", "must be at most 1000000")
	case !hasAtMostTwoDecimals(p.Price):
		ve.Add("price", "must have at most two decimal places")
	}

	if p.Stock < 0 {
		ve.Add("stock", "cannot be negative")
	}

	return ve.Err()
}

// ApplyUpdate copies every non-nil field of update onto the product, bumps
// UpdatedAt and re-validates.
func (p *Product) ApplyUpdate(update ProductUpdate) error {
	if update.Name != nil {
		p.Name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		p.Description = strings.TrimSpace(*update.Description)
	}
	if update.Category != nil {
		p.Category = NormalizeCategory(*update.Category)
	}
	if update.Price != nil {
		p.Price = *update.Price
	}

	p.UpdatedAt = time.Now().UTC()
	return p.Validate()
}

// AdjustStock adds delta (which may be negative) to the stock level.
// Returns ErrInsufficientStock and leaves the product untouched if the
// result would be negative.
func (p *Product) AdjustStock(delta int) error {
	if p.Stock+delta < 0 {
		return ErrInsufficientStock
	}
	p.Stock += delta
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IsInStock reports whether at least one unit is available.
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// InventoryValue is the value of the stock on hand, price times units.
func (p *Product) InventoryValue() float64 {
	return p.Price * float64(p.Stock)
}

// RoundCents rounds v to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clone returns a copy of the product.
func (p *Product) Clone() *Product {
	c := *p
	return &c
}

func hasAtMostTwoDecimals(v float64) bool {
	cents := v * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}
