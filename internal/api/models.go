package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
)

// CreateUserRequest defines the payload for user registration.
type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Age      *int   `json:"age"      validate:"omitempty,gte=0,lte=120"`
}

// UpdateUserRequest is a partial update. Absent fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email"    validate:"omitempty,email,max=254"`
	Age      *int    `json:"age"      validate:"omitempty,gte=0,lte=120"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

func (r UpdateUserRequest) toDomain() domain.UserUpdate {
	return domain.UserUpdate{Name: r.Name, Email: r.Email, Age: r.Age, Password: r.Password}
}

// UserResponse is the public view of a user. Passwords are never included.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateProductRequest defines the payload for listing a product.
type CreateProductRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	SKU         string  `json:"sku"         validate:"required,min=3,max=64"`
	Category    string  `json:"category"    validate:"omitempty,max=50"`
	Price       float64 `json:"price"       validate:"required,gt=0,lte=1000000"`
	Stock       int     `json:"stock"       validate:"gte=0"`
}

// UpdateProductRequest is a partial update. SKU cannot be changed, and stock
// is changed through the stock endpoint only.
type UpdateProductRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Category    *string  `json:"category"    validate:"omitempty,max=50"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0,lte=1000000"`
}

func (r UpdateProductRequest) toDomain() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
	}
}

// AdjustStockRequest adds Delta units to the stock. Delta may be negative
// but not zero.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		InStock:     p.IsInStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// InventorySummaryResponse totals the products matching a listing filter.
type InventorySummaryResponse struct {
	Products   int     `json:"products"`
	Units      int     `json:"units"`
	TotalValue float64 `json:"total_value"`
}

// HealthResponse reports liveness along with catalogue counts.
type HealthResponse struct {
	Status           string `json:"status"`
	UsersCount       int    `json:"users_count"`
	ActiveUsersCount int    `json:"active_users_count"`
	ProductsCount    int    `json:"products_count"`
}

// ListResponse wraps a page of results.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned by login and refresh.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	// ExpiresAt is the RFC 3339 time the access token expires
	ExpiresAt string `json:"expires_at"`
}
