package store

import "github.com/google/uuid"

// Pagination bounds applied by ListOptions.Normalize.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListOptions controls pagination for list queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// Normalize returns a copy with the limit defaulted and clamped to
// [1, MaxListLimit] and a non-negative offset.
func (o ListOptions) Normalize() ListOptions {
	switch {
	case o.Limit <= 0:
		o.Limit = DefaultListLimit
	case o.Limit > MaxListLimit:
		o.Limit = MaxListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// UserFilter narrows a user listing. A nil Active matches every account.
type UserFilter struct {
	ListOptions
	Active *bool
}

// ProductFilter narrows a product listing. Zero values mean "no constraint".
type ProductFilter struct {
	ListOptions
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	OwnerID     *uuid.UUID
	InStockOnly bool
}
