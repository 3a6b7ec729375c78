package memory

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/store"
	"github.com/samber/lo"
)

// byCreation orders entities by creation time, breaking ties by ID so the
// order is stable across calls.
func byCreation[T any](items []T, created func(T) time.Time, id func(T) uuid.UUID) {
	slices.SortFunc(items, func(a, b T) int {
		if c := created(a).Compare(created(b)); c != 0 {
			return c
		}
		return strings.Compare(id(a).String(), id(b).String())
	})
}

// page applies normalized pagination to an ordered slice.
func page[T any](items []T, opts store.ListOptions) []T {
	opts = opts.Normalize()
	return lo.Slice(items, opts.Offset, opts.Offset+opts.Limit)
}
