package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/api/shared"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/store"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", nil)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// requireUserAndPathID extracts the authenticated user and a path UUID. It
// writes the error response and returns false if either is missing.
func requireUserAndPathID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// decodeAndValidate decodes the JSON body into req and checks its tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) error {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		return err
	}
	return shared.ValidateRequest(req)
}

// queryParser accumulates query parameter errors into one ValidationError.
type queryParser struct {
	r  *http.Request
	ve domain.ValidationError
}

func (p *queryParser) int(name string, lowest int) int {
	raw := strings.TrimSpace(p.r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lowest {
		p.ve.Add(name, "must be an integer of at least "+strconv.Itoa(lowest))
		return 0
	}
	return v
}

func (p *queryParser) float(name string) *float64 {
	raw := strings.TrimSpace(p.r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.ve.Add(name, "must be a number")
		return nil
	}
	return &v
}

func (p *queryParser) bool(name string) bool {
	if v := p.optionalBool(name); v != nil {
		return *v
	}
	return false
}

// optionalBool reports an absent or invalid parameter as nil.
func (p *queryParser) optionalBool(name string) *bool {
	raw := strings.TrimSpace(p.r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.ve.Add(name, "must be true or false")
		return nil
	}
	return &v
}

func (p *queryParser) uuid(name string) *uuid.UUID {
	raw := strings.TrimSpace(p.r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	v, err := uuid.Parse(raw)
	if err != nil {
		p.ve.Add(name, "has invalid format")
		return nil
	}
	return &v
}

func (p *queryParser) listOptions() store.ListOptions {
	return store.ListOptions{
		Limit:  p.int("limit", 1),
		Offset: p.int("offset", 0),
	}
}

// parseUserFilter reads limit, offset and active from the query string.
func parseUserFilter(r *http.Request) (store.UserFilter, error) {
	p := &queryParser{r: r}
	filter := store.UserFilter{
		ListOptions: p.listOptions(),
		Active:      p.optionalBool("active"),
	}
	return filter, p.ve.Err()
}

// parseProductFilter reads the product listing filters from the query string.
func parseProductFilter(r *http.Request) (store.ProductFilter, error) {
	p := &queryParser{r: r}
	filter := store.ProductFilter{
		ListOptions: p.listOptions(),
		Category:    strings.TrimSpace(r.URL.Query().Get("category")),
		MinPrice:    p.float("min_price"),
		MaxPrice:    p.float("max_price"),
		OwnerID:     p.uuid("owner_id"),
		InStockOnly: p.bool("in_stock"),
	}
	return filter, p.ve.Err()
}
