package api

import (
	"net/http"

	"github.com/phrazzld/storefront-api/internal/api/shared"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/service"
)

// ProductHandler handles product-related API requests.
type ProductHandler struct {
	products service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create handles POST /api/products. The authenticated user becomes the owner.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := shared.GetUserID(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateProductRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.products.CreateProduct(r.Context(), ownerID, service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newProductResponse(product))
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	filter.ListOptions = filter.Normalize()

	products, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list products")
		return
	}

	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, newProductResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse[ProductResponse]{
		Items:  items,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Summary handles GET /api/products/summary. It accepts the listing filters
// and ignores pagination.
func (h *ProductHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	summary, err := h.products.InventorySummary(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to summarize products")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, InventorySummaryResponse{
		Products:   summary.Products,
		Units:      summary.Units,
		TotalValue: summary.TotalValue,
	})
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProductResponse(product))
}

// Update handles PATCH /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, productID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), actorID, productID, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProductResponse(product))
}

// AdjustStock handles POST /api/products/{id}/stock.
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	actorID, productID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.products.AdjustStock(r.Context(), actorID, productID, req.Delta)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to adjust stock")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProductResponse(product))
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, productID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(r.Context(), actorID, productID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
