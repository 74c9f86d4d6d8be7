package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/borgespro/golist/internal/auth"
	"github.com/borgespro/golist/internal/model"
	"github.com/borgespro/golist/internal/store"
	"github.com/borgespro/golist/internal/websocket"
)

type ProductHandler struct {
	productStore  *store.ProductStore
	categoryStore *store.CategoryStore
	hub           *websocket.Hub
	logger        *slog.Logger
}

func NewProductHandler(ps *store.ProductStore, cs *store.CategoryStore, hub *websocket.Hub, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{productStore: ps, categoryStore: cs, hub: hub, logger: logger}
}

type productRequest struct {
	Name       string   `json:"name"`
	UnitPrice  *float64 `json:"unit_price"`
	CategoryID *int64   `json:"category_id"`
}

// validate trims and checks the request, answering false after writing
// the error response. The category reference, when present, must be one
// of the requester's own categories.
func (h *ProductHandler) validate(w http.ResponseWriter, ownerID int64, req *productRequest) bool {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return false
	}
	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unit_price must be non-negative"})
		return false
	}
	if req.CategoryID != nil {
		cat, err := h.categoryStore.GetByID(ownerID, *req.CategoryID)
		if err != nil {
			h.logger.Error("resolve category", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to resolve category"})
			return false
		}
		if cat == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category_id does not match one of your categories"})
			return false
		}
	}
	return true
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !h.validate(w, ownerID, &req) {
		return
	}

	unitPrice := 0.0
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	product, err := h.productStore.Create(ownerID, req.Name, unitPrice, req.CategoryID)
	if err != nil {
		h.logger.Error("create product", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create product"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("product", "created", product.ID))
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	opts := store.ProductQueryOptions{
		QueryOptions: queryOptions(r),
		Category:     r.URL.Query().Get("category"),
	}

	products, count, err := h.productStore.List(ownerID, opts)
	if err != nil {
		h.logger.Error("list products", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list products"})
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writePage(w, r, count, opts.Page, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	product, err := h.productStore.GetByID(ownerID, id)
	if err != nil {
		h.logger.Error("get product", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get product"})
		return
	}
	if product == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.productStore.GetByID(ownerID, id)
	if err != nil {
		h.logger.Error("get product", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get product"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !h.validate(w, ownerID, &req) {
		return
	}

	unitPrice := 0.0
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	product, err := h.productStore.Update(ownerID, id, req.Name, unitPrice, req.CategoryID)
	if err != nil {
		h.logger.Error("update product", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update product"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("product", "updated", id))
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.productStore.GetByID(ownerID, id)
	if err != nil {
		h.logger.Error("get product", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get product"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}

	if err := h.productStore.Delete(ownerID, id); err != nil {
		h.logger.Error("delete product", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete product"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("product", "deleted", id))
	w.WriteHeader(http.StatusNoContent)
}
