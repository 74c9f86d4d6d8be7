package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/borgespro/golist/internal/auth"
	"github.com/borgespro/golist/internal/model"
	"github.com/borgespro/golist/internal/store"
	"github.com/borgespro/golist/internal/websocket"
)

type ItemHandler struct {
	itemStore    *store.ItemStore
	listStore    *store.ListStore
	productStore *store.ProductStore
	hub          *websocket.Hub
	logger       *slog.Logger
}

func NewItemHandler(is *store.ItemStore, ls *store.ListStore, ps *store.ProductStore, hub *websocket.Hub, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{itemStore: is, listStore: ls, productStore: ps, hub: hub, logger: logger}
}

type itemRequest struct {
	ProductID *int64   `json:"product_id"`
	Quantity  *float64 `json:"quantity"`
}

// resolveList looks up the parent list within the requester's scope.
// A list that exists under another owner gets the same not-found answer
// as one that does not exist at all.
func (h *ItemHandler) resolveList(w http.ResponseWriter, r *http.Request, ownerID int64) (int64, bool) {
	listID, err := strconv.ParseInt(r.PathValue("list_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid list_id"})
		return 0, false
	}

	list, err := h.listStore.GetByID(ownerID, listID)
	if err != nil {
		h.logger.Error("resolve list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to resolve list"})
		return 0, false
	}
	if list == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return 0, false
	}
	return listID, true
}

func (h *ItemHandler) validate(w http.ResponseWriter, ownerID int64, req *itemRequest) bool {
	if req.Quantity != nil && *req.Quantity < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quantity must be non-negative"})
		return false
	}
	if req.ProductID != nil {
		product, err := h.productStore.GetByID(ownerID, *req.ProductID)
		if err != nil {
			h.logger.Error("resolve product", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to resolve product"})
			return false
		}
		if product == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product_id does not match one of your products"})
			return false
		}
	}
	return true
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	listID, ok := h.resolveList(w, r, ownerID)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !h.validate(w, ownerID, &req) {
		return
	}

	quantity := 0.0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.itemStore.Create(ownerID, listID, req.ProductID, quantity)
	if err != nil {
		h.logger.Error("create item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create item"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("item", "created", item.ID))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	listID, ok := h.resolveList(w, r, ownerID)
	if !ok {
		return
	}
	opts := queryOptions(r)

	items, count, err := h.itemStore.ListByList(ownerID, listID, opts)
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list items"})
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writePage(w, r, count, opts.Page, items)
}

// getScoped fetches an item by path id, requiring both the owner match
// (through the parent list) and the nested list_id to line up.
func (h *ItemHandler) getScoped(w http.ResponseWriter, r *http.Request, ownerID, listID int64) (*model.Item, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return nil, false
	}

	item, err := h.itemStore.GetByID(ownerID, id)
	if err != nil {
		h.logger.Error("get item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get item"})
		return nil, false
	}
	if item == nil || item.ListID != listID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return nil, false
	}
	return item, true
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	listID, ok := h.resolveList(w, r, ownerID)
	if !ok {
		return
	}

	item, ok := h.getScoped(w, r, ownerID, listID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	listID, ok := h.resolveList(w, r, ownerID)
	if !ok {
		return
	}

	existing, ok := h.getScoped(w, r, ownerID, listID)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !h.validate(w, ownerID, &req) {
		return
	}

	quantity := 0.0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.itemStore.Update(ownerID, existing.ID, req.ProductID, quantity)
	if err != nil {
		h.logger.Error("update item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("item", "updated", item.ID))
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	listID, ok := h.resolveList(w, r, ownerID)
	if !ok {
		return
	}

	existing, ok := h.getScoped(w, r, ownerID, listID)
	if !ok {
		return
	}

	if err := h.itemStore.Delete(ownerID, existing.ID); err != nil {
		h.logger.Error("delete item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete item"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("item", "deleted", existing.ID))
	w.WriteHeader(http.StatusNoContent)
}
