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

type CategoryHandler struct {
	categoryStore *store.CategoryStore
	hub           *websocket.Hub
	logger        *slog.Logger
}

func NewCategoryHandler(cs *store.CategoryStore, hub *websocket.Hub, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categoryStore: cs, hub: hub, logger: logger}
}

type categoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	cat, err := h.categoryStore.Create(ownerID, req.Title, req.Description)
	if err != nil {
		h.logger.Error("create category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create category"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("category", "created", cat.ID))
	writeJSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	opts := queryOptions(r)

	categories, count, err := h.categoryStore.List(ownerID, opts)
	if err != nil {
		h.logger.Error("list categories", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list categories"})
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	writePage(w, r, count, opts.Page, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	cat, err := h.categoryStore.GetByID(ownerID, id)
	if err != nil {
		h.logger.Error("get category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get category"})
		return
	}
	if cat == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.categoryStore.GetByID(ownerID, id)
	if err != nil {
		h.logger.Error("get category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get category"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	cat, err := h.categoryStore.Update(ownerID, id, req.Title, req.Description)
	if err != nil {
		h.logger.Error("update category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update category"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("category", "updated", id))
	writeJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.categoryStore.GetByID(ownerID, id)
	if err != nil {
		h.logger.Error("get category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get category"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}

	if err := h.categoryStore.Delete(ownerID, id); err != nil {
		h.logger.Error("delete category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete category"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("category", "deleted", id))
	w.WriteHeader(http.StatusNoContent)
}
