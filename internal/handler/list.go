package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/borgespro/golist/internal/auth"
	"github.com/borgespro/golist/internal/model"
	"github.com/borgespro/golist/internal/store"
	"github.com/borgespro/golist/internal/websocket"
)

type ListHandler struct {
	listStore *store.ListStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewListHandler(ls *store.ListStore, hub *websocket.Hub, logger *slog.Logger) *ListHandler {
	return &ListHandler{listStore: ls, hub: hub, logger: logger}
}

type listRequest struct {
	Name    string     `json:"name"`
	ValidAt *time.Time `json:"valid_at"`
}

// withActive stamps the active flag against the current clock. Done at
// serialization time so a list can expire with no intervening write.
func withActive(l *model.List) *model.List {
	l.IsActive = l.ActiveAt(time.Now().UTC())
	return l
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	list, err := h.listStore.Create(ownerID, req.Name, req.ValidAt)
	if err != nil {
		h.logger.Error("create list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create list"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("list", "created", list.ID))
	writeJSON(w, http.StatusCreated, withActive(list))
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	opts := queryOptions(r)

	lists, count, err := h.listStore.List(ownerID, opts)
	if err != nil {
		h.logger.Error("list lists", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list lists"})
		return
	}
	if lists == nil {
		lists = []model.List{}
	}
	for i := range lists {
		withActive(&lists[i])
	}
	writePage(w, r, count, opts.Page, lists)
}

func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	list, err := h.listStore.GetByID(ownerID, id)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get list"})
		return
	}
	if list == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}
	writeJSON(w, http.StatusOK, withActive(list))
}

func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.listStore.GetByID(ownerID, id)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get list"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	list, err := h.listStore.Update(ownerID, id, req.Name, req.ValidAt)
	if err != nil {
		h.logger.Error("update list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update list"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("list", "updated", id))
	writeJSON(w, http.StatusOK, withActive(list))
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.listStore.GetByID(ownerID, id)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get list"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}

	if err := h.listStore.Delete(ownerID, id); err != nil {
		h.logger.Error("delete list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete list"})
		return
	}

	h.hub.BroadcastTo(ownerID, websocket.NewMessage("list", "deleted", id))
	w.WriteHeader(http.StatusNoContent)
}
