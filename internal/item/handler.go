package item

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/itempad/itempad/internal/auth"
)

// Handler exposes HTTP endpoints for item CRUD. Every endpoint resolves the
// session identity first; anonymous requests get 401.
type Handler struct {
	svc      *Service
	resolver *auth.Resolver
	logger   *zap.SugaredLogger
}

func NewHandler(svc *Service, resolver *auth.Resolver, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, resolver: resolver, logger: logger}
}

// ItemRequest is the request body for create and update.
type ItemRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := h.resolver.Resolve(r)
	if ident == nil {
		h.unauthorized(w)
		return
	}
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	it, err := h.svc.Create(r.Context(), ident.ID, req.Title, req.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, it)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ident := h.resolver.Resolve(r)
	if ident == nil {
		h.unauthorized(w)
		return
	}
	items, err := h.svc.List(r.Context(), ident.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ident := h.resolver.Resolve(r)
	if ident == nil {
		h.unauthorized(w)
		return
	}
	id, ok := pathID(r)
	if !ok {
		h.notFound(w)
		return
	}
	it, err := h.svc.Get(r.Context(), id, ident.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, it)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ident := h.resolver.Resolve(r)
	if ident == nil {
		h.unauthorized(w)
		return
	}
	id, ok := pathID(r)
	if !ok {
		h.notFound(w)
		return
	}
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	it, err := h.svc.Update(r.Context(), id, ident.ID, req.Title, req.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, it)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ident := h.resolver.Resolve(r)
	if ident == nil {
		h.unauthorized(w)
		return
	}
	id, ok := pathID(r)
	if !ok {
		h.notFound(w)
		return
	}
	if err := h.svc.Delete(r.Context(), id, ident.ID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment. A non-numeric id is treated the same
// as an unknown one downstream: not found.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var ve ValidationError
	switch {
	case errors.As(err, &ve):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.Is(err, ErrNotFound):
		h.notFound(w)
	default:
		h.logger.Errorw("item operation failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an error occurred, please try again"})
	}
}

func (h *Handler) unauthorized(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
}

func (h *Handler) notFound(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
