package handler

import (
	"context"
	"net/http"
	"strconv"

	"sellerboost-api/internal/model"
	"sellerboost-api/pkg/apierror"
	"sellerboost-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// ContentHistory reads stored content records.
type ContentHistory interface {
	List(ctx context.Context, principal *model.Principal, productID string, limit int) ([]*model.ContentRecord, error)
	Latest(ctx context.Context, principal *model.Principal, productID string) (*model.ContentRecord, error)
}

// HistoryHandler serves previously generated content.
type HistoryHandler struct {
	history ContentHistory
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(history ContentHistory) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /api/v1/products/{productID}/content
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrReject(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(w, apierror.BadRequest("limit must be a positive integer"))
			return
		}
		limit = n
	}

	records, err := h.history.List(r.Context(), principal, chi.URLParam(r, "productID"), limit)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"content": records,
		"count":   len(records),
	})
}

// Latest handles GET /api/v1/products/{productID}/content/latest
func (h *HistoryHandler) Latest(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrReject(w, r)
	if !ok {
		return
	}

	rec, err := h.history.Latest(r.Context(), principal, chi.URLParam(r, "productID"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, rec)
}
