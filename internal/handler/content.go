package handler

import (
	"context"
	"net/http"

	"sellerboost-api/internal/model"
	"sellerboost-api/internal/service"
	"sellerboost-api/pkg/response"
)

// ContentGenerator runs the content pipeline.
type ContentGenerator interface {
	Generate(ctx context.Context, principal *model.Principal, productID string) (*service.GenerationResult, error)
}

// ContentHandler handles content generation requests.
type ContentHandler struct {
	generator ContentGenerator
}

// NewContentHandler creates a new content handler.
func NewContentHandler(generator ContentGenerator) *ContentHandler {
	return &ContentHandler{generator: generator}
}

type generateContentRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type generateContentResponse struct {
	Success       bool    `json:"success"`
	ContentID     string  `json:"contentId"`
	FlyerImageURL *string `json:"flyerImageUrl"`
	Message       string  `json:"message"`
}

// Generate handles POST /api/v1/generate-content
func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrReject(w, r)
	if !ok {
		return
	}

	var req generateContentRequest
	if err := decodeBody(r, &req, "Invalid request body"); err != nil {
		response.Error(w, err)
		return
	}

	res, err := h.generator.Generate(r.Context(), principal, req.ProductID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, generateContentResponse{
		Success:       true,
		ContentID:     res.ContentID,
		FlyerImageURL: res.FlyerImageURL,
		Message:       res.Message,
	})
}
