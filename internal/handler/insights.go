package handler

import (
	"context"
	"net/http"

	"sellerboost-api/internal/model"
	"sellerboost-api/pkg/response"
)

// InsightsGenerator builds the seller insights report.
type InsightsGenerator interface {
	Generate(ctx context.Context, principal *model.Principal) (*model.InsightsReport, error)
}

// InsightsHandler handles insights requests.
type InsightsHandler struct {
	insights InsightsGenerator
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(insights InsightsGenerator) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// Generate handles POST /api/v1/generate-insights
func (h *InsightsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrReject(w, r)
	if !ok {
		return
	}

	report, err := h.insights.Generate(r.Context(), principal)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, report)
}
