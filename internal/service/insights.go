package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sellerboost-api/internal/content"
	"sellerboost-api/internal/llm"
	"sellerboost-api/internal/model"
	"sellerboost-api/internal/prompt"
	"sellerboost-api/internal/repository"
	"sellerboost-api/pkg/apierror"
)

// InsightsService builds the seller usage summary.
type InsightsService struct {
	store    repository.RecordStore
	text     TextGenerator
	settings ModelSettings
	now      func() time.Time
}

// NewInsightsService creates an insights service.
func NewInsightsService(store repository.RecordStore, text TextGenerator, settings ModelSettings) *InsightsService {
	return &InsightsService{
		store:    store,
		text:     text,
		settings: settings,
		now:      time.Now,
	}
}

// Generate returns stats and model-written advice for the principal's seller.
// Unparsable model output yields the fallback advice, never an error.
func (s *InsightsService) Generate(ctx context.Context, principal *model.Principal) (*model.InsightsReport, error) {
	seller, err := s.store.GetSellerByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, logStage(ctx, "load_context", apierror.NotFound("Seller not found"))
		}
		return nil, logStage(ctx, "load_context", apierror.Internal("Failed to load seller: ", err))
	}

	stats := model.SellerStats{
		ProductCount:  s.count(ctx, "products", seller.ID, s.store.CountProducts),
		ContentCount:  s.count(ctx, "content", seller.ID, s.store.CountContent),
		DaysSincePost: DaysSince(seller.LastPostedAt, s.now()),
		LastPostedAt:  seller.LastPostedAt,
	}

	if !s.text.Configured() {
		return nil, logStage(ctx, "config", apierror.Configuration("OpenAI API key not configured"))
	}

	raw, err := s.text.Complete(ctx, llm.ChatRequest{
		Model:       s.settings.Model,
		User:        prompt.BuildInsights(*seller, stats),
		Temperature: s.settings.Temperature,
	})
	if err != nil {
		return nil, logStage(ctx, "insights", upstreamError("OpenAI: ", err))
	}

	insights, err := content.ParseInsights(raw)
	if err != nil {
		slog.WarnContext(ctx, "insights output unusable, using fallback", "stage", "insights", "error", err)
		insights = model.FallbackInsights()
	}

	return &model.InsightsReport{Stats: stats, Insights: insights}, nil
}

// count treats a failed count as zero.
func (s *InsightsService) count(ctx context.Context, what, sellerID string, fn func(context.Context, string) (int64, error)) int64 {
	n, err := fn(ctx, sellerID)
	if err != nil {
		slog.WarnContext(ctx, "count failed, reporting zero", "stage", "insights", "what", what, "error", err)
		return 0
	}
	return n
}

// DaysSince returns whole days elapsed since t, or nil when t is nil.
func DaysSince(t *time.Time, now time.Time) *int {
	if t == nil {
		return nil
	}
	days := int(now.Sub(*t) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return &days
}
