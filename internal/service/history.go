package service

import (
	"context"
	"errors"

	"sellerboost-api/internal/model"
	"sellerboost-api/internal/repository"
	"sellerboost-api/pkg/apierror"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryService reads previously generated content for a product.
type HistoryService struct {
	store repository.RecordStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store repository.RecordStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns up to limit records for productID, newest first.
func (s *HistoryService) List(ctx context.Context, principal *model.Principal, productID string, limit int) ([]*model.ContentRecord, error) {
	if err := s.authorize(ctx, principal, productID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := s.store.ListContent(ctx, productID, limit)
	if err != nil {
		return nil, logStage(ctx, "history", apierror.Internal("Failed to load content: ", err))
	}
	return records, nil
}

// Latest returns the authoritative record for productID.
func (s *HistoryService) Latest(ctx context.Context, principal *model.Principal, productID string) (*model.ContentRecord, error) {
	if err := s.authorize(ctx, principal, productID); err != nil {
		return nil, err
	}

	rec, err := s.store.LatestContent(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, logStage(ctx, "history", apierror.NotFound("No content generated for this product yet"))
		}
		return nil, logStage(ctx, "history", apierror.Internal("Failed to load content: ", err))
	}
	return rec, nil
}

// authorize checks that the product exists and belongs to principal.
func (s *HistoryService) authorize(ctx context.Context, principal *model.Principal, productID string) error {
	if productID == "" {
		return logStage(ctx, "request", apierror.BadRequest("Product ID required"))
	}
	if _, err := s.store.LoadProductContext(ctx, productID, principal.UserID); err != nil {
		return logStage(ctx, "load_context", apierror.NotFoundCause("Product not found: ", err))
	}
	return nil
}
