package repository

import (
	"context"
	"errors"

	"sellerboost-api/internal/model"
)

// ErrNotFound is returned when a lookup matches no row. Wrapped errors carry
// the entity that was missing.
var ErrNotFound = errors.New("no matching row found")

// RecordStore is the durable store for sellers, products and generated content.
type RecordStore interface {
	// LoadProductContext reads a product joined with its seller in one query.
	// Only products whose seller belongs to userID are visible.
	LoadProductContext(ctx context.Context, productID, userID string) (*model.ProductContext, error)

	// InsertContent writes one generated content record atomically.
	InsertContent(ctx context.Context, rec *model.ContentRecord) error

	// GetSellerByUserID returns the seller profile owned by userID.
	GetSellerByUserID(ctx context.Context, userID string) (*model.Seller, error)

	// CountProducts returns how many products the seller has added.
	CountProducts(ctx context.Context, sellerID string) (int64, error)

	// CountContent returns how many content records exist for the seller.
	CountContent(ctx context.Context, sellerID string) (int64, error)

	// ListContent returns up to limit records for a product, newest first.
	ListContent(ctx context.Context, productID string, limit int) ([]*model.ContentRecord, error)

	// LatestContent returns the most recent record for a product.
	LatestContent(ctx context.Context, productID string) (*model.ContentRecord, error)

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// Close closes the repository connection.
	Close() error
}

// CatalogWriter creates sellers and products. The HTTP surface never writes
// these; it exists for seeding and tests.
type CatalogWriter interface {
	CreateSeller(ctx context.Context, s *model.Seller) error
	CreateProduct(ctx context.Context, p *model.Product) error
}
