// Package events publishes domain events after a successful generation.
package events

import (
	"context"
	"time"
)

// ContentGeneratedType is the event type for a new content record.
const ContentGeneratedType = "content.generated"

// ContentGenerated is emitted after a record is committed.
type ContentGenerated struct {
	Type        string    `json:"type"`
	ContentID   string    `json:"contentId"`
	ProductID   string    `json:"productId"`
	SellerID    string    `json:"sellerId"`
	HasFlyer    bool      `json:"hasFlyer"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Publisher sends events. Callers treat failures as non-fatal.
type Publisher interface {
	PublishContentGenerated(ctx context.Context, evt ContentGenerated) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

// PublishContentGenerated does nothing.
func (NopPublisher) PublishContentGenerated(context.Context, ContentGenerated) error {
	return nil
}
