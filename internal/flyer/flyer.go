// Package flyer produces the optional flyer image for a generation. Every
// failure is absorbed into the Result; Produce never aborts the caller.
package flyer

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"sellerboost-api/internal/objectstore"
	"sellerboost-api/pkg/apierror"
)

const (
	defaultPrefix = "flyers"
	contentType   = "image/png"
)

// ImageGenerator creates an image from a prompt and fetches its bytes.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Download(ctx context.Context, url string) ([]byte, string, error)
}

// Result is the outcome of the flyer step. URL is nil when no flyer exists;
// Err explains why (nil when the step was skipped).
type Result struct {
	URL *string
	Err error
}

// Available reports whether a flyer was stored.
func (r Result) Available() bool {
	return r.URL != nil
}

// Service runs generate, download, upload and URL resolution in order.
type Service struct {
	images ImageGenerator
	store  objectstore.ObjectStore
	prefix string
	now    func() time.Time
}

// NewService creates a flyer service. Keys are written under prefix.
func NewService(images ImageGenerator, store objectstore.ObjectStore, prefix string) *Service {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Service{
		images: images,
		store:  store,
		prefix: prefix,
		now:    time.Now,
	}
}

// Key returns the object key for a flyer: {prefix}/{productID}/{unixMillis}.png.
func (s *Service) Key(productID string, at time.Time) string {
	return path.Join(s.prefix, productID, fmt.Sprintf("%d.png", at.UnixMilli()))
}

// Produce generates and stores a flyer for prompt. An empty prompt skips the step.
func (s *Service) Produce(ctx context.Context, productID, prompt string) Result {
	if strings.TrimSpace(prompt) == "" {
		return Result{}
	}

	imageURL, err := s.images.GenerateImage(ctx, prompt)
	if err != nil {
		return s.fail(ctx, productID, "Image generation failed: ", err)
	}

	data, _, err := s.images.Download(ctx, imageURL)
	if err != nil {
		return s.fail(ctx, productID, "Image download failed: ", err)
	}

	key := s.Key(productID, s.now())
	if err := s.store.Put(ctx, key, data, contentType); err != nil {
		return s.fail(ctx, productID, "Failed to upload flyer image: ", err)
	}

	publicURL := s.store.PublicURL(key)
	slog.InfoContext(ctx, "flyer image stored", "stage", "flyer", "product_id", productID, "key", key, "bytes", len(data))

	return Result{URL: &publicURL}
}

func (s *Service) fail(ctx context.Context, productID, prefix string, err error) Result {
	wrapped := apierror.AssetPipeline(prefix, err)
	slog.WarnContext(ctx, "flyer step failed, continuing without flyer", "stage", "flyer", "product_id", productID, "error", wrapped)
	return Result{Err: wrapped}
}
