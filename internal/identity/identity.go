// Package identity resolves bearer credentials to principals.
package identity

import (
	"context"
	"errors"

	"sellerboost-api/internal/model"
)

// ErrInvalidToken is returned for credentials the provider rejects.
var ErrInvalidToken = errors.New("invalid or expired token")

// Resolver turns a bearer token into a principal.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*model.Principal, error)
}
