package identity

import (
	"context"
	"fmt"
	"time"

	"sellerboost-api/internal/model"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwks"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
)

// ClerkResolver verifies Clerk session JWTs against cached signing keys.
type ClerkResolver struct {
	keys *keyCache
}

var _ Resolver = (*ClerkResolver)(nil)

// NewClerkResolver sets the Clerk secret key and returns a resolver that
// fetches signing keys from the Clerk API and keeps them for keyTTL.
func NewClerkResolver(secretKey string, keyTTL time.Duration) *ClerkResolver {
	clerk.SetKey(secretKey)
	return newClerkResolver(nil, keyTTL)
}

// newClerkResolver uses client for key fetches; nil means the SDK default backend.
func newClerkResolver(client *jwks.Client, keyTTL time.Duration) *ClerkResolver {
	fetch := func(ctx context.Context, kid string) (*clerk.JSONWebKey, error) {
		return jwt.GetJSONWebKey(ctx, &jwt.GetJSONWebKeyParams{
			KeyID:      kid,
			JWKSClient: client,
		})
	}
	return &ClerkResolver{keys: newKeyCache(fetch, keyTTL)}
}

// Resolve verifies the token signature and expiry.
func (r *ClerkResolver) Resolve(ctx context.Context, token string) (*model.Principal, error) {
	decoded, err := jwt.Decode(ctx, &jwt.DecodeParams{Token: token})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	key, err := r.keys.get(ctx, decoded.KeyID)
	if err != nil {
		return nil, fmt.Errorf("%w: signing key %q: %v", ErrInvalidToken, decoded.KeyID, err)
	}

	claims, err := jwt.Verify(ctx, &jwt.VerifyParams{Token: token, JWK: key})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	p := &model.Principal{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
	}
	if claims.Expiry != nil {
		p.ExpiresAt = time.Unix(*claims.Expiry, 0).UTC()
	}
	return p, nil
}
