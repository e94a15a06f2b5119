package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an anonymous basket session stays alive without activity
const DefaultTTL = 30 * 24 * time.Hour

// Store maps opaque session tokens to basket IDs.
// Anonymous visitors carry a token in a cookie; the basket itself lives in the database.
type Store interface {
	// Get returns the basket ID bound to the token, or found=false when the token is unknown
	Get(ctx context.Context, token string) (basketID uuid.UUID, found bool, err error)

	// Set binds the token to a basket ID with a TTL, refreshing any existing binding
	Set(ctx context.Context, token string, basketID uuid.UUID, ttl time.Duration) error

	// Delete removes the binding for the token
	Delete(ctx context.Context, token string) error

	// Close releases the store's resources
	Close() error
}

// NewToken generates a fresh opaque session token
func NewToken() string {
	return uuid.NewString()
}
