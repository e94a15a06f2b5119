package checkout

import (
	"context"

	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BasketRepository defines the interface for basket persistence
type BasketRepository interface {
	// FindByID finds a basket with its lines and line products
	FindByID(ctx context.Context, id uuid.UUID) (*Basket, error)

	// FindOpenByUser finds the user's open basket, if any
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*Basket, error)

	// Save creates or updates a basket together with its lines
	Save(ctx context.Context, basket *Basket) error

	// Delete deletes a basket and its lines
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its lines and line products
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUser finds an order owned by the given user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Order, error)

	// FindByUser finds all orders owned by the given user
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll finds orders matching the filter (staff view). Supported
	// filter keys: email_contains, status, created_after, created_before,
	// updated_after, updated_before.
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order together with its lines
	Save(ctx context.Context, order *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
