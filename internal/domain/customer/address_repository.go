package customer

import (
	"context"

	"github.com/google/uuid"
)

// AddressRepository defines the interface for address persistence.
// Every operation that reads or mutates a single address is scoped to the
// owning user so one user can never reach into another's address book.
type AddressRepository interface {
	// FindByIDForUser finds an address by ID owned by the given user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Address, error)

	// FindByUser finds all addresses owned by the given user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// DeleteForUser deletes an address owned by the given user
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
