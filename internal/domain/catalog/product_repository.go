package catalog

import (
	"context"

	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindActive finds active products ordered by name
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindActiveByTag finds active products carrying the given tag, ordered by name
	FindActiveByTag(ctx context.Context, tagID uuid.UUID, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountActive counts active products, optionally scoped to a tag
	CountActive(ctx context.Context, tagID *uuid.UUID) (int64, error)

	// ExistsBySlug checks if a product with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// ProductTagRepository defines the interface for tag persistence
type ProductTagRepository interface {
	// FindByID finds a tag by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductTag, error)

	// FindBySlug finds a tag by its slug
	FindBySlug(ctx context.Context, slug string) (*ProductTag, error)

	// FindActive finds all active tags ordered by name
	FindActive(ctx context.Context) ([]ProductTag, error)

	// Save creates or updates a tag
	Save(ctx context.Context, tag *ProductTag) error

	// Delete deletes a tag
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductImageRepository defines the interface for product image persistence
type ProductImageRepository interface {
	// FindByProduct finds all images for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductImage, error)

	// Save creates or updates an image record
	Save(ctx context.Context, image *ProductImage) error

	// Delete deletes an image record
	Delete(ctx context.Context, id uuid.UUID) error
}
