package persistence

import (
	"context"
	"errors"

	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductTagRepository implements ProductTagRepository using GORM
type GormProductTagRepository struct {
	db *gorm.DB
}

// NewGormProductTagRepository creates a new GormProductTagRepository
func NewGormProductTagRepository(db *gorm.DB) *GormProductTagRepository {
	return &GormProductTagRepository{db: db}
}

// FindByID finds a tag by its ID
func (r *GormProductTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductTag, error) {
	var tag catalog.ProductTag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// FindBySlug finds a tag by its slug
func (r *GormProductTagRepository) FindBySlug(ctx context.Context, slug string) (*catalog.ProductTag, error) {
	var tag catalog.ProductTag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// FindActive finds all active tags ordered by name
func (r *GormProductTagRepository) FindActive(ctx context.Context) ([]catalog.ProductTag, error) {
	var tags []catalog.ProductTag
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Save creates or updates a tag
func (r *GormProductTagRepository) Save(ctx context.Context, tag *catalog.ProductTag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete deletes a tag
func (r *GormProductTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductTag{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductTagRepository implements ProductTagRepository
var _ catalog.ProductTagRepository = (*GormProductTagRepository)(nil)
