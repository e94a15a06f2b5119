package persistence

import (
	"context"
	"errors"

	"github.com/booktime/backend/internal/domain/customer"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByIDForUser finds an address by ID owned by the given user
func (r *GormAddressRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*customer.Address, error) {
	var address customer.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindByUser finds all addresses owned by the given user
func (r *GormAddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]customer.Address, error) {
	var addresses []customer.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *customer.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

// DeleteForUser deletes an address owned by the given user
func (r *GormAddressRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&customer.Address{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAddressRepository implements AddressRepository
var _ customer.AddressRepository = (*GormAddressRepository)(nil)
