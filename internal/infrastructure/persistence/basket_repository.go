package persistence

import (
	"context"
	"errors"

	"github.com/booktime/backend/internal/domain/checkout"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBasketRepository implements BasketRepository using GORM
type GormBasketRepository struct {
	db *gorm.DB
}

// NewGormBasketRepository creates a new GormBasketRepository
func NewGormBasketRepository(db *gorm.DB) *GormBasketRepository {
	return &GormBasketRepository{db: db}
}

// FindByID finds a basket with its lines and line products
func (r *GormBasketRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.Basket, error) {
	var basket checkout.Basket
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Lines.Product.Images").
		First(&basket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &basket, nil
}

// FindOpenByUser finds the user's open basket, if any
func (r *GormBasketRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*checkout.Basket, error) {
	var basket checkout.Basket
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Lines.Product.Images").
		Where("user_id = ? AND status = ?", userID, checkout.BasketStatusOpen).
		Order("created_at DESC").
		First(&basket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &basket, nil
}

// Save creates or updates a basket together with its lines. Lines removed
// from the aggregate are deleted from the database.
func (r *GormBasketRepository) Save(ctx context.Context, basket *checkout.Basket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Save the basket without auto-saving associations; the
		// association upsert only touches the foreign key on conflict,
		// so quantity changes on existing lines would be lost.
		if err := tx.Omit("Lines").Save(basket).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, 0, len(basket.Lines))
		for i := range basket.Lines {
			basket.Lines[i].BasketID = basket.ID
			keep = append(keep, basket.Lines[i].ID)
		}
		query := tx.Where("basket_id = ?", basket.ID)
		if len(keep) > 0 {
			query = query.Where("id NOT IN ?", keep)
		}
		if err := query.Delete(&checkout.BasketLine{}).Error; err != nil {
			return err
		}

		if len(basket.Lines) == 0 {
			return nil
		}
		return tx.Omit("Product").
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&basket.Lines).Error
	})
}

// Delete deletes a basket and its lines
func (r *GormBasketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("basket_id = ?", id).Delete(&checkout.BasketLine{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&checkout.Basket{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormBasketRepository implements BasketRepository
var _ checkout.BasketRepository = (*GormBasketRepository)(nil)
