package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/booktime/backend/internal/domain/checkout"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines and line products
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.Order, error) {
	var order checkout.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Lines.Product.Images").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForUser finds an order owned by the given user
func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*checkout.Order, error) {
	var order checkout.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Lines.Product.Images").
		Where("user_id = ? AND id = ?", userID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByUser finds all orders owned by the given user
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]checkout.Order, error) {
	var orders []checkout.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&checkout.Order{}).
		Preload("Lines").
		Preload("Lines.Product").
		Where("user_id = ?", userID), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds orders matching the filter (staff view)
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]checkout.Order, error) {
	var orders []checkout.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&checkout.Order{}).
		Preload("Lines").
		Preload("Lines.Product"), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its lines
func (r *GormOrderRepository) Save(ctx context.Context, order *checkout.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Save the order without auto-saving associations; the
		// association upsert only touches the foreign key on conflict,
		// so line status changes would be lost.
		if err := tx.Omit("Lines").Save(order).Error; err != nil {
			return err
		}

		if len(order.Lines) == 0 {
			return nil
		}
		for i := range order.Lines {
			order.Lines[i].OrderID = order.ID
		}
		return tx.Omit("Product").
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&order.Lines).Error
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&checkout.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	}

	return query
}

// applyFilterWithoutPagination applies the staff-view filters
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "email_contains":
			query = query.Where("user_email ILIKE ?", "%"+value.(string)+"%")
		case "status":
			query = query.Where("status = ?", value)
		case "created_after":
			query = query.Where("created_at >= ?", value)
		case "created_before":
			query = query.Where("created_at <= ?", value)
		case "updated_after":
			query = query.Where("updated_at >= ?", value)
		case "updated_before":
			query = query.Where("updated_at <= ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ checkout.OrderRepository = (*GormOrderRepository)(nil)
