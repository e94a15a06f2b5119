package persistence

import (
	"context"

	appcheckout "github.com/booktime/backend/internal/application/checkout"
	"github.com/booktime/backend/internal/domain/checkout"
	"gorm.io/gorm"
)

// GormCheckoutTransactionScope implements the checkout TransactionScope
// using GORM transactions, so the order insert and the basket submission
// commit or roll back together.
type GormCheckoutTransactionScope struct {
	db *gorm.DB
}

// NewGormCheckoutTransactionScope creates a new GormCheckoutTransactionScope
func NewGormCheckoutTransactionScope(db *gorm.DB) *GormCheckoutTransactionScope {
	return &GormCheckoutTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormCheckoutTransactionScope) Execute(ctx context.Context, fn func(repos appcheckout.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{tx: tx})
	})
}

type gormCheckoutRepositories struct {
	tx *gorm.DB
}

// BasketRepo returns the basket repository scoped to the current transaction
func (r *gormCheckoutRepositories) BasketRepo() checkout.BasketRepository {
	return NewGormBasketRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormCheckoutRepositories) OrderRepo() checkout.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

var _ appcheckout.TransactionScope = (*GormCheckoutTransactionScope)(nil)
var _ appcheckout.TransactionalRepositories = (*gormCheckoutRepositories)(nil)
