package checkout

import (
	"context"

	"github.com/booktime/backend/internal/domain/checkout"
)

// TransactionScope provides transactional access to checkout repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Checkout uses this so the order insert and the basket
// status flip can never be observed half-done.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to checkout repositories within
// a transaction. Both repositories share the same underlying transaction.
type TransactionalRepositories interface {
	// BasketRepo returns the basket repository scoped to the current transaction
	BasketRepo() checkout.BasketRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() checkout.OrderRepository
}

// NoOpTransactionScope is a transaction scope without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	basketRepo checkout.BasketRepository
	orderRepo  checkout.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(basketRepo checkout.BasketRepository, orderRepo checkout.OrderRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{basketRepo: basketRepo, orderRepo: orderRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BasketRepo returns the basket repository.
func (s *NoOpTransactionScope) BasketRepo() checkout.BasketRepository {
	return s.basketRepo
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() checkout.OrderRepository {
	return s.orderRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
