package checkout

import (
	"context"
	"errors"

	"github.com/booktime/backend/internal/domain/checkout"
	"github.com/booktime/backend/internal/domain/customer"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService turns an open basket into an order. The order insert and
// the basket submission happen inside one transaction.
type CheckoutService struct {
	txScope     TransactionScope
	addressRepo customer.AddressRepository
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(txScope TransactionScope, addressRepo customer.AddressRepository, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		txScope:     txScope,
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// CreateOrder checks out the given basket for the authenticated user. Both
// addresses must belong to the user's address book; they are copied onto
// the order so later address edits never rewrite order history.
func (s *CheckoutService) CreateOrder(ctx context.Context, userID uuid.UUID, userEmail string, basketID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	billing, err := s.addressRepo.FindByIDForUser(ctx, userID, req.BillingAddressID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ADDRESS_NOT_FOUND", "Billing address not found")
		}
		return nil, err
	}
	shipping, err := s.addressRepo.FindByIDForUser(ctx, userID, req.ShippingAddressID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ADDRESS_NOT_FOUND", "Shipping address not found")
		}
		return nil, err
	}

	s.logger.Info("creating order",
		zap.String("basket_id", basketID.String()),
		zap.String("billing_address_id", billing.ID.String()),
		zap.String("shipping_address_id", shipping.ID.String()))

	var order *checkout.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		basket, err := repos.BasketRepo().FindByID(ctx, basketID)
		if err != nil {
			return err
		}

		order, err = checkout.NewOrderFromBasket(userID, userEmail, basket, billing, shipping)
		if err != nil {
			return err
		}
		if err := basket.Submit(); err != nil {
			return err
		}

		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return repos.BasketRepo().Save(ctx, basket)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("created order",
		zap.String("order_id", order.ID.String()),
		zap.Int("line_count", order.LineCount()))

	response := ToOrderResponse(order)
	return &response, nil
}
