package checkout

import (
	"context"
	"testing"

	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/booktime/backend/internal/domain/checkout"
	"github.com/booktime/backend/internal/domain/customer"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/booktime/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBasketRepository is a mock implementation of BasketRepository
type MockBasketRepository struct {
	mock.Mock
}

func (m *MockBasketRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.Basket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Basket), args.Error(1)
}

func (m *MockBasketRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*checkout.Basket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Basket), args.Error(1)
}

func (m *MockBasketRepository) Save(ctx context.Context, basket *checkout.Basket) error {
	args := m.Called(ctx, basket)
	return args.Error(0)
}

func (m *MockBasketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*checkout.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]checkout.Order, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]checkout.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]checkout.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]checkout.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *checkout.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockAddressRepository is a mock implementation of AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*customer.Address, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]customer.Address, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]customer.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, address *customer.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func checkoutProduct(t *testing.T, name, slug, price string) *catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyGBPFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(name, slug, money)
	require.NoError(t, err)
	return product
}

func checkoutAddress(t *testing.T, userID uuid.UUID) *customer.Address {
	t.Helper()
	address, err := customer.NewAddress(userID, "John Kimball", "127 Strudel road", "", "SW1A 1AA", "London", valueobject.CountryUK)
	require.NoError(t, err)
	return address
}

func TestCheckoutService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order, fans out lines, submits basket", func(t *testing.T) {
		userID := uuid.New()
		basketRepo := new(MockBasketRepository)
		orderRepo := new(MockOrderRepository)
		addressRepo := new(MockAddressRepository)
		service := NewCheckoutService(NewNoOpTransactionScope(basketRepo, orderRepo), addressRepo, zap.NewNop())

		bookA := checkoutProduct(t, "The cathedral and the bazaar", "cathedral-bazaar", "10.00")
		bookB := checkoutProduct(t, "A Tale of Two Cities", "tale-two-cities", "2.00")

		basket := checkout.NewBasket(&userID)
		lineA, err := basket.AddProduct(bookA.ID)
		require.NoError(t, err)
		lineA.Product = bookA
		lineB, err := basket.AddProduct(bookB.ID)
		require.NoError(t, err)
		lineB.Product = bookB

		billing := checkoutAddress(t, userID)
		shipping := checkoutAddress(t, userID)

		addressRepo.On("FindByIDForUser", ctx, userID, billing.ID).Return(billing, nil)
		addressRepo.On("FindByIDForUser", ctx, userID, shipping.ID).Return(shipping, nil)
		basketRepo.On("FindByID", ctx, basket.ID).Return(basket, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*checkout.Order")).Return(nil)
		basketRepo.On("Save", ctx, basket).Return(nil)

		response, err := service.CreateOrder(ctx, userID, "john@example.com", basket.ID, CreateOrderRequest{
			BillingAddressID:  billing.ID,
			ShippingAddressID: shipping.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "new", response.Status)
		assert.Len(t, response.Lines, 2)
		assert.True(t, response.TotalPrice.Equal(decimal.RequireFromString("12.00")))
		assert.Equal(t, "1 x The cathedral and the bazaar, 1 x A Tale of Two Cities", response.Summary)
		assert.True(t, basket.IsSubmitted())
		basketRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects address outside the user's address book", func(t *testing.T) {
		userID := uuid.New()
		basketRepo := new(MockBasketRepository)
		orderRepo := new(MockOrderRepository)
		addressRepo := new(MockAddressRepository)
		service := NewCheckoutService(NewNoOpTransactionScope(basketRepo, orderRepo), addressRepo, zap.NewNop())

		billingID := uuid.New()
		addressRepo.On("FindByIDForUser", ctx, userID, billingID).Return(nil, shared.ErrNotFound)

		_, err := service.CreateOrder(ctx, userID, "john@example.com", uuid.New(), CreateOrderRequest{
			BillingAddressID:  billingID,
			ShippingAddressID: uuid.New(),
		})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ADDRESS_NOT_FOUND", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an already submitted basket", func(t *testing.T) {
		userID := uuid.New()
		basketRepo := new(MockBasketRepository)
		orderRepo := new(MockOrderRepository)
		addressRepo := new(MockAddressRepository)
		service := NewCheckoutService(NewNoOpTransactionScope(basketRepo, orderRepo), addressRepo, zap.NewNop())

		book := checkoutProduct(t, "Backgammon for Dummies", "backgammon-for-dummies", "5.00")
		basket := checkout.NewBasket(&userID)
		line, err := basket.AddProduct(book.ID)
		require.NoError(t, err)
		line.Product = book
		require.NoError(t, basket.Submit())

		billing := checkoutAddress(t, userID)
		addressRepo.On("FindByIDForUser", ctx, userID, billing.ID).Return(billing, nil)
		basketRepo.On("FindByID", ctx, basket.ID).Return(basket, nil)

		_, err = service.CreateOrder(ctx, userID, "john@example.com", basket.ID, CreateOrderRequest{
			BillingAddressID:  billing.ID,
			ShippingAddressID: billing.ID,
		})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
