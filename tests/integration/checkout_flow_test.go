package integration

import (
	"context"
	"testing"

	checkoutapp "github.com/booktime/backend/internal/application/checkout"
	"github.com/booktime/backend/internal/domain/customer"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/booktime/backend/internal/domain/shared/valueobject"
	"github.com/booktime/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decimalFromString(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

// TestCheckoutFlow_Integration walks the full storefront flow against a real
// PostgreSQL database: anonymous basket, login claim, checkout, staff dashboard.
func TestCheckoutFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()
	log := zap.NewNop()

	productRepo := persistence.NewGormProductRepository(testDB.DB)
	basketRepo := persistence.NewGormBasketRepository(testDB.DB)
	orderRepo := persistence.NewGormOrderRepository(testDB.DB)
	addressRepo := persistence.NewGormAddressRepository(testDB.DB)
	txScope := persistence.NewGormCheckoutTransactionScope(testDB.DB)

	basketService := checkoutapp.NewBasketService(basketRepo, productRepo, log)
	checkoutService := checkoutapp.NewCheckoutService(txScope, addressRepo, log)
	orderService := checkoutapp.NewOrderService(orderRepo)

	book := testDB.CreateTestProduct("The Cathedral and the Bazaar", "cathedral-bazaar", "10.00")
	secondBook := testDB.CreateTestProduct("A Tale of Two Cities", "tale-two-cities", "2.00")

	userID := uuid.New()
	userEmail := "customer@booktime.domain"

	// Anonymous visitor fills a basket
	basket, err := basketService.AddProduct(ctx, nil, nil, book.ID)
	require.NoError(t, err)
	basketID := basket.ID

	basket, err = basketService.AddProduct(ctx, &basketID, nil, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, basket.Count, "same product twice should bump the quantity")

	basket, err = basketService.AddProduct(ctx, &basketID, nil, secondBook.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, basket.Count)
	assert.True(t, basket.TotalPrice.Equal(decimalFromString(t, "22.00")))

	// The visitor logs in and claims the basket
	basket, err = basketService.Claim(ctx, basketID, userID)
	require.NoError(t, err)
	basketID = basket.ID

	// Address book
	billing, err := customer.NewAddress(userID, "John Kimball", "127 Strudel Road", "", "3ABC", "London", valueobject.CountryUK)
	require.NoError(t, err)
	require.NoError(t, addressRepo.Save(ctx, billing))

	shipping, err := customer.NewAddress(userID, "John Kimball", "123 Deacon Road", "", "6ABC", "London", valueobject.CountryUK)
	require.NoError(t, err)
	require.NoError(t, addressRepo.Save(ctx, shipping))

	// Checkout
	order, err := checkoutService.CreateOrder(ctx, userID, userEmail, basketID, checkoutapp.CreateOrderRequest{
		BillingAddressID:  billing.ID,
		ShippingAddressID: shipping.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "new", order.Status)
	assert.Len(t, order.Lines, 3, "three units should become three order lines")
	for _, line := range order.Lines {
		assert.Equal(t, "new", line.Status)
	}
	assert.True(t, order.TotalPrice.Equal(decimalFromString(t, "22.00")))
	assert.Equal(t, "127 Strudel Road", order.Billing.Address1)
	assert.Equal(t, "123 Deacon Road", order.Shipping.Address1)

	// The basket is spent
	_, err = basketService.GetOpenForUser(ctx, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	submitted, err := basketService.Get(ctx, basketID)
	require.NoError(t, err)
	assert.Equal(t, "submitted", submitted.Status)

	// Checking out the same basket again is rejected
	_, err = checkoutService.CreateOrder(ctx, userID, userEmail, basketID, checkoutapp.CreateOrderRequest{
		BillingAddressID:  billing.ID,
		ShippingAddressID: shipping.ID,
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)

	// The customer sees their order
	mine, err := orderService.ListForUser(ctx, userID, 1, 20)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)

	// A different customer does not
	_, err = orderService.GetByIDForUser(ctx, uuid.New(), order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Staff dashboard filtering
	listed, total, err := orderService.List(ctx, checkoutapp.OrderListFilter{EmailContains: "customer@"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, listed, 1)
	assert.Equal(t, userEmail, listed[0].UserEmail)

	_, total, err = orderService.List(ctx, checkoutapp.OrderListFilter{Status: "paid"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	// Staff move the order along
	updated, err := orderService.UpdateStatus(ctx, order.ID, checkoutapp.UpdateOrderStatusRequest{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.Status)

	lineID := updated.Lines[0].ID
	updated, err = orderService.UpdateLineStatus(ctx, order.ID, lineID, checkoutapp.UpdateOrderLineStatusRequest{Status: "processing"})
	require.NoError(t, err)

	updated, err = orderService.UpdateLineStatus(ctx, order.ID, lineID, checkoutapp.UpdateOrderLineStatusRequest{Status: "sent"})
	require.NoError(t, err)
	for _, line := range updated.Lines {
		if line.ID == lineID {
			assert.Equal(t, "sent", line.Status)
		}
	}

	// Skipping straight from new to sent is rejected
	otherLine := updated.Lines[1].ID
	_, err = orderService.UpdateLineStatus(ctx, order.ID, otherLine, checkoutapp.UpdateOrderLineStatusRequest{Status: "sent"})
	require.ErrorAs(t, err, &domainErr)

	staffID := uuid.New()
	updated, err = orderService.AssignContact(ctx, order.ID, checkoutapp.AssignContactRequest{StaffID: staffID})
	require.NoError(t, err)
	require.NotNil(t, updated.LastSpokenTo)
	assert.Equal(t, staffID, *updated.LastSpokenTo)
}

// TestBasketClaim_MergesOpenBaskets covers the login merge: a user with an
// existing open basket who claims an anonymous one keeps a single basket.
func TestBasketClaim_MergesOpenBaskets(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()
	log := zap.NewNop()

	productRepo := persistence.NewGormProductRepository(testDB.DB)
	basketRepo := persistence.NewGormBasketRepository(testDB.DB)
	basketService := checkoutapp.NewBasketService(basketRepo, productRepo, log)

	book := testDB.CreateTestProduct("Anna Karenina", "anna-karenina", "3.00")
	userID := uuid.New()

	// The user already has an open basket from a previous visit
	existing, err := basketService.AddProduct(ctx, nil, &userID, book.ID)
	require.NoError(t, err)

	// A new anonymous basket from the current session
	anonymous, err := basketService.AddProduct(ctx, nil, nil, book.ID)
	require.NoError(t, err)
	require.NotEqual(t, existing.ID, anonymous.ID)

	merged, err := basketService.Claim(ctx, anonymous.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Count, "claim should merge the two baskets")

	open, err := basketService.GetOpenForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, merged.ID, open.ID)
}

// TestBasketLineQuantityConstraint_Integration verifies the database itself
// rejects non-positive quantities, independent of the domain validation.
func TestBasketLineQuantityConstraint_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()
	log := zap.NewNop()

	productRepo := persistence.NewGormProductRepository(testDB.DB)
	basketRepo := persistence.NewGormBasketRepository(testDB.DB)
	basketService := checkoutapp.NewBasketService(basketRepo, productRepo, log)

	book := testDB.CreateTestProduct("Anna Karenina", "anna-karenina", "3.00")

	basket, err := basketService.AddProduct(ctx, nil, nil, book.ID)
	require.NoError(t, err)

	err = testDB.DB.Exec(
		"INSERT INTO basket_lines (id, basket_id, product_id, quantity) VALUES (?, ?, ?, ?)",
		uuid.New(), basket.ID, book.ID, 0,
	).Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check constraint")

	err = testDB.DB.Exec(
		"UPDATE basket_lines SET quantity = ? WHERE basket_id = ?", -1, basket.ID,
	).Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check constraint")
}
