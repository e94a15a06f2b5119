package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/booktime/backend/internal/domain/checkout"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrder(t *testing.T, userID uuid.UUID, email string) *checkout.Order {
	t.Helper()
	book := checkoutProduct(t, "The cathedral and the bazaar", "cathedral-bazaar", "10.00")
	basket := checkout.NewBasket(&userID)
	line, err := basket.AddProduct(book.ID)
	require.NoError(t, err)
	line.Product = book

	billing := checkoutAddress(t, userID)
	order, err := checkout.NewOrderFromBasket(userID, email, basket, billing, billing)
	require.NoError(t, err)
	return order
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("maps staff filters onto the repository filter", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo)

		after := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		expectedFilter := shared.Filter{
			Page:     1,
			PageSize: 20,
			OrderBy:  "created_at",
			OrderDir: "desc",
			Filters: map[string]interface{}{
				"email_contains": "example.com",
				"status":         "new",
				"created_after":  after,
			},
		}

		userID := uuid.New()
		orderRepo.On("FindAll", ctx, expectedFilter).Return([]checkout.Order{*testOrder(t, userID, "john@example.com")}, nil)
		orderRepo.On("Count", ctx, expectedFilter).Return(int64(1), nil)

		orders, total, err := service.List(ctx, OrderListFilter{
			EmailContains: "example.com",
			Status:        "new",
			CreatedAfter:  &after,
		})

		require.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "john@example.com", orders[0].UserEmail)
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo)

		_, _, err := service.List(ctx, OrderListFilter{Status: "shipped"})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo)

	order := testOrder(t, uuid.New(), "john@example.com")
	orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	orderRepo.On("Save", ctx, order).Return(nil)

	response, err := service.UpdateStatus(ctx, order.ID, UpdateOrderStatusRequest{Status: "paid"})

	require.NoError(t, err)
	assert.Equal(t, "paid", response.Status)

	_, err = service.UpdateStatus(ctx, order.ID, UpdateOrderStatusRequest{Status: "paid"})
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestOrderService_UpdateLineStatus(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo)

	order := testOrder(t, uuid.New(), "john@example.com")
	require.Len(t, order.Lines, 1)
	lineID := order.Lines[0].ID

	orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	orderRepo.On("Save", ctx, order).Return(nil)

	response, err := service.UpdateLineStatus(ctx, order.ID, lineID, UpdateOrderLineStatusRequest{Status: "processing"})

	require.NoError(t, err)
	assert.Equal(t, "processing", response.Lines[0].Status)

	_, err = service.UpdateLineStatus(ctx, order.ID, uuid.New(), UpdateOrderLineStatusRequest{Status: "sent"})
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LINE_NOT_FOUND", domainErr.Code)
}

func TestOrderService_AssignContact(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo)

	order := testOrder(t, uuid.New(), "john@example.com")
	orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	orderRepo.On("Save", ctx, order).Return(nil)

	staffID := uuid.New()
	response, err := service.AssignContact(ctx, order.ID, AssignContactRequest{StaffID: staffID})

	require.NoError(t, err)
	require.NotNil(t, response.LastSpokenTo)
	assert.Equal(t, staffID, *response.LastSpokenTo)
}

func TestOrderService_ListForUser(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo)

	userID := uuid.New()
	orderRepo.On("FindByUser", ctx, userID, mock.AnythingOfType("shared.Filter")).Return([]checkout.Order{}, nil)

	orders, err := service.ListForUser(ctx, userID, 0, 0)

	require.NoError(t, err)
	assert.Empty(t, orders)
}
