package checkout

import (
	"context"

	"github.com/booktime/backend/internal/domain/checkout"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderService handles order queries and the staff-side order workflow
type OrderService struct {
	orderRepo checkout.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo checkout.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetByIDForUser retrieves one of the user's own orders
func (s *OrderService) GetByIDForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// ListForUser lists the user's own orders, newest first
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]OrderListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	filter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderListResponses(orders), nil
}

// GetByID retrieves any order (staff view)
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List lists orders for staff, filterable by customer email fragment,
// status, and creation or update time bounds.
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}

	if filter.EmailContains != "" {
		domainFilter.Filters["email_contains"] = filter.EmailContains
	}
	if filter.Status != "" {
		status := checkout.OrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CreatedAfter != nil {
		domainFilter.Filters["created_after"] = *filter.CreatedAfter
	}
	if filter.CreatedBefore != nil {
		domainFilter.Filters["created_before"] = *filter.CreatedBefore
	}
	if filter.UpdatedAfter != nil {
		domainFilter.Filters["updated_after"] = *filter.UpdatedAfter
	}
	if filter.UpdatedBefore != nil {
		domainFilter.Filters["updated_before"] = *filter.UpdatedBefore
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderListResponses(orders), total, nil
}

// UpdateStatus moves an order through its lifecycle (staff)
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch checkout.OrderStatus(req.Status) {
	case checkout.OrderStatusPaid:
		err = order.MarkPaid()
	case checkout.OrderStatusDone:
		err = order.MarkDone()
	default:
		err = shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateLineStatus moves a single order line through fulfillment (staff)
func (s *OrderService) UpdateLineStatus(ctx context.Context, orderID, lineID uuid.UUID, req UpdateOrderLineStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range order.Lines {
		if order.Lines[i].ID != lineID {
			continue
		}
		if err := order.Lines[i].SetStatus(checkout.LineStatus(req.Status)); err != nil {
			return nil, err
		}
		found = true
		break
	}
	if !found {
		return nil, shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// AssignContact records the staff member who last spoke to the customer
func (s *OrderService) AssignContact(ctx context.Context, orderID uuid.UUID, req AssignContactRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.AssignContact(req.StaffID)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}
