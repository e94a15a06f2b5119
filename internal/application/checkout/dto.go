package checkout

import (
	"time"

	"github.com/booktime/backend/internal/domain/checkout"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddToBasketRequest represents a request to add a product to the basket
type AddToBasketRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// UpdateBasketLineRequest represents a request to change a line's quantity
type UpdateBasketLineRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CreateOrderRequest represents a checkout request. Both addresses must be
// entries in the calling user's address book.
type CreateOrderRequest struct {
	BillingAddressID  uuid.UUID `json:"billing_address_id" binding:"required"`
	ShippingAddressID uuid.UUID `json:"shipping_address_id" binding:"required"`
}

// UpdateOrderStatusRequest represents a staff request to move an order's status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid done"`
}

// UpdateOrderLineStatusRequest represents a staff request to move a line's status
type UpdateOrderLineStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=processing sent cancelled"`
}

// AssignContactRequest represents a staff request to record who last spoke
// to the customer about an order
type AssignContactRequest struct {
	StaffID uuid.UUID `json:"staff_id" binding:"required"`
}

// OrderListFilter represents the staff order-list filter options
type OrderListFilter struct {
	EmailContains string     `form:"email_contains"`
	Status        string     `form:"status" binding:"omitempty,oneof=new paid done"`
	CreatedAfter  *time.Time `form:"created_after" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedBefore *time.Time `form:"created_before" time_format:"2006-01-02T15:04:05Z07:00"`
	UpdatedAfter  *time.Time `form:"updated_after" time_format:"2006-01-02T15:04:05Z07:00"`
	UpdatedBefore *time.Time `form:"updated_before" time_format:"2006-01-02T15:04:05Z07:00"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BasketLineResponse represents a basket line in API responses
type BasketLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// BasketResponse represents a basket in API responses
type BasketResponse struct {
	ID         uuid.UUID            `json:"id"`
	Status     string               `json:"status"`
	Count      int                  `json:"count"`
	TotalPrice decimal.Decimal      `json:"total_price"`
	Lines      []BasketLineResponse `json:"lines"`
}

// OrderAddressResponse represents an order's address snapshot
type OrderAddressResponse struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	ZipCode  string `json:"zip_code"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// OrderLineResponse represents one purchased unit in API responses
type OrderLineResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Status      string    `json:"status"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID            `json:"id"`
	UserEmail      string               `json:"user_email"`
	Status         string               `json:"status"`
	Summary        string               `json:"summary"`
	TotalPrice     decimal.Decimal      `json:"total_price"`
	MobileThumbURL string               `json:"mobile_thumb_url"`
	LastSpokenTo   *uuid.UUID           `json:"last_spoken_to"`
	Billing        OrderAddressResponse `json:"billing"`
	Shipping       OrderAddressResponse `json:"shipping"`
	Lines          []OrderLineResponse  `json:"lines"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// OrderListResponse represents an order list item (staff view)
type OrderListResponse struct {
	ID           uuid.UUID  `json:"id"`
	UserEmail    string     `json:"user_email"`
	Status       string     `json:"status"`
	Summary      string     `json:"summary"`
	LineCount    int        `json:"line_count"`
	LastSpokenTo *uuid.UUID `json:"last_spoken_to"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToBasketResponse converts a domain Basket to BasketResponse
func ToBasketResponse(b *checkout.Basket) BasketResponse {
	response := BasketResponse{
		ID:         b.ID,
		Status:     b.Status.String(),
		Count:      b.Count(),
		TotalPrice: decimal.Zero,
		Lines:      make([]BasketLineResponse, 0, len(b.Lines)),
	}

	for i := range b.Lines {
		line := &b.Lines[i]
		lineResponse := BasketLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if line.Product != nil {
			lineResponse.ProductName = line.Product.Name
			lineResponse.ProductSlug = line.Product.Slug
			lineResponse.Price = line.Product.Price
			response.TotalPrice = response.TotalPrice.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		response.Lines = append(response.Lines, lineResponse)
	}

	return response
}

func toOrderAddressResponse(a checkout.OrderAddress) OrderAddressResponse {
	return OrderAddressResponse{
		Name:     a.Name,
		Address1: a.Address1,
		Address2: a.Address2,
		ZipCode:  a.ZipCode,
		City:     a.City,
		Country:  a.Country,
	}
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *checkout.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for i := range o.Lines {
		line := &o.Lines[i]
		lineResponse := OrderLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Status:    string(line.Status),
		}
		if line.Product != nil {
			lineResponse.ProductName = line.Product.Name
		}
		lines = append(lines, lineResponse)
	}

	return OrderResponse{
		ID:             o.ID,
		UserEmail:      o.UserEmail,
		Status:         o.Status.String(),
		Summary:        o.Summary(),
		TotalPrice:     o.TotalPrice(),
		MobileThumbURL: o.MobileThumbURL(),
		LastSpokenTo:   o.LastSpokenTo,
		Billing:        toOrderAddressResponse(o.Billing),
		Shipping:       toOrderAddressResponse(o.Shipping),
		Lines:          lines,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// ToOrderListResponse converts a domain Order to OrderListResponse
func ToOrderListResponse(o *checkout.Order) OrderListResponse {
	return OrderListResponse{
		ID:           o.ID,
		UserEmail:    o.UserEmail,
		Status:       o.Status.String(),
		Summary:      o.Summary(),
		LineCount:    o.LineCount(),
		LastSpokenTo: o.LastSpokenTo,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// ToOrderListResponses converts a slice of domain Orders to list responses
func ToOrderListResponses(orders []checkout.Order) []OrderListResponse {
	responses := make([]OrderListResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderListResponse(&orders[i])
	}
	return responses
}
