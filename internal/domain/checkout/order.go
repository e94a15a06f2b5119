package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/booktime/backend/internal/domain/customer"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/booktime/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the payment state of an order
type OrderStatus string

const (
	OrderStatusNew  OrderStatus = "new"
	OrderStatusPaid OrderStatus = "paid"
	OrderStatusDone OrderStatus = "done"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusPaid, OrderStatusDone:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusNew:
		return target == OrderStatusPaid
	case OrderStatusPaid:
		return target == OrderStatusDone
	}
	return false
}

// LineStatus represents the fulfillment state of a single order line
type LineStatus string

const (
	LineStatusNew        LineStatus = "new"
	LineStatusProcessing LineStatus = "processing"
	LineStatusSent       LineStatus = "sent"
	LineStatusCancelled  LineStatus = "cancelled"
)

// IsValid checks if the status is a valid LineStatus
func (s LineStatus) IsValid() bool {
	switch s {
	case LineStatusNew, LineStatusProcessing, LineStatusSent, LineStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the line status can transition to the target
func (s LineStatus) CanTransitionTo(target LineStatus) bool {
	switch s {
	case LineStatusNew:
		return target == LineStatusProcessing || target == LineStatusCancelled
	case LineStatusProcessing:
		return target == LineStatusSent || target == LineStatusCancelled
	}
	return false
}

// OrderAddress holds an address snapshot copied by value at checkout.
// Orders own their copy, so later address-book edits never touch them.
type OrderAddress struct {
	Name     string `gorm:"type:varchar(60);not null"`
	Address1 string `gorm:"type:varchar(60);not null"`
	Address2 string `gorm:"type:varchar(60)"`
	ZipCode  string `gorm:"type:varchar(12)"`
	City     string `gorm:"type:varchar(60);not null"`
	Country  string `gorm:"type:varchar(4);not null"`
}

// snapshotAddress copies an address-book entry into an order-owned value
func snapshotAddress(a *customer.Address) OrderAddress {
	return OrderAddress{
		Name:     a.Name,
		Address1: a.Address1,
		Address2: a.Address2,
		ZipCode:  a.ZipCode,
		City:     a.City,
		Country:  a.Country.String(),
	}
}

// OrderLine is one purchased unit. A basket line with quantity 3 becomes
// three order lines, each independently trackable through fulfillment.
type OrderLine struct {
	shared.BaseEntity
	OrderID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null"`
	Status    LineStatus       `gorm:"type:varchar(20);not null;default:'new'"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// SetStatus moves the line through its fulfillment lifecycle
func (l *OrderLine) SetStatus(target LineStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order line status")
	}
	if !l.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move line from %s to %s", l.Status, target))
	}

	l.Status = target
	l.UpdatedAt = time.Now()

	return nil
}

// Order is the immutable-after-creation snapshot of a completed checkout.
// Only the status fields change after creation.
type Order struct {
	shared.BaseEntity
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index"`
	UserEmail    string       `gorm:"type:varchar(254);not null;index"`
	Status       OrderStatus  `gorm:"type:varchar(20);not null;default:'new'"`
	LastSpokenTo *uuid.UUID   `gorm:"type:uuid"`
	Billing      OrderAddress `gorm:"embedded;embeddedPrefix:billing_"`
	Shipping     OrderAddress `gorm:"embedded;embeddedPrefix:shipping_"`
	Lines        []OrderLine  `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderFromBasket builds an order from an open, non-empty basket. Both
// addresses are copied field by field, and every basket line fans out into
// one order line per unit of quantity. The basket itself is not touched;
// callers submit it and persist both in the same transaction.
func NewOrderFromBasket(userID uuid.UUID, userEmail string, basket *Basket, billing, shipping *customer.Address) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Cannot create order without a user")
	}
	if basket == nil {
		return nil, shared.NewDomainError("INVALID_BASKET", "Basket is required")
	}
	if basket.IsSubmitted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Basket has already been submitted")
	}
	if basket.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_BASKET", "Cannot create order from an empty basket")
	}
	if billing == nil || shipping == nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Billing and shipping addresses are required")
	}

	order := &Order{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		UserEmail:  userEmail,
		Status:     OrderStatusNew,
		Billing:    snapshotAddress(billing),
		Shipping:   snapshotAddress(shipping),
		Lines:      make([]OrderLine, 0, basket.Count()),
	}

	for _, line := range basket.Lines {
		for unit := 0; unit < line.Quantity; unit++ {
			order.Lines = append(order.Lines, OrderLine{
				BaseEntity: shared.NewBaseEntity(),
				OrderID:    order.ID,
				ProductID:  line.ProductID,
				Status:     LineStatusNew,
				Product:    line.Product,
			})
		}
	}

	return order, nil
}

// LineCount returns the number of order lines (total units purchased)
func (o *Order) LineCount() int {
	return len(o.Lines)
}

// Summary groups the order lines by product name and renders a
// human-readable "count x name" list in first-seen order.
func (o *Order) Summary() string {
	names := make([]string, 0, len(o.Lines))
	counts := make(map[string]int, len(o.Lines))

	for _, line := range o.Lines {
		if line.Product == nil {
			continue
		}
		name := line.Product.Name
		if _, seen := counts[name]; !seen {
			names = append(names, name)
		}
		counts[name]++
	}

	pieces := make([]string, 0, len(names))
	for _, name := range names {
		pieces = append(pieces, fmt.Sprintf("%d x %s", counts[name], name))
	}
	return strings.Join(pieces, ", ")
}

// TotalPrice sums the product price of every line. Each purchased unit has
// its own line, so the per-line sum is quantity-correct.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		if line.Product == nil {
			continue
		}
		total = total.Add(line.Product.Price)
	}
	return total
}

// TotalPriceMoney returns the order total as a Money value object
func (o *Order) TotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyGBP(o.TotalPrice())
}

// MobileThumbURL returns the thumbnail path of the first image of the first
// line's product, or "" when no product has an image.
func (o *Order) MobileThumbURL() string {
	for _, line := range o.Lines {
		if line.Product == nil {
			return ""
		}
		if img := line.Product.FirstImage(); img != nil {
			return img.ThumbnailPath
		}
		return ""
	}
	return ""
}

// MarkPaid records a successful payment
func (o *Order) MarkPaid() error {
	if !o.Status.CanTransitionTo(OrderStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark order paid in %s status", o.Status))
	}

	o.Status = OrderStatusPaid
	o.UpdatedAt = time.Now()

	return nil
}

// MarkDone records a fully fulfilled order
func (o *Order) MarkDone() error {
	if !o.Status.CanTransitionTo(OrderStatusDone) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark order done in %s status", o.Status))
	}

	o.Status = OrderStatusDone
	o.UpdatedAt = time.Now()

	return nil
}

// AssignContact records the staff member last spoken to about this order
func (o *Order) AssignContact(staffID uuid.UUID) {
	if staffID == uuid.Nil {
		o.LastSpokenTo = nil
	} else {
		o.LastSpokenTo = &staffID
	}
	o.UpdatedAt = time.Now()
}
