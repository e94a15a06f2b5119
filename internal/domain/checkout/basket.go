package checkout

import (
	"time"

	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BasketStatus represents the lifecycle state of a basket
type BasketStatus string

const (
	BasketStatusOpen      BasketStatus = "open"
	BasketStatusSubmitted BasketStatus = "submitted"
)

// IsValid checks if the status is a valid BasketStatus
func (s BasketStatus) IsValid() bool {
	switch s {
	case BasketStatusOpen, BasketStatusSubmitted:
		return true
	}
	return false
}

// String returns the string representation of BasketStatus
func (s BasketStatus) String() string {
	return string(s)
}

// BasketLine is one distinct product in a basket with its quantity.
// A basket never holds two lines for the same product.
type BasketLine struct {
	shared.BaseEntity
	BasketID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null"`
	Quantity  int              `gorm:"not null;default:1"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (BasketLine) TableName() string {
	return "basket_lines"
}

// Basket is the per-session shopping cart aggregate root. UserID is nil for
// anonymous sessions. A basket stays open until checkout submits it; a
// submitted basket is never reopened.
type Basket struct {
	shared.BaseEntity
	UserID *uuid.UUID   `gorm:"type:uuid;index"`
	Status BasketStatus `gorm:"type:varchar(20);not null;default:'open'"`
	Lines  []BasketLine `gorm:"foreignKey:BasketID"`
}

// TableName returns the table name for GORM
func (Basket) TableName() string {
	return "baskets"
}

// NewBasket creates a new open basket, optionally owned by a user
func NewBasket(userID *uuid.UUID) *Basket {
	return &Basket{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Status:     BasketStatusOpen,
		Lines:      make([]BasketLine, 0),
	}
}

// AssignUser claims an anonymous basket for a user. Claiming a basket that
// already belongs to another user is an error.
func (b *Basket) AssignUser(userID uuid.UUID) error {
	if b.IsSubmitted() {
		return shared.NewDomainError("INVALID_STATE", "Cannot claim a submitted basket")
	}
	if b.UserID != nil && *b.UserID != userID {
		return shared.NewDomainError("FORBIDDEN", "Basket belongs to another user")
	}
	b.UserID = &userID
	b.UpdatedAt = time.Now()
	return nil
}

// IsEmpty returns true iff the basket owns zero lines
func (b *Basket) IsEmpty() bool {
	return len(b.Lines) == 0
}

// Count returns the total number of units across all lines
func (b *Basket) Count() int {
	total := 0
	for _, line := range b.Lines {
		total += line.Quantity
	}
	return total
}

// IsSubmitted returns true once the basket has been through checkout
func (b *Basket) IsSubmitted() bool {
	return b.Status == BasketStatusSubmitted
}

// AddProduct adds one unit of the product to the basket. If the basket
// already holds a line for the product the line's quantity is incremented,
// so there is always at most one line per distinct product.
func (b *Basket) AddProduct(productID uuid.UUID) (*BasketLine, error) {
	if b.IsSubmitted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add to a submitted basket")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	for idx := range b.Lines {
		if b.Lines[idx].ProductID == productID {
			b.Lines[idx].Quantity++
			b.Lines[idx].UpdatedAt = time.Now()
			b.UpdatedAt = time.Now()
			return &b.Lines[idx], nil
		}
	}

	line := BasketLine{
		BaseEntity: shared.NewBaseEntity(),
		BasketID:   b.ID,
		ProductID:  productID,
		Quantity:   1,
	}
	b.Lines = append(b.Lines, line)
	b.UpdatedAt = time.Now()

	return &b.Lines[len(b.Lines)-1], nil
}

// SetLineQuantity sets the quantity of the line holding the given product.
// Quantity below 1 is rejected; removing a line is a separate operation.
func (b *Basket) SetLineQuantity(productID uuid.UUID, quantity int) error {
	if b.IsSubmitted() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a submitted basket")
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for idx := range b.Lines {
		if b.Lines[idx].ProductID == productID {
			b.Lines[idx].Quantity = quantity
			b.Lines[idx].UpdatedAt = time.Now()
			b.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Basket has no line for this product")
}

// RemoveProduct drops the line holding the given product
func (b *Basket) RemoveProduct(productID uuid.UUID) error {
	if b.IsSubmitted() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a submitted basket")
	}

	for idx := range b.Lines {
		if b.Lines[idx].ProductID == productID {
			b.Lines = append(b.Lines[:idx], b.Lines[idx+1:]...)
			b.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Basket has no line for this product")
}

// Submit marks the basket as checked out. Submission is terminal: the lines
// stay in place but no further mutation is allowed, and submitting twice
// fails.
func (b *Basket) Submit() error {
	if b.IsSubmitted() {
		return shared.NewDomainError("INVALID_STATE", "Basket has already been submitted")
	}
	if b.IsEmpty() {
		return shared.NewDomainError("EMPTY_BASKET", "Cannot submit an empty basket")
	}

	b.Status = BasketStatusSubmitted
	b.UpdatedAt = time.Now()

	return nil
}

// GetLine returns the line for a product, or nil if the basket has none
func (b *Basket) GetLine(productID uuid.UUID) *BasketLine {
	for idx := range b.Lines {
		if b.Lines[idx].ProductID == productID {
			return &b.Lines[idx]
		}
	}
	return nil
}
