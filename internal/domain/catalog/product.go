package catalog

import (
	"strings"
	"time"

	"github.com/booktime/backend/internal/domain/shared"
	"github.com/booktime/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog
// It is the aggregate root for catalog operations
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(32);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Slug        string          `gorm:"type:varchar(48);not null;uniqueIndex"`
	Active      bool            `gorm:"not null;default:true"`
	InStock     bool            `gorm:"not null;default:true"`
	Tags        []ProductTag    `gorm:"many2many:product_product_tags"`
	Images      []ProductImage  `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active, in-stock product
func NewProduct(name, slug string, price valueobject.Money) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price.Amount().Round(2),
		Slug:       strings.ToLower(slug),
		Active:     true,
		InStock:    true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()

	return nil
}

// SetPrice updates the product price
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price.Amount().Round(2)
	p.UpdatedAt = time.Now()

	return nil
}

// PriceMoney returns the price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyGBP(p.Price)
}

// Activate makes the product visible in the active catalog
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// Deactivate hides the product from the active catalog
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// MarkOutOfStock flags the product as unavailable for purchase
func (p *Product) MarkOutOfStock() {
	p.InStock = false
	p.UpdatedAt = time.Now()
}

// MarkInStock flags the product as available for purchase
func (p *Product) MarkInStock() {
	p.InStock = true
	p.UpdatedAt = time.Now()
}

// ReplaceTags replaces the product's tag set
func (p *Product) ReplaceTags(tags []ProductTag) {
	p.Tags = tags
	p.UpdatedAt = time.Now()
}

// FirstImage returns the product's first image, or nil if it has none
func (p *Product) FirstImage() *ProductImage {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 32 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 32 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 48 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 48 characters")
	}
	if strings.ContainsAny(slug, " /") {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot contain spaces or slashes")
	}
	return nil
}
