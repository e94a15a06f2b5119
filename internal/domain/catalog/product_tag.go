package catalog

import (
	"strings"
	"time"

	"github.com/booktime/backend/internal/domain/shared"
)

// ProductTag is a browsing category products can belong to
type ProductTag struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(32);not null"`
	Slug        string `gorm:"type:varchar(48);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductTag) TableName() string {
	return "product_tags"
}

// NewProductTag creates a new active tag
func NewProductTag(name, slug string) (*ProductTag, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	return &ProductTag{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       strings.ToLower(slug),
		Active:     true,
	}, nil
}

// Update updates the tag's display information
func (t *ProductTag) Update(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}

	t.Name = name
	t.Description = description
	t.UpdatedAt = time.Now()

	return nil
}

// String returns the tag name
func (t *ProductTag) String() string {
	return t.Name
}
