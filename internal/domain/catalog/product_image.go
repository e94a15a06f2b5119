package catalog

import (
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductImage is an uploaded image for a product together with its
// generated thumbnail. Paths are storage keys resolved to URLs by the
// storage backend at the API boundary.
type ProductImage struct {
	shared.BaseEntity
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ImagePath     string    `gorm:"type:varchar(255);not null"`
	ThumbnailPath string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}

// NewProductImage creates a new product image record
func NewProductImage(productID uuid.UUID, imagePath, thumbnailPath string) (*ProductImage, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if imagePath == "" {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image path cannot be empty")
	}

	return &ProductImage{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		ImagePath:     imagePath,
		ThumbnailPath: thumbnailPath,
	}, nil
}
