package catalog

import (
	"time"

	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=32"`
	Slug        string          `json:"slug" binding:"required,min=1,max=48"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	InStock     *bool           `json:"in_stock"`
	TagSlugs    []string        `json:"tag_slugs"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=32"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
	InStock     *bool            `json:"in_stock"`
	TagSlugs    []string         `json:"tag_slugs"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Tag      string `form:"tag"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TagResponse represents a product tag in API responses
type TagResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
}

// ImageResponse represents a product image in API responses
type ImageResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	ImagePath     string    `json:"image_path"`
	ThumbnailPath string    `json:"thumbnail_path"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	InStock     bool            `json:"in_stock"`
	Tags        []TagResponse   `json:"tags"`
	Images      []ImageResponse `json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	InStock   bool            `json:"in_stock"`
	ThumbURL  string          `json:"thumb_url"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateTagRequest represents a request to create a product tag
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=32"`
	Slug        string `json:"slug" binding:"required,min=1,max=48"`
	Description string `json:"description"`
}

// UpdateTagRequest represents a request to update a product tag
type UpdateTagRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=32"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// ToTagResponse converts a domain ProductTag to TagResponse
func ToTagResponse(t *catalog.ProductTag) TagResponse {
	return TagResponse{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		Active:      t.Active,
	}
}

// ToTagResponses converts a slice of domain ProductTags to TagResponses
func ToTagResponses(tags []catalog.ProductTag) []TagResponse {
	responses := make([]TagResponse, len(tags))
	for i := range tags {
		responses[i] = ToTagResponse(&tags[i])
	}
	return responses
}

// ToImageResponse converts a domain ProductImage to ImageResponse
func ToImageResponse(img *catalog.ProductImage) ImageResponse {
	return ImageResponse{
		ID:            img.ID,
		ProductID:     img.ProductID,
		ImagePath:     img.ImagePath,
		ThumbnailPath: img.ThumbnailPath,
	}
}

// ToImageResponses converts a slice of domain ProductImages to ImageResponses
func ToImageResponses(images []catalog.ProductImage) []ImageResponse {
	responses := make([]ImageResponse, len(images))
	for i := range images {
		responses[i] = ToImageResponse(&images[i])
	}
	return responses
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Active:      p.Active,
		InStock:     p.InStock,
		Tags:        ToTagResponses(p.Tags),
		Images:      ToImageResponses(p.Images),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductListResponse converts a domain Product to ProductListResponse
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	response := ProductListResponse{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price,
		InStock:   p.InStock,
		CreatedAt: p.CreatedAt,
	}
	if img := p.FirstImage(); img != nil {
		response.ThumbURL = img.ThumbnailPath
	}
	return response
}

// ToProductListResponses converts a slice of domain Products to list responses
func ToProductListResponses(products []catalog.Product) []ProductListResponse {
	responses := make([]ProductListResponse, len(products))
	for i := range products {
		responses[i] = ToProductListResponse(&products[i])
	}
	return responses
}
