package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/booktime/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	// PageSize is the default page size for storefront listings
	PageSize int
}

// DefaultProductServiceConfig returns the default configuration
func DefaultProductServiceConfig() ProductServiceConfig {
	return ProductServiceConfig{
		PageSize: 4,
	}
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	tagRepo     catalog.ProductTagRepository
	config      ProductServiceConfig
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, tagRepo catalog.ProductTagRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		tagRepo:     tagRepo,
		config:      DefaultProductServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *ProductService) SetConfig(config ProductServiceConfig) {
	if config.PageSize > 0 {
		s.config = config
	}
}

// Config returns the current service configuration
func (s *ProductService) Config() ProductServiceConfig {
	return s.config
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySlug(ctx, strings.ToLower(req.Slug))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	price, err := valueobject.NewMoney(req.Price, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Slug, price)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.InStock != nil && !*req.InStock {
		product.MarkOutOfStock()
	}

	if len(req.TagSlugs) > 0 {
		tags, err := s.resolveTags(ctx, req.TagSlugs)
		if err != nil {
			return nil, err
		}
		product.ReplaceTags(tags)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves a product by slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// ListActive lists active products for the storefront, ordered by name.
// When a tag slug is given, only products carrying that tag are returned;
// an unknown tag is an error rather than an empty page.
func (s *ProductService) ListActive(ctx context.Context, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = s.config.PageSize
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Tag != "" {
		tag, err := s.tagRepo.FindBySlug(ctx, strings.ToLower(filter.Tag))
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, 0, shared.NewDomainError("TAG_NOT_FOUND", "Tag not found")
			}
			return nil, 0, err
		}

		products, err := s.productRepo.FindActiveByTag(ctx, tag.ID, domainFilter)
		if err != nil {
			return nil, 0, err
		}
		total, err := s.productRepo.CountActive(ctx, &tag.ID)
		if err != nil {
			return nil, 0, err
		}
		return ToProductListResponses(products), total, nil
	}

	products, err := s.productRepo.FindActive(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountActive(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	return ToProductListResponses(products), total, nil
}

// List lists all products regardless of active flag (staff view)
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductListResponses(products), total, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		price, err := valueobject.NewMoney(*req.Price, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		if err := product.SetPrice(price); err != nil {
			return nil, err
		}
	}

	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if req.InStock != nil {
		if *req.InStock {
			product.MarkInStock()
		} else {
			product.MarkOutOfStock()
		}
	}

	if req.TagSlugs != nil {
		tags, err := s.resolveTags(ctx, req.TagSlugs)
		if err != nil {
			return nil, err
		}
		product.ReplaceTags(tags)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *ProductService) resolveTags(ctx context.Context, slugs []string) ([]catalog.ProductTag, error) {
	tags := make([]catalog.ProductTag, 0, len(slugs))
	for _, slug := range slugs {
		tag, err := s.tagRepo.FindBySlug(ctx, strings.ToLower(slug))
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("TAG_NOT_FOUND", "Tag not found: "+slug)
			}
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
