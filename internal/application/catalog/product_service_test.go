package catalog

import (
	"context"
	"testing"

	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/booktime/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActiveByTag(ctx context.Context, tagID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tagID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountActive(ctx context.Context, tagID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, tagID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockProductTagRepository is a mock implementation of ProductTagRepository
type MockProductTagRepository struct {
	mock.Mock
}

func (m *MockProductTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductTag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductTag), args.Error(1)
}

func (m *MockProductTagRepository) FindBySlug(ctx context.Context, slug string) (*catalog.ProductTag, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductTag), args.Error(1)
}

func (m *MockProductTagRepository) FindActive(ctx context.Context) ([]catalog.ProductTag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.ProductTag), args.Error(1)
}

func (m *MockProductTagRepository) Save(ctx context.Context, tag *catalog.ProductTag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockProductTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestProduct(t *testing.T, name, slug, price string) *catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyGBPFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(name, slug, money)
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with tags", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		tagRepo := new(MockProductTagRepository)
		service := NewProductService(productRepo, tagRepo)

		tag, err := catalog.NewProductTag("Open source", "opensource")
		require.NoError(t, err)

		productRepo.On("ExistsBySlug", ctx, "cathedral-bazaar").Return(false, nil)
		tagRepo.On("FindBySlug", ctx, "opensource").Return(tag, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		response, err := service.Create(ctx, CreateProductRequest{
			Name:     "The cathedral and the bazaar",
			Slug:     "Cathedral-Bazaar",
			Price:    decimal.RequireFromString("10.00"),
			TagSlugs: []string{"opensource"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "cathedral-bazaar", response.Slug)
		assert.True(t, response.Active)
		assert.Len(t, response.Tags, 1)
		productRepo.AssertExpectations(t)
		tagRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		tagRepo := new(MockProductTagRepository)
		service := NewProductService(productRepo, tagRepo)

		productRepo.On("ExistsBySlug", ctx, "cathedral-bazaar").Return(true, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:  "The cathedral and the bazaar",
			Slug:  "cathedral-bazaar",
			Price: decimal.RequireFromString("10.00"),
		})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown tag", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		tagRepo := new(MockProductTagRepository)
		service := NewProductService(productRepo, tagRepo)

		productRepo.On("ExistsBySlug", ctx, "cathedral-bazaar").Return(false, nil)
		tagRepo.On("FindBySlug", ctx, "nope").Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:     "The cathedral and the bazaar",
			Slug:     "cathedral-bazaar",
			Price:    decimal.RequireFromString("10.00"),
			TagSlugs: []string{"nope"},
		})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TAG_NOT_FOUND", domainErr.Code)
	})
}

func TestProductService_ListActive(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to four items per page ordered by name", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		tagRepo := new(MockProductTagRepository)
		service := NewProductService(productRepo, tagRepo)

		expectedFilter := shared.Filter{
			Page:     1,
			PageSize: 4,
			OrderBy:  "name",
			OrderDir: "asc",
			Filters:  map[string]interface{}{},
		}
		productRepo.On("FindActive", ctx, expectedFilter).Return([]catalog.Product{
			*newTestProduct(t, "A Tale of Two Cities", "tale-two-cities", "2.00"),
		}, nil)
		productRepo.On("CountActive", ctx, (*uuid.UUID)(nil)).Return(int64(1), nil)

		products, total, err := service.ListActive(ctx, ProductListFilter{})

		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, int64(1), total)
		productRepo.AssertExpectations(t)
	})

	t.Run("filters by tag slug", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		tagRepo := new(MockProductTagRepository)
		service := NewProductService(productRepo, tagRepo)

		tag, err := catalog.NewProductTag("Open source", "opensource")
		require.NoError(t, err)

		tagRepo.On("FindBySlug", ctx, "opensource").Return(tag, nil)
		productRepo.On("FindActiveByTag", ctx, tag.ID, mock.AnythingOfType("shared.Filter")).Return([]catalog.Product{
			*newTestProduct(t, "The cathedral and the bazaar", "cathedral-bazaar", "10.00"),
		}, nil)
		productRepo.On("CountActive", ctx, &tag.ID).Return(int64(1), nil)

		products, total, err := service.ListActive(ctx, ProductListFilter{Tag: "opensource"})

		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, int64(1), total)
	})

	t.Run("unknown tag is an error", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		tagRepo := new(MockProductTagRepository)
		service := NewProductService(productRepo, tagRepo)

		tagRepo.On("FindBySlug", ctx, "nope").Return(nil, shared.ErrNotFound)

		_, _, err := service.ListActive(ctx, ProductListFilter{Tag: "nope"})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TAG_NOT_FOUND", domainErr.Code)
	})
}

func TestProductService_GetBySlug(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	tagRepo := new(MockProductTagRepository)
	service := NewProductService(productRepo, tagRepo)

	product := newTestProduct(t, "The cathedral and the bazaar", "cathedral-bazaar", "10.00")
	productRepo.On("FindBySlug", ctx, "cathedral-bazaar").Return(product, nil)

	response, err := service.GetBySlug(ctx, "Cathedral-Bazaar")

	assert.NoError(t, err)
	assert.Equal(t, product.ID, response.ID)
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	tagRepo := new(MockProductTagRepository)
	service := NewProductService(productRepo, tagRepo)

	product := newTestProduct(t, "The cathedral and the bazaar", "cathedral-bazaar", "10.00")
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Save", ctx, product).Return(nil)

	newPrice := decimal.RequireFromString("12.50")
	active := false
	response, err := service.Update(ctx, product.ID, UpdateProductRequest{
		Price:  &newPrice,
		Active: &active,
	})

	assert.NoError(t, err)
	assert.True(t, response.Price.Equal(newPrice))
	assert.False(t, response.Active)
	productRepo.AssertExpectations(t)
}
