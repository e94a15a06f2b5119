package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/booktime/backend/internal/application/catalog"
	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/booktime/backend/internal/domain/shared/valueobject"
	"github.com/booktime/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository implements catalog.ProductRepository for testing
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

// MockProductTagRepository implements catalog.ProductTagRepository for testing
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

// MockProductImageRepository implements catalog.ProductImageRepository for testing
type MockProductImageRepository struct {
	mock.Mock
}

func (m *MockProductImageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductImage, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.ProductImage), args.Error(1)
}

func (m *MockProductImageRepository) Save(ctx context.Context, image *catalog.ProductImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockProductImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectStorage implements catalogapp.ObjectStorage for testing
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Test setup helpers

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func setupCatalogHandler(productRepo *MockProductRepository, tagRepo *MockProductTagRepository) *CatalogHandler {
	productService := catalogapp.NewProductService(productRepo, tagRepo)
	productService.SetConfig(catalogapp.ProductServiceConfig{PageSize: 4})
	tagService := catalogapp.NewTagService(tagRepo)
	imageService := catalogapp.NewImageService(new(MockProductImageRepository), productRepo, new(MockObjectStorage), zap.NewNop())
	return NewCatalogHandler(productService, tagService, imageService)
}

func storefrontProduct(t *testing.T, name, slug, price string) catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyGBPFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(name, slug, money)
	require.NoError(t, err)
	return *product
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var response dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// Tests

func TestCatalogHandler_ListProducts_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockProductTagRepository)
	handler := setupCatalogHandler(productRepo, tagRepo)

	products := []catalog.Product{
		storefrontProduct(t, "A Tale of Two Cities", "tale-two-cities", "2.00"),
		storefrontProduct(t, "The Cathedral and the Bazaar", "cathedral-bazaar", "10.00"),
	}
	productRepo.On("FindActive", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(products, nil)
	productRepo.On("CountActive", mock.Anything, (*uuid.UUID)(nil)).Return(int64(2), nil)

	router := setupTestRouter()
	router.GET("/products", handler.ListProducts)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.True(t, response.Success)
	require.NotNil(t, response.Meta)
	assert.Equal(t, int64(2), response.Meta.Total)
	assert.Equal(t, 4, response.Meta.PageSize)
	productRepo.AssertExpectations(t)
}

func TestCatalogHandler_ListProducts_UnknownTag(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockProductTagRepository)
	handler := setupCatalogHandler(productRepo, tagRepo)

	tagRepo.On("FindBySlug", mock.Anything, "missing").Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.GET("/products", handler.ListProducts)

	req := httptest.NewRequest(http.MethodGet, "/products?tag=missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := decodeResponse(t, w)
	require.NotNil(t, response.Error)
	assert.Equal(t, dto.ErrCodeNotFound, response.Error.Code)
}

func TestCatalogHandler_GetProduct_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockProductTagRepository)
	handler := setupCatalogHandler(productRepo, tagRepo)

	productRepo.On("FindBySlug", mock.Anything, "missing").Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.GET("/products/:slug", handler.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	productRepo.AssertExpectations(t)
}

func TestCatalogHandler_GetTag_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockProductTagRepository)
	handler := setupCatalogHandler(productRepo, tagRepo)

	tag, err := catalog.NewProductTag("Open source", "opensource")
	require.NoError(t, err)
	tagRepo.On("FindBySlug", mock.Anything, "opensource").Return(tag, nil)

	router := setupTestRouter()
	router.GET("/tags/:slug", handler.GetTag)

	req := httptest.NewRequest(http.MethodGet, "/tags/opensource", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.True(t, response.Success)
	tagRepo.AssertExpectations(t)
}
