package handler

import (
	catalogapp "github.com/booktime/backend/internal/application/catalog"
	"github.com/booktime/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles product and tag API endpoints
type CatalogHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	tagService     *catalogapp.TagService
	imageService   *catalogapp.ImageService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	productService *catalogapp.ProductService,
	tagService *catalogapp.TagService,
	imageService *catalogapp.ImageService,
) *CatalogHandler {
	return &CatalogHandler{
		productService: productService,
		tagService:     tagService,
		imageService:   imageService,
	}
}

// ListProducts returns the storefront product list, paginated and
// optionally filtered by tag or search term
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, total, err := h.productService.ListActive(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = h.productService.Config().PageSize
	}
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// GetProduct returns a single product by slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListTags returns all active tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tags)
}

// GetTag returns a single tag by slug
func (h *CatalogHandler) GetTag(c *gin.Context) {
	tag, err := h.tagService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tag)
}

// CreateProduct creates a new product (staff only)
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// ListAllProducts returns all products including inactive ones (staff only)
func (h *CatalogHandler) ListAllProducts(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// UpdateProduct updates a product (staff only)
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	productID, _ := uuid.Parse(uri.ID)

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct deletes a product (staff only)
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	productID, _ := uuid.Parse(uri.ID)

	if err := h.productService.Delete(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateTag creates a new tag (staff only)
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req catalogapp.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tag)
}

// UpdateTag updates a tag (staff only)
func (h *CatalogHandler) UpdateTag(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid tag ID")
		return
	}
	tagID, _ := uuid.Parse(uri.ID)

	var req catalogapp.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), tagID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tag)
}

// DeleteTag deletes a tag (staff only)
func (h *CatalogHandler) DeleteTag(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid tag ID")
		return
	}
	tagID, _ := uuid.Parse(uri.ID)

	if err := h.tagService.Delete(c.Request.Context(), tagID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadImage attaches an image to a product and generates its thumbnail (staff only)
func (h *CatalogHandler) UploadImage(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	productID, _ := uuid.Parse(uri.ID)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Missing image file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	image, err := h.imageService.Upload(
		c.Request.Context(),
		productID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, image)
}

// ListImages returns the images of a product
func (h *CatalogHandler) ListImages(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	productID, _ := uuid.Parse(uri.ID)

	images, err := h.imageService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, images)
}

// DeleteImage removes a product image (staff only)
func (h *CatalogHandler) DeleteImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		h.BadRequest(c, "Invalid image ID")
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), productID, imageID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
