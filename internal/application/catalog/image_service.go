package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AllowedImageContentTypes is the whitelist of content types accepted for
// product image uploads. SVG is excluded because it can carry scripts.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// ObjectStorage defines the interface for image blob storage.
// Implemented by the infrastructure layer (S3 or local filesystem).
type ObjectStorage interface {
	// Put stores an object under the given key
	Put(ctx context.Context, key, contentType string, body io.Reader) error

	// Delete removes an object
	Delete(ctx context.Context, key string) error
}

const (
	imagePrefix     = "product-images"
	thumbnailPrefix = "product-thumbnails"
	thumbnailSize   = 128
)

// ImageService handles product image uploads. Every stored image gets a
// 128px thumbnail rendered alongside it.
type ImageService struct {
	imageRepo   catalog.ProductImageRepository
	productRepo catalog.ProductRepository
	storage     ObjectStorage
	logger      *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(
	imageRepo catalog.ProductImageRepository,
	productRepo catalog.ProductRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *ImageService {
	return &ImageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		storage:     storage,
		logger:      logger,
	}
}

// Upload stores an image for a product and renders its thumbnail
func (s *ImageService) Upload(ctx context.Context, productID uuid.UUID, filename, contentType string, body io.Reader) (*ImageResponse, error) {
	if !AllowedImageContentTypes[contentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type not allowed for product images")
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read image upload: %w", err)
	}

	source, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Uploaded file is not a decodable image")
	}

	thumb := imaging.Fit(source, thumbnailSize, thumbnailSize, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	if err := imaging.Encode(&thumbBuf, thumb, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	key := uuid.New().String()
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	imagePath := fmt.Sprintf("%s/%s%s", imagePrefix, key, ext)
	thumbnailPath := fmt.Sprintf("%s/%s.jpg", thumbnailPrefix, key)

	if err := s.storage.Put(ctx, imagePath, contentType, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	if err := s.storage.Put(ctx, thumbnailPath, "image/jpeg", &thumbBuf); err != nil {
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	image, err := catalog.NewProductImage(productID, imagePath, thumbnailPath)
	if err != nil {
		return nil, err
	}
	if err := s.imageRepo.Save(ctx, image); err != nil {
		return nil, err
	}

	s.logger.Info("stored product image",
		zap.String("product_id", productID.String()),
		zap.String("image_path", imagePath),
		zap.String("thumbnail_path", thumbnailPath))

	response := ToImageResponse(image)
	return &response, nil
}

// ListByProduct lists all images for a product
func (s *ImageService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ImageResponse, error) {
	images, err := s.imageRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToImageResponses(images), nil
}

// Delete removes an image record and its stored blobs
func (s *ImageService) Delete(ctx context.Context, productID, imageID uuid.UUID) error {
	images, err := s.imageRepo.FindByProduct(ctx, productID)
	if err != nil {
		return err
	}

	for i := range images {
		if images[i].ID != imageID {
			continue
		}
		if err := s.imageRepo.Delete(ctx, imageID); err != nil {
			return err
		}
		if err := s.storage.Delete(ctx, images[i].ImagePath); err != nil {
			s.logger.Warn("failed to delete stored image", zap.String("key", images[i].ImagePath), zap.Error(err))
		}
		if err := s.storage.Delete(ctx, images[i].ThumbnailPath); err != nil {
			s.logger.Warn("failed to delete stored thumbnail", zap.String("key", images[i].ThumbnailPath), zap.Error(err))
		}
		return nil
	}

	return shared.ErrNotFound
}
