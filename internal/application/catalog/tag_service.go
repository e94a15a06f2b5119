package catalog

import (
	"context"
	"strings"

	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// TagService handles product tag operations
type TagService struct {
	tagRepo catalog.ProductTagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo catalog.ProductTagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// Create creates a new product tag
func (s *TagService) Create(ctx context.Context, req CreateTagRequest) (*TagResponse, error) {
	tag, err := catalog.NewProductTag(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := tag.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}

	response := ToTagResponse(tag)
	return &response, nil
}

// GetBySlug retrieves a tag by slug
func (s *TagService) GetBySlug(ctx context.Context, slug string) (*TagResponse, error) {
	tag, err := s.tagRepo.FindBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, err
	}

	response := ToTagResponse(tag)
	return &response, nil
}

// ListActive lists all active tags
func (s *TagService) ListActive(ctx context.Context) ([]TagResponse, error) {
	tags, err := s.tagRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToTagResponses(tags), nil
}

// Update updates a tag
func (s *TagService) Update(ctx context.Context, tagID uuid.UUID, req UpdateTagRequest) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := tag.Name
		description := tag.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := tag.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Active != nil {
		tag.Active = *req.Active
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}

	response := ToTagResponse(tag)
	return &response, nil
}

// Delete deletes a tag
func (s *TagService) Delete(ctx context.Context, tagID uuid.UUID) error {
	if _, err := s.tagRepo.FindByID(ctx, tagID); err != nil {
		return err
	}
	return s.tagRepo.Delete(ctx, tagID)
}
