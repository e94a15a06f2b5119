package checkout

import (
	"context"
	"errors"

	"github.com/booktime/backend/internal/domain/catalog"
	"github.com/booktime/backend/internal/domain/checkout"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BasketService handles basket operations. Baskets are created lazily: a
// visitor gets one only when the first product is added.
type BasketService struct {
	basketRepo  checkout.BasketRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewBasketService creates a new BasketService
func NewBasketService(basketRepo checkout.BasketRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *BasketService {
	return &BasketService{
		basketRepo:  basketRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get retrieves a basket with its lines and products
func (s *BasketService) Get(ctx context.Context, basketID uuid.UUID) (*BasketResponse, error) {
	basket, err := s.basketRepo.FindByID(ctx, basketID)
	if err != nil {
		return nil, err
	}

	response := ToBasketResponse(basket)
	return &response, nil
}

// GetOpenForUser retrieves the user's open basket
func (s *BasketService) GetOpenForUser(ctx context.Context, userID uuid.UUID) (*BasketResponse, error) {
	basket, err := s.basketRepo.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToBasketResponse(basket)
	return &response, nil
}

// AddProduct adds one unit of a product to the basket. When basketID is nil
// a new basket is created and its ID is part of the returned response, so
// the caller can bind it to the visitor's session.
func (s *BasketService) AddProduct(ctx context.Context, basketID *uuid.UUID, userID *uuid.UUID, productID uuid.UUID) (*BasketResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is not available")
	}

	basket, err := s.resolveOrCreate(ctx, basketID, userID)
	if err != nil {
		return nil, err
	}

	line, err := basket.AddProduct(productID)
	if err != nil {
		return nil, err
	}
	line.Product = product

	if err := s.basketRepo.Save(ctx, basket); err != nil {
		return nil, err
	}

	s.logger.Debug("added product to basket",
		zap.String("basket_id", basket.ID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", line.Quantity))

	response := ToBasketResponse(basket)
	return &response, nil
}

// SetLineQuantity changes the quantity of the basket line for a product
func (s *BasketService) SetLineQuantity(ctx context.Context, basketID, productID uuid.UUID, quantity int) (*BasketResponse, error) {
	basket, err := s.basketRepo.FindByID(ctx, basketID)
	if err != nil {
		return nil, err
	}

	if err := basket.SetLineQuantity(productID, quantity); err != nil {
		return nil, err
	}
	if err := s.basketRepo.Save(ctx, basket); err != nil {
		return nil, err
	}

	response := ToBasketResponse(basket)
	return &response, nil
}

// RemoveProduct removes the basket line for a product
func (s *BasketService) RemoveProduct(ctx context.Context, basketID, productID uuid.UUID) (*BasketResponse, error) {
	basket, err := s.basketRepo.FindByID(ctx, basketID)
	if err != nil {
		return nil, err
	}

	if err := basket.RemoveProduct(productID); err != nil {
		return nil, err
	}
	if err := s.basketRepo.Save(ctx, basket); err != nil {
		return nil, err
	}

	response := ToBasketResponse(basket)
	return &response, nil
}

// Claim binds an anonymous session basket to a user after login. If the
// user already owns an open basket the session basket's lines are merged
// into it and the session basket is deleted.
func (s *BasketService) Claim(ctx context.Context, basketID, userID uuid.UUID) (*BasketResponse, error) {
	basket, err := s.basketRepo.FindByID(ctx, basketID)
	if err != nil {
		return nil, err
	}

	existing, err := s.basketRepo.FindOpenByUser(ctx, userID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if existing == nil || existing.ID == basket.ID {
		if err := basket.AssignUser(userID); err != nil {
			return nil, err
		}
		if err := s.basketRepo.Save(ctx, basket); err != nil {
			return nil, err
		}
		response := ToBasketResponse(basket)
		return &response, nil
	}

	for i := range basket.Lines {
		line := &basket.Lines[i]
		merged, err := existing.AddProduct(line.ProductID)
		if err != nil {
			return nil, err
		}
		merged.Product = line.Product
		if line.Quantity > 1 {
			if err := existing.SetLineQuantity(line.ProductID, merged.Quantity+line.Quantity-1); err != nil {
				return nil, err
			}
		}
	}

	if err := s.basketRepo.Save(ctx, existing); err != nil {
		return nil, err
	}
	if err := s.basketRepo.Delete(ctx, basket.ID); err != nil {
		return nil, err
	}

	s.logger.Info("merged session basket into user basket",
		zap.String("session_basket_id", basket.ID.String()),
		zap.String("user_basket_id", existing.ID.String()))

	response := ToBasketResponse(existing)
	return &response, nil
}

func (s *BasketService) resolveOrCreate(ctx context.Context, basketID *uuid.UUID, userID *uuid.UUID) (*checkout.Basket, error) {
	if basketID != nil {
		basket, err := s.basketRepo.FindByID(ctx, *basketID)
		if err == nil && !basket.IsSubmitted() {
			return basket, nil
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if userID != nil {
		basket, err := s.basketRepo.FindOpenByUser(ctx, *userID)
		if err == nil {
			return basket, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	return checkout.NewBasket(userID), nil
}
