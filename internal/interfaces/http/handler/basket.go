package handler

import (
	checkoutapp "github.com/booktime/backend/internal/application/checkout"
	"github.com/booktime/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BasketHandler handles basket API endpoints. The basket is resolved from
// the session cookie for anonymous visitors and from the user's open basket
// for authenticated ones.
type BasketHandler struct {
	BaseHandler
	basketService *checkoutapp.BasketService
	sessionConfig middleware.BasketSessionConfig
	logger        *zap.Logger
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(
	basketService *checkoutapp.BasketService,
	sessionConfig middleware.BasketSessionConfig,
	logger *zap.Logger,
) *BasketHandler {
	return &BasketHandler{
		basketService: basketService,
		sessionConfig: sessionConfig,
		logger:        logger,
	}
}

// resolveBasketID finds the caller's basket: session cookie first, then the
// authenticated user's open basket
func (h *BasketHandler) resolveBasketID(c *gin.Context) *uuid.UUID {
	if basketID := middleware.GetBasketID(c); basketID != nil {
		return basketID
	}

	if userID := getOptionalUserID(c); userID != nil {
		if basket, err := h.basketService.GetOpenForUser(c.Request.Context(), *userID); err == nil {
			return &basket.ID
		}
	}
	return nil
}

// Get returns the caller's basket
func (h *BasketHandler) Get(c *gin.Context) {
	basketID := h.resolveBasketID(c)
	if basketID == nil {
		h.NotFound(c, "No basket yet")
		return
	}

	basket, err := h.basketService.Get(c.Request.Context(), *basketID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// AddProduct adds one unit of a product to the basket, creating the basket
// and its session binding on first use
func (h *BasketHandler) AddProduct(c *gin.Context) {
	var req checkoutapp.AddToBasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	basketID := h.resolveBasketID(c)
	userID := getOptionalUserID(c)

	basket, err := h.basketService.AddProduct(c.Request.Context(), basketID, userID, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := middleware.BindBasketSession(c, h.sessionConfig, basket.ID); err != nil {
		h.logger.Warn("failed to bind basket session", zap.Error(err))
	}

	h.Success(c, basket)
}

// UpdateLine sets the quantity of a basket line. Quantity below one removes
// the line.
func (h *BasketHandler) UpdateLine(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req checkoutapp.UpdateBasketLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	basketID := h.resolveBasketID(c)
	if basketID == nil {
		h.NotFound(c, "No basket yet")
		return
	}

	var basket *checkoutapp.BasketResponse
	if req.Quantity < 1 {
		basket, err = h.basketService.RemoveProduct(c.Request.Context(), *basketID, productID)
	} else {
		basket, err = h.basketService.SetLineQuantity(c.Request.Context(), *basketID, productID, req.Quantity)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// RemoveProduct removes a product's line from the basket
func (h *BasketHandler) RemoveProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	basketID := h.resolveBasketID(c)
	if basketID == nil {
		h.NotFound(c, "No basket yet")
		return
	}

	basket, err := h.basketService.RemoveProduct(c.Request.Context(), *basketID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// Claim attaches the session basket to the authenticated user, merging it
// into the user's existing open basket when there is one
func (h *BasketHandler) Claim(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	basketID := middleware.GetBasketID(c)
	if basketID == nil {
		h.NotFound(c, "No basket yet")
		return
	}

	basket, err := h.basketService.Claim(c.Request.Context(), *basketID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Rebind so the session follows the surviving basket after a merge
	if err := middleware.BindBasketSession(c, h.sessionConfig, basket.ID); err != nil {
		h.logger.Warn("failed to rebind basket session", zap.Error(err))
	}

	h.Success(c, basket)
}
