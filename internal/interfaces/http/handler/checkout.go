package handler

import (
	checkoutapp "github.com/booktime/backend/internal/application/checkout"
	"github.com/booktime/backend/internal/interfaces/http/dto"
	"github.com/booktime/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutHandler handles order placement and the customer's own orders
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
	orderService    *checkoutapp.OrderService
	basketService   *checkoutapp.BasketService
	sessionConfig   middleware.BasketSessionConfig
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(
	checkoutService *checkoutapp.CheckoutService,
	orderService *checkoutapp.OrderService,
	basketService *checkoutapp.BasketService,
	sessionConfig middleware.BasketSessionConfig,
	logger *zap.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		basketService:   basketService,
		sessionConfig:   sessionConfig,
		logger:          logger,
	}
}

// CreateOrder turns the caller's basket into an order. Requires an
// authenticated user with both addresses in their address book.
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	// Session cookie first, then the user's open basket. A logged-in
	// user on a new device has no cookie but may still have a basket.
	basketID := middleware.GetBasketID(c)
	if basketID == nil {
		if basket, err := h.basketService.GetOpenForUser(c.Request.Context(), userID); err == nil {
			basketID = &basket.ID
		}
	}
	if basketID == nil {
		h.NotFound(c, "No basket yet")
		return
	}

	var req checkoutapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.checkoutService.CreateOrder(
		c.Request.Context(),
		userID,
		middleware.GetJWTEmail(c),
		*basketID,
		req,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// The basket is submitted; drop its session binding
	if err := middleware.ClearBasketSession(c, h.sessionConfig); err != nil {
		h.logger.Warn("failed to clear basket session", zap.Error(err))
	}

	h.Created(c, order)
}

// ListMyOrders returns the caller's orders, newest first
func (h *CheckoutHandler) ListMyOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page := 1
	pageSize := 20
	var query struct {
		Page     int `form:"page" binding:"omitempty,min=1"`
		PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if query.Page > 0 {
		page = query.Page
	}
	if query.PageSize > 0 {
		pageSize = query.PageSize
	}

	orders, err := h.orderService.ListForUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetMyOrder returns one of the caller's orders
func (h *CheckoutHandler) GetMyOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	orderID, _ := uuid.Parse(uri.ID)

	order, err := h.orderService.GetByIDForUser(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
