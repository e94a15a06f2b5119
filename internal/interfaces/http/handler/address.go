package handler

import (
	customerapp "github.com/booktime/backend/internal/application/customer"
	"github.com/booktime/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddressHandler handles the customer's address book endpoints
type AddressHandler struct {
	BaseHandler
	addressService *customerapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *customerapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// List returns the caller's addresses
func (h *AddressHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// Get returns one of the caller's addresses
func (h *AddressHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}
	addressID, _ := uuid.Parse(uri.ID)

	address, err := h.addressService.GetByID(c.Request.Context(), userID, addressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, address)
}

// Create adds an address to the caller's address book
func (h *AddressHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req customerapp.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, address)
}

// Update changes one of the caller's addresses
func (h *AddressHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}
	addressID, _ := uuid.Parse(uri.ID)

	var req customerapp.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addressService.Update(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, address)
}

// Delete removes one of the caller's addresses
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}
	addressID, _ := uuid.Parse(uri.ID)

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Countries returns the countries addresses can be shipped to
func (h *AddressHandler) Countries(c *gin.Context) {
	h.Success(c, h.addressService.SupportedCountries())
}
