package handler

import (
	contactapp "github.com/booktime/backend/internal/application/contact"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles the contact-us endpoint
type ContactHandler struct {
	BaseHandler
	contactService *contactapp.Service
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *contactapp.Service) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Send forwards a visitor's message to customer service
func (h *ContactHandler) Send(c *gin.Context) {
	var req contactapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.contactService.Send(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"sent": true})
}
