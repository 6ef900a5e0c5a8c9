package handlers

import (
	"net/http"

	"voxshop_backend/internal/services"
	"voxshop_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

// RegisterRoutes: the contact form is open to unauthenticated visitors.
func (h *ContactHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/messages", h.Submit)
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.contactService.Submit(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": message.ID})
}
