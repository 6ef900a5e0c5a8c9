package handlers

import (
	"net/http"

	"voxshop_backend/internal/middleware"
	"voxshop_backend/internal/services"
	"voxshop_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	BaseHandler
	cartService services.CartService
}

func NewCartHandler(base BaseHandler, cartService services.CartService) *CartHandler {
	return &CartHandler{
		BaseHandler: base,
		cartService: cartService,
	}
}

func (h *CartHandler) RegisterRoutes(api *gin.RouterGroup) {
	cart := api.Group("/cart")
	cart.Use(middleware.AuthMiddleware())
	{
		cart.GET("", h.Get)
		cart.POST("", h.AddItem)
		cart.PUT("/:id", h.UpdateQuantity)
		cart.DELETE("/:id", h.RemoveItem)
		cart.DELETE("", h.Clear)
	}
}

func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.cartService.GetCart(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddCartItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.cartService.AddItem(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.cartService.UpdateQuantity(h.GetDB(c), userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
