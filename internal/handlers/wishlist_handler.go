package handlers

import (
	"net/http"

	"voxshop_backend/internal/middleware"
	"voxshop_backend/internal/services"
	"voxshop_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	BaseHandler
	wishlistService services.WishlistService
}

func NewWishlistHandler(base BaseHandler, wishlistService services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		BaseHandler:     base,
		wishlistService: wishlistService,
	}
}

func (h *WishlistHandler) RegisterRoutes(api *gin.RouterGroup) {
	wishlist := api.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware())
	{
		wishlist.GET("", h.List)
		wishlist.POST("", h.AddItem)
		wishlist.DELETE("/:id", h.RemoveItem)
	}
}

func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.wishlistService.List(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *WishlistHandler) AddItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddWishlistItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.wishlistService.AddItem(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.wishlistService.RemoveItem(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
