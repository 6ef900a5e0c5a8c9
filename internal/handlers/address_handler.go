package handlers

import (
	"net/http"

	"voxshop_backend/internal/middleware"
	"voxshop_backend/internal/services"
	"voxshop_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	BaseHandler
	addressService services.AddressService
}

func NewAddressHandler(base BaseHandler, addressService services.AddressService) *AddressHandler {
	return &AddressHandler{
		BaseHandler:    base,
		addressService: addressService,
	}
}

// RegisterRoutes: the saved address book belongs to durable accounts;
// anonymous sessions enter addresses on the transaction directly.
func (h *AddressHandler) RegisterRoutes(api *gin.RouterGroup) {
	addresses := api.Group("/addresses")
	addresses.Use(middleware.AuthMiddleware(), middleware.RequireRegistered())
	{
		addresses.GET("", h.List)
		addresses.POST("", h.Create)
		addresses.DELETE("/:id", h.Delete)
	}
}

func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.List(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

func (h *AddressHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAddressRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	address, err := h.addressService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

func (h *AddressHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.addressService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
