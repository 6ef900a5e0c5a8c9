package handlers

import (
	"net/http"

	"voxshop_backend/internal/middleware"
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	BaseHandler
	productService services.ProductService
}

func NewProductHandler(base BaseHandler, productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		BaseHandler:    base,
		productService: productService,
	}
}

func (h *ProductHandler) RegisterRoutes(api *gin.RouterGroup) {
	products := api.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
	}

	admin := api.Group("/admin/products")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(string(models.UserRoleAdmin)))
	{
		admin.POST("/sync", h.Sync)
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	limit, offset := h.ParsePagination(c)

	products, total, err := h.productService.List(h.GetDB(c), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Sync triggers a catalog pull outside the nightly schedule.
func (h *ProductHandler) Sync(c *gin.Context) {
	written, err := h.productService.SyncCatalog(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": written})
}
