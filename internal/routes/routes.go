package routes

import (
	"net/http"

	"voxshop_backend/internal/handlers"
	"voxshop_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup builds the router. All application routes live under /api/v1.
func Setup(db *gorm.DB, h *handlers.AppHandlers) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(),
		middleware.CORS(),
		middleware.DBMiddleware(db),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	h.Auth.RegisterRoutes(api)
	h.Product.RegisterRoutes(api)
	h.Cart.RegisterRoutes(api)
	h.Wishlist.RegisterRoutes(api)
	h.Address.RegisterRoutes(api)
	h.Checkout.RegisterRoutes(api)
	h.Contact.RegisterRoutes(api)

	return router
}
