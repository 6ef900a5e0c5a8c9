package handlers

import (
	"net/http"

	"voxshop_backend/internal/middleware"
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/services"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler serves the transaction lifecycle plus the three bridge
// endpoints the storefront calls during payment: create-payment-intent,
// submit-order and emails/purchase-success. Those paths are part of the
// public wire contract and must not move.
type CheckoutHandler struct {
	BaseHandler
	checkoutService     services.CheckoutService
	paymentService      services.PaymentService
	fulfillmentService  services.FulfillmentService
	notificationService services.NotificationService
}

func NewCheckoutHandler(
	base BaseHandler,
	checkoutService services.CheckoutService,
	paymentService services.PaymentService,
	fulfillmentService services.FulfillmentService,
	notificationService services.NotificationService,
) *CheckoutHandler {
	return &CheckoutHandler{
		BaseHandler:         base,
		checkoutService:     checkoutService,
		paymentService:      paymentService,
		fulfillmentService:  fulfillmentService,
		notificationService: notificationService,
	}
}

func (h *CheckoutHandler) RegisterRoutes(api *gin.RouterGroup) {
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		transactions := authed.Group("/transactions")
		{
			transactions.POST("", h.CreateTransaction)
			transactions.GET("", h.History)
			transactions.GET("/:id", h.GetTransaction)
			transactions.PUT("/:id/delivery-address", h.SetDeliveryAddress)
			transactions.PUT("/:id/receiver", h.SetReceiver)
			transactions.PUT("/succeeded", h.MarkSucceeded)
		}

		authed.GET("/checkout/session/:id", h.Session)

		authed.POST("/create-payment-intent", h.CreatePaymentIntent)
		authed.DELETE("/create-payment-intent", h.CancelPaymentIntent)
		authed.POST("/submit-order", h.SubmitOrder)
		authed.POST("/emails/purchase-success", h.PurchaseSuccessEmail)
	}

	admin := api.Group("/admin/transactions")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(string(models.UserRoleAdmin)))
	{
		admin.DELETE("/:id", h.DeleteTransaction)
	}
}

func (h *CheckoutHandler) CreateTransaction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	transaction, err := h.checkoutService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

func (h *CheckoutHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	transactions, err := h.checkoutService.History(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

func (h *CheckoutHandler) GetTransaction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	transaction, err := h.checkoutService.GetByID(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// Session reports where in the checkout flow the transaction stands and
// which fields still block payment.
func (h *CheckoutHandler) Session(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session, err := h.checkoutService.Session(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *CheckoutHandler) SetDeliveryAddress(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetDeliveryAddressRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.checkoutService.SetDeliveryAddress(h.GetDB(c), userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) SetReceiver(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetReceiverRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.checkoutService.SetReceiver(h.GetDB(c), userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkSucceeded is called by the success page with the payment_intent it
// received in the redirect query string.
func (h *CheckoutHandler) MarkSucceeded(c *gin.Context) {
	var req dto.MarkSucceededRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	transaction, err := h.checkoutService.MarkSucceeded(h.GetDB(c), req.PaymentIntent)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	var req dto.CreatePaymentIntentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	clientSecret, err := h.paymentService.CreateIntent(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreatePaymentIntentResponse{ClientSecret: clientSecret})
}

// CancelPaymentIntent takes the transaction id; cancellation at the
// processor uses the intent id stored on that transaction.
func (h *CheckoutHandler) CancelPaymentIntent(c *gin.Context) {
	var req dto.CancelPaymentIntentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.paymentService.CancelIntent(c.Request.Context(), h.GetDB(c), req.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment intent cancelled"})
}

// SubmitOrder and PurchaseSuccessEmail answer in the storefront's flat
// error shape: the error field is a plain string, not the envelope the
// rest of the API uses.
func (h *CheckoutHandler) SubmitOrder(c *gin.Context) {
	var req dto.SubmitOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	body, err := h.fulfillmentService.Submit(c.Request.Context(), h.GetDB(c), req.TransactionID)
	if err != nil {
		status, message := bridgeErrorStatus(err)
		c.JSON(status, gin.H{"success": false, "error": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": body})
}

func (h *CheckoutHandler) PurchaseSuccessEmail(c *gin.Context) {
	var req dto.PurchaseSuccessRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.notificationService.SendPurchaseSuccess(c.Request.Context(), h.GetDB(c), req.TransactionID); err != nil {
		status, message := bridgeErrorStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Purchase confirmation email sent"})
}

func bridgeErrorStatus(err error) (int, string) {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr.HTTPCode, appErr.Message
	}
	return http.StatusInternalServerError, "Internal server error"
}

func (h *CheckoutHandler) DeleteTransaction(c *gin.Context) {
	if err := h.checkoutService.Delete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
