package handlers

import (
	"strconv"

	"voxshop_backend/internal/middleware"
	"voxshop_backend/internal/validator"
	"voxshop_backend/pkg/apperrors"
	"voxshop_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler carries the pieces every handler needs. Concrete handlers
// embed it.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) BaseHandler {
	return BaseHandler{validator: v}
}

// GetDB pulls the request-scoped database handle that DBMiddleware (or a
// test) put into the context.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	return c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
}

// BindAndValidate_JSON binds the JSON body into obj and runs struct
// validation. On failure it writes the error response and returns false.
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		var ve *validator.ValidationError
		if apperrors.As(err, &ve) {
			apperrors.HandleError(c, apperrors.ValidationError(ve.Errors))
			return false
		}
		apperrors.HandleError(c, err)
		return false
	}
	return true
}

// HandleServiceError forwards a service-layer error to the client.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// GetAndAuthorizeUserID returns the authenticated user id or writes a 401.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return userID, true
}

// ParsePagination reads limit/offset query parameters with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
