package cancellation

import (
	"net/http"

	"voyago/internal/shared/middleware"
	"voyago/internal/shared/utils/pagination"
	"voyago/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for cancellation history
type Controller struct {
	service Service
}

// NewController creates a new cancellation controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetUserCancellations handles GET /api/v1/users/cancellations
func (c *Controller) GetUserCancellations(ctx *gin.Context) {
	touristID, _, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	page := pagination.FromQuery(ctx)
	result, err := c.service.GetUserCancellations(ctx.Request.Context(), touristID, page.Limit, page.Offset)
	if err != nil {
		response.RespondError(ctx, "Failed to get cancellations", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cancellations retrieved successfully", result, nil)
}
