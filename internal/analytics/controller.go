package analytics

import (
	"net/http"
	"strconv"

	"voyago/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller defines the analytics controller interface
type Controller interface {
	GetOverview(c *gin.Context)
	GetDailyMoneyFlow(c *gin.Context)
	GetListingAnalytics(c *gin.Context)
}

type controller struct {
	service Service
}

// NewController creates a new analytics controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetOverview(c *gin.Context) {
	overview, err := ctrl.service.GetOverview(c.Request.Context())
	if err != nil {
		response.RespondError(c, "Failed to get analytics overview", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Analytics overview retrieved successfully", overview, nil)
}

func (ctrl *controller) GetDailyMoneyFlow(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid days parameter", nil, err.Error())
		return
	}

	flow, err := ctrl.service.GetDailyMoneyFlow(c.Request.Context(), days)
	if err != nil {
		response.RespondError(c, "Failed to get daily stats", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Daily stats retrieved successfully", flow, nil)
}

func (ctrl *controller) GetListingAnalytics(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid listing ID", nil, err.Error())
		return
	}

	analytics, err := ctrl.service.GetListingAnalytics(c.Request.Context(), listingID)
	if err != nil {
		response.RespondError(c, "Failed to get listing analytics", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Listing analytics retrieved successfully", analytics, nil)
}
