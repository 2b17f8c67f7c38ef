package analytics

import (
	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller Controller, authenticated, adminOnly gin.HandlerFunc) {
	admin := rg.Group("/admin/analytics")
	admin.Use(authenticated, adminOnly)
	{
		admin.GET("/overview", controller.GetOverview)             // GET /api/v1/admin/analytics/overview
		admin.GET("/daily", controller.GetDailyMoneyFlow)          // GET /api/v1/admin/analytics/daily?days=30
		admin.GET("/listings/:id", controller.GetListingAnalytics) // GET /api/v1/admin/analytics/listings/:id
	}
}
