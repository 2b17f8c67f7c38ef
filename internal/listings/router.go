package listings

import (
	"github.com/gin-gonic/gin"
)

func SetupListingRoutes(rg *gin.RouterGroup, controller *Controller, authenticated, canManage gin.HandlerFunc) {
	// Public browsing
	public := rg.Group("/listings")
	{
		public.GET("", controller.ListListings)   // GET /api/v1/listings
		public.GET("/:id", controller.GetListing) // GET /api/v1/listings/:id
	}

	// Guides, advertisers and admins manage listings
	admin := rg.Group("/admin/listings")
	admin.Use(authenticated, canManage)
	{
		admin.POST("", controller.CreateListing)                    // POST /api/v1/admin/listings
		admin.PATCH("/:id/booking-open", controller.SetBookingOpen) // PATCH /api/v1/admin/listings/:id/booking-open
		admin.POST("/:id/dates", controller.AddDates)               // POST /api/v1/admin/listings/:id/dates
	}
}
