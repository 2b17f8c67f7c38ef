package bookings

import (
	"voyago/internal/listings"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, authenticated, canManage gin.HandlerFunc) {
	itineraries := rg.Group("/itineraries")
	itineraries.Use(authenticated)
	{
		itineraries.POST("/:id/book", controller.Book(listings.KindItinerary))     // POST /api/v1/itineraries/:id/book
		itineraries.POST("/:id/cancel", controller.Cancel(listings.KindItinerary)) // POST /api/v1/itineraries/:id/cancel
	}

	activities := rg.Group("/activities")
	activities.Use(authenticated)
	{
		activities.POST("/:id/book", controller.Book(listings.KindActivity))     // POST /api/v1/activities/:id/book
		activities.POST("/:id/cancel", controller.Cancel(listings.KindActivity)) // POST /api/v1/activities/:id/cancel
	}

	users := rg.Group("/users")
	users.Use(authenticated)
	{
		users.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}

	admin := rg.Group("/admin/listings")
	admin.Use(authenticated, canManage)
	{
		admin.GET("/:id/bookers", controller.GetBookers) // GET /api/v1/admin/listings/:id/bookers
	}
}

// Route definitions for reference:
//
// BOOKING
// POST   /api/v1/itineraries/:id/book                 - Book an itinerary date, paid from the wallet
// POST   /api/v1/activities/:id/book                  - Book an activity date, paid from the wallet
// Request body: { "date": "2026-11-20" }
//
// CANCELLATION
// POST   /api/v1/itineraries/:id/cancel               - Cancel at least 2 days ahead, full refund
// POST   /api/v1/activities/:id/cancel                - Same rule for activities
//
// USER BOOKINGS
// GET    /api/v1/users/bookings?limit=10&offset=0     - Get user's bookings with pagination
