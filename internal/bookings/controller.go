package bookings

import (
	"net/http"

	"voyago/internal/listings"
	"voyago/internal/shared/middleware"
	"voyago/internal/shared/utils/pagination"
	"voyago/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Book handles POST /api/v1/itineraries/:id/book and /api/v1/activities/:id/book
func (c *Controller) Book(kind listings.Kind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		touristID, _, ok := middleware.CurrentUser(ctx)
		if !ok {
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
			return
		}

		listingID, err := uuid.Parse(ctx.Param("id"))
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid listing ID", nil, nil)
			return
		}

		var req BookRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}

		date, err := listings.ParseDate(req.Date)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date", nil, err.Error())
			return
		}

		booking, err := c.service.Book(ctx.Request.Context(), BookCommand{
			Kind:      kind,
			ListingID: listingID,
			TouristID: touristID,
			Date:      date,
		})
		if err != nil {
			response.RespondError(ctx, "Failed to book", err)
			return
		}
		response.RespondJSON(ctx, "success", http.StatusCreated, "Booked successfully", booking, nil)
	}
}

// Cancel handles POST /api/v1/itineraries/:id/cancel and /api/v1/activities/:id/cancel
func (c *Controller) Cancel(kind listings.Kind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		touristID, _, ok := middleware.CurrentUser(ctx)
		if !ok {
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
			return
		}

		listingID, err := uuid.Parse(ctx.Param("id"))
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid listing ID", nil, nil)
			return
		}

		result, err := c.service.Cancel(ctx.Request.Context(), CancelCommand{
			Kind:      kind,
			ListingID: listingID,
			TouristID: touristID,
		})
		if err != nil {
			response.RespondError(ctx, "Failed to cancel booking", err)
			return
		}
		response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", result, nil)
	}
}

// GetUserBookings handles GET /api/v1/users/bookings
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	touristID, _, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	page := pagination.FromQuery(ctx)
	result, err := c.service.GetUserBookings(ctx.Request.Context(), touristID, page.Limit, page.Offset)
	if err != nil {
		response.RespondError(ctx, "Failed to get bookings", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

// GetBookers handles GET /api/v1/admin/listings/:id/bookers
func (c *Controller) GetBookers(ctx *gin.Context) {
	listingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid listing ID", nil, nil)
		return
	}

	bookers, err := c.service.GetBookers(ctx.Request.Context(), listingID)
	if err != nil {
		response.RespondError(ctx, "Failed to get bookers", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Bookers retrieved successfully", gin.H{"tourist_ids": bookers}, nil)
}
