package listings

import (
	"net/http"
	"strings"

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

// CreateListing handles POST /api/v1/admin/listings
func (c *Controller) CreateListing(ctx *gin.Context) {
	userID, _, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	listing, err := c.service.CreateListing(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, "Failed to create listing", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Listing created successfully", listing, nil)
}

// GetListing handles GET /api/v1/listings/:id
func (c *Controller) GetListing(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid listing ID", nil, nil)
		return
	}

	listing, err := c.service.GetListing(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, "Failed to get listing", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Listing retrieved successfully", listing, nil)
}

// ListListings handles GET /api/v1/listings?kind=ACTIVITY&limit=10&offset=0
func (c *Controller) ListListings(ctx *gin.Context) {
	page := pagination.FromQuery(ctx)
	query := ListQuery{
		Kind:   Kind(strings.ToUpper(ctx.Query("kind"))),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	result, err := c.service.ListListings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, "Failed to list listings", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Listings retrieved successfully", result, nil)
}

// SetBookingOpen handles PATCH /api/v1/admin/listings/:id/booking-open
func (c *Controller) SetBookingOpen(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid listing ID", nil, nil)
		return
	}

	var req SetBookingOpenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	listing, err := c.service.SetBookingOpen(ctx.Request.Context(), id, *req.BookingOpen)
	if err != nil {
		response.RespondError(ctx, "Failed to update listing", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Listing updated successfully", listing, nil)
}

// AddDates handles POST /api/v1/admin/listings/:id/dates
func (c *Controller) AddDates(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid listing ID", nil, nil)
		return
	}

	var req AddDatesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	listing, err := c.service.AddAvailableDates(ctx.Request.Context(), id, req.Dates)
	if err != nil {
		response.RespondError(ctx, "Failed to add dates", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Dates added successfully", listing, nil)
}
