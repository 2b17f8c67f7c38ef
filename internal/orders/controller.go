package orders

import (
	"net/http"

	"voyago/internal/shared/middleware"
	"voyago/internal/shared/utils/pagination"
	"voyago/internal/shared/utils/response"
	"voyago/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateProduct handles POST /api/v1/admin/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	userID, _, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	product, err := c.service.CreateProduct(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, "Failed to create product", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Product created successfully", product, nil)
}

// ListProducts handles GET /api/v1/products
func (c *Controller) ListProducts(ctx *gin.Context) {
	page := pagination.FromQuery(ctx)
	result, err := c.service.ListProducts(ctx.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		response.RespondError(ctx, "Failed to list products", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Products retrieved successfully", result, nil)
}

// Checkout handles POST /api/v1/orders/checkout
func (c *Controller) Checkout(ctx *gin.Context) {
	touristID, _, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.Checkout(ctx.Request.Context(), touristID, req)
	if err != nil {
		response.RespondError(ctx, "Failed to place order", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Order placed successfully", result, nil)
}

// CancelOrder handles PUT /api/v1/tourist/:id/orders/:orderId/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	userID, role, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	touristID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tourist ID", nil, nil)
		return
	}
	orderID, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order ID", nil, nil)
		return
	}

	// Tourists act only on their own orders; admins may act for any tourist
	if touristID != userID && role != string(users.RoleAdmin) {
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Access denied", nil, nil)
		return
	}

	result, err := c.service.CancelOrder(ctx.Request.Context(), orderID, touristID)
	if err != nil {
		response.RespondError(ctx, "Failed to cancel order", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Order cancelled successfully", result, nil)
}

// GetOrder handles GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	userID, role, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order ID", nil, nil)
		return
	}

	order, err := c.service.GetOrder(ctx.Request.Context(), orderID, userID, role == string(users.RoleAdmin))
	if err != nil {
		response.RespondError(ctx, "Failed to get order", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Order retrieved successfully", order, nil)
}

// GetUserOrders handles GET /api/v1/users/orders
func (c *Controller) GetUserOrders(ctx *gin.Context) {
	touristID, _, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	page := pagination.FromQuery(ctx)
	result, err := c.service.ListOrders(ctx.Request.Context(), touristID, page.Limit, page.Offset)
	if err != nil {
		response.RespondError(ctx, "Failed to get orders", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Orders retrieved successfully", result, nil)
}

// UpdateStatus handles PUT /api/v1/admin/orders/:id/status
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order ID", nil, nil)
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	order, err := c.service.UpdateStatus(ctx.Request.Context(), orderID, req.Status)
	if err != nil {
		response.RespondError(ctx, "Failed to update order status", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Order status updated successfully", order, nil)
}
