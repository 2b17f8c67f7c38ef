package wallet

import (
	"net/http"

	"voyago/internal/shared/apperror"
	"voyago/internal/shared/middleware"
	"voyago/internal/shared/utils/pagination"
	"voyago/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetMyWallet handles GET /api/v1/users/wallet
func (c *Controller) GetMyWallet(ctx *gin.Context) {
	touristID, _, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	w, err := c.service.GetWallet(ctx.Request.Context(), touristID)
	if err != nil {
		response.RespondError(ctx, "Failed to get wallet", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Wallet retrieved successfully", w, nil)
}

// GetMyTransactions handles GET /api/v1/users/wallet/transactions
func (c *Controller) GetMyTransactions(ctx *gin.Context) {
	touristID, _, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	page := pagination.FromQuery(ctx)
	result, err := c.service.GetTransactions(ctx.Request.Context(), touristID, page.Limit, page.Offset)
	if err != nil {
		response.RespondError(ctx, "Failed to get wallet transactions", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Wallet transactions retrieved successfully", result, nil)
}

// TopUp handles POST /api/v1/admin/wallets/:touristId/top-up
func (c *Controller) TopUp(ctx *gin.Context) {
	touristID, err := uuid.Parse(ctx.Param("touristId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tourist ID", nil, nil)
		return
	}

	var req TopUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.RespondError(ctx, "Invalid amount", apperror.ErrInvalidAmount)
		return
	}

	w, err := c.service.TopUp(ctx.Request.Context(), touristID, amount.Round(2), req.Reference)
	if err != nil {
		response.RespondError(ctx, "Failed to top up wallet", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Wallet topped up successfully", w, nil)
}
