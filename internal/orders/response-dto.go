package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int64   `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// CheckoutResponse carries the wallet balance only for WALLET payments
type CheckoutResponse struct {
	Order         *Order           `json:"order"`
	WalletBalance *decimal.Decimal `json:"wallet_balance,omitempty"`
}

type CancelResult struct {
	OrderID          uuid.UUID       `json:"order_id"`
	Status           OrderStatus     `json:"status"`
	RefundedAmount   decimal.Decimal `json:"refunded_amount"`
	NewWalletBalance decimal.Decimal `json:"new_wallet_balance"`
}
