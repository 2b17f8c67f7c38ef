package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionCredit TransactionType = "CREDIT"
	TransactionDebit  TransactionType = "DEBIT"
)

// Reason tags every wallet movement with the flow that caused it
type Reason string

const (
	ReasonBookingPayment Reason = "BOOKING_PAYMENT"
	ReasonBookingRefund  Reason = "BOOKING_REFUND"
	ReasonOrderPayment   Reason = "ORDER_PAYMENT"
	ReasonOrderRefund    Reason = "ORDER_REFUND"
	ReasonTopUp          Reason = "TOP_UP"
)

// Wallet is the stored-value balance of one tourist
type Wallet struct {
	TouristID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"tourist_id"`
	Balance   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`
	Currency  string          `gorm:"type:varchar(3);not null" json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Transaction is one append-only ledger entry
type Transaction struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TouristID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"tourist_id"`
	Type         TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance_after"`
	Reason       Reason          `gorm:"type:varchar(30);not null" json:"reason"`
	Reference    string          `gorm:"type:varchar(64)" json:"reference,omitempty"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}

func (Transaction) TableName() string {
	return "wallet_transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Request DTOs

type TopUpRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Reference string `json:"reference" binding:"omitempty,max=64"`
}

// Response DTOs

type WalletResponse struct {
	TouristID uuid.UUID       `json:"tourist_id"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}

type TransactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
	Limit        int           `json:"limit"`
	Offset       int           `json:"offset"`
}
