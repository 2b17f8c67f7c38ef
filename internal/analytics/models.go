package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Overview is the admin dashboard headline
type Overview struct {
	Listings       ListingTotals    `json:"listings"`
	Bookings       BookingTotals    `json:"bookings"`
	Orders         OrderTotals      `json:"orders"`
	Cancellations  []SubjectRefunds `json:"cancellations"`
	WalletBalances decimal.Decimal  `json:"wallet_balances"`
}

type ListingTotals struct {
	Total       int64 `json:"total"`
	Itineraries int64 `json:"itineraries"`
	Activities  int64 `json:"activities"`
	OpenForSale int64 `json:"open_for_sale"`
}

// BookingTotals covers bookings currently held; cancelled ones are removed
type BookingTotals struct {
	Active      int64           `json:"active"`
	HeldRevenue decimal.Decimal `json:"held_revenue"`
}

type OrderTotals struct {
	ByStatus map[string]int64 `json:"by_status"`
	Revenue  decimal.Decimal  `json:"revenue"`
}

type SubjectRefunds struct {
	SubjectType string          `json:"subject_type"`
	Count       int64           `json:"count"`
	Refunded    decimal.Decimal `json:"refunded"`
}

// DailyMoneyFlow is one day of wallet movement, grouped in the booking time zone
type DailyMoneyFlow struct {
	Date            string          `json:"date"`
	BookingPayments int64           `json:"booking_payments"`
	BookingRevenue  decimal.Decimal `json:"booking_revenue"`
	Refunds         int64           `json:"refunds"`
	RefundedAmount  decimal.Decimal `json:"refunded_amount"`
	OrderPayments   int64           `json:"order_payments"`
	OrderRevenue    decimal.Decimal `json:"order_revenue"`
}

type ListingAnalytics struct {
	ListingID      uuid.UUID       `json:"listing_id"`
	ActiveBookings int64           `json:"active_bookings"`
	HeldRevenue    decimal.Decimal `json:"held_revenue"`
	ByDate         []DateCount     `json:"by_date"`
	Cancellations  int64           `json:"cancellations"`
	Refunded       decimal.Decimal `json:"refunded"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// movement is the row shape read for daily aggregation
type movement struct {
	Reason    string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
