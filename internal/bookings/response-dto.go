package bookings

import (
	"time"

	"voyago/internal/listings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID            uuid.UUID       `json:"id"`
	BookingRef    string          `json:"booking_ref"`
	ListingID     uuid.UUID       `json:"listing_id"`
	ListingKind   listings.Kind   `json:"listing_kind"`
	TouristID     uuid.UUID       `json:"tourist_id"`
	BookedDate    string          `json:"booked_date"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Currency      string          `json:"currency"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CancelResult is returned by a successful cancellation
type CancelResult struct {
	ListingID        uuid.UUID       `json:"listing_id"`
	RefundedAmount   decimal.Decimal `json:"refunded_amount"`
	NewWalletBalance decimal.Decimal `json:"new_wallet_balance"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

func toResponse(r *BookingRecord) BookingResponse {
	return BookingResponse{
		ID:          r.ID,
		BookingRef:  r.BookingRef,
		ListingID:   r.ListingID,
		ListingKind: r.ListingKind,
		TouristID:   r.TouristID,
		BookedDate:  r.BookedDate.Format(listings.DateLayout),
		AmountPaid:  r.AmountPaid,
		Currency:    r.Currency,
		CreatedAt:   r.CreatedAt,
	}
}
