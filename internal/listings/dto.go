package listings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateListingRequest struct {
	Kind           Kind     `json:"kind" binding:"required,oneof=ITINERARY ACTIVITY"`
	Name           string   `json:"name" binding:"required,min=3,max=200"`
	Description    string   `json:"description" binding:"max=5000"`
	Price          string   `json:"price" binding:"required"`
	Currency       string   `json:"currency" binding:"omitempty,len=3"`
	BookingOpen    *bool    `json:"booking_open"`
	AvailableDates []string `json:"available_dates" binding:"dive,datetime=2006-01-02"`
}

type SetBookingOpenRequest struct {
	BookingOpen *bool `json:"booking_open" binding:"required"`
}

type AddDatesRequest struct {
	Dates []string `json:"dates" binding:"required,min=1,dive,datetime=2006-01-02"`
}

type ListQuery struct {
	Kind   Kind
	Limit  int
	Offset int
}

// Response DTOs

type ListingResponse struct {
	ID             uuid.UUID       `json:"id"`
	Kind           Kind            `json:"kind"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
	BookingOpen    bool            `json:"booking_open"`
	CreatedBy      uuid.UUID       `json:"created_by"`
	AvailableDates []string        `json:"available_dates"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ListingListResponse struct {
	Listings []ListingResponse `json:"listings"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

func ToResponse(l *Listing) ListingResponse {
	dates := make([]string, 0, len(l.AvailableDates))
	for _, d := range l.AvailableDates {
		dates = append(dates, d.Date.Format(DateLayout))
	}
	return ListingResponse{
		ID:             l.ID,
		Kind:           l.Kind,
		Name:           l.Name,
		Description:    l.Description,
		Price:          l.Price,
		Currency:       l.Currency,
		BookingOpen:    l.BookingOpen,
		CreatedBy:      l.CreatedBy,
		AvailableDates: dates,
		CreatedAt:      l.CreatedAt,
	}
}
