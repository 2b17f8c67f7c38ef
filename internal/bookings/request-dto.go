package bookings

import (
	"time"

	"voyago/internal/listings"

	"github.com/google/uuid"
)

// BookRequest is the body of POST /itineraries/:id/book and /activities/:id/book
type BookRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

// BookCommand carries everything Book needs; the tourist always comes from
// the authenticated caller
type BookCommand struct {
	Kind      listings.Kind
	ListingID uuid.UUID
	TouristID uuid.UUID
	Date      time.Time
}

type CancelCommand struct {
	Kind      listings.Kind
	ListingID uuid.UUID
	TouristID uuid.UUID
}
