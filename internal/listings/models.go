package listings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Kind distinguishes the two bookable listing types
type Kind string

const (
	KindItinerary Kind = "ITINERARY"
	KindActivity  Kind = "ACTIVITY"
)

func (k Kind) IsValid() bool {
	return k == KindItinerary || k == KindActivity
}

// DateLayout is the wire format for available and booked dates
const DateLayout = "2006-01-02"

type Listing struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Kind           Kind            `gorm:"type:varchar(20);not null;index" json:"kind"`
	Name           string          `gorm:"type:varchar(200);not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description,omitempty"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Currency       string          `gorm:"type:varchar(3);not null" json:"currency"`
	BookingOpen    bool            `gorm:"not null" json:"booking_open"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid;not null;index" json:"created_by"`
	AvailableDates []ListingDate   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"available_dates"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ListingDate is one calendar date a listing can be booked for, stored at UTC midnight
type ListingDate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_listing_dates_listing_date" json:"-"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_listing_dates_listing_date" json:"date"`
}

func (Listing) TableName() string {
	return "listings"
}

func (ListingDate) TableName() string {
	return "listing_dates"
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (d *ListingDate) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// HasDate reports whether day is among the available dates. Only the
// calendar date of day is compared.
func (l *Listing) HasDate(day time.Time) bool {
	y, m, d := day.Date()
	for _, ad := range l.AvailableDates {
		ay, am, adDay := ad.Date.Date()
		if ay == y && am == m && adDay == d {
			return true
		}
	}
	return false
}

// ToDate converts a calendar date to the stored UTC midnight form
func ToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
