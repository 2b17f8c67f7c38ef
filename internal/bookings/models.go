package bookings

import (
	"time"

	"voyago/internal/listings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookingRecord is one tourist's booking of one listing. The row is deleted
// on cancellation, so (listing, tourist) is unique among live bookings.
type BookingRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BookingRef  string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"booking_ref"`
	ListingID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_booking_records_listing_tourist" json:"listing_id"`
	TouristID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_booking_records_listing_tourist;index" json:"tourist_id"`
	ListingKind listings.Kind   `gorm:"type:varchar(20);not null" json:"listing_kind"`
	BookedDate  time.Time       `gorm:"type:date;not null" json:"booked_date"`
	AmountPaid  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount_paid"`
	Currency    string          `gorm:"type:varchar(3);not null" json:"currency"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (BookingRecord) TableName() string {
	return "booking_records"
}

func (b *BookingRecord) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
