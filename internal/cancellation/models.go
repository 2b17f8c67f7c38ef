package cancellation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SubjectType string

const (
	SubjectListingBooking SubjectType = "LISTING_BOOKING"
	SubjectOrder          SubjectType = "ORDER"
)

// Cancellation is the audit record written whenever a booking or order is
// cancelled and refunded.
type Cancellation struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectType  SubjectType     `gorm:"type:varchar(20);not null" json:"subject_type"`
	SubjectID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"subject_id"`
	TouristID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"tourist_id"`
	RefundAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"refund_amount"`
	Reason       string          `gorm:"type:varchar(255)" json:"reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TableName sets the table name for Cancellation
func (Cancellation) TableName() string {
	return "cancellations"
}

func (c *Cancellation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
