package database

import (
	"voyago/internal/bookings"
	"voyago/internal/cancellation"
	"voyago/internal/listings"
	"voyago/internal/orders"
	"voyago/internal/wallet"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&listings.Listing{},
		&listings.ListingDate{},
		&bookings.BookingRecord{},
		&wallet.Wallet{},
		&wallet.Transaction{},
		&orders.Product{},
		&orders.Order{},
		&orders.OrderLine{},
		&cancellation.Cancellation{},
	)
}
